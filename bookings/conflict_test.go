package bookings

import (
	"sync"
	"testing"
	"time"
)

func at(h, m int) time.Time {
	return time.Date(2023, 8, 14, h, m, 0, 0, time.UTC)
}

func TestConflictsHalfOpenAdjacency(t *testing.T) {
	existing := []Interval{{Start: at(10, 0), End: at(10, 30)}}

	if Conflicts(at(10, 30), at(11, 0), existing) {
		t.Fatal("booking starting exactly at an existing end must be accepted")
	}
	if Conflicts(at(9, 30), at(10, 0), existing) {
		t.Fatal("booking ending exactly at an existing start must be accepted")
	}
	if !Conflicts(at(10, 15), at(10, 45), existing) {
		t.Fatal("partial overlap must be rejected")
	}
}

func TestConflictsContainment(t *testing.T) {
	existing := []Interval{{Start: at(10, 0), End: at(11, 0)}}

	if !Conflicts(at(10, 15), at(10, 45), existing) {
		t.Fatal("candidate inside an existing booking must conflict")
	}
	if !Conflicts(at(9, 0), at(12, 0), existing) {
		t.Fatal("candidate containing an existing booking must conflict")
	}
	if !Conflicts(at(10, 0), at(11, 0), existing) {
		t.Fatal("identical interval must conflict")
	}
}

func TestConflictsEmptyCalendar(t *testing.T) {
	if Conflicts(at(10, 0), at(11, 0), nil) {
		t.Fatal("empty calendar can never conflict")
	}
}

func TestPadWidensBothSides(t *testing.T) {
	iv := Pad(at(10, 0), at(10, 30), 15*time.Minute, 10*time.Minute)

	if !iv.Start.Equal(at(9, 45)) || !iv.End.Equal(at(10, 40)) {
		t.Fatalf("got [%v, %v)", iv.Start, iv.End)
	}

	// a candidate that only touches the margin now conflicts
	if !Conflicts(at(9, 30), at(10, 0), []Interval{iv}) {
		t.Fatal("candidate inside margin_before must conflict when margins are enforced")
	}
}

func TestOwnerLocksSerializePerOwner(t *testing.T) {
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locks.Lock("owner-1")
			counter++
			locks.Unlock("owner-1")
		}()
	}
	wg.Wait()
	if counter != 50 {
		t.Fatalf("lost updates under the owner lock: %d", counter)
	}
}

func TestOwnerLocksIndependentOwners(t *testing.T) {
	locks.Lock("owner-a")
	done := make(chan struct{})
	go func() {
		locks.Lock("owner-b")
		locks.Unlock("owner-b")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on one owner blocked another owner")
	}
	locks.Unlock("owner-a")
}
