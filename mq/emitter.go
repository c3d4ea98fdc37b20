package mq

import (
	"context"
	"encoding/json"
	"log"

	"openslot/rdx"
)

// BookingEvent is published whenever a booking is created or cancelled.
type BookingEvent struct {
	Action    string `json:"action"` // created, cancelled
	OwnerID   string `json:"ownerId"`
	BookingID string `json:"bookingId"`
}

const channel = "booking-events"

// Emit publishes a booking event to Redis for the background worker.
func Emit(ctx context.Context, event BookingEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event: %v", err)
		return
	}
	if err := rdx.Conn.Publish(ctx, channel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish event to Redis: %v", err)
	}
}

// StartBookingWorker consumes booking events and drops the owner's cached
// day grids so the next day-view request rebuilds from Mongo.
func StartBookingWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, channel)
	ch := sub.Channel()

	go func() {
		for msg := range ch {
			var event BookingEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("[Worker] Bad booking event payload: %v", err)
				continue
			}
			rdx.InvalidateGrids(event.OwnerID)
		}
	}()
}
