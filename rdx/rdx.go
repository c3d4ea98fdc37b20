package rdx

import (
	"log"
	"os"
	"time"

	"openslot/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err := Conn.Ping(globals.Ctx).Err(); err != nil {
		log.Printf("Redis unreachable at %s: %v", addr, err)
	}
}

// --- Session token helpers ---

func RdxHset(hash, key, value string) error {
	return Conn.HSet(globals.Ctx, hash, key, value).Err()
}

func RdxHget(hash, key string) (string, error) {
	return Conn.HGet(globals.Ctx, hash, key).Result()
}

func RdxHdel(hash, key string) error {
	return Conn.HDel(globals.Ctx, hash, key).Err()
}

// --- Day-grid cache ---
//
// Rendered day grids are cached per (owner, day, zone) and dropped whenever
// a booking for that owner changes. Keys carry a TTL so a missed
// invalidation heals itself.

const gridTTL = 10 * time.Minute

func GridKey(ownerID, day, zone string) string {
	return "grid:" + ownerID + ":" + day + ":" + zone
}

func CacheGrid(key string, payload []byte) {
	if err := Conn.Set(globals.Ctx, key, payload, gridTTL).Err(); err != nil {
		log.Println("Redis grid cache error:", err)
	}
}

func CachedGrid(key string) ([]byte, bool) {
	val, err := Conn.Get(globals.Ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

// InvalidateGrids drops every cached grid for one owner.
func InvalidateGrids(ownerID string) {
	keys, err := Conn.Keys(globals.Ctx, "grid:"+ownerID+":*").Result()
	if err != nil {
		log.Println("Redis scan error:", err)
		return
	}
	if len(keys) > 0 {
		Conn.Del(globals.Ctx, keys...)
	}
}
