// Package cache holds the redis client serving short-lived profile
// snapshots behind the profile reads.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"formsaathi/internal/models"
)

var RDB *redis.Client

// ProfileTTL bounds how long a cached profile snapshot may serve reads.
const ProfileTTL = 30 * time.Minute

func Init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	RDB = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := RDB.Ping(ctx).Err(); err != nil {
		// Cache is an accelerator, not a dependency; reads fall through to
		// postgres when it is down.
		log.Println("redis unavailable, continuing without cache:", err)
		RDB = nil
		return
	}
	fmt.Println("(SUCCESS): connected to redis successfully")
}

func profileKey(sessionID string) string { return "profile:" + sessionID }

// PutProfile stores a profile snapshot for the session.
func PutProfile(ctx context.Context, sessionID string, p models.UserProfile) {
	if RDB == nil {
		return
	}
	b, err := json.Marshal(p)
	if err != nil {
		return
	}
	_ = RDB.Set(ctx, profileKey(sessionID), b, ProfileTTL).Err()
}

// GetProfile returns the cached snapshot, if any.
func GetProfile(ctx context.Context, sessionID string) (models.UserProfile, bool) {
	var p models.UserProfile
	if RDB == nil {
		return p, false
	}
	b, err := RDB.Get(ctx, profileKey(sessionID)).Bytes()
	if err != nil {
		return p, false
	}
	if err := json.Unmarshal(b, &p); err != nil {
		return p, false
	}
	// SessionID is json:"-" and does not survive the round trip.
	p.SessionID = sessionID
	return p, true
}
