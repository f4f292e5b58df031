// Package cache publishes accepted win records to Redis so downstream
// consumers (leaderboards, difficulty batch jobs) can react without
// polling the database.
package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/amsibert-fmms/Solitaire/internal/difficulty"
)

// Rdb is the shared Redis client. Nil until Connect succeeds; callers
// guard publication with a nil check.
var Rdb *redis.Client

// WinChannel is the pub/sub channel accepted wins are announced on.
const WinChannel = "solitaire:wins"

// Connect parses url and opens the client.
func Connect(ctx context.Context, url string) error {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return fmt.Errorf("redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	Rdb = client
	logrus.Info("connected to redis")
	return nil
}

// Close releases the client, if any.
func Close() {
	if Rdb != nil {
		_ = Rdb.Close()
		Rdb = nil
	}
}

// PublishWin announces an accepted win record on WinChannel.
func PublishWin(ctx context.Context, id string, rec difficulty.WinRecord) error {
	if Rdb == nil {
		return nil
	}
	payload, err := json.Marshal(struct {
		ID string `json:"id"`
		difficulty.WinRecord
	}{ID: id, WinRecord: rec})
	if err != nil {
		return fmt.Errorf("publish win %s: %w", id, err)
	}
	if err := Rdb.Publish(ctx, WinChannel, payload).Err(); err != nil {
		return fmt.Errorf("publish win %s: %w", id, err)
	}
	return nil
}
