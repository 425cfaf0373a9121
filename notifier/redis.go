package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RedisNotifier fans scan events out over a pub/sub channel. Dashboard
// processes subscribe and forward to their own clients.
type RedisNotifier struct {
	rdb     *goredis.Client
	channel string
}

type envelope struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

func NewRedisNotifier(addr, channel string) (*RedisNotifier, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	if channel == "" {
		channel = "scan-events"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisNotifier{rdb: rdb, channel: channel}, nil
}

func (n *RedisNotifier) Publish(ctx context.Context, event string, payload interface{}) error {
	raw, err := json.Marshal(envelope{Event: event, Payload: payload})
	if err != nil {
		return err
	}
	return n.rdb.Publish(ctx, n.channel, raw).Err()
}

func (n *RedisNotifier) Close() error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Close()
}
