package notifier

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"pricesentry/internal/scan"
	"pricesentry/pkg/errors"
)

// RedisNotifier publishes alerts to a capped Redis stream so consumers other
// than email (bots, dashboards) can react to them.
type RedisNotifier struct {
	client    *redis.Client
	ctx       context.Context
	stream    string
	maxLength int
}

// NewRedisNotifier creates a new Redis stream notifier
func NewRedisNotifier(ctx context.Context, addr string, db int, stream string, maxLength int) *RedisNotifier {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	return &RedisNotifier{
		client:    client,
		ctx:       ctx,
		stream:    stream,
		maxLength: maxLength,
	}
}

// Notify publishes one alert to the stream as base64-encoded JSON, trimming
// the stream to its configured maximum length as it goes.
func (n *RedisNotifier) Notify(alert scan.Alert) error {
	data, err := json.Marshal(alert)
	if err != nil {
		return errors.NewNotifier(alert.TargetID, "failed to marshal alert", err)
	}

	encoded := base64.StdEncoding.EncodeToString(data)

	err = n.client.XAdd(n.ctx, &redis.XAddArgs{
		Stream: n.stream,
		MaxLen: int64(n.maxLength),
		Approx: true,
		Values: map[string]interface{}{
			"b64_alert": encoded,
		},
	}).Err()
	if err != nil {
		return errors.NewNotifier(alert.TargetID, "failed to publish alert", err)
	}
	return nil
}

// Close closes the Redis connection
func (n *RedisNotifier) Close() error {
	return n.client.Close()
}
