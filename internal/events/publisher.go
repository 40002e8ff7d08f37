package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Publisher appends domain events to Redis streams. Each stream entry carries
// the event type, a timestamp and the JSON payload as separate fields so
// consumers can route on the type without decoding the payload.
type Publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

func (p *Publisher) Publish(ctx context.Context, stream, eventType string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}

	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{
			"type": eventType,
			"ts":   time.Now().UTC().Format(time.RFC3339Nano),
			"data": payload,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to publish %s to %s: %w", eventType, stream, err)
	}
	return nil
}
