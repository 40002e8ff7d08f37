package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

type Handler func(ctx context.Context, event Event) error

const (
	defaultBatchSize = 10
	defaultBlock     = 5 * time.Second
)

// Subscriber consumes one Redis stream through a consumer group. Messages
// whose handler fails are not ACKed and will be redelivered to the group.
type Subscriber struct {
	client  *redis.Client
	stream  string
	group   string
	name    string
	handler Handler
}

// NewSubscriber registers a named consumer for stream within group. The
// consumer group is created lazily on Run.
func NewSubscriber(client *redis.Client, stream, group, name string, handler Handler) *Subscriber {
	return &Subscriber{
		client:  client,
		stream:  stream,
		group:   group,
		name:    name,
		handler: handler,
	}
}

// Run consumes the stream until ctx is cancelled.
func (s *Subscriber) Run(ctx context.Context) error {
	err := s.client.XGroupCreateMkStream(ctx, s.stream, s.group, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return fmt.Errorf("failed to create consumer group %s on %s: %w", s.group, s.stream, err)
	}

	log.Printf("Subscriber started: stream=%s, group=%s, consumer=%s", s.stream, s.group, s.name)

	for {
		select {
		case <-ctx.Done():
			log.Printf("Subscriber stopping: %s", s.stream)
			return ctx.Err()
		default:
			if err := s.consumeBatch(ctx); err != nil {
				log.Printf("Error reading from %s: %v", s.stream, err)
				time.Sleep(time.Second)
			}
		}
	}
}

func (s *Subscriber) consumeBatch(ctx context.Context) error {
	streams, err := s.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    s.group,
		Consumer: s.name,
		Streams:  []string{s.stream, ">"},
		Count:    defaultBatchSize,
		Block:    defaultBlock,
	}).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read from stream: %w", err)
	}

	for _, stream := range streams {
		for _, message := range stream.Messages {
			event, err := decodeMessage(message)
			if err != nil {
				// Malformed entries are dropped, not retried: redelivery
				// cannot fix them.
				log.Printf("Dropping malformed message %s: %v", message.ID, err)
			} else if err := s.handler(ctx, event); err != nil {
				log.Printf("Failed to process message %s: %v", message.ID, err)
				continue
			}

			if err := s.client.XAck(ctx, s.stream, s.group, message.ID).Err(); err != nil {
				log.Printf("Failed to ACK message %s: %v", message.ID, err)
			}
		}
	}
	return nil
}

func decodeMessage(message redis.XMessage) (Event, error) {
	eventType, ok := message.Values["type"].(string)
	if !ok {
		return Event{}, fmt.Errorf("missing event type")
	}
	payload, ok := message.Values["data"].(string)
	if !ok {
		return Event{}, fmt.Errorf("missing event payload")
	}

	event := Event{Type: eventType, Data: json.RawMessage(payload)}
	if ts, ok := message.Values["ts"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			event.Timestamp = parsed
		}
	}
	return event, nil
}
