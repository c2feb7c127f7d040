// Package notify publishes run-completion events over Redis pub/sub so
// downstream consumers (campaign tooling, dashboards) can react to fresh
// segmentations without polling the store.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Publisher is a Redis pub/sub client for run notifications.
type Publisher struct {
	client *redis.Client
}

// NewPublisher connects to Redis and verifies the connection.
func NewPublisher(addr, password string, db int) (*Publisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Publisher{client: client}, nil
}

// RunNotification announces one completed pipeline run.
type RunNotification struct {
	RunID         string         `json:"run_id"`
	Source        string         `json:"source"`
	Customers     int            `json:"customers"`
	TierCounts    map[string]int `json:"tier_counts"`
	ReferenceDate string         `json:"reference_date"` // RFC 3339
	Timestamp     int64          `json:"timestamp"`
}

// PublishRunComplete publishes a run notification on channel.
func (p *Publisher) PublishRunComplete(ctx context.Context, channel string, notification *RunNotification) error {
	msgJSON, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	if err := p.client.Publish(ctx, channel, msgJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

// Subscribe subscribes to channel, mainly for tests and local debugging.
func (p *Publisher) Subscribe(ctx context.Context, channel string) *redis.PubSub {
	return p.client.Subscribe(ctx, channel)
}

// Close closes the Redis connection.
func (p *Publisher) Close() error {
	return p.client.Close()
}
