package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	dom "Renewals/internal/domain"

	"github.com/redis/go-redis/v9"
)

// Event is emitted when a checklist's terminal task flips. Finalized is
// false when the task is un-toggled after the fact.
type Event struct {
	PolicyKey       string        `json:"policyKey"`
	Finalized       bool          `json:"finalized"`
	PolicyReference dom.PolicyRef `json:"policyReference"`
}

// Notifier delivers finalization events to external consumers (e.g. a
// renewals dashboard). Pure notification: the checklist mutation never
// depends on delivery succeeding.
type Notifier interface {
	ChecklistFinalized(ctx context.Context, ev Event) error
}

// LogNotifier writes events to the process log. Default when no broker
// is configured.
type LogNotifier struct{}

func (LogNotifier) ChecklistFinalized(_ context.Context, ev Event) error {
	log.Printf("checklist finalized=%v policy=%s", ev.Finalized, ev.PolicyKey)
	return nil
}

// RedisNotifier publishes events as JSON on a Redis pub/sub channel.
type RedisNotifier struct {
	rdb     *redis.Client
	channel string
}

// NewRedisNotifier returns a Notifier publishing to the given channel.
func NewRedisNotifier(rdb *redis.Client, channel string) *RedisNotifier {
	return &RedisNotifier{rdb: rdb, channel: channel}
}

func (n *RedisNotifier) ChecklistFinalized(ctx context.Context, ev Event) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := n.rdb.Publish(ctx, n.channel, b).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", n.channel, err)
	}
	return nil
}

// Multi fans an event out to several notifiers; the first failure wins
// but all notifiers still run.
type Multi []Notifier

func (m Multi) ChecklistFinalized(ctx context.Context, ev Event) error {
	var first error
	for _, n := range m {
		if err := n.ChecklistFinalized(ctx, ev); err != nil && first == nil {
			first = err
		}
	}
	return first
}
