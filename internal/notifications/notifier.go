// Package notifications publishes post lifecycle events over Redis pub/sub.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"pressroom/internal/middleware"
	"pressroom/internal/observability"

	"github.com/redis/go-redis/v9"
)

// PostEventsChannel is the channel every post event is published to.
const PostEventsChannel = "pressroom:events:posts"

const (
	EventPostCreated  = "post_created"
	EventPostUpdated  = "post_updated"
	EventPostFollowup = "post_followup"
)

// PostEvent is the JSON payload published for a post change.
type PostEvent struct {
	Type        string     `json:"type"`
	PostID      uint       `json:"post_id"`
	PriorPostID *uint      `json:"prior_post_id,omitempty"`
	PublisherID *uint      `json:"publisher_id,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	OccurredAt  time.Time  `json:"occurred_at"`
}

// Notifier provides helpers to publish notifications into Redis channels
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
// A nil client turns every publish into a no-op.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishPostEvent publishes event to PostEventsChannel.
func (n *Notifier) PublishPostEvent(ctx context.Context, event PostEvent) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal post event: %w", err)
	}
	if err := n.rdb.Publish(ctx, PostEventsChannel, payload).Err(); err != nil {
		return err
	}
	observability.PostEvents.WithLabelValues(event.Type).Inc()
	return nil
}

// StartPostSubscriber subscribes to PostEventsChannel and calls onEvent for
// each decodable event until ctx is cancelled.
func (n *Notifier) StartPostSubscriber(ctx context.Context, onEvent func(PostEvent)) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, PostEventsChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe %s: %w", PostEventsChannel, err)
	}
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event PostEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					middleware.Logger.Warn("Dropping malformed post event", slog.String("error", err.Error()))
					continue
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							middleware.Logger.Error("PANIC in post subscriber",
								slog.Any("panic", r), slog.String("stack", string(debug.Stack())))
						}
					}()
					onEvent(event)
				}()
			}
		}
	}()

	return nil
}
