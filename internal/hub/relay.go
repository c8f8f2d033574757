package hub

import (
	"context"
	"ctchen222/Criss-Cross/internal/events"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-redis/redis/v8"
)

const relayBufferSize = 256

var ErrRelayClosed = errors.New("relay is closed")

// Relay fans broadcast events out to every hub, including the publishing one.
type Relay interface {
	Publish(ctx context.Context, ev events.Event) error
	// Events delivers published events. It is closed when the relay stops.
	Events() <-chan events.Event
	Close() error
}

// LocalRelay is an in-process relay for a single hub.
type LocalRelay struct {
	events    chan events.Event
	done      chan struct{}
	closeOnce sync.Once
}

func NewLocalRelay() *LocalRelay {
	return &LocalRelay{
		events: make(chan events.Event, relayBufferSize),
		done:   make(chan struct{}),
	}
}

func (r *LocalRelay) Publish(ctx context.Context, ev events.Event) error {
	select {
	case <-r.done:
		return ErrRelayClosed
	default:
	}
	select {
	case r.events <- ev:
		return nil
	case <-r.done:
		return ErrRelayClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Events is never closed; a closed LocalRelay only refuses new events.
func (r *LocalRelay) Events() <-chan events.Event {
	return r.events
}

func (r *LocalRelay) Close() error {
	r.closeOnce.Do(func() { close(r.done) })
	return nil
}

// RedisRelay fans events out through Redis pub/sub on the events channel, so
// every process subscribed to the same Redis sees every broadcast. Only
// broadcasts cross processes; a game can only be joined on the process that owns it.
type RedisRelay struct {
	rdb    *redis.Client
	pubsub *redis.PubSub
	events chan events.Event

	done      chan struct{}
	closeOnce sync.Once
}

// NewRedisRelay subscribes to the events channel and waits for Redis to
// confirm the subscription.
func NewRedisRelay(ctx context.Context, rdb *redis.Client) (*RedisRelay, error) {
	pubsub := rdb.Subscribe(ctx, events.EventsChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", events.EventsChannel, err)
	}

	r := &RedisRelay{
		rdb:    rdb,
		pubsub: pubsub,
		events: make(chan events.Event, relayBufferSize),
		done:   make(chan struct{}),
	}
	go r.run()
	slog.Info("Redis relay subscribed", "channel", events.EventsChannel)
	return r, nil
}

func (r *RedisRelay) run() {
	defer close(r.events)

	for msg := range r.pubsub.Channel() {
		var ev events.Event
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			slog.Error("Could not unmarshal relayed event", "channel", msg.Channel, "error", err)
			continue
		}
		select {
		case r.events <- ev:
		case <-r.done:
			return
		}
	}
}

func (r *RedisRelay) Publish(ctx context.Context, ev events.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", ev.Type, err)
	}
	if err := r.rdb.Publish(ctx, events.EventsChannel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", ev.Type, err)
	}
	return nil
}

func (r *RedisRelay) Events() <-chan events.Event {
	return r.events
}

// Close unsubscribes and closes the Events channel.
func (r *RedisRelay) Close() error {
	r.closeOnce.Do(func() { close(r.done) })
	return r.pubsub.Close()
}
