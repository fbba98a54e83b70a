package realtime

import (
	"context"
	"sync"

	"rz-parfum-be/internal/logger"

	"go.uber.org/zap"
)

const DefaultBuffer = 16

// Observer receives hub bookkeeping signals. The metrics package implements it.
type Observer interface {
	SubscriberAdded()
	SubscriberRemoved()
	EventDropped(topic string)
}

type nopObserver struct{}

func (nopObserver) SubscriberAdded()    {}
func (nopObserver) SubscriberRemoved()  {}
func (nopObserver) EventDropped(string) {}

type Subscription struct {
	C     <-chan Event
	topic string
	ch    chan Event
	hub   *Hub
	once  sync.Once
}

func (s *Subscription) Topic() string { return s.topic }

// Unsubscribe detaches the subscription and closes C. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.hub.remove(s)
	})
}

type Hub struct {
	mu       sync.RWMutex
	subs     map[string]map[*Subscription]struct{}
	buffer   int
	observer Observer
	closed   bool
	dropped  uint64
}

type Option func(*Hub)

func WithBuffer(n int) Option {
	return func(h *Hub) {
		if n > 0 {
			h.buffer = n
		}
	}
}

func WithObserver(o Observer) Option {
	return func(h *Hub) {
		if o != nil {
			h.observer = o
		}
	}
}

func NewHub(opts ...Option) *Hub {
	h := &Hub{
		subs:     make(map[string]map[*Subscription]struct{}),
		buffer:   DefaultBuffer,
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Subscribe registers a listener on topic. On a closed hub the returned
// subscription's channel is already closed.
func (h *Hub) Subscribe(topic string) *Subscription {
	ch := make(chan Event, h.buffer)
	sub := &Subscription{C: ch, topic: topic, ch: ch, hub: h}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(ch)
		return sub
	}

	set, ok := h.subs[topic]
	if !ok {
		set = make(map[*Subscription]struct{})
		h.subs[topic] = set
	}
	set[sub] = struct{}{}
	h.observer.SubscriberAdded()
	return sub
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.subs[sub.topic]
	if !ok {
		return
	}
	if _, ok := set[sub]; !ok {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(h.subs, sub.topic)
	}
	close(sub.ch)
	h.observer.SubscriberRemoved()
}

// Publish delivers event to every subscriber of its topic without blocking.
// A subscriber whose buffer is full misses the event.
func (h *Hub) Publish(ctx context.Context, event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}

	for sub := range h.subs[event.Topic] {
		select {
		case sub.ch <- event:
		default:
			h.dropped++
			h.observer.EventDropped(event.Topic)
			logger.FromCtx(ctx).Warn("realtime subscriber lagging, event dropped",
				zap.String("topic", event.Topic),
				zap.String("type", string(event.Type)),
			)
		}
	}
}

// Subscribers returns the number of live subscriptions on topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[topic])
}

func (h *Hub) Dropped() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dropped
}

// Close detaches every subscriber. Further publishes are ignored.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for topic, set := range h.subs {
		for sub := range set {
			close(sub.ch)
			h.observer.SubscriberRemoved()
		}
		delete(h.subs, topic)
	}
}
