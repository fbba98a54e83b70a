// Package realtime fans out change notifications to in-process subscribers.
package realtime

import (
	"encoding/json"
	"fmt"
	"time"
)

type EventType string

const (
	EventInsert EventType = "insert"
	EventUpdate EventType = "update"
	EventDelete EventType = "delete"
)

const (
	TopicOrders       = "orders"
	topicReviewPrefix = "reviews:"
)

// ReviewsTopic is the topic carrying review changes of one product.
func ReviewsTopic(productID string) string {
	return topicReviewPrefix + productID
}

type Event struct {
	Topic   string          `json:"topic"`
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
	At      time.Time       `json:"at"`
}

// NewEvent encodes v as the event payload.
func NewEvent(topic string, typ EventType, v any) (Event, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return Event{}, fmt.Errorf("encode %s payload: %w", topic, err)
	}
	return Event{Topic: topic, Type: typ, Payload: payload, At: time.Now().UTC()}, nil
}
