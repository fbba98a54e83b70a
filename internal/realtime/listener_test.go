package realtime

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	ch        chan *pq.Notification
	listened  []string
	listenErr error
	closed    bool
}

func newFakeSource() *fakeSource {
	return &fakeSource{ch: make(chan *pq.Notification, 8)}
}

func (f *fakeSource) Listen(channel string) error {
	if f.listenErr != nil {
		return f.listenErr
	}
	f.listened = append(f.listened, channel)
	return nil
}

func (f *fakeSource) NotificationChannel() <-chan *pq.Notification { return f.ch }
func (f *fakeSource) Ping() error                                  { return nil }
func (f *fakeSource) Close() error                                 { f.closed = true; return nil }

func TestDecodeNotification(t *testing.T) {
	tests := []struct {
		name      string
		n         *pq.Notification
		wantTopic string
		wantType  EventType
		wantErr   error
	}{
		{
			name:      "OrderUpdate",
			n:         &pq.Notification{Channel: ChannelOrders, Extra: `{"op":"UPDATE","record":{"id":"a","status":"shipped"}}`},
			wantTopic: TopicOrders,
			wantType:  EventUpdate,
		},
		{
			name:      "ReviewInsert",
			n:         &pq.Notification{Channel: ChannelReviews, Extra: `{"op":"INSERT","record":{"product_id":"7","rating":4}}`},
			wantTopic: "reviews:7",
			wantType:  EventInsert,
		},
		{
			name:    "ReviewWithoutProduct",
			n:       &pq.Notification{Channel: ChannelReviews, Extra: `{"op":"INSERT","record":{"rating":4}}`},
			wantErr: ErrBadPayload,
		},
		{
			name:    "BadJSON",
			n:       &pq.Notification{Channel: ChannelOrders, Extra: `nope`},
			wantErr: ErrBadPayload,
		},
		{
			name:    "UnknownOp",
			n:       &pq.Notification{Channel: ChannelOrders, Extra: `{"op":"TRUNCATE","record":{}}`},
			wantErr: ErrBadPayload,
		},
		{
			name:    "UnknownChannel",
			n:       &pq.Notification{Channel: "other", Extra: `{"op":"INSERT","record":{}}`},
			wantErr: ErrUnknownChannel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := decodeNotification(tt.n)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTopic, ev.Topic)
			assert.Equal(t, tt.wantType, ev.Type)
			assert.NotEmpty(t, ev.Payload)
		})
	}
}

func TestPGListener_Run(t *testing.T) {
	hub := NewHub()
	defer hub.Close()
	sub := hub.Subscribe(TopicOrders)

	src := newFakeSource()
	l := newPGListener(src, hub)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	src.ch <- nil
	src.ch <- &pq.Notification{Channel: ChannelOrders, Extra: `garbage`}
	src.ch <- &pq.Notification{Channel: ChannelOrders, Extra: `{"op":"INSERT","record":{"id":"x"}}`}

	ev := recv(t, sub)
	assert.Equal(t, EventInsert, ev.Type)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("listener did not stop")
	}
	assert.True(t, src.closed)
	assert.Equal(t, []string{ChannelOrders, ChannelReviews}, src.listened)
}

func TestPGListener_ListenError(t *testing.T) {
	src := newFakeSource()
	src.listenErr = errors.New("connection refused")

	err := newPGListener(src, NewHub()).Run(context.Background())
	assert.ErrorContains(t, err, "listen orders_changes")
	assert.True(t, src.closed)
}
