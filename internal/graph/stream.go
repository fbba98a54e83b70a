package graph

import (
	"context"

	"rz-parfum-be/internal/logger"
	"rz-parfum-be/internal/realtime"

	"go.uber.org/zap"
)

// relay forwards the topic's events through convert until ctx is done or
// the hub closes. Events convert rejects are skipped.
func relay[T any](ctx context.Context, hub *realtime.Hub, topic string, convert func(realtime.Event) (T, bool)) <-chan T {
	sub := hub.Subscribe(topic)
	out := make(chan T)

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "graph"),
		zap.String("topic", topic),
	)
	log.Debug("subscription opened")

	go func() {
		defer close(out)
		defer sub.Unsubscribe()

		for {
			select {
			case <-ctx.Done():
				log.Debug("subscription closed")
				return
			case ev, ok := <-sub.C:
				if !ok {
					return
				}
				v, keep := convert(ev)
				if !keep {
					continue
				}
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// untyped widens a typed event channel for the executor.
func untyped[T any](ctx context.Context, in <-chan T) <-chan any {
	out := make(chan any)
	go func() {
		defer close(out)
		for v := range in {
			select {
			case out <- v:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
