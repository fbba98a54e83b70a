package transport

import (
	"fmt"
	"net/http"
	"time"

	"rz-parfum-be/internal/logger"
	"rz-parfum-be/internal/realtime"
	"rz-parfum-be/internal/utils"

	"go.uber.org/zap"
)

const heartbeatInterval = 25 * time.Second

// stream relays the topic's events as server-sent events until the client
// goes away or the hub closes. keep filters events; nil keeps all.
func (h *Handler) stream(w http.ResponseWriter, r *http.Request, topic string, keep func(realtime.Event) bool) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.WriteJSONError(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	sub := h.Hub.Subscribe(topic)
	defer sub.Unsubscribe()

	log := logger.FromCtx(r.Context()).With(
		zap.String("layer", "handler"),
		zap.String("topic", topic),
	)
	log.Debug("stream opened")

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Debug("stream closed by client")
			return
		case <-ticker.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case ev, ok := <-sub.C:
			if !ok {
				return
			}
			if keep != nil && !keep(ev) {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, ev.Payload)
			flusher.Flush()
		}
	}
}

func (h *Handler) StreamReviews(w http.ResponseWriter, r *http.Request) {
	p, err := h.lookup(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.stream(w, r, realtime.ReviewsTopic(p.ID), func(ev realtime.Event) bool {
		return ev.Type == realtime.EventInsert
	})
}

func (h *Handler) StreamOrders(w http.ResponseWriter, r *http.Request) {
	h.stream(w, r, realtime.TopicOrders, nil)
}
