package design

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// StreamEvents handles GET /api/events as a server-sent event stream of
// generation progress.
func (h Handler) StreamEvents(w http.ResponseWriter, r *http.Request) {
	if h.Events == nil {
		http.Error(w, "event stream inactive", http.StatusServiceUnavailable)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	// The server write timeout is sized for renders, not for open streams.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := h.Events.Subscribe()
	defer h.Events.Unsubscribe(ch)

	for {
		select {
		case <-r.Context().Done():
			return
		case evt, open := <-ch:
			if !open {
				return
			}
			payload, err := json.Marshal(evt)
			if err != nil {
				log.Printf("events: marshal %s: %v", evt.ID, err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", evt.Stage, payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
