package server

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// SSE event names for streamed batch analysis
const (
	eventResult   = "result"
	eventError    = "error"
	eventComplete = "complete"
)

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\n", event); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteError sends an error event for one file
func (s *SSEWriter) WriteError(file, message string) error {
	return s.WriteEvent(eventError, map[string]string{"file": file, "error": message})
}

// WriteComplete sends the completion event
func (s *SSEWriter) WriteComplete(total, failed int) error {
	return s.WriteEvent(eventComplete, map[string]int{"total": total, "failed": failed})
}
