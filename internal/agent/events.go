package agent

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is one timestamped entry in the session log. T is seconds since
// the session started.
type Event struct {
	T       float64        `json:"t"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

type session struct {
	ID      string    `json:"id"`
	Started time.Time `json:"started"`
	Events  []Event   `json:"events"`
}

// Recorder collects per-tick events and writes them as one JSON session
// file. Safe for use from the loop goroutine plus movement tasks.
type Recorder struct {
	mu    sync.Mutex
	path  string
	start time.Time
	data  session
}

// NewRecorder creates the session directory and a uniquely named session
// file path.
func NewRecorder(dir string) (*Recorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating session dir: %w", err)
	}
	now := time.Now()
	id := uuid.NewString()
	name := fmt.Sprintf("session_%s_%s.json", now.Format("20060102_150405"), id[:8])
	return &Recorder{
		path:  filepath.Join(dir, name),
		start: now,
		data: session{
			ID:      id,
			Started: now,
		},
	}, nil
}

// Path returns the session file location.
func (r *Recorder) Path() string {
	return r.path
}

// Emit appends one event stamped with the session-relative time.
func (r *Recorder) Emit(evType string, payload map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data.Events = append(r.data.Events, Event{
		T:       time.Since(r.start).Seconds(),
		Type:    evType,
		Payload: payload,
	})
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data.Events)
}

// Flush writes the whole session to disk.
func (r *Recorder) Flush() error {
	r.mu.Lock()
	b, err := json.MarshalIndent(r.data, "", "  ")
	r.mu.Unlock()
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(r.path, b, 0o644); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}
