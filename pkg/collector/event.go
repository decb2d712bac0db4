// Package collector records decoded tracking events for analytics.
//
// An Event is one observed tracked URL. EventLoggers consume events: to slog,
// to S3 as JSONL, or into an in-memory Tally that aggregates counts per field
// value.
package collector

import (
	"context"
	"encoding/json"
	"time"

	"github.com/trackable-go/trackable/pkg/ixid"
)

// Event is one observation of a tracked (or untracked) URL.
type Event struct {
	ID         string // unique per event; empty when the source has none
	Timestamp  time.Time
	URL        string // URL with the tracking parameter removed
	Tracked    bool   // whether the URL carried a tracking parameter
	Tracking   ixid.Tracking
	Referrer   string
	UserAgent  string
	RemoteAddr string
}

// EventLogger consumes tracking events.
type EventLogger interface {
	LogEvent(ctx context.Context, event *Event) error
}

// eventForJSON is the JSONL representation of an Event.
type eventForJSON struct {
	ID         string        `json:"id,omitempty"`
	Timestamp  time.Time     `json:"timestamp"`
	URL        string        `json:"url"`
	Tracked    bool          `json:"tracked"`
	Tracking   ixid.Tracking `json:"tracking"`
	Referrer   string        `json:"referrer,omitempty"`
	UserAgent  string        `json:"user_agent,omitempty"`
	RemoteAddr string        `json:"remote_addr,omitempty"`
}

func (e *Event) toJSON() ([]byte, error) {
	return json.Marshal(eventForJSON{
		ID:         e.ID,
		Timestamp:  e.Timestamp,
		URL:        e.URL,
		Tracked:    e.Tracked,
		Tracking:   e.Tracking,
		Referrer:   e.Referrer,
		UserAgent:  e.UserAgent,
		RemoteAddr: e.RemoteAddr,
	})
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
