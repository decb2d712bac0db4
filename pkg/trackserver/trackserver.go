// Package trackserver exposes tracking over HTTP: tagging and decoding URLs,
// and collecting events for tracked image loads.
package trackserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/trackable-go/trackable/pkg/collector"
	"github.com/trackable-go/trackable/pkg/ixid"
	"github.com/trackable-go/trackable/pkg/trackable"
)

// RequestBodySizeLimit is the maximum /events request body size.
const RequestBodySizeLimit = 8192

// Config wires a server.
type Config struct {
	Tracker     *trackable.Tracker    // Defaults to trackable.New()
	Logger      *slog.Logger          // Defaults to slog.Default()
	EventLogger collector.EventLogger // Receives every event; may be nil
	Tally       *collector.Tally      // Backs /stats; defaults to a fresh Tally
	Timeout     time.Duration         // Per-request timeout (default 60s)
	Now         func() time.Time      // Clock for event timestamps
	NewID       func() string         // Event ids (default uuid.NewString)
}

type server struct {
	tracker *trackable.Tracker
	log     *slog.Logger
	events  collector.EventLogger
	tally   *collector.Tally
	now     func() time.Time
	newID   func() string
	valid   *validator.Validate
}

// New returns the HTTP handler:
//
//	GET  /track?url=…&app=…   tag a URL
//	GET  /decode?url=…        split tracking off a URL
//	POST /events              record a tracked URL load
//	GET  /stats               aggregated counts
//	GET  /healthz             liveness
func New(cfg Config) http.Handler {
	s := &server{
		tracker: cfg.Tracker,
		log:     cfg.Logger,
		tally:   cfg.Tally,
		now:     cfg.Now,
		newID:   cfg.NewID,
		valid:   validator.New(validator.WithRequiredStructEnabled()),
	}
	if s.tracker == nil {
		s.tracker = trackable.New()
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.tally == nil {
		s.tally = collector.NewTally()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if cfg.EventLogger == nil {
		s.events = s.tally
	} else {
		s.events = collector.NewMultiEventLogger(cfg.EventLogger, s.tally)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	r.Get("/track", s.track)
	r.Get("/decode", s.decode)
	r.Post("/events", s.collect)
	r.Get("/stats", s.stats)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	return r
}

// TrackResponse is the body of /track.
type TrackResponse struct {
	URL string `json:"url"`
}

// EventRequest is the body of /events.
type EventRequest struct {
	URL      string `json:"url" validate:"required,url,max=4096"`
	Referrer string `json:"referrer,omitempty" validate:"omitempty,url,max=4096"`
}

// EventResponse is the body of a successful /events call.
type EventResponse struct {
	Tracked  bool          `json:"tracked"`
	Tracking ixid.Tracking `json:"tracking"`
}

func (s *server) track(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rawURL := q.Get("url")
	if rawURL == "" {
		writeError(w, http.StatusBadRequest, "missing url parameter")
		return
	}

	var tr ixid.Tracking
	for _, f := range s.tracker.Schema().Fields {
		if q.Has(string(f)) {
			tr.Set(f, ixid.String(q.Get(string(f))))
		}
	}

	out, err := s.tracker.Track(rawURL, tr)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid url: %s", err))
		return
	}
	writeJSON(w, http.StatusOK, TrackResponse{URL: out})
}

func (s *server) decode(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		writeError(w, http.StatusBadRequest, "missing url parameter")
		return
	}

	res, err := s.tracker.Decode(rawURL)
	if err != nil {
		writeDecodeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) collect(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, RequestBodySizeLimit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unable to read body: %s", err))
		return
	}

	var req EventRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unable to parse body: %s", err))
		return
	}
	if err := s.valid.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	res, err := s.tracker.Decode(req.URL)
	if err != nil {
		var decodeErr *ixid.DecodeError
		if errors.As(err, &decodeErr) {
			s.tally.AddInvalid()
		}
		s.log.Debug("rejected event", "url", req.URL, "error", err)
		writeDecodeError(w, err)
		return
	}

	event := &collector.Event{
		ID:         s.newID(),
		Timestamp:  s.now(),
		URL:        res.URL,
		Tracked:    res.Found,
		Tracking:   res.Tracking,
		Referrer:   req.Referrer,
		UserAgent:  r.UserAgent(),
		RemoteAddr: r.RemoteAddr,
	}
	if err := s.events.LogEvent(r.Context(), event); err != nil {
		// events are best-effort; the client still gets its answer
		s.log.Warn("failed to log event", "error", err)
	}

	writeJSON(w, http.StatusAccepted, EventResponse{Tracked: res.Found, Tracking: res.Tracking})
}

func (s *server) stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tally.Snapshot())
}

// validationMessage turns validator errors into one line per failed field.
func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "url":
			msgs = append(msgs, fmt.Sprintf("%s must be an absolute URL", fe.Field()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fe.Error())
		}
	}
	return strings.Join(msgs, "; ")
}

func writeDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ixid.ErrInvalidToken) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid url: %s", err))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	w.Write([]byte(msg))
}
