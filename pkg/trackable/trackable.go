// Package trackable tags image URLs with analytics attribution and reads it
// back.
//
// Attribution travels in the single reserved query parameter `ixid`, whose
// value is an ixid token. Every other part of the URL is left untouched:
//
//	u, _ := trackable.Track("https://img.example/photo?w=200", ixid.Tracking{
//		App:   ixid.String("My App"),
//		Label: ixid.String("New York"),
//	})
//	// https://img.example/photo?w=200&ixid=bXktYXBwOztuZXcteW9yazs7Ow==
//
//	r, _ := trackable.Decode(u)
//	// r.URL == "https://img.example/photo?w=200", *r.Tracking.App == "my-app"
package trackable

import (
	"io"
	"log/slog"

	"github.com/trackable-go/trackable/pkg/ixid"
	"github.com/trackable-go/trackable/pkg/urlquery"
)

// Param is the reserved query parameter. The image service reads it by this
// exact name.
const Param = "ixid"

// Result is a URL with its tracking parameter split off.
type Result struct {
	URL      string        `json:"url"`
	Tracking ixid.Tracking `json:"tracking"`
	Found    bool          `json:"found"`
}

// Tracker adds and extracts tracking tokens. It holds only immutable
// configuration and is safe for concurrent use.
type Tracker struct {
	schema ixid.Schema
	log    *slog.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithSchema sets the token field layout.
func WithSchema(s ixid.Schema) Option {
	return func(t *Tracker) {
		t.schema = s
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		t.log = logger
	}
}

// New creates a Tracker using ixid.DefaultSchema unless configured otherwise.
func New(opts ...Option) *Tracker {
	t := &Tracker{
		schema: ixid.DefaultSchema,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Schema returns the field layout in use.
func (t *Tracker) Schema() ixid.Schema {
	return t.schema
}

// Track returns rawURL with the ixid parameter set to the token for tr,
// replacing any previous value. It fails only if rawURL does not parse.
func (t *Tracker) Track(rawURL string, tr ixid.Tracking) (string, error) {
	token := ixid.Encode(tr, ixid.WithSchema(t.schema))
	out, err := urlquery.Set(rawURL, Param, token, urlquery.Verbatim())
	if err != nil {
		return "", err
	}
	t.log.Debug("tracked url", "url", out, "schema", t.schema.Version)
	return out, nil
}

// Decode splits the tracking parameter off rawURL. Without one, the URL is
// returned unchanged with every field absent. A token that is not valid
// base64 returns a *ixid.DecodeError.
func (t *Tracker) Decode(rawURL string) (Result, error) {
	token, ok, err := urlquery.Find(rawURL, Param, urlquery.Verbatim())
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{URL: rawURL}, nil
	}

	tr, err := ixid.Decode(token, ixid.WithSchema(t.schema))
	if err != nil {
		t.log.Debug("invalid tracking token", "url", rawURL, "error", err)
		return Result{}, err
	}

	clean, err := urlquery.Remove(rawURL, Param, urlquery.Verbatim())
	if err != nil {
		return Result{}, err
	}
	return Result{URL: clean, Tracking: tr, Found: true}, nil
}

var defaultTracker = New()

// Track tags rawURL using the default Tracker.
func Track(rawURL string, tr ixid.Tracking) (string, error) {
	return defaultTracker.Track(rawURL, tr)
}

// Decode reads rawURL using the default Tracker.
func Decode(rawURL string) (Result, error) {
	return defaultTracker.Decode(rawURL)
}
