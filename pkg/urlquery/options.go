package urlquery

import "net/url"

// config holds value encoding configuration.
type config struct {
	escape   func(string) string
	unescape func(string) string
}

// Option configures how parameter values are written and read.
type Option func(*config)

func newConfig(opts []Option) *config {
	cfg := &config{}
	QueryEscaping()(cfg)
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// QueryEscaping percent-encodes values on write and decodes them on read,
// including '+' as space.
//
// This is the default.
func QueryEscaping() Option {
	return func(c *config) {
		c.escape = url.QueryEscape
		c.unescape = queryUnescape
	}
}

// Verbatim writes values exactly as given. On read, %XX escapes are decoded
// but '+' is kept, so a value written verbatim reads back unchanged.
func Verbatim() Option {
	return func(c *config) {
		c.escape = identity
		c.unescape = pathUnescape
	}
}

func identity(s string) string {
	return s
}

// queryUnescape falls back to the raw text on an invalid escape.
func queryUnescape(s string) string {
	if v, err := url.QueryUnescape(s); err == nil {
		return v
	}
	return s
}

// pathUnescape falls back to the raw text on an invalid escape.
func pathUnescape(s string) string {
	if v, err := url.PathUnescape(s); err == nil {
		return v
	}
	return s
}
