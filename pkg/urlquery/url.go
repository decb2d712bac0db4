package urlquery

import (
	"net/url"
	"strings"
)

// parts is a URL split around its query without any re-encoding.
type parts struct {
	base     string // everything before '?'
	query    string // raw query, without '?'
	fragment string // '#' and everything after it, or ""
}

func (p parts) String() string {
	if p.query == "" {
		return p.base + p.fragment
	}
	return p.base + "?" + p.query + p.fragment
}

// split validates rawURL with url.Parse and cuts it textually so that scheme,
// host, path and fragment are carried over exactly.
func split(rawURL string) (parts, error) {
	if _, err := url.Parse(rawURL); err != nil {
		return parts{}, err
	}

	var p parts
	rest := rawURL
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		rest, p.fragment = rest[:i], rest[i:]
	}
	p.base, p.query, _ = strings.Cut(rest, "?")
	return p, nil
}

// Rewrite parses the query of rawURL, applies fn, and reassembles the URL.
// Errors from url.Parse are returned unchanged.
func Rewrite(rawURL string, fn func(Query) Query, opts ...Option) (string, error) {
	p, err := split(rawURL)
	if err != nil {
		return "", err
	}

	p.query = fn(Parse(p.query, opts...)).Encode()
	return p.String(), nil
}

// Find returns the value of name in rawURL's query.
func Find(rawURL, name string, opts ...Option) (string, bool, error) {
	p, err := split(rawURL)
	if err != nil {
		return "", false, err
	}

	v, ok := Parse(p.query, opts...).Get(name)
	return v, ok, nil
}

// Set returns rawURL with name set to value, added if absent.
func Set(rawURL, name, value string, opts ...Option) (string, error) {
	return Rewrite(rawURL, func(q Query) Query {
		return q.Set(name, value)
	}, opts...)
}

// Remove returns rawURL without name. When name is absent rawURL is
// returned as is.
func Remove(rawURL, name string, opts ...Option) (string, error) {
	p, err := split(rawURL)
	if err != nil {
		return "", err
	}

	q := Parse(p.query, opts...)
	if !q.Has(name) {
		return rawURL, nil
	}
	p.query = q.Del(name).Encode()
	return p.String(), nil
}
