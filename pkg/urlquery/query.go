package urlquery

import (
	"net/url"
	"strings"
)

// param is one key[=value] segment of a raw query.
type param struct {
	key string // unescaped, used for matching
	raw string // text as it appears in the query
}

// rawValue returns the text after the first '=' and whether there was one.
func (p param) rawValue() (string, bool) {
	_, v, ok := strings.Cut(p.raw, "=")
	return v, ok
}

// Query is an ordered, text-preserving view of a raw query string.
// The zero value is an empty query using QueryEscaping.
type Query struct {
	params []param
	cfg    *config
}

// Parse splits rawQuery (without the leading '?') on '&'. Empty segments
// are dropped; everything else keeps its original text.
func Parse(rawQuery string, opts ...Option) Query {
	q := Query{cfg: newConfig(opts)}
	for _, seg := range strings.Split(rawQuery, "&") {
		if seg == "" {
			continue
		}
		k, _, _ := strings.Cut(seg, "=")
		q.params = append(q.params, param{key: queryUnescape(k), raw: seg})
	}
	return q
}

func (q Query) settings() *config {
	if q.cfg == nil {
		return newConfig(nil)
	}
	return q.cfg
}

// Len returns the number of parameters.
func (q Query) Len() int {
	return len(q.params)
}

// Has reports whether name is present.
func (q Query) Has(name string) bool {
	_, ok := q.Get(name)
	return ok
}

// Get returns the first value for name. A key without a value (`name` or
// `name=`) is present with an empty value.
func (q Query) Get(name string) (string, bool) {
	for _, p := range q.params {
		if p.key != name {
			continue
		}
		v, _ := p.rawValue()
		return q.settings().unescape(v), true
	}
	return "", false
}

// Set returns a copy of q in which name has value. The first occurrence is
// replaced in place and later duplicates are dropped; if name is absent it is
// appended.
func (q Query) Set(name, value string) Query {
	cfg := q.settings()
	seg := param{
		key: name,
		raw: url.QueryEscape(name) + "=" + cfg.escape(value),
	}

	out := Query{cfg: cfg, params: make([]param, 0, len(q.params)+1)}
	replaced := false
	for _, p := range q.params {
		if p.key != name {
			out.params = append(out.params, p)
			continue
		}
		if !replaced {
			out.params = append(out.params, seg)
			replaced = true
		}
	}
	if !replaced {
		out.params = append(out.params, seg)
	}
	return out
}

// Del returns a copy of q with every occurrence of name removed.
func (q Query) Del(name string) Query {
	out := Query{cfg: q.settings(), params: make([]param, 0, len(q.params))}
	for _, p := range q.params {
		if p.key != name {
			out.params = append(out.params, p)
		}
	}
	return out
}

// Encode joins the parameters back into a raw query string.
func (q Query) Encode() string {
	segs := make([]string, len(q.params))
	for i, p := range q.params {
		segs[i] = p.raw
	}
	return strings.Join(segs, "&")
}
