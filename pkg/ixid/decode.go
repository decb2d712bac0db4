package ixid

import (
	"encoding/base64"
	"strings"
)

// Decode parses a token produced by Encode.
//
// An empty token decodes to an all-absent Tracking. A token that is not valid
// base64 returns a *DecodeError.
func Decode(token string, opts ...Option) (Tracking, error) {
	cfg := newConfig(opts)

	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return Tracking{}, &DecodeError{Token: token, Err: err}
	}

	return decodePayload(string(raw), cfg.schema), nil
}

// DecodePayload maps an already base64-decoded payload onto fields.
func DecodePayload(payload string, opts ...Option) Tracking {
	return decodePayload(payload, newConfig(opts).schema)
}

func decodePayload(payload string, schema Schema) Tracking {
	var t Tracking
	if payload == "" {
		return t
	}

	segments := strings.Split(payload, Separator)
	for i, f := range schema.Fields {
		v, ok := segmentAt(segments, i)
		switch {
		case i == 0:
			// app is always present in a non-empty payload
			t.Set(f, String(v))
		case ok && v != "":
			t.Set(f, String(v))
		}
	}
	return t
}

// segmentAt returns segments[i] and whether i is in range.
func segmentAt(segments []string, i int) (string, bool) {
	if i < 0 || i >= len(segments) {
		return "", false
	}
	return segments[i], true
}
