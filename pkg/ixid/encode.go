package ixid

import (
	"encoding/base64"
	"strings"

	"github.com/trackable-go/trackable/pkg/normalize"
)

// Separator joins fields in a payload.
const Separator = ";"

// Encode returns the token for t: the normalized payload, base64 encoded
// with the standard padded alphabet.
//
// Example:
//
//	ixid.Encode(ixid.Tracking{App: ixid.String("my-app")}) // base64("my-app;;;;;")
func Encode(t Tracking, opts ...Option) string {
	return base64.StdEncoding.EncodeToString([]byte(EncodePayload(t, opts...)))
}

// EncodePayload returns the plain text payload Encode would base64.
// Each schema field is followed by a separator, including the last.
func EncodePayload(t Tracking, opts ...Option) string {
	cfg := newConfig(opts)

	var b strings.Builder
	for _, f := range cfg.schema.Fields {
		b.WriteString(normalize.Optional(t.Get(f)))
		b.WriteString(Separator)
	}
	return b.String()
}
