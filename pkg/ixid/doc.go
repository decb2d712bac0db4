// Package ixid implements encoding and decoding of tracking tokens.
//
// A tracking token is the value of the reserved `ixid` query parameter. It
// carries a fixed, positional list of normalized attribution fields:
//
//	base64("<app>;<page>;<label>;<property>;<userId>;")
//
// Every field is normalized (see package normalize) before it is joined, and
// a trailing separator is always written so that trailing empty fields still
// decode to the right position.
//
// # Examples
//
// Payloads before base64:
//
//	"my-app;search;dog;5;;"  // app, page, label, property set; userId absent
//	"my-app;;;;;"            // only app set
//
// # Basic Usage
//
// Encoding:
//
//	token := ixid.Encode(ixid.Tracking{
//		App:   ixid.String("My App"),
//		Label: ixid.String("New York"),
//	})
//
// Decoding:
//
//	t, err := ixid.Decode(token)
//	// *t.App == "my-app", *t.Label == "new-york", t.Page == nil
//
// # Schemas
//
// The field order is part of the wire contract. It is described by a
// versioned Schema; SchemaV2 is the default and adds userId to the historical
// 4-field SchemaV1. New fields are only ever appended, so a V2 decoder reads
// V1 tokens with userId absent.
//
// # Absence
//
// Decoding maps a missing or empty segment to nil for every field except the
// first (app), which is present whenever the payload is non-empty. An empty
// token decodes to an all-absent Tracking. Only malformed base64 is an error.
//
// # Separators in values
//
// The payload has no escaping. A value containing ';' is written as is and
// spills into the following positions on decode: label "x;y" comes back as
// label "x" and property "y". Callers that need ';' in a value must replace
// it before encoding.
package ixid
