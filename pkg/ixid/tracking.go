package ixid

import "github.com/trackable-go/trackable/pkg/normalize"

// Tracking is the attribution carried by a token. A nil field is absent,
// which is distinct from a present empty string.
type Tracking struct {
	App      *string `json:"app,omitempty"`
	Page     *string `json:"page,omitempty"`
	Label    *string `json:"label,omitempty"`
	Property *string `json:"property,omitempty"`
	UserID   *string `json:"userId,omitempty"`
}

// String returns a pointer to s, for building Tracking literals.
func String(s string) *string {
	return &s
}

// Get returns the value of f, or nil for an absent or unknown field.
func (t Tracking) Get(f Field) *string {
	switch f {
	case App:
		return t.App
	case Page:
		return t.Page
	case Label:
		return t.Label
	case Property:
		return t.Property
	case UserID:
		return t.UserID
	}
	return nil
}

// Set assigns v to f. Unknown fields are ignored.
func (t *Tracking) Set(f Field, v *string) {
	switch f {
	case App:
		t.App = v
	case Page:
		t.Page = v
	case Label:
		t.Label = v
	case Property:
		t.Property = v
	case UserID:
		t.UserID = v
	}
}

// IsZero reports whether every field is absent.
func (t Tracking) IsZero() bool {
	return t.App == nil && t.Page == nil && t.Label == nil && t.Property == nil && t.UserID == nil
}

// Normalized returns a copy with every present field normalized. Absent
// fields stay absent.
func (t Tracking) Normalized() Tracking {
	var out Tracking
	for _, f := range SchemaV2.Fields {
		if v := t.Get(f); v != nil {
			out.Set(f, String(normalize.Value(*v)))
		}
	}
	return out
}

// Map returns the present fields keyed by field name.
func (t Tracking) Map() map[string]string {
	m := make(map[string]string)
	for _, f := range SchemaV2.Fields {
		if v := t.Get(f); v != nil {
			m[string(f)] = *v
		}
	}
	return m
}
