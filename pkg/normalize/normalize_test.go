package normalize

import (
	"strings"
	"testing"
	"testing/quick"
)

func TestValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "only whitespace", input: " \t\n ", want: ""},
		{name: "already normalized", input: "my-app", want: "my-app"},
		{name: "space to dash", input: "my app", want: "my-app"},
		{name: "lowercase", input: "MY App", want: "my-app"},
		{name: "trim", input: "  new york  ", want: "new-york"},
		{name: "underscores", input: "new_york", want: "new-york"},
		{name: "mixed separator run", input: "new _- \tyork", want: "new-york"},
		{name: "repeated dashes", input: "a---b", want: "a-b"},
		{name: "edge underscores survive as dash", input: "_a_", want: "-a-"},
		{name: "digits untouched", input: "5", want: "5"},
		{name: "unicode whitespace", input: "café crème", want: "café-crème"},
		{name: "unicode lowercase", input: "ÉTÉ", want: "été"},
		{name: "semicolon kept", input: "a;b", want: "a;b"},
		{name: "no-break space", input: "new\u00a0york", want: "new-york"},
		{name: "vertical tab", input: "new\vyork", want: "new-york"},
		{name: "byte order marks trimmed", input: "\uFEFFNew York\uFEFF", want: "new-york"},
		{name: "inner byte order mark", input: "new\uFEFFyork", want: "new-york"},
		{name: "only byte order mark", input: "\uFEFF", want: ""},
		{name: "line separator trimmed", input: "\u2028app\u2029", want: "app"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Value(tt.input)
			if got != tt.want {
				t.Errorf("Value(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestOptional(t *testing.T) {
	if got := Optional(nil); got != "" {
		t.Errorf("Optional(nil) = %q, want empty", got)
	}

	s := " Dog "
	if got := Optional(&s); got != "dog" {
		t.Errorf("Optional(%q) = %q, want %q", s, got, "dog")
	}
}

// Property: Value(Value(s)) == Value(s)
func TestProperty_Idempotent(t *testing.T) {
	property := func(s string) bool {
		once := Value(s)
		return Value(once) == once
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// Property: output never carries underscores or doubled hyphens.
func TestProperty_NoSeparatorRuns(t *testing.T) {
	property := func(s string) bool {
		got := Value(s)
		return !strings.Contains(got, "_") && !strings.Contains(got, "--")
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}
