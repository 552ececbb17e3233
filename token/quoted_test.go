package token

import (
	"testing"
)

func TestUnquoteSingle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`''`, ""},
		{`'a'`, "a"},
		{`'it''s'`, "it's"},
		{"'a\nb'", "a b"},
		{"'a\n\nb'", "a\nb"},
		{"'a\n  b'", "a b"},
	}
	for _, tt := range tests {
		got, err := UnquoteSingle([]byte(tt.in))
		if err != nil {
			t.Errorf("UnquoteSingle(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("UnquoteSingle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnquoteDouble(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`""`, ""},
		{`"a"`, "a"},
		{`"a\nb"`, "a\nb"},
		{`"a\tb"`, "a\tb"},
		{`"q\""`, `q"`},
		{`"\x41"`, "A"},
		{`"é"`, "é"},
		{`"\U0001F600"`, "😀"},
		{`" "`, " "},
		{"\"a\nb\"", "a b"},
		{"\"a\\\n  b\"", "ab"},
	}
	for _, tt := range tests {
		got, err := UnquoteDouble([]byte(tt.in))
		if err != nil {
			t.Errorf("UnquoteDouble(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("UnquoteDouble(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnquoteDoubleBad(t *testing.T) {
	for _, in := range []string{`"\q"`, `"\x4"`, `"\u12"`} {
		if _, err := UnquoteDouble([]byte(in)); err == nil {
			t.Errorf("UnquoteDouble(%q): expected error", in)
		}
	}
}

func TestEscapeDouble(t *testing.T) {
	tests := []struct {
		in     string
		asJSON bool
		want   string
	}{
		{"a", false, `"a"`},
		{"a\nb", false, `"a\nb"`},
		{"q\"", false, `"q\""`},
		{"\x07", false, `"\a"`},
		{"\x07", true, `"\u0007"`},
		{" ", false, `"\L"`},
	}
	for _, tt := range tests {
		if got := EscapeDouble(tt.in, tt.asJSON); got != tt.want {
			t.Errorf("EscapeDouble(%q, %v) = %q, want %q", tt.in, tt.asJSON, got, tt.want)
		}
	}
}

func TestHasControl(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"plain", false},
		{"tab\tand\nnewline", false},
		{"bell\x07", true},
		{"\x80", true},
	}
	for _, tt := range tests {
		if got := HasControl(tt.in); got != tt.want {
			t.Errorf("HasControl(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
