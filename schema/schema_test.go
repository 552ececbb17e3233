package schema

import (
	"math"
	"math/big"
	"regexp"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func mustSchema(t *testing.T, name string) *Schema {
	t.Helper()
	s, err := New(name)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestResolveScalarCore(t *testing.T) {
	s := mustSchema(t, Core)
	tests := []struct {
		src  string
		want any
		tag  string
	}{
		{"", nil, TagNull},
		{"~", nil, TagNull},
		{"null", nil, TagNull},
		{"true", true, TagBool},
		{"FALSE", false, TagBool},
		{"42", int64(42), TagInt},
		{"-7", int64(-7), TagInt},
		{"0x2a", int64(42), TagInt},
		{"0o52", int64(42), TagInt},
		{"3.5", 3.5, TagFloat},
		{"1e3", 1000.0, TagFloat},
		{".inf", math.Inf(1), TagFloat},
		{"-.inf", math.Inf(-1), TagFloat},
		{"yes", "yes", TagStr},
		{"on", "on", TagStr},
		{"012", int64(12), TagInt},
		{"hello", "hello", TagStr},
	}
	for _, tt := range tests {
		v, tag, err := s.ResolveScalar(tt.src)
		if err != nil {
			t.Errorf("ResolveScalar(%q): %v", tt.src, err)
			continue
		}
		if tag != tt.tag {
			t.Errorf("ResolveScalar(%q) tag = %s, want %s", tt.src, tag, tt.tag)
		}
		if d := cmp.Diff(tt.want, v); d != "" {
			t.Errorf("ResolveScalar(%q) value mismatch (-want +got):\n%s", tt.src, d)
		}
	}
}

func TestResolveScalarNaN(t *testing.T) {
	s := mustSchema(t, Core)
	v, tag, err := s.ResolveScalar(".nan")
	if err != nil || tag != TagFloat {
		t.Fatalf("ResolveScalar(.nan) tag = %s, err = %v", tag, err)
	}
	if f, ok := v.(float64); !ok || !math.IsNaN(f) {
		t.Errorf("ResolveScalar(.nan) = %v, want NaN", v)
	}
}

func TestResolveScalarYAML11(t *testing.T) {
	s := mustSchema(t, YAML11)
	tests := []struct {
		src  string
		want any
		tag  string
	}{
		{"y", true, TagBool},
		{"Y", true, TagBool},
		{"n", false, TagBool},
		{"no", false, TagBool},
		{"on", true, TagBool},
		{"off", false, TagBool},
		{"yes", true, TagBool},
		{"052", int64(42), TagInt},
		{"0x2A", int64(42), TagInt},
		{"0b101", int64(5), TagInt},
		{"1_000", int64(1000), TagInt},
		{"190:20:30", int64(685230), TagInt},
		{"6.8523015e+5", 685230.15, TagFloat},
		{"<<", "<<", TagMerge},
	}
	for _, tt := range tests {
		v, tag, err := s.ResolveScalar(tt.src)
		if err != nil {
			t.Errorf("ResolveScalar(%q): %v", tt.src, err)
			continue
		}
		if tag != tt.tag {
			t.Errorf("ResolveScalar(%q) tag = %s, want %s", tt.src, tag, tt.tag)
		}
		if d := cmp.Diff(tt.want, v); d != "" {
			t.Errorf("ResolveScalar(%q) value mismatch (-want +got):\n%s", tt.src, d)
		}
	}
}

func TestResolveTimestamp(t *testing.T) {
	s := mustSchema(t, YAML11)
	tests := []struct {
		src  string
		want time.Time
	}{
		{"2001-12-15", time.Date(2001, 12, 15, 0, 0, 0, 0, time.UTC)},
		{"2001-12-15T02:59:43.1Z", time.Date(2001, 12, 15, 2, 59, 43, 100000000, time.UTC)},
		{"2001-12-14 21:59:43.10 -5", time.Date(2001, 12, 14, 21, 59, 43, 100000000, time.FixedZone("", -5*3600))},
	}
	for _, tt := range tests {
		v, tag, err := s.ResolveScalar(tt.src)
		if err != nil || tag != TagTimestamp {
			t.Errorf("ResolveScalar(%q) tag = %s, err = %v", tt.src, tag, err)
			continue
		}
		got, ok := v.(time.Time)
		if !ok || !got.Equal(tt.want) {
			t.Errorf("ResolveScalar(%q) = %v, want %v", tt.src, v, tt.want)
		}
	}
}

func TestResolveBigInt(t *testing.T) {
	s := mustSchema(t, Core)
	v, tag, err := s.ResolveScalar("123456789012345678901234567890")
	if err != nil || tag != TagInt {
		t.Fatalf("tag = %s, err = %v", tag, err)
	}
	b, ok := v.(*big.Int)
	if !ok {
		t.Fatalf("value = %T, want *big.Int", v)
	}
	if b.String() != "123456789012345678901234567890" {
		t.Errorf("value = %s", b)
	}
}

func TestResolveScalarJSON(t *testing.T) {
	s := mustSchema(t, JSON)
	for _, src := range []string{"~", "Yes", "TRUE", "0x2a", "Null"} {
		_, tag, _ := s.ResolveScalar(src)
		if tag != TagStr {
			t.Errorf("json schema resolved %q as %s, want string", src, tag)
		}
	}
	v, tag, _ := s.ResolveScalar("-12")
	if tag != TagInt || v != int64(-12) {
		t.Errorf("json schema: -12 = %v (%s)", v, tag)
	}
}

func TestFailsafeStringsOnly(t *testing.T) {
	s := mustSchema(t, Failsafe)
	for _, src := range []string{"true", "42", "null", "~"} {
		v, tag, _ := s.ResolveScalar(src)
		if tag != TagStr || v != src {
			t.Errorf("failsafe resolved %q to %v (%s)", src, v, tag)
		}
	}
}

func TestFormatInt(t *testing.T) {
	tests := []struct {
		v       any
		format  string
		version string
		want    string
	}{
		{int64(42), "", "1.2", "42"},
		{int64(42), "HEX", "1.2", "0x2a"},
		{int64(42), "OCT", "1.2", "0o52"},
		{int64(42), "OCT", "1.1", "052"},
		{int64(-42), "HEX", "1.2", "-42"},
		{int64(-42), "HEX", "1.1", "-0x2a"},
		{int64(-42), "OCT", "1.1", "-052"},
		{big.NewInt(255), "HEX", "1.2", "0xff"},
	}
	for _, tt := range tests {
		ctx := &StringifyCtx{Format: tt.format, Version: tt.version}
		if got := FormatInt(tt.v, ctx); got != tt.want {
			t.Errorf("FormatInt(%v, %s, %s) = %q, want %q",
				tt.v, tt.format, tt.version, got, tt.want)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		f    float64
		min  int
		want string
	}{
		{3.0, 0, "3.0"},
		{3.5, 0, "3.5"},
		{3.5, 3, "3.500"},
		{math.Inf(1), 0, ".inf"},
		{math.Inf(-1), 0, "-.inf"},
		{math.NaN(), 0, ".nan"},
	}
	for _, tt := range tests {
		if got := FormatFloat(tt.f, tt.min); got != tt.want {
			t.Errorf("FormatFloat(%v, %d) = %q, want %q", tt.f, tt.min, got, tt.want)
		}
	}
}

func TestCustomTagOrder(t *testing.T) {
	custom := &Tag{
		Tag:     "!answer",
		Test:    regexp.MustCompile(`^answer$`),
		Resolve: func(string) (any, error) { return int64(42), nil },
	}
	s, err := New(Core, custom)
	if err != nil {
		t.Fatal(err)
	}
	v, tag, _ := s.ResolveScalar("answer")
	if tag != "!answer" || v != int64(42) {
		t.Errorf("custom tag: %v (%s)", v, tag)
	}
}
