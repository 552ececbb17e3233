package compose

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/yamlkit/yamlkit/ir"
	"github.com/yamlkit/yamlkit/parse"
	"github.com/yamlkit/yamlkit/schema"
)

func native(t *testing.T, src string, opts ...Option) any {
	t.Helper()
	st := parse.Parse([]byte(src))
	docs := Compose(st, opts...)
	if len(docs) != 1 {
		t.Fatalf("got %d docs for %q", len(docs), src)
	}
	for _, e := range docs[0].Errors {
		t.Fatalf("parse error for %q: %v", src, e)
	}
	v, err := docs[0].ToNative()
	if err != nil {
		t.Fatalf("ToNative(%q): %v", src, err)
	}
	return v
}

func TestComposeNative(t *testing.T) {
	tests := []struct {
		src  string
		want any
	}{
		{"a: 1\nb: two\n", map[string]any{"a": int64(1), "b": "two"}},
		{"[1, 2.5, true, null, x]", []any{int64(1), 2.5, true, nil, "x"}},
		{"- a\n- b\n", []any{"a", "b"}},
		{"a:\n  b: 1\n", map[string]any{"a": map[string]any{"b": int64(1)}}},
		{"a:\n- 1\n- 2\n", map[string]any{"a": []any{int64(1), int64(2)}}},
		{"{x: {y: z}}", map[string]any{"x": map[string]any{"y": "z"}}},
		{"0x2a", int64(42)},
		{"'quoted: not a map'", "quoted: not a map"},
		{`"esc\tape"`, "esc\tape"},
		{"~", nil},
		{"key:\n", map[string]any{"key": nil}},
		{"a: b\n  c\n", map[string]any{"a": "b c"}},
		{"? a\n: b\n", map[string]any{"a": "b"}},
		{"[a: b, c]", []any{map[string]any{"a": "b"}, "c"}},
		{"!!str 42", "42"},
		{"a: \"1\"\n", map[string]any{"a": "1"}},
	}
	for _, tt := range tests {
		got := native(t, tt.src)
		if d := cmp.Diff(tt.want, got); d != "" {
			t.Errorf("native(%q) mismatch (-want +got):\n%s", tt.src, d)
		}
	}
}

func TestComposeYAML11(t *testing.T) {
	tests := []struct {
		src  string
		want any
	}{
		{"[ n, Y, on, off ]", []any{false, true, true, false}},
		{"052", int64(42)},
		{"x: yes\n", map[string]any{"x": true}},
	}
	for _, tt := range tests {
		got := native(t, tt.src, WithSchema(schema.YAML11))
		if d := cmp.Diff(tt.want, got); d != "" {
			t.Errorf("native(%q) mismatch (-want +got):\n%s", tt.src, d)
		}
	}
}

func TestComposeTimestamp(t *testing.T) {
	got := native(t, "t: 2001-12-15\n", WithSchema(schema.YAML11))
	m := got.(map[string]any)
	ts, ok := m["t"].(time.Time)
	if !ok {
		t.Fatalf("t = %T", m["t"])
	}
	want := time.Date(2001, 12, 15, 0, 0, 0, 0, time.UTC)
	if !ts.Equal(want) {
		t.Errorf("t = %v, want %v", ts, want)
	}
}

func TestComposeBlockScalars(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"s: |\n  a\n  b\n", "a\nb\n"},
		{"s: |-\n  a\n  b\n", "a\nb"},
		{"s: |+\n  a\n\n\n", "a\n\n\n"},
		{"s: >\n  a\n  b\n", "a b\n"},
		{"s: >\n  a\n\n  b\n", "a\nb\n"},
		{"s: >\n  a\n   more\n  b\n", "a\n more\nb\n"},
		{"s: |\n  keep\n    indent\n", "keep\n  indent\n"},
		{"s: |2\n   x\n", " x\n"},
	}
	for _, tt := range tests {
		got := native(t, tt.src)
		m := got.(map[string]any)
		if d := cmp.Diff(tt.want, m["s"]); d != "" {
			t.Errorf("block scalar %q mismatch (-want +got):\n%s", tt.src, d)
		}
	}
}

func TestComposeAnchorsAliases(t *testing.T) {
	got := native(t, "a: &x [1]\nb: *x\n")
	m := got.(map[string]any)
	if d := cmp.Diff(m["a"], m["b"]); d != "" {
		t.Errorf("alias mismatch:\n%s", d)
	}
}

func TestComposeMergeKey(t *testing.T) {
	src := "base: &base\n  x: 1\n  y: 2\nderived:\n  <<: *base\n  y: 20\n"
	got := native(t, src, WithSchema(schema.YAML11))
	m := got.(map[string]any)
	// under YAML 1.1 the plain key y resolves to bool true
	want := map[string]any{"x": int64(1), "true": int64(20)}
	if d := cmp.Diff(want, m["derived"]); d != "" {
		t.Errorf("merge mismatch (-want +got):\n%s", d)
	}
}

func TestComposeMultipleDocs(t *testing.T) {
	st := parse.Parse([]byte("a: 1\n---\nb: 2\n...\n"))
	docs := Compose(st)
	if len(docs) != 2 {
		t.Fatalf("got %d docs", len(docs))
	}
	if docs[0].DirectivesEndMarker {
		t.Error("first doc has unexpected --- marker")
	}
	if !docs[1].DirectivesEndMarker {
		t.Error("second doc lost its --- marker")
	}
}

func TestComposeDirectives(t *testing.T) {
	st := parse.Parse([]byte("%YAML 1.1\n---\non\n"))
	docs := Compose(st)
	if len(docs) != 1 {
		t.Fatalf("got %d docs", len(docs))
	}
	doc := docs[0]
	if doc.Directives.Version != "1.1" {
		t.Errorf("version = %q", doc.Directives.Version)
	}
	v, err := doc.ToNative()
	if err != nil {
		t.Fatal(err)
	}
	if v != true {
		t.Errorf("1.1 doc resolved 'on' to %v", v)
	}
}

func TestComposeTagHandleDirective(t *testing.T) {
	st := parse.Parse([]byte("%TAG !e! tag:example.com,2000:\n---\n!e!foo bar\n"))
	docs := Compose(st)
	doc := docs[0]
	if len(doc.Errors) > 0 {
		t.Fatalf("errors: %v", doc.Errors[0])
	}
	if doc.Contents.Tag != "tag:example.com,2000:foo" {
		t.Errorf("tag = %q", doc.Contents.Tag)
	}
}

func TestComposeStyleAndRange(t *testing.T) {
	src := "a: 'x'\n"
	st := parse.Parse([]byte(src))
	doc := Compose(st)[0]
	val := doc.Contents.Items[0].Value
	if val.Style != ir.QuoteSingle {
		t.Errorf("style = %v", val.Style)
	}
	if got := src[val.Range[0]:val.Range[1]]; got != "'x'" {
		t.Errorf("range source = %q", got)
	}
}

func TestComposeFormatHints(t *testing.T) {
	tests := []struct {
		src    string
		format ir.NumberFormat
	}{
		{"0x10", ir.HexFormat},
		{"0o20", ir.OctFormat},
		{"1e4", ir.ExpFormat},
		{"16", ir.NoFormat},
	}
	for _, tt := range tests {
		st := parse.Parse([]byte(tt.src))
		doc := Compose(st)[0]
		if doc.Contents.Format != tt.format {
			t.Errorf("format(%q) = %v, want %v", tt.src, doc.Contents.Format, tt.format)
		}
	}
}

func TestComposeErrors(t *testing.T) {
	tests := []struct {
		src  string
		code ir.ErrorCode
	}{
		{"&a &b x\n", ir.CodeMultipleAnchors},
		{"!!str !!int x\n", ir.CodeMultipleTags},
		{"a: [1\n", ir.CodeMissingChar},
		{`"unclosed`, ir.CodeMissingChar},
		{"%YAML 9.9\n---\nx\n", ir.CodeBadDirective},
		{"%YAML 1.2\nx\n", ir.CodeMissingChar},
		{"a:\n  - 1\n bad\n", ir.CodeUnexpectedToken},
	}
	for _, tt := range tests {
		st := parse.Parse([]byte(tt.src))
		doc := Compose(st)[0]
		found := false
		for _, e := range doc.Errors {
			if e.Code == tt.code {
				found = true
			}
		}
		if !found {
			t.Errorf("source %q: no %s error; got %v", tt.src, tt.code, doc.Errors)
		}
	}
}

func TestComposeMultilineKeyError(t *testing.T) {
	src := "\"a\nb\": 1\n"
	st := parse.Parse([]byte(src))
	doc := Compose(st)[0]
	found := false
	for _, e := range doc.Errors {
		if e.Code == ir.CodeMultilineKey {
			found = true
		}
	}
	if !found {
		t.Errorf("no MULTILINE_IMPLICIT_KEY error; got %v", doc.Errors)
	}
}

func TestComposeCommentAssociation(t *testing.T) {
	src := "# leading\na: 1 # trailing\n"
	st := parse.Parse([]byte(src))
	doc := Compose(st)[0]
	root := doc.Contents
	if root.CommentBefore != "leading" {
		t.Errorf("commentBefore = %q", root.CommentBefore)
	}
	val := root.Items[0].Value
	if val.Comment != "trailing" {
		t.Errorf("comment = %q", val.Comment)
	}
}

func TestComposeErrorLineCol(t *testing.T) {
	st := parse.Parse([]byte("ok: 1\na: [1\n"))
	doc := Compose(st)[0]
	if len(doc.Errors) == 0 {
		t.Fatal("no errors")
	}
	e := doc.Errors[0]
	if e.Line < 2 {
		t.Errorf("line = %d, want >= 2", e.Line)
	}
}
