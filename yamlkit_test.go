package yamlkit

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yamlkit/yamlkit/encode"
	"github.com/yamlkit/yamlkit/ir"
)

func TestParse(t *testing.T) {
	tests := []struct {
		src  string
		opts []Option
		want any
	}{
		{src: "a: 1\n", want: map[string]any{"a": int64(1)}},
		{src: "[ n, Y, on, off ]", opts: []Option{Schema("yaml-1.1")},
			want: []any{false, true, true, false}},
		{src: "- x\n- y\n", want: []any{"x", "y"}},
		{src: "", want: nil},
	}
	for _, tt := range tests {
		got, err := Parse(tt.src, tt.opts...)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.src, err)
			continue
		}
		if d := cmp.Diff(tt.want, got); d != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.src, d)
		}
	}
}

func TestParseEscalatesErrors(t *testing.T) {
	if _, err := Parse("a: [1\n"); err == nil {
		t.Error("expected error for unclosed flow")
	}
	if _, err := Parse("a: [1\n", WithLogLevel(LogSilent)); err != nil {
		t.Errorf("silent mode escalated: %v", err)
	}
}

func TestParseAllDocumentsEmpty(t *testing.T) {
	st := ParseAllDocuments("")
	if !st.Empty || len(st.Docs) != 0 {
		t.Errorf("empty input: %+v", st)
	}
	st = ParseAllDocuments("# only a comment\n")
	if len(st.Docs) != 0 {
		t.Errorf("comment-only input yielded docs: %+v", st)
	}
}

func TestParseAllDocumentsMulti(t *testing.T) {
	st := ParseAllDocuments("a: 1\n---\nb: 2\n")
	if len(st.Docs) != 2 {
		t.Fatalf("got %d docs", len(st.Docs))
	}
}

func TestParseDocumentMultipleDocs(t *testing.T) {
	doc := ParseDocument("a: 1\n---\nb: 2\n")
	found := false
	for _, e := range doc.Errors {
		if e.Code == ir.CodeMultipleDocs {
			found = true
		}
	}
	if !found {
		t.Errorf("no MULTIPLE_DOCS error: %v", doc.Errors)
	}
}

func TestStringifyUndefined(t *testing.T) {
	out, err := Stringify(Undefined)
	if err != nil {
		t.Fatal(err)
	}
	if out != "" {
		t.Errorf("out = %q, want no output", out)
	}
}

func TestStringifyTrailingNewline(t *testing.T) {
	for _, v := range []any{nil, 1, "x", []any{1}, map[string]any{"a": 1}} {
		out, err := Stringify(v)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasSuffix(out, "\n") || strings.HasSuffix(out, "\n\n") {
			t.Errorf("Stringify(%v) = %q, want single trailing newline", v, out)
		}
	}
}

func TestRoundTripNative(t *testing.T) {
	values := []any{
		nil,
		true,
		int64(42),
		3.5,
		"plain",
		": tricky",
		"multi\nline\n",
		[]any{int64(1), "two", nil},
		map[string]any{"a": int64(1), "b": []any{"x", "y"}},
		map[string]any{"nested": map[string]any{"deep": "value"}},
	}
	for _, v := range values {
		out, err := Stringify(v)
		if err != nil {
			t.Errorf("Stringify(%v): %v", v, err)
			continue
		}
		back, err := Parse(out)
		if err != nil {
			t.Errorf("re-parse of %q: %v", out, err)
			continue
		}
		if d := cmp.Diff(v, back); d != "" {
			t.Errorf("round trip of %#v via %q (-want +got):\n%s", v, out, d)
		}
	}
}

func TestStringifyIdempotent(t *testing.T) {
	values := []any{
		map[string]any{"a": int64(1), "s": "multi\nline\n"},
		[]any{"x", map[string]any{"k": "v"}},
	}
	for _, v := range values {
		s1, err := Stringify(v)
		if err != nil {
			t.Fatal(err)
		}
		back, err := Parse(s1)
		if err != nil {
			t.Fatal(err)
		}
		s2, err := Stringify(back)
		if err != nil {
			t.Fatal(err)
		}
		if s1 != s2 {
			t.Errorf("not idempotent:\n%q\n%q", s1, s2)
		}
	}
}

func TestRoundTripDocumentStyles(t *testing.T) {
	// style choices survive a document round trip
	srcs := []string{
		"a: 1\n",
		"s: 'single'\n",
		"d: \"double\"\n",
		"b: |\n  text\n",
		"f: [ 1, 2 ]\n",
		"m: { x: y }\n",
	}
	for _, src := range srcs {
		doc := ParseDocument(src)
		if len(doc.Errors) > 0 {
			t.Errorf("parse %q: %v", src, doc.Errors[0])
			continue
		}
		out, err := Stringify(doc)
		if err != nil {
			t.Errorf("stringify %q: %v", src, err)
			continue
		}
		if out != src {
			t.Errorf("round trip %q -> %q", src, out)
		}
	}
}

func TestSimpleKeysNullKey(t *testing.T) {
	doc := ParseDocument("? ~\n")
	if len(doc.Errors) > 0 {
		t.Fatalf("parse: %v", doc.Errors[0])
	}
	out, err := Stringify(doc, EncodeOptions(encode.SimpleKeys(true)))
	if err != nil {
		t.Fatal(err)
	}
	if out != "~: null\n" {
		t.Errorf("out = %q, want %q", out, "~: null\n")
	}
}

func TestLineCounter(t *testing.T) {
	lc := &LineCounter{}
	ParseDocument("a: 1\nbb: 2\n", WithLineCounter(lc))
	line, col := lc.LinePos(5)
	if line != 2 || col != 1 {
		t.Errorf("LinePos(5) = (%d, %d), want (2, 1)", line, col)
	}
}

func TestReplacerOption(t *testing.T) {
	out, err := Stringify(
		map[string]any{"keep": int64(1), "secret": "x"},
		Replacer(func(key, v any) (any, bool) {
			if key == "secret" {
				return nil, false
			}
			return v, true
		}),
	)
	if err != nil {
		t.Fatal(err)
	}
	if out != "keep: 1\n" {
		t.Errorf("out = %q", out)
	}
}

func TestKeyOver1024Boundary(t *testing.T) {
	okKey := strings.Repeat("k", 1024)
	doc := ParseDocument(okKey + ": 1\n")
	for _, e := range doc.Errors {
		if e.Code == ir.CodeKeyOver1024 {
			t.Errorf("1024-char key rejected")
		}
	}
	longKey := strings.Repeat("k", 1025)
	doc = ParseDocument(longKey + ": 1\n")
	found := false
	for _, e := range doc.Errors {
		if e.Code == ir.CodeKeyOver1024 {
			found = true
		}
	}
	if !found {
		t.Error("1025-char key accepted")
	}
}

func TestVersionOption(t *testing.T) {
	v, err := Parse("012", Version("1.1"))
	if err != nil {
		t.Fatal(err)
	}
	if v != int64(10) {
		t.Errorf("1.1 octal 012 = %v, want 10", v)
	}
	v, err = Parse("012")
	if err != nil {
		t.Fatal(err)
	}
	if v != int64(12) {
		t.Errorf("1.2 decimal 012 = %v, want 12", v)
	}
}

func TestMaxAliasCountOption(t *testing.T) {
	src := "a: &a [1]\nb: &b [*a, *a]\nc: [*b, *b, *b]\n"
	if _, err := Parse(src, MaxAliasCount(5)); err == nil {
		t.Error("expected excessive alias count error")
	}
	if _, err := Parse(src, MaxAliasCount(-1)); err != nil {
		t.Errorf("disabled guard: %v", err)
	}
}
