package ir

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yamlkit/yamlkit/schema"
)

func coreDoc(t *testing.T) *Document {
	t.Helper()
	s, err := schema.New(schema.Core)
	if err != nil {
		t.Fatal(err)
	}
	return NewDocument(s)
}

func yaml11Doc(t *testing.T) *Document {
	t.Helper()
	s, err := schema.New(schema.YAML11)
	if err != nil {
		t.Fatal(err)
	}
	return NewDocument(s)
}

func TestToNativeBasics(t *testing.T) {
	doc := coreDoc(t)
	doc.Contents = NewMap(
		&Pair{Key: FromString("a"), Value: FromInt(1)},
		&Pair{Key: FromString("b"), Value: NewSeq(FromString("x"), Null())},
	)
	v, err := doc.ToNative()
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"a": int64(1),
		"b": []any{"x", nil},
	}
	if d := cmp.Diff(want, v); d != "" {
		t.Errorf("ToNative mismatch (-want +got):\n%s", d)
	}
}

func TestToNativeAlias(t *testing.T) {
	doc := coreDoc(t)
	shared := NewSeq(FromInt(1)).WithAnchor("x")
	doc.Contents = NewMap(
		&Pair{Key: FromString("a"), Value: shared},
		&Pair{Key: FromString("b"), Value: NewAlias("x")},
	)
	v, err := doc.ToNative()
	if err != nil {
		t.Fatal(err)
	}
	m := v.(map[string]any)
	if d := cmp.Diff(m["a"], m["b"]); d != "" {
		t.Errorf("alias mismatch:\n%s", d)
	}
}

func TestToNativeUnresolvedAlias(t *testing.T) {
	doc := coreDoc(t)
	doc.Contents = NewMap(
		&Pair{Key: FromString("a"), Value: NewAlias("nope")},
	)
	_, err := doc.ToNative()
	var re *ResolveError
	if !errors.As(err, &re) {
		t.Fatalf("err = %v, want ResolveError", err)
	}
	if re.Anchor != "nope" {
		t.Errorf("anchor = %q", re.Anchor)
	}
}

func TestToNativeAliasShadowing(t *testing.T) {
	// a reused label shadows the earlier node for later aliases
	doc := coreDoc(t)
	doc.Contents = NewSeq(
		FromInt(1).WithAnchor("x"),
		NewAlias("x"),
		FromInt(2).WithAnchor("x"),
		NewAlias("x"),
	)
	v, err := doc.ToNative()
	if err != nil {
		t.Fatal(err)
	}
	want := []any{int64(1), int64(1), int64(2), int64(2)}
	if d := cmp.Diff(want, v); d != "" {
		t.Errorf("shadowing mismatch (-want +got):\n%s", d)
	}
}

func TestMaxAliasCount(t *testing.T) {
	// each *b expands two nested aliases; three references at
	// maxAliasCount 5 exceed the 3*2=6 bound
	build := func(max int) *Document {
		doc := coreDoc(t)
		doc.MaxAliasCount = max
		a := NewSeq(FromInt(1)).WithAnchor("a")
		b := NewSeq(NewAlias("a"), NewAlias("a")).WithAnchor("b")
		doc.Contents = NewSeq(a, b, NewAlias("b"), NewAlias("b"), NewAlias("b"))
		return doc
	}
	if _, err := build(5).ToNative(); err == nil {
		t.Error("expected excessive alias count error")
	}
	if _, err := build(6).ToNative(); err != nil {
		t.Errorf("maxAliasCount 6: %v", err)
	}
	if _, err := build(-1).ToNative(); err != nil {
		t.Errorf("disabled guard: %v", err)
	}
}

func TestMaxAliasCountZeroAllowsPlainAliases(t *testing.T) {
	doc := coreDoc(t)
	doc.MaxAliasCount = 0
	doc.Contents = NewSeq(
		NewSeq(FromInt(1)).WithAnchor("x"),
		NewAlias("x"),
	)
	if _, err := doc.ToNative(); err != nil {
		t.Errorf("well-formed alias under maxAliasCount 0: %v", err)
	}
}

func TestMergeKeys(t *testing.T) {
	doc := yaml11Doc(t)
	base := NewMap(
		&Pair{Key: FromString("x"), Value: FromInt(1)},
		&Pair{Key: FromString("y"), Value: FromInt(2)},
	).WithAnchor("base")
	doc.Contents = NewSeq(
		base,
		NewMap(
			&Pair{Key: FromString("<<"), Value: NewAlias("base")},
			&Pair{Key: FromString("y"), Value: FromInt(20)},
		),
	)
	v, err := doc.ToNative()
	if err != nil {
		t.Fatal(err)
	}
	got := v.([]any)[1]
	want := map[string]any{"x": int64(1), "y": int64(20)}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("merge mismatch (-want +got):\n%s", d)
	}
}

func TestMergeKeySequenceOfMaps(t *testing.T) {
	doc := yaml11Doc(t)
	m1 := NewMap(&Pair{Key: FromString("a"), Value: FromInt(1)}).WithAnchor("m1")
	m2 := NewMap(
		&Pair{Key: FromString("a"), Value: FromInt(10)},
		&Pair{Key: FromString("b"), Value: FromInt(2)},
	).WithAnchor("m2")
	doc.Contents = NewSeq(
		m1, m2,
		NewMap(
			&Pair{Key: FromString("<<"), Value: NewSeq(NewAlias("m1"), NewAlias("m2"))},
		),
	)
	v, err := doc.ToNative()
	if err != nil {
		t.Fatal(err)
	}
	got := v.([]any)[2]
	// earlier maps in the merge sequence win
	want := map[string]any{"a": int64(1), "b": int64(2)}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("merge sequence mismatch (-want +got):\n%s", d)
	}
}

func TestMergeDisabledInCore(t *testing.T) {
	doc := coreDoc(t)
	doc.Contents = NewMap(
		&Pair{Key: FromString("<<"), Value: FromInt(1)},
	)
	v, err := doc.ToNative()
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"<<": int64(1)}
	if d := cmp.Diff(want, v); d != "" {
		t.Errorf("core schema merged; should treat << as a plain key:\n%s", d)
	}
}

func TestCyclicNative(t *testing.T) {
	doc := coreDoc(t)
	doc.MaxAliasCount = -1
	m := NewMap().WithAnchor("self")
	m.Items = append(m.Items,
		&Pair{Key: FromString("foo"), Value: FromString("bar")},
		&Pair{Key: FromString("m"), Value: NewAlias("self")},
	)
	doc.Contents = m
	v, err := doc.ToNative()
	if err != nil {
		t.Fatal(err)
	}
	got := v.(map[string]any)
	inner, ok := got["m"].(map[string]any)
	if !ok {
		t.Fatalf("m = %T", got["m"])
	}
	if inner["foo"] != "bar" {
		t.Errorf("cycle not preserved: %v", inner["foo"])
	}
}

func TestDirectivesTagURI(t *testing.T) {
	d := NewDirectives("1.2")
	d.Tags["!e!"] = "tag:example.com,2000:app/"
	tests := []struct {
		src, want string
	}{
		{"!!str", "tag:yaml.org,2002:str"},
		{"!local", "!local"},
		{"!e!foo", "tag:example.com,2000:app/foo"},
		{"!<tag:x/y>", "tag:x/y"},
		{"!", "!"},
	}
	for _, tt := range tests {
		if got := d.TagURI(tt.src); got != tt.want {
			t.Errorf("TagURI(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}
