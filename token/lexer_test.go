package token

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func types(toks []Token) []Type {
	res := make([]Type, len(toks))
	for i := range toks {
		res[i] = toks[i].Type
	}
	return res
}

func TestTokenizeTypes(t *testing.T) {
	tests := []struct {
		in   string
		want []Type
	}{
		{
			in:   "a: 1\n",
			want: []Type{TScalar, TMapValue, TSpace, TScalar, TNewline},
		},
		{
			in:   "[a, b]",
			want: []Type{TFlowSeqStart, TScalar, TComma, TSpace, TScalar, TFlowSeqEnd},
		},
		{
			in:   "{a: 1}",
			want: []Type{TFlowMapStart, TScalar, TMapValue, TSpace, TScalar, TFlowMapEnd},
		},
		{
			in:   "- x\n",
			want: []Type{TSeqItem, TSpace, TScalar, TNewline},
		},
		{
			in:   "---\na\n...\n",
			want: []Type{TDocStart, TNewline, TScalar, TNewline, TDocEnd, TNewline},
		},
		{
			in:   "%YAML 1.2\n---\n",
			want: []Type{TDirective, TNewline, TDocStart, TNewline},
		},
		{
			in:   "&x *y !t s\n",
			want: []Type{TAnchor, TSpace, TAlias, TSpace, TTag, TSpace, TScalar, TNewline},
		},
		{
			in:   "a # hi\n",
			want: []Type{TScalar, TSpace, TComment, TNewline},
		},
		{
			in:   "? a\n: b\n",
			want: []Type{TExplicitKey, TSpace, TScalar, TNewline, TMapValue, TSpace, TScalar, TNewline},
		},
		{
			in:   "'it''s'",
			want: []Type{TSingleQuoted},
		},
		{
			in:   `"a\nb"`,
			want: []Type{TDoubleQuoted},
		},
		{
			in:   `"unterminated`,
			want: []Type{TDoubleQuoted, TFlowErrorEnd},
		},
		{
			in:   "\xEF\xBB\xBFa\n",
			want: []Type{TBOM, TScalar, TNewline},
		},
		{
			in:   "a:b\n",
			want: []Type{TScalar, TNewline},
		},
	}
	for _, tt := range tests {
		toks, _ := Tokenize([]byte(tt.in))
		if d := cmp.Diff(tt.want, types(toks)); d != "" {
			t.Errorf("Tokenize(%q) types mismatch (-want +got):\n%s", tt.in, d)
		}
	}
}

func TestTokenizeBlockScalar(t *testing.T) {
	toks, _ := Tokenize([]byte("key: |\n  a\n  b\nnext: 1\n"))
	want := []Type{
		TScalar, TMapValue, TSpace, TBlockScalarHeader, TNewline,
		TBlockScalar,
		TScalar, TMapValue, TSpace, TScalar, TNewline,
	}
	if d := cmp.Diff(want, types(toks)); d != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", d)
	}
	body := toks[5]
	if got := string(body.Bytes); got != "  a\n  b\n" {
		t.Errorf("body = %q, want %q", got, "  a\n  b\n")
	}
}

func TestTokenizeBlockScalarExplicitIndent(t *testing.T) {
	toks, _ := Tokenize([]byte("|2\n  a\n"))
	want := []Type{TBlockScalarHeader, TNewline, TBlockScalar}
	if d := cmp.Diff(want, types(toks)); d != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", d)
	}
	if got := string(toks[0].Bytes); got != "|2" {
		t.Errorf("header = %q, want %q", got, "|2")
	}
}

func TestTokenizeOffsets(t *testing.T) {
	in := "ab: cd\n"
	toks, _ := Tokenize([]byte(in))
	for _, tok := range toks {
		start := tok.Pos.I
		if got := in[start : start+len(tok.Bytes)]; got != string(tok.Bytes) {
			t.Errorf("token %s at %d: source %q != bytes %q",
				tok.Type, start, got, tok.Bytes)
		}
	}
}

func TestPosDocLineCol(t *testing.T) {
	in := "a: 1\nbb: 2\n"
	_, posDoc := Tokenize([]byte(in))
	tests := []struct {
		off       int
		line, col int
	}{
		{0, 0, 0},
		{3, 0, 3},
		{5, 1, 0},
		{9, 1, 4},
	}
	for _, tt := range tests {
		line, col := posDoc.LineCol(tt.off)
		if line != tt.line || col != tt.col {
			t.Errorf("LineCol(%d) = (%d, %d), want (%d, %d)",
				tt.off, line, col, tt.line, tt.col)
		}
	}
}

func TestFlowColonAdjacency(t *testing.T) {
	toks, _ := Tokenize([]byte(`{"a":1}`))
	want := []Type{TFlowMapStart, TDoubleQuoted, TMapValue, TScalar, TFlowMapEnd}
	if d := cmp.Diff(want, types(toks)); d != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", d)
	}
}

func TestSeqItemInFlowIsPlain(t *testing.T) {
	toks, _ := Tokenize([]byte("[- a]"))
	if toks[1].Type != TScalar {
		t.Errorf("'-' inside flow tokenized as %s, want TScalar", toks[1].Type)
	}
}
