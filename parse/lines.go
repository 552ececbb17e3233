package parse

import (
	"github.com/yamlkit/yamlkit/token"
)

// line groups the tokens of one source line. Leading whitespace is
// folded into indent; TNewline tokens are dropped. A TBlockScalar
// token always ends its line, since its body swallows the final line
// break.
type line struct {
	indent int
	start  int // offset of the line's first content byte
	toks   []token.Token
}

func (l *line) blank() bool {
	return len(l.toks) == 0
}

func (l *line) commentOnly() bool {
	return len(l.toks) == 1 && l.toks[0].Type == token.TComment
}

func (l *line) first() *token.Token {
	if len(l.toks) == 0 {
		return nil
	}
	return &l.toks[0]
}

func splitLines(toks []token.Token) []line {
	var (
		lines []line
		cur   line
		fresh = true
	)
	flush := func() {
		lines = append(lines, cur)
		cur = line{}
		fresh = true
	}
	for i := range toks {
		t := &toks[i]
		switch t.Type {
		case token.TBOM:
			continue
		case token.TNewline:
			cur.start = orStart(cur, t.Pos.I)
			flush()
			continue
		case token.TSpace:
			if fresh {
				for _, c := range t.Bytes {
					if c != ' ' {
						break
					}
					cur.indent++
				}
				cur.start = t.Pos.I
			}
			continue
		}
		if fresh {
			if cur.start == 0 {
				cur.start = t.Pos.I - cur.indent
			}
			fresh = false
		}
		cur.toks = append(cur.toks, *t)
		if t.Type == token.TBlockScalar {
			cur.start = t.Pos.I
			flush()
		}
	}
	if len(cur.toks) > 0 {
		flush()
	}
	return lines
}

func orStart(l line, fallback int) int {
	if len(l.toks) > 0 {
		return l.toks[0].Pos.I
	}
	if l.start != 0 {
		return l.start
	}
	return fallback
}
