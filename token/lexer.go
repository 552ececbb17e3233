package token

import (
	"bytes"
)

// Lexer scans a complete YAML document into source tokens. Lexing never
// fails: malformed input yields marker tokens (TFlowErrorEnd) which the
// parser turns into structured errors.
//
// Indentation and blank-line tracking is the parser's job; the lexer
// emits raw TSpace and TNewline tokens. The one exception is block
// scalars, whose bodies are collected here into a single TBlockScalar
// token: after a TBlockScalar the stream continues at the start of the
// following line with no separate TNewline.
type Lexer struct {
	d      []byte
	pos    int
	posDoc *PosDoc

	flow        []byte // stack of '{' / '['
	lnIndent    int    // leading spaces of the current line
	atLineStart bool
	lastType    Type
	haveLast    bool

	pendingBlock bool // a block-scalar header was just emitted
	blockBase    int  // line indent of the header line
	blockExtra   int  // explicit indentation digit, 0 when auto
	pendingError bool // an unterminated quote was scanned
}

// Tokenize scans d and returns all tokens plus the offset table built
// while scanning.
func Tokenize(d []byte) ([]Token, *PosDoc) {
	lx := NewLexer(d)
	var toks []Token
	for {
		tok := lx.Next()
		if tok == nil {
			return toks, lx.posDoc
		}
		toks = append(toks, *tok)
	}
}

func NewLexer(d []byte) *Lexer {
	return &Lexer{
		d:           d,
		posDoc:      NewPosDoc(d),
		atLineStart: true,
	}
}

// PosDoc returns the offset table; valid after scanning reaches the
// offsets in question.
func (lx *Lexer) PosDoc() *PosDoc {
	return lx.posDoc
}

func (lx *Lexer) inFlow() bool {
	return len(lx.flow) > 0
}

func (lx *Lexer) tok(t Type, start, end int) *Token {
	if t != TSpace && t != TNewline {
		lx.lastType = t
		lx.haveLast = true
		lx.atLineStart = false
	}
	return &Token{
		Type:  t,
		Pos:   lx.posDoc.Pos(start),
		Bytes: lx.d[start:end],
	}
}

// Next returns the next token, or nil at end of input.
func (lx *Lexer) Next() *Token {
	d, n := lx.d, len(lx.d)
	if lx.pendingError {
		lx.pendingError = false
		return lx.tok(TFlowErrorEnd, n, n)
	}
	for lx.pos < n && d[lx.pos] == '\r' {
		lx.pos++
	}
	if lx.pos >= n {
		return nil
	}
	start := lx.pos
	c := d[start]

	if lx.pendingBlock && lx.atLineStart {
		return lx.blockBody()
	}

	switch {
	case c == '\n':
		lx.posDoc.nl(start)
		lx.pos++
		lx.atLineStart = true
		lx.lnIndent = 0
		return lx.tokWS(TNewline, start, lx.pos)

	case c == ' ' || c == '\t':
		end := start
		for end < n && (d[end] == ' ' || d[end] == '\t') {
			end++
		}
		if lx.atLineStart {
			indent := 0
			for i := start; i < end && d[i] == ' '; i++ {
				indent++
			}
			lx.lnIndent = indent
		}
		lx.pos = end
		return lx.tokWS(TSpace, start, end)
	}

	if start == 0 && bytes.HasPrefix(d, []byte{0xEF, 0xBB, 0xBF}) {
		lx.pos = 3
		return lx.tok(TBOM, 0, 3)
	}

	atCol0 := lx.atLineStart && lx.lnIndent == 0 && lx.col0(start)
	if atCol0 && !lx.inFlow() {
		if marker := lx.docMarker(start); marker != 0 {
			lx.pos = start + 3
			return lx.tok(marker, start, start+3)
		}
		if c == '%' {
			end := lineEnd(d, start)
			lx.pos = end
			return lx.tok(TDirective, start, end)
		}
	}

	switch c {
	case '#':
		end := lineEnd(d, start)
		lx.pos = end
		return lx.tok(TComment, start, end)

	case '{':
		lx.flow = append(lx.flow, '{')
		lx.pos++
		return lx.tok(TFlowMapStart, start, lx.pos)

	case '[':
		lx.flow = append(lx.flow, '[')
		lx.pos++
		return lx.tok(TFlowSeqStart, start, lx.pos)

	case '}':
		if lx.inFlow() {
			lx.flow = lx.flow[:len(lx.flow)-1]
		}
		lx.pos++
		return lx.tok(TFlowMapEnd, start, lx.pos)

	case ']':
		if lx.inFlow() {
			lx.flow = lx.flow[:len(lx.flow)-1]
		}
		lx.pos++
		return lx.tok(TFlowSeqEnd, start, lx.pos)

	case ',':
		if lx.inFlow() {
			lx.pos++
			return lx.tok(TComma, start, lx.pos)
		}

	case '&', '*':
		end := start + 1
		for end < n && !isAnchorEnd(d[end]) {
			end++
		}
		lx.pos = end
		if c == '&' {
			return lx.tok(TAnchor, start, end)
		}
		return lx.tok(TAlias, start, end)

	case '!':
		end := start + 1
		if end < n && d[end] == '<' {
			for end < n && d[end] != '>' && d[end] != '\n' {
				end++
			}
			if end < n && d[end] == '>' {
				end++
			}
		} else {
			for end < n && !isAnchorEnd(d[end]) {
				end++
			}
		}
		lx.pos = end
		return lx.tok(TTag, start, end)

	case '?':
		if lx.wsOrEOL(start + 1) {
			lx.pos++
			return lx.tok(TExplicitKey, start, lx.pos)
		}

	case ':':
		if lx.wsOrEOL(start+1) || lx.flowColon(start) {
			lx.pos++
			return lx.tok(TMapValue, start, lx.pos)
		}

	case '-':
		if !lx.inFlow() && lx.wsOrEOL(start+1) {
			lx.pos++
			return lx.tok(TSeqItem, start, lx.pos)
		}

	case '\'':
		return lx.singleQuoted(start)

	case '"':
		return lx.doubleQuoted(start)

	case '|', '>':
		if !lx.inFlow() {
			return lx.blockHeader(start)
		}
	}

	return lx.plain(start)
}

// tokWS emits whitespace tokens without touching lastType.
func (lx *Lexer) tokWS(t Type, start, end int) *Token {
	return &Token{
		Type:  t,
		Pos:   lx.posDoc.Pos(start),
		Bytes: lx.d[start:end],
	}
}

// col0 reports whether off is the first byte of its line.
func (lx *Lexer) col0(off int) bool {
	return off == 0 || lx.d[off-1] == '\n'
}

func (lx *Lexer) docMarker(start int) Type {
	d, n := lx.d, len(lx.d)
	if start+3 > n {
		return 0
	}
	var m Type
	switch {
	case d[start] == '-' && d[start+1] == '-' && d[start+2] == '-':
		m = TDocStart
	case d[start] == '.' && d[start+1] == '.' && d[start+2] == '.':
		m = TDocEnd
	default:
		return 0
	}
	if start+3 == n {
		return m
	}
	switch d[start+3] {
	case ' ', '\t', '\n', '\r':
		return m
	}
	return 0
}

func (lx *Lexer) wsOrEOL(off int) bool {
	if off >= len(lx.d) {
		return true
	}
	switch lx.d[off] {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// flowColon reports whether a ':' at off separates key and value in
// flow context. JSON-style adjacency ("a":1) is allowed after a quoted
// scalar or a closing bracket.
func (lx *Lexer) flowColon(off int) bool {
	if !lx.inFlow() {
		return false
	}
	if off+1 < len(lx.d) {
		switch lx.d[off+1] {
		case ',', ']', '}':
			return true
		}
	}
	if !lx.haveLast {
		return false
	}
	switch lx.lastType {
	case TSingleQuoted, TDoubleQuoted, TFlowMapEnd, TFlowSeqEnd:
		return true
	}
	return false
}

func (lx *Lexer) singleQuoted(start int) *Token {
	d, n := lx.d, len(lx.d)
	i := start + 1
	for i < n {
		switch d[i] {
		case '\'':
			if i+1 < n && d[i+1] == '\'' {
				i += 2
				continue
			}
			lx.pos = i + 1
			return lx.tok(TSingleQuoted, start, i+1)
		case '\n':
			lx.posDoc.nl(i)
		}
		i++
	}
	lx.pos = n
	return lx.errorEnd(TSingleQuoted, start)
}

func (lx *Lexer) doubleQuoted(start int) *Token {
	d, n := lx.d, len(lx.d)
	i := start + 1
	for i < n {
		switch d[i] {
		case '\\':
			if i+1 < n && d[i+1] == '\n' {
				lx.posDoc.nl(i + 1)
			}
			i += 2
			continue
		case '"':
			lx.pos = i + 1
			return lx.tok(TDoubleQuoted, start, i+1)
		case '\n':
			lx.posDoc.nl(i)
		}
		i++
	}
	lx.pos = n
	return lx.errorEnd(TDoubleQuoted, start)
}

// errorEnd emits the unterminated scalar, queueing a TFlowErrorEnd
// marker as the next token.
func (lx *Lexer) errorEnd(t Type, start int) *Token {
	tok := lx.tok(t, start, len(lx.d))
	lx.pendingError = true
	return tok
}

func (lx *Lexer) blockHeader(start int) *Token {
	d, n := lx.d, len(lx.d)
	end := start + 1
	for end < n {
		switch d[end] {
		case '+', '-', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			end++
			continue
		}
		break
	}
	lx.pendingBlock = true
	lx.blockBase = lx.lnIndent
	lx.blockExtra = 0
	for _, c := range d[start+1 : end] {
		if c >= '1' && c <= '9' {
			lx.blockExtra = int(c - '0')
		}
	}
	lx.pos = end
	return lx.tok(TBlockScalarHeader, start, end)
}

// blockBody collects the body of a block scalar that begins on the
// current line. The token's bytes are raw source, indentation included;
// the composer applies the header's chomping and indentation rules.
func (lx *Lexer) blockBody() *Token {
	lx.pendingBlock = false
	d, n := lx.d, len(lx.d)
	start := lx.pos
	contentIndent := -1
	if lx.blockExtra > 0 {
		contentIndent = lx.blockBase + lx.blockExtra
	}
	end := start // end of body so far, past last included newline
	i := start
	for i < n {
		lnStart := i
		indent := 0
		for i < n && d[i] == ' ' {
			indent++
			i++
		}
		if i >= n || d[i] == '\n' {
			// blank line, always part of the body
			if i < n {
				lx.posDoc.nl(i)
				i++
			}
			end = i
			continue
		}
		if indent == 0 && lx.docMarkerAt(lnStart) {
			break
		}
		if contentIndent < 0 {
			if indent <= lx.blockBase {
				break
			}
			contentIndent = indent
		} else if indent <= lx.blockBase || indent < contentIndent {
			break
		}
		for i < n && d[i] != '\n' {
			i++
		}
		if i < n {
			lx.posDoc.nl(i)
			i++
		}
		end = i
	}
	lx.pos = end
	lx.atLineStart = true
	lx.lnIndent = 0
	return lx.tok(TBlockScalar, start, end)
}

func (lx *Lexer) docMarkerAt(off int) bool {
	d, n := lx.d, len(lx.d)
	if off+3 > n {
		return false
	}
	if (d[off] == '-' && d[off+1] == '-' && d[off+2] == '-') ||
		(d[off] == '.' && d[off+1] == '.' && d[off+2] == '.') {
		return off+3 == n || d[off+3] == ' ' || d[off+3] == '\t' || d[off+3] == '\n' || d[off+3] == '\r'
	}
	return false
}

// plain scans a plain scalar starting at start. Plain scalars here are
// single-line; the parser joins continuation lines.
func (lx *Lexer) plain(start int) *Token {
	d, n := lx.d, len(lx.d)
	i := start
	lastNonWS := start - 1
	for i < n {
		c := d[i]
		if c == '\n' {
			break
		}
		if lx.inFlow() {
			switch c {
			case ',', '[', ']', '{', '}':
				goto done
			}
		}
		if c == ':' {
			if lx.wsOrEOL(i + 1) {
				break
			}
			if lx.inFlow() && i+1 < n {
				switch d[i+1] {
				case ',', '[', ']', '{', '}':
					goto done
				}
			}
		}
		if c == '#' && i > start && (d[i-1] == ' ' || d[i-1] == '\t') {
			break
		}
		if c != ' ' && c != '\t' && c != '\r' {
			lastNonWS = i
		}
		i++
	}
done:
	end := lastNonWS + 1
	if end <= start {
		end = start + 1
		lastNonWS = start
	}
	lx.pos = end
	return lx.tok(TScalar, start, end)
}

func lineEnd(d []byte, start int) int {
	i := start
	for i < len(d) && d[i] != '\n' {
		i++
	}
	// exclude a trailing \r
	if i > start && d[i-1] == '\r' {
		return i - 1
	}
	return i
}

func isAnchorEnd(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', ',', '[', ']', '{', '}':
		return true
	}
	return false
}
