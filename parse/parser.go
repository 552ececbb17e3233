package parse

import (
	"bytes"

	"github.com/yamlkit/yamlkit/debug"
	"github.com/yamlkit/yamlkit/ir"
	"github.com/yamlkit/yamlkit/token"
)

type opts struct {
	strict bool
}

type Option func(*opts)

// Strict enables pedantic checks such as COMMENT_SPACE.
func Strict(v bool) Option {
	return func(o *opts) { o.strict = v }
}

// Parse tokenizes d and groups the tokens into a stream of document
// trees. Syntax errors are recorded on the documents; Parse itself
// never fails.
func Parse(d []byte, o ...Option) *Stream {
	op := &opts{}
	for _, f := range o {
		f(op)
	}
	toks, posDoc := token.Tokenize(d)
	p := &parser{
		lines:  splitLines(toks),
		posDoc: posDoc,
		strict: op.strict,
	}
	st := p.stream()
	if debug.Parse() {
		debug.Logf("parse: %d tokens, %d lines, %d docs", len(toks), len(p.lines), len(st.Docs))
	}
	return st
}

type parser struct {
	lines  []line
	li, ti int
	posDoc *token.PosDoc
	doc    *Document
	strict bool
}

func (p *parser) eof() bool {
	return p.li >= len(p.lines)
}

func (p *parser) curLine() *line {
	return &p.lines[p.li]
}

func (p *parser) peek() *token.Token {
	if p.eof() {
		return nil
	}
	ln := p.curLine()
	if p.ti >= len(ln.toks) {
		return nil
	}
	return &ln.toks[p.ti]
}

func (p *parser) bump() *token.Token {
	t := p.peek()
	if t != nil {
		p.ti++
	}
	return t
}

func (p *parser) lineDone() bool {
	return p.eof() || p.ti >= len(p.curLine().toks)
}

func (p *parser) advanceLine() {
	p.li++
	p.ti = 0
}

func (p *parser) offset() int {
	if t := p.peek(); t != nil {
		return t.Pos.I
	}
	if p.eof() {
		return p.posDoc.Len()
	}
	return p.curLine().start
}

func (p *parser) errorf(code ir.ErrorCode, offset int, format string, args ...any) {
	if p.doc != nil {
		p.doc.addError(code, offset, format, args...)
	}
}

// stream parses the whole input.
func (p *parser) stream() *Stream {
	st := &Stream{PosDoc: p.posDoc}
	content := false
	for _, ln := range p.lines {
		if !ln.blank() {
			content = true
			break
		}
	}
	if !content {
		st.Empty = true
		return st
	}

	var (
		pendingDirs     []token.Token
		pendingComments []string
		sawDirective    bool
	)
	for !p.eof() {
		ln := p.curLine()
		if ln.blank() {
			p.advanceLine()
			continue
		}
		first := ln.first()
		switch first.Type {
		case token.TDirective:
			pendingDirs = append(pendingDirs, *first)
			sawDirective = true
			p.advanceLine()
			continue
		case token.TComment:
			if ln.commentOnly() {
				// comment lines ahead of a document lead its root node
				pendingComments = append(pendingComments, string(first.Bytes))
				p.advanceLine()
				continue
			}
		case token.TDocEnd:
			// stray document end
			p.advanceLine()
			continue
		}

		doc := &Document{Start: first.Pos.I}
		p.doc = doc
		for i := range pendingDirs {
			v, tags := parseDirective(&pendingDirs[i], doc)
			if v != "" {
				doc.Version = v
			}
			for h, pre := range tags {
				if doc.TagHandles == nil {
					doc.TagHandles = map[string]string{}
				}
				doc.TagHandles[h] = pre
			}
		}
		if first.Type == token.TDocStart {
			doc.HasDirectivesEnd = true
			p.bump()
			if p.lineDone() {
				p.advanceLine()
			}
		} else if sawDirective {
			doc.addError(ir.CodeMissingChar, first.Pos.I,
				"missing --- after directives")
		}
		pendingDirs, sawDirective = nil, false

		doc.Root = p.parseNode(-1, true)
		if len(pendingComments) > 0 {
			doc.Root.Props.CommentBefore = append(pendingComments, doc.Root.Props.CommentBefore...)
			pendingComments = nil
		}
		p.finishDoc(doc)
		st.Docs = append(st.Docs, doc)
		p.doc = nil
	}
	return st
}

// finishDoc consumes trailing comments and the optional "..." marker,
// reporting content left over after the document's root node.
func (p *parser) finishDoc(doc *Document) {
	for !p.eof() {
		ln := p.curLine()
		if p.ti == 0 && (ln.blank() || ln.commentOnly()) {
			p.advanceLine()
			continue
		}
		t := p.peek()
		if t == nil {
			p.advanceLine()
			continue
		}
		switch t.Type {
		case token.TDocEnd:
			doc.HasDocEnd = true
			p.bump()
			if p.lineDone() {
				p.advanceLine()
			}
			doc.End = t.End()
			return
		case token.TDocStart:
			if p.ti == 0 {
				doc.End = t.Pos.I
				return
			}
		case token.TDirective:
			doc.End = t.Pos.I
			return
		case token.TFlowErrorEnd:
			p.bump()
			continue
		}
		doc.addError(ir.CodeUnexpectedToken, t.Pos.I,
			"unexpected %s %q after document contents", t.Type, t.Bytes)
		p.advanceLine()
	}
	doc.End = p.posDoc.Len()
}

// collectProps gathers leading blank lines, comment lines, and anchor
// and tag tokens ahead of a node.
func (p *parser) collectProps() Props {
	props := Props{propLine: -1}
	for !p.eof() {
		ln := p.curLine()
		if p.ti == 0 {
			if ln.blank() {
				if len(props.CommentBefore) == 0 {
					props.SpaceBefore = true
				}
				p.advanceLine()
				continue
			}
			if ln.commentOnly() {
				props.CommentBefore = append(props.CommentBefore, string(ln.toks[0].Bytes))
				p.advanceLine()
				continue
			}
		}
		t := p.peek()
		if t == nil {
			p.advanceLine()
			continue
		}
		switch t.Type {
		case token.TAnchor:
			if props.Anchor != nil {
				p.errorf(ir.CodeMultipleAnchors, t.Pos.I,
					"a node can have at most one anchor")
			}
			props.Anchor = t
			props.propLine = p.li
			p.bump()
			continue
		case token.TTag:
			if props.Tag != nil {
				p.errorf(ir.CodeMultipleTags, t.Pos.I,
					"a node can have at most one tag")
			}
			props.Tag = t
			props.propLine = p.li
			p.bump()
			continue
		case token.TFlowErrorEnd:
			p.errorf(ir.CodeMissingChar, t.Pos.I, "missing closing quote")
			p.bump()
			continue
		}
		break
	}
	return props
}

func (p *parser) emptyNode(props Props) *Node {
	off := p.offset()
	return &Node{Kind: EmptyKind, Props: props, Start: off, End: off}
}

// parseNode parses one node whose content must lie deeper than
// parentIndent. With seqAtParent, a block sequence is also accepted at
// parentIndent itself (seq-as-map-value layout).
func (p *parser) parseNode(parentIndent int, seqAtParent bool) *Node {
	props := p.collectProps()
	if p.eof() {
		return p.emptyNode(props)
	}
	t := p.peek()
	ln := p.curLine()
	if p.ti == 0 {
		switch t.Type {
		case token.TDocStart, token.TDocEnd:
			if ln.indent == 0 {
				return p.emptyNode(props)
			}
		}
		if ln.indent <= parentIndent {
			if !(seqAtParent && t.Type == token.TSeqItem && ln.indent == parentIndent) {
				return p.emptyNode(props)
			}
		}
	}

	switch t.Type {
	case token.TSeqItem:
		return p.parseBlockSeq(t.Pos.Col(), props)

	case token.TBlockScalarHeader:
		return p.parseBlockScalar(props)

	case token.TFlowMapStart, token.TFlowSeqStart:
		n := p.parseFlow(props)
		if nt := p.peek(); nt != nil && nt.Type == token.TMapValue {
			// the properties already live on the key node
			return p.parseBlockMap(n.Indent, Props{propLine: -1}, n)
		}
		return n

	case token.TExplicitKey:
		return p.parseBlockMap(t.Pos.Col(), props, nil)

	case token.TAlias:
		a := p.aliasNode(props)
		if nt := p.peek(); nt != nil && nt.Type == token.TMapValue {
			return p.parseBlockMap(a.Indent, Props{propLine: -1}, a)
		}
		return a

	case token.TScalar, token.TSingleQuoted, token.TDoubleQuoted:
		if p.mapValueAhead() {
			return p.parseBlockMap(t.Pos.Col(), props, nil)
		}
		return p.parseScalar(props, parentIndent)

	case token.TMapValue:
		// a keyless mapping entry, e.g. ": value"
		return p.parseBlockMap(t.Pos.Col(), props, p.emptyNode(Props{propLine: -1}))

	case token.TFlowMapEnd, token.TFlowSeqEnd, token.TComma:
		p.errorf(ir.CodeUnexpectedToken, t.Pos.I, "unexpected %q", t.Bytes)
		p.bump()
		return p.emptyNode(props)

	case token.TDirective:
		p.errorf(ir.CodeBadDirective, t.Pos.I,
			"directives are only allowed before ---")
		p.advanceLine()
		return p.emptyNode(props)

	default:
		p.errorf(ir.CodeUnexpectedToken, t.Pos.I,
			"unexpected %s %q", t.Type, t.Bytes)
		p.bump()
		return p.emptyNode(props)
	}
}

// mapValueAhead reports whether the scalar at the cursor is followed
// by ": " on the same line, making it an implicit key.
func (p *parser) mapValueAhead() bool {
	ln := p.curLine()
	if p.ti+1 >= len(ln.toks) {
		return false
	}
	return ln.toks[p.ti+1].Type == token.TMapValue
}

func (p *parser) aliasNode(props Props) *Node {
	t := p.bump()
	n := &Node{
		Kind:   AliasKind,
		Props:  props,
		Alias:  t,
		Start:  t.Pos.I,
		End:    t.End(),
		Indent: t.Pos.Col(),
	}
	p.takeLineComment(n)
	return n
}

// parseScalar parses a flow scalar, joining the continuation lines of
// a multi-line plain scalar.
func (p *parser) parseScalar(props Props, parentIndent int) *Node {
	t := p.bump()
	n := &Node{
		Kind:   FlowScalarKind,
		Props:  props,
		Tokens: []token.Token{*t},
		Start:  t.Pos.I,
		End:    t.End(),
		Indent: t.Pos.Col(),
	}
	if t.Type == token.TScalar && p.lineDone() {
		p.joinPlainLines(n, parentIndent)
	}
	p.takeLineComment(n)
	return n
}

// joinPlainLines folds the following more-indented plain-scalar lines
// into n.
func (p *parser) joinPlainLines(n *Node, parentIndent int) {
	for {
		li, ti := p.li, p.ti
		p.advanceLine()
		// skip blank lines; they fold into the scalar as breaks
		for !p.eof() && p.curLine().blank() {
			p.advanceLine()
		}
		if p.eof() {
			p.li, p.ti = li, ti
			return
		}
		ln := p.curLine()
		if ln.indent <= parentIndent && !(parentIndent < 0 && ln.indent == 0) {
			p.li, p.ti = li, ti
			return
		}
		ft := ln.first()
		if ft.Type != token.TScalar {
			p.li, p.ti = li, ti
			return
		}
		if len(ln.toks) > 1 && ln.toks[1].Type == token.TMapValue {
			p.li, p.ti = li, ti
			return
		}
		if parentIndent < 0 && ln.indent == 0 && p.docMarkerish(ft) {
			p.li, p.ti = li, ti
			return
		}
		p.bump()
		n.Tokens = append(n.Tokens, *ft)
		n.End = ft.End()
		if !p.lineDone() {
			return
		}
	}
}

func (p *parser) docMarkerish(t *token.Token) bool {
	return bytes.Equal(t.Bytes, []byte("---")) || bytes.Equal(t.Bytes, []byte("..."))
}

// takeLineComment attaches a trailing same-line comment to n.
func (p *parser) takeLineComment(n *Node) {
	t := p.peek()
	if t == nil || t.Type != token.TComment {
		return
	}
	p.commentSpaceCheck(t)
	n.Props.Comment = string(t.Bytes)
	p.bump()
}

// commentSpaceCheck reports strict-mode comments glued to the previous
// token.
func (p *parser) commentSpaceCheck(t *token.Token) {
	if !p.strict || p.ti == 0 {
		return
	}
	prev := p.curLine().toks[p.ti-1]
	if prev.End() == t.Pos.I {
		p.errorf(ir.CodeCommentSpace, t.Pos.I,
			"comments must be separated from other tokens by white space")
	}
}

func (p *parser) parseBlockScalar(props Props) *Node {
	// the body's base indent is the header line's indent, not the
	// header token's column
	baseIndent := p.curLine().indent
	h := p.bump()
	n := &Node{
		Kind:   BlockScalarKind,
		Props:  props,
		Header: h,
		Start:  h.Pos.I,
		End:    h.End(),
		Indent: baseIndent,
	}
	p.takeLineComment(n)
	if !p.lineDone() {
		t := p.peek()
		p.errorf(ir.CodeUnexpectedToken, t.Pos.I,
			"unexpected %q after block scalar header", t.Bytes)
	}
	p.advanceLine()
	if !p.eof() && p.ti == 0 {
		if ft := p.curLine().first(); ft != nil && ft.Type == token.TBlockScalar {
			n.Body = p.bump()
			n.End = n.Body.End()
			if p.lineDone() {
				p.advanceLine()
			}
		}
	}
	return n
}

func (p *parser) parseBlockSeq(indent int, props Props) *Node {
	s := &Node{
		Kind:   BlockSeqKind,
		Props:  props,
		Indent: indent,
		Start:  p.offset(),
	}
	first := true
	for {
		var itemProps Props
		if !first {
			itemProps = p.collectProps()
		}
		if p.eof() {
			break
		}
		t := p.peek()
		if t == nil || t.Type != token.TSeqItem {
			break
		}
		if p.ti == 0 && p.curLine().indent != indent {
			break
		}
		if p.ti != 0 && t.Pos.Col() != indent && !first {
			break
		}
		p.bump()
		item := p.parseNode(indent, false)
		mergeProps(&item.Props, itemProps)
		s.Values = append(s.Values, item)
		s.End = item.End
		first = false
	}
	if s.End < s.Start {
		s.End = s.Start
	}
	return s
}

// parseBlockMap parses a block mapping whose keys sit at indent. When
// firstKey is non-nil it was already parsed and the cursor is on its
// ":" token.
func (p *parser) parseBlockMap(indent int, mapProps Props, firstKey *Node) *Node {
	m := &Node{
		Kind:   BlockMapKind,
		Indent: indent,
		Start:  p.offset(),
	}
	var keyProps Props
	keyProps.propLine = -1
	// properties on the first key's own line belong to the key, not
	// the map
	if mapProps.propLine == p.li {
		keyProps = mapProps
		keyProps.CommentBefore = nil
		keyProps.SpaceBefore = false
		mapProps.Anchor = nil
		mapProps.Tag = nil
	}
	m.Props = mapProps
	if firstKey != nil {
		m.Start = firstKey.Start
	}

	first := true
	for {
		var kp Props
		kp.propLine = -1
		var key *Node
		if first && firstKey != nil {
			key = firstKey
			kp = keyProps
		} else {
			if first {
				kp = keyProps
			} else {
				kp = p.collectProps()
			}
			if p.eof() {
				if hasProps(kp) {
					m.Items = append(m.Items, &Item{Value: p.emptyNode(kp)})
				}
				break
			}
			t := p.peek()
			if t == nil {
				break
			}
			if p.ti == 0 {
				ln := p.curLine()
				if ln.indent < indent {
					break
				}
				if ln.indent > indent {
					p.errorf(ir.CodeUnexpectedToken, t.Pos.I,
						"bad indentation of a mapping entry")
					p.advanceLine()
					continue
				}
				switch t.Type {
				case token.TDocStart, token.TDocEnd:
					if ln.indent == 0 {
						goto done
					}
				}
			}
			switch t.Type {
			case token.TExplicitKey:
				p.bump()
				key = p.parseNode(indent, false)
				mergeProps(&key.Props, kp)
				// the value, if any, is a ":" line at the same indent
				sep := p.collectProps()
				if !p.eof() && p.ti == 0 && p.curLine().indent == indent {
					if vt := p.peek(); vt != nil && vt.Type == token.TMapValue {
						p.bump()
						val := p.parseNode(indent, true)
						mergeProps(&val.Props, sep)
						m.Items = append(m.Items, &Item{Key: key, Value: val, Explicit: true})
						m.End = val.End
						first = false
						continue
					}
				}
				m.Items = append(m.Items, &Item{Key: key, Explicit: true,
					Value: p.emptyNode(sep)})
				m.End = key.End
				first = false
				continue
			default:
				key = p.parseMapKey(kp)
				if key == nil {
					goto done
				}
			}
		}

		// expect the value indicator
		if t := p.peek(); t == nil || t.Type != token.TMapValue {
			off := key.End
			if t != nil {
				off = t.Pos.I
			}
			p.errorf(ir.CodeMissingChar, off,
				"implicit map keys need to be followed by map values")
			m.Items = append(m.Items, &Item{Key: key})
			if !p.lineDone() {
				p.advanceLine()
			}
			first = false
			continue
		}
		p.bump()
		val := p.parseNode(indent, true)
		m.Items = append(m.Items, &Item{Key: key, Value: val})
		m.End = val.End
		first = false
	}
done:
	if m.End < m.Start {
		m.End = m.Start
	}
	return m
}

// parseMapKey parses an implicit key: a single-line scalar, alias or
// flow collection.
func (p *parser) parseMapKey(props Props) *Node {
	t := p.peek()
	if t == nil {
		return nil
	}
	switch t.Type {
	case token.TScalar, token.TSingleQuoted, token.TDoubleQuoted:
		p.bump()
		n := &Node{
			Kind:   FlowScalarKind,
			Props:  props,
			Tokens: []token.Token{*t},
			Start:  t.Pos.I,
			End:    t.End(),
			Indent: t.Pos.Col(),
		}
		if bytes.IndexByte(t.Bytes, '\n') >= 0 {
			p.errorf(ir.CodeMultilineKey, t.Pos.I,
				"implicit keys need to be on a single line")
		}
		if len(t.Bytes) > 1024 {
			p.errorf(ir.CodeKeyOver1024, t.Pos.I,
				"the : indicator must be at most 1024 chars after the start of an implicit key")
		}
		return n
	case token.TAlias:
		return p.aliasNode(props)
	case token.TFlowMapStart, token.TFlowSeqStart:
		return p.parseFlow(props)
	case token.TBlockScalarHeader:
		p.errorf(ir.CodeBlockAsImplicitKey, t.Pos.I,
			"a block scalar cannot be used as an implicit key")
		return p.parseBlockScalar(props)
	default:
		p.errorf(ir.CodeUnexpectedToken, t.Pos.I,
			"unexpected %s %q in mapping", t.Type, t.Bytes)
		p.bump()
		return nil
	}
}

// parseFlow parses a flow collection from its opening bracket.
func (p *parser) parseFlow(props Props) *Node {
	open := p.bump()
	n := &Node{
		Kind:   FlowCollectionKind,
		Props:  props,
		Start:  open.Pos.I,
		End:    open.End(),
		Indent: open.Pos.Col(),
	}
	var closeType token.Type
	if open.Type == token.TFlowMapStart {
		n.Flow = '{'
		closeType = token.TFlowMapEnd
	} else {
		n.Flow = '['
		closeType = token.TFlowSeqEnd
	}

	for {
		itemProps := p.flowSkip()
		if p.eof() {
			p.errorf(ir.CodeMissingChar, p.posDoc.Len(),
				"expected flow collection to end with %c", flowClose(n.Flow))
			return n
		}
		t := p.peek()
		switch t.Type {
		case closeType:
			p.bump()
			n.End = t.End()
			p.takeLineComment(n)
			return n
		case token.TFlowMapEnd, token.TFlowSeqEnd:
			p.errorf(ir.CodeUnexpectedToken, t.Pos.I,
				"unexpected %q in flow collection", t.Bytes)
			p.bump()
			n.End = t.End()
			return n
		case token.TComma:
			p.bump()
			continue
		case token.TFlowErrorEnd:
			p.errorf(ir.CodeMissingChar, t.Pos.I, "missing closing quote")
			p.bump()
			continue
		case token.TExplicitKey:
			p.bump()
			key := p.parseFlowItem(p.collectFlowProps(itemProps))
			p.flowSkip()
			var val *Node
			if vt := p.peek(); vt != nil && vt.Type == token.TMapValue {
				p.bump()
				p.flowSkip()
				val = p.parseFlowItem(Props{propLine: -1})
			} else {
				val = p.emptyNode(Props{propLine: -1})
			}
			n.Items = append(n.Items, &Item{Key: key, Value: val, Explicit: true})
			continue
		case token.TMapValue:
			p.bump()
			p.flowSkip()
			val := p.parseFlowItem(Props{propLine: -1})
			n.Items = append(n.Items, &Item{Key: p.emptyNode(itemProps), Value: val})
			continue
		}

		item := p.parseFlowItem(p.collectFlowProps(itemProps))
		if vt := p.peek(); vt != nil && vt.Type == token.TMapValue {
			if vt.Pos.I-item.Start > 1024 {
				p.errorf(ir.CodeKeyOver1024, item.Start,
					"the : indicator must be at most 1024 chars after the start of an implicit key")
			}
			if item.Kind == FlowScalarKind && bytes.IndexByte(item.Tokens[0].Bytes, '\n') >= 0 {
				p.errorf(ir.CodeMultilineKey, item.Start,
					"implicit keys of flow sequence pairs need to be on a single line")
			}
			p.bump()
			p.flowSkip()
			val := p.parseFlowItem(Props{propLine: -1})
			n.Items = append(n.Items, &Item{Key: item, Value: val})
		} else {
			n.Items = append(n.Items, &Item{Value: item})
		}
	}
}

// flowSkip crosses line breaks, blanks and comments inside a flow
// collection, returning any properties gathered on the way.
func (p *parser) flowSkip() Props {
	props := Props{propLine: -1}
	for !p.eof() {
		if p.lineDone() {
			p.advanceLine()
			continue
		}
		ln := p.curLine()
		if p.ti == 0 && ln.blank() {
			props.SpaceBefore = true
			p.advanceLine()
			continue
		}
		t := p.peek()
		if t.Type == token.TComment {
			if p.ti == 0 && ln.commentOnly() {
				props.CommentBefore = append(props.CommentBefore, string(t.Bytes))
				p.advanceLine()
				continue
			}
			p.commentSpaceCheck(t)
			p.bump()
			continue
		}
		break
	}
	return props
}

// collectFlowProps reads anchor and tag tokens for a flow item.
func (p *parser) collectFlowProps(base Props) Props {
	for {
		t := p.peek()
		if t == nil {
			if p.eof() {
				return base
			}
			p.flowSkip()
			continue
		}
		switch t.Type {
		case token.TAnchor:
			if base.Anchor != nil {
				p.errorf(ir.CodeMultipleAnchors, t.Pos.I,
					"a node can have at most one anchor")
			}
			base.Anchor = t
			base.propLine = p.li
			p.bump()
			continue
		case token.TTag:
			if base.Tag != nil {
				p.errorf(ir.CodeMultipleTags, t.Pos.I,
					"a node can have at most one tag")
			}
			base.Tag = t
			base.propLine = p.li
			p.bump()
			continue
		}
		return base
	}
}

// parseFlowItem parses a single value inside a flow collection.
func (p *parser) parseFlowItem(props Props) *Node {
	t := p.peek()
	if t == nil {
		return p.emptyNode(props)
	}
	switch t.Type {
	case token.TScalar, token.TSingleQuoted, token.TDoubleQuoted:
		p.bump()
		if t.Type == token.TScalar && len(t.Bytes) > 0 {
			switch t.Bytes[0] {
			case '|', '>':
				p.errorf(ir.CodeBlockInFlow, t.Pos.I,
					"block scalars are not allowed in flow collections")
			}
		}
		n := &Node{
			Kind:   FlowScalarKind,
			Props:  props,
			Tokens: []token.Token{*t},
			Start:  t.Pos.I,
			End:    t.End(),
			Indent: t.Pos.Col(),
		}
		return n
	case token.TAlias:
		a := p.bump()
		return &Node{
			Kind:   AliasKind,
			Props:  props,
			Alias:  a,
			Start:  a.Pos.I,
			End:    a.End(),
			Indent: a.Pos.Col(),
		}
	case token.TFlowMapStart, token.TFlowSeqStart:
		return p.parseFlow(props)
	case token.TComma, token.TFlowMapEnd, token.TFlowSeqEnd, token.TMapValue:
		return p.emptyNode(props)
	default:
		p.errorf(ir.CodeUnexpectedToken, t.Pos.I,
			"unexpected %s %q in flow collection", t.Type, t.Bytes)
		p.bump()
		return p.emptyNode(props)
	}
}

func flowClose(open byte) byte {
	if open == '{' {
		return '}'
	}
	return ']'
}

func mergeProps(dst *Props, src Props) {
	if src.Anchor != nil && dst.Anchor == nil {
		dst.Anchor = src.Anchor
	}
	if src.Tag != nil && dst.Tag == nil {
		dst.Tag = src.Tag
	}
	if len(src.CommentBefore) > 0 {
		dst.CommentBefore = append(src.CommentBefore, dst.CommentBefore...)
	}
	if src.SpaceBefore {
		dst.SpaceBefore = true
	}
}

func hasProps(p Props) bool {
	return p.Anchor != nil || p.Tag != nil || len(p.CommentBefore) > 0
}
