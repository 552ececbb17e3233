package encode

import (
	"fmt"
	"io"
	"strings"

	"github.com/yamlkit/yamlkit/debug"
	"github.com/yamlkit/yamlkit/ir"
	"github.com/yamlkit/yamlkit/schema"
)

// Encode serializes a document to w. Constraint violations (bad
// indent, non-pair map items, forbidden simple keys, unresolved
// aliases) fail before any output is written.
func Encode(doc *ir.Document, w io.Writer, opts ...Option) error {
	out, err := String(doc, opts...)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// String renders a document to a string ending in a single newline.
func String(doc *ir.Document, opts ...Option) (string, error) {
	o := defaultOpts()
	for _, f := range opts {
		f(o)
	}
	if o.indent <= 0 {
		return "", fmt.Errorf("%w: %d", ErrBadIndent, o.indent)
	}
	es := &encState{
		opts:           o,
		doc:            doc,
		emitted:        map[*ir.Node]bool{},
		emittedAnchors: map[string]bool{},
	}
	if doc.Contents != nil {
		es.anchors = assignAnchors(doc.Contents, o.anchorPrefix)
	}
	if debug.Encode() {
		debug.Logf("encode: %d shared nodes, indent=%d width=%d",
			len(es.anchors), o.indent, o.lineWidth)
	}
	return es.document()
}

// MustString renders a document, panicking on constraint violations.
func MustString(doc *ir.Document, opts ...Option) string {
	s, err := String(doc, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

type encState struct {
	opts *encOpts
	doc  *ir.Document

	anchors        map[*ir.Node]string
	emitted        map[*ir.Node]bool
	emittedAnchors map[string]bool
}

func (es *encState) version() string {
	if es.doc.Directives != nil && es.doc.Directives.Version != "" {
		return es.doc.Directives.Version
	}
	if es.doc.Schema != nil {
		return es.doc.Schema.Version
	}
	return "1.2"
}

func (es *encState) step() string {
	return strings.Repeat(" ", es.opts.indent)
}

func (es *encState) document() (string, error) {
	marker := es.doc.DirectivesEndMarker
	if es.opts.directivesEndMarker != nil {
		marker = *es.opts.directivesEndMarker
	}
	if es.doc.Contents == nil {
		if marker {
			return "---\n", nil
		}
		return es.opts.nullStr + "\n", nil
	}
	c := sctx{root: true}
	props, body, err := es.renderNode(es.doc.Contents, c)
	if err != nil {
		return "", err
	}
	var out string
	switch {
	case props != "" && isBlockBody(es.doc.Contents, body):
		out = props + "\n" + body
	case props != "":
		out = props + " " + body
	default:
		out = body
	}
	if cb := es.doc.Contents.CommentBefore; cb != "" {
		out = commentLines(cb, "") + "\n" + out
	}
	if cm := es.doc.Contents.Comment; cm != "" && !strings.Contains(out, "\n") {
		out += " #" + commentText(cm)
	}
	if marker {
		if strings.Contains(out, "\n") || isBlockBody(es.doc.Contents, body) {
			out = "---\n" + out
		} else {
			out = "--- " + out
		}
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, nil
}

// isBlockBody reports whether a node rendered as a block collection,
// needing properties on their own line and value placement on the
// next. Aliases to collections render inline.
func isBlockBody(n *ir.Node, body string) bool {
	switch n.Type {
	case ir.MapType, ir.SeqType:
		return !n.Flow && body != "{}" && body != "[]" &&
			!strings.HasPrefix(body, "*")
	}
	return false
}

// renderNode renders a node, returning its properties (anchor and
// tag) separately so callers can position them.
func (es *encState) renderNode(n *ir.Node, c sctx) (string, string, error) {
	if n == nil {
		return "", es.opts.nullStr, nil
	}
	if n.Type == ir.AliasType {
		if n.Tag != "" {
			return "", "", fmt.Errorf("%w: alias nodes cannot have tags", ErrEncoding)
		}
		if es.opts.verifyAliasOrder && !es.emittedAnchors[n.AliasOf] {
			return "", "", fmt.Errorf("%w: *%s", ErrAliasOrder, n.AliasOf)
		}
		return "", es.color(ir.AliasType, ValueColor, "*"+n.AliasOf), nil
	}
	if label, ok := es.anchors[n]; ok && es.emitted[n] {
		return "", es.color(ir.AliasType, ValueColor, "*"+label), nil
	}
	es.emitted[n] = true

	props := es.props(n)
	var (
		body string
		err  error
	)
	switch n.Type {
	case ir.ScalarType:
		body, err = es.stringifyScalar(n, c)
		if err == nil && !c.implicitKey {
			body = es.color(ir.ScalarType, ValueColor, body)
		}
	case ir.MapType:
		body, err = es.renderMap(n, c)
	case ir.SeqType:
		body, err = es.renderSeq(n, c)
	default:
		err = fmt.Errorf("%w: unknown node type %d", ErrEncoding, n.Type)
	}
	if err != nil {
		return "", "", err
	}
	return props, body, nil
}

// nodeInline renders a node with its properties joined in front,
// suitable for scalar and flow positions.
func (es *encState) nodeInline(n *ir.Node, c sctx) (string, error) {
	props, body, err := es.renderNode(n, c)
	if err != nil {
		return "", err
	}
	if props == "" {
		return body, nil
	}
	if isBlockBody(n, body) {
		return props + "\n" + c.indent + body, nil
	}
	return props + " " + body, nil
}

// props renders a node's anchor and tag, registering the anchor for
// alias-order verification.
func (es *encState) props(n *ir.Node) string {
	var parts []string
	label := n.Anchor
	if l, ok := es.anchors[n]; ok {
		label = l
	}
	if label != "" {
		es.emittedAnchors[label] = true
		parts = append(parts, es.color(n.Type, AnchorColor, "&"+label))
	}
	if t := es.tagString(n); t != "" {
		parts = append(parts, es.color(n.Type, TagColor, t))
	}
	return strings.Join(parts, " ")
}

// defaultTags never need explicit emission: rendering re-resolves
// them implicitly.
var defaultTags = map[string]bool{
	schema.TagStr:       true,
	schema.TagMap:       true,
	schema.TagSeq:       true,
	schema.TagNull:      true,
	schema.TagBool:      true,
	schema.TagInt:       true,
	schema.TagFloat:     true,
	schema.TagMerge:     true,
	schema.TagTimestamp: true,
}

func (es *encState) tagString(n *ir.Node) string {
	uri := n.Tag
	if uri == "" || defaultTags[uri] {
		return ""
	}
	if strings.HasPrefix(uri, "!") {
		return uri
	}
	if rest, ok := strings.CutPrefix(uri, "tag:yaml.org,2002:"); ok {
		return "!!" + rest
	}
	if es.doc.Directives != nil {
		for handle, prefix := range es.doc.Directives.Tags {
			if handle == "!" || handle == "!!" {
				continue
			}
			if rest, ok := strings.CutPrefix(uri, prefix); ok {
				return handle + rest
			}
		}
	}
	return "!<" + uri + ">"
}

func (es *encState) renderMap(n *ir.Node, c sctx) (string, error) {
	if n.Flow || c.inFlow || len(n.Items) == 0 {
		return es.flowMap(n, c)
	}
	return es.blockMap(n, c)
}

func (es *encState) renderSeq(n *ir.Node, c sctx) (string, error) {
	if n.Flow || c.inFlow || len(n.Values) == 0 {
		return es.flowSeq(n, c)
	}
	return es.blockSeq(n, c)
}

func (es *encState) sortedItems(n *ir.Node) []*ir.Pair {
	if !es.opts.sortMapEntries {
		return n.Items
	}
	sorted := &ir.Node{Type: ir.MapType, Items: append([]*ir.Pair(nil), n.Items...)}
	sorted.SortItems(es.opts.sortCmp)
	return sorted.Items
}

func (es *encState) blockMap(n *ir.Node, c sctx) (string, error) {
	childIndent := c.indent + es.step()
	var b strings.Builder
	first := true
	for _, p := range es.sortedItems(n) {
		if p == nil {
			return "", ErrNotAPair
		}
		if !first {
			// fragments ending in breaks (keep-chomped block scalars)
			// already carry their line ending
			if !strings.HasSuffix(b.String(), "\n") {
				b.WriteString("\n")
			}
			b.WriteString(c.indent)
		}
		entry, err := es.blockMapEntry(p, c, childIndent)
		if err != nil {
			return "", err
		}
		b.WriteString(entry)
		first = false
	}
	return b.String(), nil
}

func (es *encState) blockMapEntry(p *ir.Pair, c sctx, childIndent string) (string, error) {
	var b strings.Builder
	if p.Key != nil {
		if p.Key.SpaceBefore {
			b.WriteString("\n" + c.indent)
		}
		if p.Key.CommentBefore != "" {
			b.WriteString(commentLines(p.Key.CommentBefore, c.indent))
			b.WriteString("\n" + c.indent)
		}
	}

	kc := sctx{indent: c.indent, implicitKey: true}
	keyStr := ""
	explicit := p.Key == nil
	var err error
	if p.Key != nil {
		if es.keyNeedsExplicit(p.Key) {
			explicit = true
		} else {
			keyStr, err = es.nodeInline(p.Key, kc)
			if err != nil {
				return "", err
			}
			if strings.Contains(keyStr, "\n") || len(keyStr) > 1024 {
				explicit = true
			}
		}
	}
	if explicit && es.opts.simpleKeys {
		return "", fmt.Errorf("%w", ErrSimpleKey)
	}

	if explicit {
		ec := sctx{indent: childIndent}
		keyBody := ""
		if p.Key != nil {
			keyBody, err = es.nodeInline(p.Key, ec)
			if err != nil {
				return "", err
			}
		}
		b.WriteString("? ")
		b.WriteString(keyBody)
		b.WriteString("\n" + c.indent + ":")
		val, err := es.blockMapValue(p.Value, c, childIndent)
		if err != nil {
			return "", err
		}
		b.WriteString(val)
		return b.String(), nil
	}

	b.WriteString(es.color(ir.MapType, FieldColor, keyStr))
	if p.Key != nil && p.Key.Comment != "" {
		// a commented key forces the value onto its own line
		b.WriteString(" #" + commentText(p.Key.Comment))
		b.WriteString("\n" + c.indent + ":")
	} else {
		b.WriteString(":")
	}
	val, err := es.blockMapValue(p.Value, c, childIndent)
	if err != nil {
		return "", err
	}
	b.WriteString(val)
	return b.String(), nil
}

// blockMapValue renders ": value" content after a key's colon.
func (es *encState) blockMapValue(v *ir.Node, c sctx, childIndent string) (string, error) {
	if v == nil {
		return "", nil
	}
	seqIndent := childIndent
	if !es.opts.indentSeq {
		seqIndent = c.indent
	}
	vc := sctx{indent: childIndent}
	if v.Type == ir.SeqType && !v.Flow {
		vc.indent = seqIndent
	}
	props, body, err := es.renderNode(v, vc)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if isBlockBody(v, body) {
		if v.CommentBefore != "" || props != "" {
			if props != "" {
				b.WriteString(" " + props)
			}
			if v.CommentBefore != "" {
				b.WriteString("\n" + commentLines(v.CommentBefore, vc.indent))
			}
			b.WriteString("\n" + vc.indent + body)
		} else {
			b.WriteString("\n" + vc.indent + body)
		}
	} else {
		b.WriteString(" ")
		if v.CommentBefore != "" {
			b.WriteString(commentLines(v.CommentBefore, vc.indent) + "\n" + vc.indent)
		}
		if props != "" {
			b.WriteString(props + " ")
		}
		b.WriteString(body)
	}
	if v.Comment != "" && !strings.Contains(b.String(), "\n") {
		b.WriteString(" #" + commentText(v.Comment))
	}
	return b.String(), nil
}

// keyNeedsExplicit reports keys that cannot render as implicit keys.
func (es *encState) keyNeedsExplicit(k *ir.Node) bool {
	switch k.Type {
	case ir.MapType, ir.SeqType:
		if !k.Flow {
			return true
		}
	case ir.ScalarType:
		if k.Style == ir.BlockLiteral || k.Style == ir.BlockFolded {
			return true
		}
		if s, ok := k.Value.(string); ok && strings.Contains(s, "\n") {
			return true
		}
	}
	return false
}

func (es *encState) blockSeq(n *ir.Node, c sctx) (string, error) {
	childIndent := c.indent + es.step()
	marker := "-" + strings.Repeat(" ", es.opts.indent-1)
	var b strings.Builder
	first := true
	for _, v := range n.Values {
		if !first {
			if !strings.HasSuffix(b.String(), "\n") {
				b.WriteString("\n")
			}
			b.WriteString(c.indent)
		}
		if v != nil && v.SpaceBefore && !first {
			b.WriteString("\n" + c.indent)
		}
		if v != nil && v.CommentBefore != "" {
			b.WriteString(commentLines(v.CommentBefore, c.indent))
			b.WriteString("\n" + c.indent)
		}
		vc := sctx{indent: childIndent}
		body, err := es.nodeInline(v, vc)
		if err != nil {
			return "", err
		}
		b.WriteString(marker)
		b.WriteString(body)
		if v != nil && v.Comment != "" && !strings.Contains(body, "\n") {
			b.WriteString(" #" + commentText(v.Comment))
		}
		first = false
	}
	return b.String(), nil
}

func (es *encState) flowMap(n *ir.Node, c sctx) (string, error) {
	if len(n.Items) == 0 {
		return "{}", nil
	}
	childIndent := c.indent + es.step()
	items := make([]string, 0, len(n.Items))
	forceMulti := false
	for _, p := range es.sortedItems(n) {
		if p == nil {
			return "", ErrNotAPair
		}
		entry, multi, err := es.flowPair(p, childIndent)
		if err != nil {
			return "", err
		}
		forceMulti = forceMulti || multi
		items = append(items, entry)
	}
	return es.flowWrap("{", "}", items, c, forceMulti), nil
}

func (es *encState) flowPair(p *ir.Pair, childIndent string) (string, bool, error) {
	kc := sctx{indent: childIndent, inFlow: true, implicitKey: true}
	vc := sctx{indent: childIndent, inFlow: true}
	multi := false
	var entry string
	if p.Key != nil {
		if p.Key.CommentBefore != "" || p.Key.Comment != "" {
			multi = true
		}
		k, err := es.nodeInline(p.Key, kc)
		if err != nil {
			return "", false, err
		}
		entry = k
	}
	if p.Value != nil {
		if p.Value.CommentBefore != "" || p.Value.Comment != "" {
			multi = true
		}
		v, err := es.nodeInline(p.Value, vc)
		if err != nil {
			return "", false, err
		}
		if p.Value.IsNull() && p.Key != nil && p.Value.Anchor == "" {
			// "{ key }" keeps implied nulls implicit
			return entry, multi, nil
		}
		if entry == "" {
			entry = ": " + v
		} else {
			entry += ": " + v
		}
	}
	return entry, multi, nil
}

func (es *encState) flowSeq(n *ir.Node, c sctx) (string, error) {
	if len(n.Values) == 0 {
		return "[]", nil
	}
	childIndent := c.indent + es.step()
	items := make([]string, 0, len(n.Values))
	forceMulti := false
	for _, v := range n.Values {
		vc := sctx{indent: childIndent, inFlow: true}
		body, err := es.nodeInline(v, vc)
		if err != nil {
			return "", err
		}
		if v != nil && (v.CommentBefore != "" || v.Comment != "") {
			forceMulti = true
		}
		items = append(items, body)
	}
	return es.flowWrap("[", "]", items, c, forceMulti), nil
}

// flowWrap lays out flow items on one line when they fit, otherwise
// one per line.
func (es *encState) flowWrap(open, close string, items []string, c sctx, forceMulti bool) string {
	oneline := open + " " + strings.Join(items, ", ") + " " + close
	if len(items) == 0 {
		oneline = open + close
	}
	multi := forceMulti
	if !multi && len(c.indent)+len(oneline) > es.opts.maxFlowStringSingleLineLength &&
		es.opts.lineWidth > 0 {
		multi = true
	}
	for _, it := range items {
		if strings.Contains(it, "\n") {
			multi = true
		}
	}
	if !multi {
		return oneline
	}
	childIndent := c.indent + es.step()
	var b strings.Builder
	b.WriteString(open)
	for i, it := range items {
		b.WriteString("\n" + childIndent + it)
		if i < len(items)-1 {
			b.WriteString(",")
		}
	}
	b.WriteString("\n" + c.indent + close)
	return b.String()
}

func commentText(s string) string {
	if s == "" || strings.HasPrefix(s, " ") || strings.HasPrefix(s, "#") {
		return s
	}
	return " " + s
}

// commentLines renders comment text as full "#" lines; continuation
// lines carry the given indent.
func commentLines(s, indent string) string {
	lines := strings.Split(s, "\n")
	for i, ln := range lines {
		if ln == "" {
			lines[i] = "#"
		} else {
			lines[i] = "#" + commentText(ln)
		}
	}
	return strings.Join(lines, "\n"+indent)
}
