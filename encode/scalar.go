package encode

import (
	"fmt"
	"strings"

	"github.com/yamlkit/yamlkit/ir"
	"github.com/yamlkit/yamlkit/schema"
	"github.com/yamlkit/yamlkit/token"
)

// sctx is the emission context of a single node.
type sctx struct {
	indent      string
	inFlow      bool
	implicitKey bool
	root        bool
}

// stringifyScalar renders a scalar node's value, without anchor or
// tag properties.
func (es *encState) stringifyScalar(n *ir.Node, c sctx) (string, error) {
	switch v := n.Value.(type) {
	case nil:
		// parsed null keeps its source form ("~") unless the caller
		// overrode the null rendering
		if n.Source != "" && es.opts.nullStr == "null" {
			if _, tag, err := es.resolveSource(n.Source); err == nil && tag == schema.TagNull {
				return n.Source, nil
			}
		}
		return es.opts.nullStr, nil
	case bool:
		if v {
			return es.opts.trueStr, nil
		}
		return es.opts.falseStr, nil
	case string:
		return es.stringifyString(v, n.Style, c)
	}

	sc := &schema.StringifyCtx{
		Format:            formatName(n.Format),
		MinFractionDigits: n.MinFractionDigits,
		Version:           es.version(),
	}
	tag := es.scalarTag(n)
	if tag != nil && tag.Stringify != nil {
		if text, ok := tag.Stringify(n.Value, sc); ok {
			// the text is the value's canonical source form; quoting
			// it would change its resolved type
			return text, nil
		}
	}
	switch n.Value.(type) {
	case int, int64:
		return schema.FormatInt(n.Value, sc), nil
	case float32, float64:
		var f float64
		if x, ok := n.Value.(float32); ok {
			f = float64(x)
		} else {
			f = n.Value.(float64)
		}
		if n.Format == ir.ExpFormat {
			return schema.FormatExp(f), nil
		}
		return schema.FormatFloat(f, n.MinFractionDigits), nil
	}
	if tag == nil {
		return "", fmt.Errorf("%w: tag not resolved for %T value", ErrUnrepresentable, n.Value)
	}
	return fmt.Sprint(n.Value), nil
}

func (es *encState) resolveSource(src string) (any, string, error) {
	if es.doc.Schema == nil {
		return src, schema.TagStr, nil
	}
	return es.doc.Schema.ResolveScalar(src)
}

// scalarTag resolves the tag definition claiming the node's value.
func (es *encState) scalarTag(n *ir.Node) *schema.Tag {
	s := es.doc.Schema
	if s == nil {
		return nil
	}
	if n.Tag != "" {
		if t := s.Lookup(n.Tag); t != nil {
			return t
		}
	}
	return s.TagFor(n.Value)
}

func formatName(f ir.NumberFormat) string {
	switch f {
	case ir.HexFormat:
		return "HEX"
	case ir.OctFormat:
		return "OCT"
	case ir.ExpFormat:
		return "EXP"
	default:
		return ""
	}
}

// stringifyString picks a style for string content under the §4.5
// precedence and renders it.
func (es *encState) stringifyString(s string, style ir.Style, c sctx) (string, error) {
	hasNL := strings.Contains(s, "\n")
	ctl := token.HasControl(s)

	// a top-level plain string that could be read as a document
	// marker is promoted to a block literal
	if c.root && !c.inFlow && !c.implicitKey && !ctl &&
		(strings.HasPrefix(s, "---") || strings.HasPrefix(s, "...")) &&
		(style == ir.AnyStyle || style == ir.Plain) {
		return es.blockScalarText(s, ir.BlockLiteral, c), nil
	}

	if style == ir.AnyStyle {
		style = es.opts.defaultStringType
		if c.implicitKey && es.opts.defaultKeyType != ir.AnyStyle {
			style = es.opts.defaultKeyType
		}
	}

	blockOK := !c.inFlow && !c.implicitKey && !ctl && s != "" && blockSafe(s)
	switch style {
	case ir.BlockLiteral, ir.BlockFolded:
		if blockOK {
			return es.blockScalarText(s, style, c), nil
		}
		// nearest legal style in flow context
		return es.doubleQuoted(s, c), nil

	case ir.QuoteSingle:
		if ctl {
			return es.doubleQuoted(s, c), nil
		}
		return es.singleQuoted(s, c), nil

	case ir.QuoteDouble:
		return es.doubleQuoted(s, c), nil

	default: // plain
		if !hasNL && es.plainOK(s, c) {
			width := es.contentWidth(c.indent)
			return foldLine(s, c.indent, width), nil
		}
		if hasNL && blockOK {
			return es.blockScalarText(s, ir.BlockLiteral, c), nil
		}
		return es.quoted(s, c), nil
	}
}

// plainOK reports whether s can be emitted as a plain scalar in this
// context without being misread.
func (es *encState) plainOK(s string, c sctx) bool {
	if s == "" {
		return false
	}
	if token.HasControl(s) || strings.ContainsAny(s, "\n\t") {
		return false
	}
	if s[0] == ' ' || s[len(s)-1] == ' ' {
		return false
	}
	switch s[0] {
	case '?', '-', ',', '[', ']', '{', '}', '&', '*', '|', '>', '!', '%', '@', '`', '#', ':', '\'', '"':
		// leading "-x" and "?x" are legal plain starts, but stay
		// conservative to match re-parsing everywhere
		return false
	}
	if strings.Contains(s, ": ") || strings.HasSuffix(s, ":") {
		return false
	}
	if strings.Contains(s, " #") {
		return false
	}
	if strings.HasPrefix(s, "---") || strings.HasPrefix(s, "...") {
		return false
	}
	if c.inFlow {
		if strings.ContainsAny(s, ",[]{}") || strings.Contains(s, ":") {
			return false
		}
	}
	if c.implicitKey && strings.Contains(s, ":") {
		return false
	}
	// never let plain output re-parse as another type
	if es.doc.Schema != nil {
		v, tag, err := es.doc.Schema.ResolveScalar(s)
		if err != nil || tag != schema.TagStr {
			return false
		}
		if _, ok := v.(string); !ok {
			return false
		}
	}
	return true
}

// quoted renders s in single or double quotes per the singleQuote
// preference and escape needs.
func (es *encState) quoted(s string, c sctx) string {
	if token.HasControl(s) {
		return es.doubleQuoted(s, c)
	}
	if es.opts.singleQuote && !strings.Contains(s, "\n") {
		return es.singleQuoted(s, c)
	}
	return es.doubleQuoted(s, c)
}

func (es *encState) singleQuoted(s string, c sctx) string {
	out := token.EscapeSingle(s)
	if c.implicitKey || strings.Contains(s, "\n") {
		return out
	}
	width := es.contentWidth(c.indent)
	return foldLine(out, c.indent, width)
}

func (es *encState) doubleQuoted(s string, c sctx) string {
	out := token.EscapeDouble(s, es.opts.doubleQuotedAsJSON)
	if c.implicitKey {
		return out
	}
	if len(out) < es.opts.doubleQuotedMinMultiLineLength {
		return out
	}
	width := es.contentWidth(c.indent)
	return foldLine(out, c.indent, width)
}

// blockSafe rejects content a block scalar cannot round-trip:
// whitespace-only lines with content and trailing spaces.
func blockSafe(s string) bool {
	for _, ln := range strings.Split(s, "\n") {
		if ln != strings.TrimRight(ln, " \t") {
			return false
		}
		if ln != "" && strings.TrimLeft(ln, " \t") == "" {
			return false
		}
	}
	return true
}

// blockScalarText renders s as a block scalar with header and
// chomping indicator.
func (es *encState) blockScalarText(s string, style ir.Style, c sctx) string {
	// content sits at the node's own indent; at the root a step is
	// forced so the body is more indented than the header
	indent := c.indent
	if indent == "" {
		indent = strings.Repeat(" ", es.opts.indent)
	}
	body := strings.TrimRight(s, "\n")
	trailing := len(s) - len(body)

	header := "|"
	if style == ir.BlockFolded {
		header = ">"
	}
	lines := strings.Split(body, "\n")
	if style == ir.BlockFolded {
		lines = foldedLines(lines, es.contentWidth(indent))
	}
	// an explicit indentation digit is needed when content starts
	// with whitespace
	if len(lines) > 0 && len(lines[0]) > 0 && (lines[0][0] == ' ' || lines[0][0] == '\t') {
		header += fmt.Sprintf("%d", es.opts.indent)
	}
	switch {
	case trailing == 0:
		header += "-"
	case trailing == 1:
		// clip
	default:
		header += "+"
	}

	var b strings.Builder
	b.WriteString(header)
	for _, ln := range lines {
		b.WriteByte('\n')
		if ln != "" {
			b.WriteString(indent)
			b.WriteString(ln)
		}
	}
	// keep chomping: the fragment self-terminates with all of its
	// trailing breaks; clip and strip leave the structural line
	// ending to the caller
	if trailing >= 2 {
		for k := 0; k < trailing; k++ {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// foldedLines converts literal content lines to folded form: each
// content break becomes a blank line (folding joins adjacent lines
// with a space), except at more-indented lines whose breaks survive
// as-is. Long lines wrap at width.
func foldedLines(lines []string, width int) []string {
	var out []string
	wrote := false
	pending := 0
	prevMore := false
	for _, ln := range lines {
		if ln == "" {
			pending++
			continue
		}
		more := ln[0] == ' ' || ln[0] == '\t'
		if wrote {
			// each content break needs a blank line to survive
			// folding, except a lone break at a more-indented line
			blanks := pending + 1
			if (more || prevMore) && pending == 0 {
				blanks = 0
			}
			for k := 0; k < blanks; k++ {
				out = append(out, "")
			}
		} else {
			for k := 0; k < pending; k++ {
				out = append(out, "")
			}
		}
		if more || width <= 0 || len(ln) <= width || !foldable(ln) {
			out = append(out, ln)
		} else {
			out = append(out, foldBlockLines([]string{ln}, width)...)
		}
		wrote = true
		prevMore = more
		pending = 0
	}
	return out
}
