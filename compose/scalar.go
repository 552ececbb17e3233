package compose

import (
	"strings"

	"github.com/yamlkit/yamlkit/ir"
	"github.com/yamlkit/yamlkit/parse"
	"github.com/yamlkit/yamlkit/schema"
	"github.com/yamlkit/yamlkit/token"
)

func (c *composer) emptyScalar(pn *parse.Node) *ir.Node {
	n := &ir.Node{Type: ir.ScalarType}
	uri := c.tagURI(pn)
	switch uri {
	case "", "!":
		return n
	}
	// an explicit tag on an empty node resolves the empty string
	c.resolveTagged(n, "", uri, pn.Start)
	return n
}

func (c *composer) flowScalar(pn *parse.Node) *ir.Node {
	n := &ir.Node{Type: ir.ScalarType}
	first := &pn.Tokens[0]
	switch first.Type {
	case token.TSingleQuoted:
		n.Style = ir.QuoteSingle
		s, err := token.UnquoteSingle(first.Bytes)
		if err != nil {
			c.errorf(ir.CodeMissingChar, first.Pos.I, err.Error())
		}
		c.resolveString(n, s, pn)
	case token.TDoubleQuoted:
		n.Style = ir.QuoteDouble
		s, err := token.UnquoteDouble(first.Bytes)
		if err != nil {
			c.errorf(ir.CodeMissingChar, first.Pos.I, err.Error())
		}
		c.resolveString(n, s, pn)
	default:
		n.Style = ir.Plain
		src := c.joinPlain(pn.Tokens)
		n.Source = src
		uri := c.tagURI(pn)
		switch uri {
		case "":
			c.resolvePlain(n, src, pn.Start)
		case "!":
			n.Value = src
			n.Tag = schema.TagStr
		default:
			c.resolveTagged(n, src, uri, pn.Start)
		}
	}
	return n
}

// resolveString finishes a quoted scalar: its value is the decoded
// string unless an explicit tag reinterprets it.
func (c *composer) resolveString(n *ir.Node, s string, pn *parse.Node) {
	uri := c.tagURI(pn)
	switch uri {
	case "", "!":
		n.Value = s
		return
	}
	c.resolveTagged(n, s, uri, pn.Start)
}

// joinPlain folds the lines of a multi-line plain scalar: one break
// becomes a space, k breaks become k-1 newlines.
func (c *composer) joinPlain(toks []token.Token) string {
	if len(toks) == 1 {
		return string(toks[0].Bytes)
	}
	var b strings.Builder
	prevLine := toks[0].Pos.Line()
	b.Write(toks[0].Bytes)
	for _, t := range toks[1:] {
		line := t.Pos.Line()
		gap := line - prevLine
		if gap <= 1 {
			b.WriteByte(' ')
		} else {
			for k := 1; k < gap; k++ {
				b.WriteByte('\n')
			}
		}
		b.Write(t.Bytes)
		prevLine = line
	}
	return b.String()
}

// resolvePlain matches untagged plain source against the schema.
func (c *composer) resolvePlain(n *ir.Node, src string, offset int) {
	v, tag, err := c.doc.Schema.ResolveScalar(src)
	if err != nil {
		c.errorf(ir.CodeTagResolveFailed, offset, err.Error())
		n.Value = src
		n.Tag = schema.TagStr
		return
	}
	n.Value = v
	if tag != schema.TagStr {
		n.Tag = tag
	}
	c.formatHints(n, src, tag)
}

// formatHints preserves the source's number notation so round-trips
// keep hex, octal and exponent forms.
func (c *composer) formatHints(n *ir.Node, src string, tag string) {
	s := strings.TrimLeft(src, "+-")
	switch tag {
	case schema.TagInt:
		switch {
		case strings.HasPrefix(s, "0x"):
			n.Format = ir.HexFormat
		case strings.HasPrefix(s, "0o"):
			n.Format = ir.OctFormat
		case len(s) > 1 && s[0] == '0' && s[1] >= '0' && s[1] <= '7':
			n.Format = ir.OctFormat
		}
	case schema.TagFloat:
		if strings.ContainsAny(s, "eE") {
			n.Format = ir.ExpFormat
		} else if dot := strings.IndexByte(s, '.'); dot >= 0 {
			frac := strings.TrimRight(s[dot+1:], "_")
			if strings.HasSuffix(frac, "0") {
				n.MinFractionDigits = len(frac)
			}
		}
	}
}

// resolveTagged applies an explicit tag to scalar source.
func (c *composer) resolveTagged(n *ir.Node, src string, uri string, offset int) {
	n.Tag = uri
	t := c.doc.Schema.Lookup(uri)
	if t == nil {
		if strings.HasPrefix(uri, "tag:yaml.org,2002:") {
			c.warnf(ir.CodeTagResolveFailed, offset, "unknown tag "+uri)
		}
		n.Value = src
		return
	}
	if t.Collection {
		c.errorf(ir.CodeTagResolveFailed, offset,
			"collection tag "+uri+" on a scalar")
		n.Value = src
		return
	}
	if t.Resolve == nil {
		n.Value = src
		return
	}
	v, err := t.Resolve(src)
	if err != nil {
		c.errorf(ir.CodeTagResolveFailed, offset, err.Error())
		n.Value = src
		return
	}
	n.Value = v
	c.formatHints(n, src, uri)
}

// blockScalar applies the header's chomping and indentation rules to
// the raw body.
func (c *composer) blockScalar(pn *parse.Node) *ir.Node {
	n := &ir.Node{Type: ir.ScalarType}
	header := string(pn.Header.Bytes)
	folded := header[0] == '>'
	if folded {
		n.Style = ir.BlockFolded
	} else {
		n.Style = ir.BlockLiteral
	}
	chomp := byte(0)
	explicit := 0
	for i := 1; i < len(header); i++ {
		switch ch := header[i]; ch {
		case '-', '+':
			chomp = ch
		default:
			explicit = int(ch - '0')
		}
	}

	var body string
	if pn.Body != nil {
		body = string(pn.Body.Bytes)
	}
	content, trailing := blockContent(body, pn.Indent, explicit, folded)
	switch chomp {
	case '-':
		// strip: no trailing newline
	case '+':
		content += trailing
	default:
		if content != "" {
			content += "\n"
		}
	}

	uri := c.tagURI(pn)
	switch uri {
	case "", "!":
		n.Value = content
	default:
		c.resolveTagged(n, content, uri, pn.Start)
	}
	return n
}

// blockContent strips indentation from raw block-scalar source and,
// for folded scalars, folds the line breaks. It returns the content
// without trailing newlines plus the run of trailing breaks.
func blockContent(body string, baseIndent, explicit int, folded bool) (string, string) {
	if body == "" {
		return "", ""
	}
	raw := strings.Split(strings.TrimSuffix(body, "\n"), "\n")
	indent := -1
	if explicit > 0 {
		indent = baseIndent + explicit
	} else {
		for _, ln := range raw {
			if strings.TrimRight(ln, " \t") == "" {
				continue
			}
			ws := len(ln) - len(strings.TrimLeft(ln, " "))
			indent = ws
			break
		}
	}
	if indent < 0 {
		indent = baseIndent + 1
	}
	lines := make([]string, len(raw))
	for i, ln := range raw {
		if len(ln) >= indent {
			lines[i] = ln[indent:]
		} else {
			lines[i] = strings.TrimLeft(ln, " ")
		}
	}

	// split off trailing blank lines; they only matter for keep
	// chomping
	end := len(lines)
	for end > 0 && lines[end-1] == "" {
		end--
	}
	trailing := strings.Repeat("\n", len(lines)-end+1)
	lines = lines[:end]
	if len(lines) == 0 {
		return "", trailing
	}

	if !folded {
		return strings.Join(lines, "\n"), trailing
	}

	// folded: single breaks between same-indent lines become spaces,
	// k+1 breaks become k newlines, and breaks adjacent to
	// more-indented lines are kept
	var b strings.Builder
	prevMore := false
	wrote := false
	blanks := 0
	for _, ln := range lines {
		if ln == "" {
			blanks++
			continue
		}
		more := strings.HasPrefix(ln, " ") || strings.HasPrefix(ln, "\t")
		switch {
		case !wrote:
			b.WriteString(strings.Repeat("\n", blanks))
		case blanks > 0:
			b.WriteString(strings.Repeat("\n", blanks))
		case more || prevMore:
			b.WriteByte('\n')
		default:
			b.WriteByte(' ')
		}
		b.WriteString(ln)
		wrote = true
		prevMore = more
		blanks = 0
	}
	return b.String(), trailing
}
