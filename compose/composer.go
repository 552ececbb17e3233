package compose

import (
	"strings"

	"github.com/yamlkit/yamlkit/ir"
	"github.com/yamlkit/yamlkit/parse"
	"github.com/yamlkit/yamlkit/schema"
	"github.com/yamlkit/yamlkit/token"
)

type opts struct {
	schemaName    string
	version       string
	customTags    []*schema.Tag
	schema        *schema.Schema
	maxAliasCount int
}

type Option func(*opts)

// WithSchema selects a schema preset by name (failsafe, json, core,
// yaml-1.1).
func WithSchema(name string) Option {
	return func(o *opts) { o.schemaName = name }
}

// WithVersion sets the default YAML version when the document has no
// %YAML directive.
func WithVersion(v string) Option {
	return func(o *opts) { o.version = v }
}

// WithCustomTags places custom tags ahead of all of the preset's tags.
func WithCustomTags(tags ...*schema.Tag) Option {
	return func(o *opts) { o.customTags = tags }
}

// WithSchemaObject uses a prebuilt schema, overriding name and
// version selection.
func WithSchemaObject(s *schema.Schema) Option {
	return func(o *opts) { o.schema = s }
}

// WithMaxAliasCount bounds alias expansion during native conversion;
// negative disables the guard.
func WithMaxAliasCount(n int) Option {
	return func(o *opts) { o.maxAliasCount = n }
}

// Compose resolves every document of a parsed stream.
func Compose(st *parse.Stream, o ...Option) []*ir.Document {
	docs := make([]*ir.Document, len(st.Docs))
	for i, pd := range st.Docs {
		docs[i] = ComposeDocument(pd, st.PosDoc, o...)
	}
	return docs
}

// ComposeDocument resolves one parsed document into a typed node
// tree.
func ComposeDocument(pd *parse.Document, posDoc *token.PosDoc, o ...Option) *ir.Document {
	op := &opts{maxAliasCount: ir.DefaultMaxAliasCount}
	for _, f := range o {
		f(op)
	}
	s, serr := resolveSchema(op, pd)
	doc := ir.NewDocument(s)
	doc.MaxAliasCount = op.maxAliasCount
	if serr != nil {
		doc.AddError(ir.CodeBadDirective, pd.Start, serr.Error())
	}
	if pd.Version != "" {
		doc.Directives.Version = pd.Version
	}
	for h, prefix := range pd.TagHandles {
		doc.Directives.Tags[h] = prefix
	}
	doc.DirectivesEndMarker = pd.HasDirectivesEnd

	c := &composer{doc: doc, posDoc: posDoc}
	doc.Contents = c.node(pd.Root)

	for _, e := range pd.Errors {
		doc.Errors = append(doc.Errors, withLineCol(e, posDoc))
	}
	for _, w := range pd.Warnings {
		doc.Warnings = append(doc.Warnings, withLineCol(w, posDoc))
	}
	return doc
}

func resolveSchema(op *opts, pd *parse.Document) (*schema.Schema, error) {
	if op.schema != nil {
		return op.schema, nil
	}
	name := op.schemaName
	if name == "" {
		version := pd.Version
		if version == "" {
			version = op.version
		}
		s, err := schema.ForVersion(version)
		if err == nil && len(op.customTags) > 0 {
			return schema.New(s.Name, op.customTags...)
		}
		return s, err
	}
	return schema.New(name, op.customTags...)
}

func withLineCol(e *ir.Error, posDoc *token.PosDoc) *ir.Error {
	if posDoc == nil {
		return e
	}
	line, col := posDoc.LineCol(e.Offset)
	e2 := *e
	e2.Line = line + 1
	e2.Col = col + 1
	return &e2
}

type composer struct {
	doc    *ir.Document
	posDoc *token.PosDoc
}

func (c *composer) errorf(code ir.ErrorCode, offset int, msg string) {
	e := &ir.Error{Code: code, Offset: offset, Msg: msg}
	c.doc.Errors = append(c.doc.Errors, withLineCol(e, c.posDoc))
}

func (c *composer) warnf(code ir.ErrorCode, offset int, msg string) {
	e := &ir.Error{Code: code, Offset: offset, Msg: msg, Warning: true}
	c.doc.Warnings = append(c.doc.Warnings, withLineCol(e, c.posDoc))
}

// node resolves one parsed node.
func (c *composer) node(pn *parse.Node) *ir.Node {
	if pn == nil {
		return nil
	}
	var n *ir.Node
	switch pn.Kind {
	case parse.EmptyKind:
		n = c.emptyScalar(pn)
	case parse.AliasKind:
		n = c.alias(pn)
	case parse.FlowScalarKind:
		n = c.flowScalar(pn)
	case parse.BlockScalarKind:
		n = c.blockScalar(pn)
	case parse.BlockSeqKind:
		n = &ir.Node{Type: ir.SeqType}
		for _, v := range pn.Values {
			n.Values = append(n.Values, c.node(v))
		}
		c.applyCollectionTag(n, pn)
	case parse.BlockMapKind:
		n = &ir.Node{Type: ir.MapType}
		for _, item := range pn.Items {
			n.Items = append(n.Items, c.pair(item))
		}
		c.applyCollectionTag(n, pn)
	case parse.FlowCollectionKind:
		n = c.flowCollection(pn)
	default:
		c.errorf(ir.CodeImpossible, pn.Start, "unknown parse node kind")
		return nil
	}
	c.applyProps(n, pn)
	n.Range = [2]int{pn.Start, pn.End}
	return n
}

func (c *composer) pair(item *parse.Item) *ir.Pair {
	var k, v *ir.Node
	if item.Key != nil {
		k = c.node(item.Key)
		if k != nil && k.IsNull() && item.Key.Kind == parse.EmptyKind &&
			item.Key.Props.Anchor == nil && item.Key.Props.Tag == nil &&
			len(item.Key.Props.CommentBefore) == 0 {
			// a fully absent key stays nil on the pair
			if !item.Explicit {
				k = nil
			}
		}
	}
	if item.Value != nil {
		v = c.node(item.Value)
	}
	return &ir.Pair{Key: k, Value: v}
}

func (c *composer) flowCollection(pn *parse.Node) *ir.Node {
	if pn.Flow == '{' {
		n := &ir.Node{Type: ir.MapType, Flow: true}
		for _, item := range pn.Items {
			if item.Key == nil {
				// "{ value }" is a keyless single entry only when a
				// pair was expected; treat the value as the key with a
				// null value, matching flow-map semantics
				k := c.node(item.Value)
				n.Items = append(n.Items, &ir.Pair{Key: k})
				continue
			}
			n.Items = append(n.Items, c.pair(item))
		}
		c.applyCollectionTag(n, pn)
		return n
	}
	n := &ir.Node{Type: ir.SeqType, Flow: true}
	for _, item := range pn.Items {
		if item.Key == nil {
			n.Values = append(n.Values, c.node(item.Value))
			continue
		}
		// a pair inside a flow sequence becomes a single-pair mapping
		pairMap := &ir.Node{Type: ir.MapType, Flow: true}
		pairMap.Items = append(pairMap.Items, c.pair(item))
		if item.Key != nil {
			pairMap.Range = [2]int{item.Key.Start, itemEnd(item)}
		}
		n.Values = append(n.Values, pairMap)
	}
	c.applyCollectionTag(n, pn)
	return n
}

func itemEnd(item *parse.Item) int {
	if item.Value != nil {
		return item.Value.End
	}
	return item.Key.End
}

// applyProps attaches anchor, comments and blank-line state; tags are
// handled per node kind.
func (c *composer) applyProps(n *ir.Node, pn *parse.Node) {
	if n == nil {
		return
	}
	props := pn.Props
	if props.Anchor != nil {
		label := string(props.Anchor.Bytes[1:])
		if label == "" {
			c.errorf(ir.CodeMissingChar, props.Anchor.Pos.I,
				"anchor indicator without a name")
		} else if n.Type == ir.AliasType {
			c.errorf(ir.CodeAliasProps, props.Anchor.Pos.I,
				"an alias node must not specify an anchor")
		} else {
			n.Anchor = label
		}
	}
	if len(props.CommentBefore) > 0 {
		n.CommentBefore = joinComments(props.CommentBefore)
	}
	if props.Comment != "" {
		n.Comment = stripHash(props.Comment)
	}
	n.SpaceBefore = props.SpaceBefore
}

func joinComments(lines []string) string {
	out := make([]string, len(lines))
	for i, ln := range lines {
		out[i] = stripHash(ln)
	}
	return strings.Join(out, "\n")
}

func stripHash(s string) string {
	s = strings.TrimPrefix(s, "#")
	return strings.TrimPrefix(s, " ")
}

// tagURI expands a node's tag source, reporting unresolvable handles.
func (c *composer) tagURI(pn *parse.Node) string {
	props := pn.Props
	if props.Tag == nil {
		return ""
	}
	if pn.Kind == parse.AliasKind {
		c.errorf(ir.CodeAliasProps, props.Tag.Pos.I,
			"an alias node must not specify a tag")
		return ""
	}
	src := string(props.Tag.Bytes)
	uri := c.doc.Directives.TagURI(src)
	if uri == "" {
		c.errorf(ir.CodeTagResolveFailed, props.Tag.Pos.I,
			"could not resolve tag "+src)
	}
	return uri
}

func (c *composer) applyCollectionTag(n *ir.Node, pn *parse.Node) {
	uri := c.tagURI(pn)
	switch uri {
	case "", "!":
		return
	}
	t := c.doc.Schema.Lookup(uri)
	if t == nil {
		if !strings.HasPrefix(uri, "tag:yaml.org,2002:") {
			// custom collection tags are preserved as-is
			n.Tag = uri
			return
		}
		c.warnf(ir.CodeTagResolveFailed, pn.Start, "unknown tag "+uri)
		n.Tag = uri
		return
	}
	if !t.Collection {
		c.errorf(ir.CodeTagResolveFailed, pn.Start,
			"scalar tag "+uri+" on a collection")
	}
	n.Tag = uri
}

func (c *composer) alias(pn *parse.Node) *ir.Node {
	label := string(pn.Alias.Bytes[1:])
	if label == "" {
		c.errorf(ir.CodeMissingChar, pn.Alias.Pos.I,
			"alias indicator without a name")
	}
	// surface tag/anchor-on-alias errors
	c.tagURI(pn)
	return &ir.Node{Type: ir.AliasType, AliasOf: label}
}
