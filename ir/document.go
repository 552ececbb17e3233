package ir

import (
	"fmt"
	"math"

	"github.com/yamlkit/yamlkit/schema"
)

// DefaultMaxAliasCount bounds alias expansion during native
// conversion. Negative disables the guard.
const DefaultMaxAliasCount = 100

// Directives holds the directive state in effect for a document.
type Directives struct {
	// Version is the active YAML version, "1.1" or "1.2".
	Version string
	// Tags maps tag handles to prefixes, e.g. "!!" -> "tag:yaml.org,2002:".
	Tags map[string]string
}

func NewDirectives(version string) *Directives {
	return &Directives{
		Version: version,
		Tags: map[string]string{
			"!":  "!",
			"!!": "tag:yaml.org,2002:",
		},
	}
}

// TagURI expands a source tag (verbatim, shorthand or non-specific)
// into an absolute tag URI. It returns "" for tags whose handle has no
// registered prefix.
func (d *Directives) TagURI(src string) string {
	switch {
	case src == "":
		return ""
	case src == "!":
		// non-specific tag: resolved by the schema
		return "!"
	case len(src) > 2 && src[0] == '!' && src[1] == '<':
		if src[len(src)-1] == '>' {
			return src[2 : len(src)-1]
		}
		return ""
	}
	// longest handle first: "!!" and "!h!" before "!"
	for i := len(src) - 1; i > 0; i-- {
		if src[i] != '!' {
			continue
		}
		handle := src[:i+1]
		if prefix, ok := d.Tags[handle]; ok {
			return prefix + src[i+1:]
		}
		return ""
	}
	if prefix, ok := d.Tags["!"]; ok && len(src) > 1 {
		return prefix + src[1:]
	}
	return ""
}

// Document owns a node tree plus its directive and error state. A
// document's aliases only resolve against anchors within the same
// document.
type Document struct {
	Contents *Node

	Directives          *Directives
	DirectivesEndMarker bool

	Errors   []*Error
	Warnings []*Error

	Schema *schema.Schema

	// MaxAliasCount guards native conversion; see DefaultMaxAliasCount.
	MaxAliasCount int
}

func NewDocument(s *schema.Schema) *Document {
	version := "1.2"
	if s != nil && s.Version != "" {
		version = s.Version
	}
	return &Document{
		Directives:    NewDirectives(version),
		Schema:        s,
		MaxAliasCount: DefaultMaxAliasCount,
	}
}

// AddError records a syntax error at the given offset.
func (d *Document) AddError(code ErrorCode, offset int, msg string) {
	d.Errors = append(d.Errors, &Error{Code: code, Offset: offset, Msg: msg})
}

// AddWarning records a non-fatal warning.
func (d *Document) AddWarning(code ErrorCode, offset int, msg string) {
	d.Warnings = append(d.Warnings, &Error{Code: code, Offset: offset, Msg: msg, Warning: true})
}

// Anchors returns the anchor labels defined in the document, mapped to
// the last node carrying each label in document order.
func (d *Document) Anchors() map[string]*Node {
	res := map[string]*Node{}
	d.Contents.Visit(func(n *Node, post bool) (bool, error) {
		if !post && n.Anchor != "" {
			res[n.Anchor] = n
		}
		return true, nil
	})
	return res
}

// ToNative converts the document tree to plain Go values: nil, bool,
// int64, *big.Int, float64, string, time.Time, []byte, []any and
// map[string]any. Aliases resolve to the last preceding node with the
// matching anchor; expansion is bounded by MaxAliasCount.
func (d *Document) ToNative() (any, error) {
	if d.Contents == nil {
		return nil, nil
	}
	ctx := &nativeCtx{
		doc:      d,
		anchors:  map[string]*Node{},
		refCount: map[string]int{},
		sizes:    map[*Node]int{},
		built:    map[*Node]any{},
	}
	return ctx.convert(d.Contents)
}

type nativeCtx struct {
	doc      *Document
	anchors  map[string]*Node
	refCount map[string]int
	sizes    map[*Node]int
	built    map[*Node]any
	sizing   map[*Node]bool
}

func (ctx *nativeCtx) mergeEnabled() bool {
	return ctx.doc.Schema != nil && ctx.doc.Schema.Merge
}

func (ctx *nativeCtx) convert(n *Node) (any, error) {
	if n == nil {
		return nil, nil
	}
	if n.Anchor != "" {
		ctx.anchors[n.Anchor] = n
	}
	switch n.Type {
	case ScalarType:
		return n.Value, nil
	case AliasType:
		return ctx.resolveAlias(n)
	case SeqType:
		res := make([]any, len(n.Values))
		ctx.built[n] = res
		for i, v := range n.Values {
			nv, err := ctx.convert(v)
			if err != nil {
				return nil, err
			}
			res[i] = nv
		}
		return res, nil
	case MapType:
		res := make(map[string]any, len(n.Items))
		ctx.built[n] = res
		var merges []*Pair
		for _, p := range n.Items {
			if p == nil {
				return nil, ErrNotAPair
			}
			if ctx.isMergePair(p) {
				merges = append(merges, p)
				continue
			}
			key, err := ctx.keyString(p.Key)
			if err != nil {
				return nil, err
			}
			nv, err := ctx.convert(p.Value)
			if err != nil {
				return nil, err
			}
			res[key] = nv
		}
		for _, p := range merges {
			if err := ctx.applyMerge(n, p, res); err != nil {
				return nil, err
			}
		}
		return res, nil
	default:
		return nil, fmt.Errorf("%s: unknown node type", CodeImpossible)
	}
}

func (ctx *nativeCtx) isMergePair(p *Pair) bool {
	k := p.Key
	if k == nil || k.Type != ScalarType {
		return false
	}
	if k.Tag == schema.TagMerge {
		return true
	}
	s, ok := k.Value.(string)
	return ok && s == "<<" && ctx.mergeEnabled()
}

// applyMerge merges the maps referenced by p.Value into res; entries
// already present keep their values.
func (ctx *nativeCtx) applyMerge(owner *Node, p *Pair, res map[string]any) error {
	sources := []*Node{p.Value}
	if p.Value != nil && p.Value.Type == SeqType {
		sources = p.Value.Values
	}
	for _, src := range sources {
		m := src
		if m != nil && m.Type == AliasType {
			target, err := ctx.lookupAlias(m)
			if err != nil {
				return err
			}
			m = target
		}
		if m == nil || m.Type != MapType {
			return &ResolveError{Msg: "merge sources must be maps"}
		}
		for _, mp := range m.Items {
			if mp == nil {
				return ErrNotAPair
			}
			key, err := ctx.keyString(mp.Key)
			if err != nil {
				return err
			}
			if _, ok := res[key]; ok {
				continue
			}
			nv, err := ctx.convert(mp.Value)
			if err != nil {
				return err
			}
			res[key] = nv
		}
	}
	return nil
}

func (ctx *nativeCtx) lookupAlias(n *Node) (*Node, error) {
	target, ok := ctx.anchors[n.AliasOf]
	if !ok {
		return nil, &ResolveError{Anchor: n.AliasOf, Msg: ErrUnresolvedAlias.Error()}
	}
	return target, nil
}

func (ctx *nativeCtx) resolveAlias(n *Node) (any, error) {
	target, err := ctx.lookupAlias(n)
	if err != nil {
		return nil, err
	}
	max := ctx.doc.MaxAliasCount
	if max >= 0 {
		ctx.refCount[n.AliasOf]++
		if ctx.refCount[n.AliasOf]*ctx.aliasSize(target) > max {
			return nil, &ResolveError{Anchor: n.AliasOf, Msg: ErrExcessiveAliases.Error()}
		}
	}
	if v, ok := ctx.built[target]; ok {
		return v, nil
	}
	return ctx.convert(target)
}

// aliasSize is the number of alias nodes in the expansion of n,
// counting nested expansions. Cycles count as unbounded.
func (ctx *nativeCtx) aliasSize(n *Node) int {
	if sz, ok := ctx.sizes[n]; ok {
		return sz
	}
	if ctx.sizing == nil {
		ctx.sizing = map[*Node]bool{}
	}
	if ctx.sizing[n] {
		return math.MaxInt32
	}
	ctx.sizing[n] = true
	defer delete(ctx.sizing, n)
	sz := 0
	switch n.Type {
	case AliasType:
		sz = 1
		if target, ok := ctx.anchors[n.AliasOf]; ok {
			sz += ctx.aliasSize(target)
		}
	case MapType:
		for _, p := range n.Items {
			if p == nil {
				continue
			}
			if p.Key != nil {
				sz += ctx.aliasSize(p.Key)
			}
			if p.Value != nil {
				sz += ctx.aliasSize(p.Value)
			}
		}
	case SeqType:
		for _, v := range n.Values {
			sz += ctx.aliasSize(v)
		}
	}
	if sz < math.MaxInt32 {
		ctx.sizes[n] = sz
	}
	return sz
}

// keyString renders a mapping key for the native map representation.
func (ctx *nativeCtx) keyString(k *Node) (string, error) {
	if k == nil {
		return "", nil
	}
	if k.Type == AliasType {
		target, err := ctx.lookupAlias(k)
		if err != nil {
			return "", err
		}
		k = target
	}
	switch k.Type {
	case ScalarType:
		if k.Value == nil {
			return "", nil
		}
		if s, ok := k.Value.(string); ok {
			return s, nil
		}
		return fmt.Sprint(k.Value), nil
	default:
		v, err := ctx.convert(k)
		if err != nil {
			return "", err
		}
		return fmt.Sprint(v), nil
	}
}
