package ir

import (
	"fmt"
	"math/big"
	"time"
)

type Type int

const (
	ScalarType Type = iota
	MapType
	SeqType
	AliasType
)

func (t Type) String() string {
	switch t {
	case ScalarType:
		return "scalar"
	case MapType:
		return "map"
	case SeqType:
		return "seq"
	case AliasType:
		return "alias"
	default:
		return fmt.Sprintf("<err: %d is not a node type>", t)
	}
}

func Types() []Type {
	return []Type{ScalarType, MapType, SeqType, AliasType}
}

// Style is a scalar presentation style. AnyStyle lets the stringifier
// choose.
type Style int

const (
	AnyStyle Style = iota
	Plain
	QuoteSingle
	QuoteDouble
	BlockLiteral
	BlockFolded
)

func (s Style) String() string {
	switch s {
	case AnyStyle:
		return "any"
	case Plain:
		return "PLAIN"
	case QuoteSingle:
		return "QUOTE_SINGLE"
	case QuoteDouble:
		return "QUOTE_DOUBLE"
	case BlockLiteral:
		return "BLOCK_LITERAL"
	case BlockFolded:
		return "BLOCK_FOLDED"
	default:
		return fmt.Sprintf("<err: %d is not a style>", s)
	}
}

// NumberFormat is a scalar formatting hint for numeric values.
type NumberFormat int

const (
	NoFormat NumberFormat = iota
	HexFormat
	OctFormat
	ExpFormat
)

// Node is a node in a document tree: a scalar, mapping, sequence or
// alias, discriminated by Type. Fields outside the variant in use are
// zero.
type Node struct {
	Type   Type
	Tag    string
	Anchor string

	CommentBefore string
	Comment       string
	SpaceBefore   bool

	// Range holds [start, end) source offsets for composed nodes.
	Range [2]int

	// ScalarType
	Value             any
	Style             Style
	Format            NumberFormat
	MinFractionDigits int
	// Source is the scalar's original source text, when composed.
	Source string

	// MapType; items may only be pairs
	Items []*Pair

	// SeqType
	Values []*Node

	Flow bool

	// AliasType: the referenced anchor label
	AliasOf string
}

// Pair is a key/value container for mapping items. Either side may be
// nil: an explicit key with absent value, or a keyless entry.
type Pair struct {
	Key   *Node
	Value *Node
}

func (n *Node) IsScalar() bool { return n != nil && n.Type == ScalarType }
func (n *Node) IsMap() bool    { return n != nil && n.Type == MapType }
func (n *Node) IsSeq() bool    { return n != nil && n.Type == SeqType }
func (n *Node) IsAlias() bool  { return n != nil && n.Type == AliasType }

// IsNull reports whether n is a null scalar (or nil).
func (n *Node) IsNull() bool {
	return n == nil || n.Type == ScalarType && n.Value == nil
}

func (n *Node) WithTag(tag string) *Node {
	n.Tag = tag
	return n
}

func (n *Node) WithAnchor(anchor string) *Node {
	n.Anchor = anchor
	return n
}

func FromString(v string) *Node {
	return &Node{Type: ScalarType, Value: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: ScalarType, Value: v}
}

func FromBigInt(v *big.Int) *Node {
	return &Node{Type: ScalarType, Value: v}
}

func FromFloat(v float64) *Node {
	return &Node{Type: ScalarType, Value: v}
}

func FromBool(v bool) *Node {
	return &Node{Type: ScalarType, Value: v}
}

func FromTime(v time.Time) *Node {
	return &Node{Type: ScalarType, Value: v}
}

func Null() *Node {
	return &Node{Type: ScalarType}
}

func NewMap(items ...*Pair) *Node {
	return &Node{Type: MapType, Items: items}
}

func NewSeq(values ...*Node) *Node {
	return &Node{Type: SeqType, Values: values}
}

func NewAlias(label string) *Node {
	return &Node{Type: AliasType, AliasOf: label}
}

// Clone returns a deep copy of n. Alias labels are copied as-is, so a
// clone only resolves within a document that defines the same anchors.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	dst := &Node{}
	*dst = *n
	if n.Items != nil {
		dst.Items = make([]*Pair, len(n.Items))
		for i, p := range n.Items {
			if p == nil {
				continue
			}
			dst.Items[i] = &Pair{Key: p.Key.Clone(), Value: p.Value.Clone()}
		}
	}
	if n.Values != nil {
		dst.Values = make([]*Node, len(n.Values))
		for i, v := range n.Values {
			dst.Values[i] = v.Clone()
		}
	}
	return dst
}

// Visit walks n in document order, calling f before and after each
// node's children. Returning false from the pre call skips children.
func (n *Node) Visit(f func(n *Node, post bool) (bool, error)) error {
	if n == nil {
		return nil
	}
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		switch n.Type {
		case MapType:
			for _, p := range n.Items {
				if p == nil {
					continue
				}
				if err := p.Key.Visit(f); err != nil {
					return err
				}
				if err := p.Value.Visit(f); err != nil {
					return err
				}
			}
		case SeqType:
			for _, v := range n.Values {
				if err := v.Visit(f); err != nil {
					return err
				}
			}
		}
	}
	_, err = f(n, true)
	return err
}
