package parse

import (
	"fmt"

	"github.com/yamlkit/yamlkit/ir"
	"github.com/yamlkit/yamlkit/token"
)

type Kind int

const (
	StreamKind Kind = iota
	DocumentKind
	BlockMapKind
	BlockSeqKind
	FlowCollectionKind
	BlockScalarKind
	FlowScalarKind
	AliasKind
	EmptyKind
)

func (k Kind) String() string {
	return map[Kind]string{
		StreamKind:         "stream",
		DocumentKind:       "document",
		BlockMapKind:       "block-map",
		BlockSeqKind:       "block-seq",
		FlowCollectionKind: "flow-collection",
		BlockScalarKind:    "block-scalar",
		FlowScalarKind:     "flow-scalar",
		AliasKind:          "alias",
		EmptyKind:          "empty",
	}[k]
}

// Props are the properties preceding a node: anchor, tag, leading
// comments and blank-line state.
type Props struct {
	Anchor *token.Token
	Tag    *token.Token
	// CommentBefore lines, '#' included.
	CommentBefore []string
	// Comment is the trailing same-line comment.
	Comment     string
	SpaceBefore bool
	// line index where the anchor/tag tokens appeared, -1 when none
	propLine int
}

// Item is one entry of a map or flow collection. Key is nil for plain
// flow-sequence entries; a keyless pair (": v") has an EmptyKind key.
type Item struct {
	Key      *Node
	Value    *Node
	Explicit bool
}

// Node is one node of the parsed token tree. The composer walks this
// structure; it carries raw tokens, never decoded values.
type Node struct {
	Kind   Kind
	Start  int
	End    int
	Indent int
	Props  Props

	// BlockScalarKind
	Header *token.Token
	Body   *token.Token

	// FlowScalarKind: the scalar token plus any continuation-line
	// tokens of a multi-line plain scalar
	Tokens []token.Token

	// AliasKind
	Alias *token.Token

	// BlockMapKind and FlowCollectionKind
	Items []*Item
	// BlockSeqKind
	Values []*Node

	// FlowCollectionKind: '{' or '['
	Flow byte
}

func (n *Node) String() string {
	return fmt.Sprintf("%s [%d,%d)", n.Kind, n.Start, n.End)
}

// Document is one parsed document of a stream.
type Document struct {
	// Version is the %YAML directive value, "" when absent.
	Version string
	// TagHandles holds %TAG handle -> prefix mappings.
	TagHandles map[string]string
	// HasDirectivesEnd records a leading "---".
	HasDirectivesEnd bool
	// HasDocEnd records a trailing "...".
	HasDocEnd bool

	Root *Node

	Errors   []*ir.Error
	Warnings []*ir.Error

	Start int
	End   int
}

// Stream is the parse result for a complete input.
type Stream struct {
	Docs []*Document
	// Empty marks input with no content at all.
	Empty  bool
	PosDoc *token.PosDoc
}

func (d *Document) addError(code ir.ErrorCode, offset int, format string, args ...any) {
	d.Errors = append(d.Errors, &ir.Error{
		Code:   code,
		Offset: offset,
		Msg:    fmt.Sprintf(format, args...),
	})
}

func (d *Document) addWarning(code ir.ErrorCode, offset int, format string, args ...any) {
	d.Warnings = append(d.Warnings, &ir.Error{
		Code:    code,
		Offset:  offset,
		Msg:     fmt.Sprintf(format, args...),
		Warning: true,
	})
}
