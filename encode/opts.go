package encode

import (
	"github.com/yamlkit/yamlkit/ir"
)

type encOpts struct {
	indent          int
	indentSeq       bool
	lineWidth       int
	minContentWidth int

	doubleQuotedAsJSON             bool
	doubleQuotedMinMultiLineLength int
	maxFlowStringSingleLineLength  int

	nullStr  string
	trueStr  string
	falseStr string

	defaultStringType ir.Style
	defaultKeyType    ir.Style

	singleQuote bool
	simpleKeys  bool

	sortMapEntries bool
	sortCmp        func(a, b *ir.Pair) int

	anchorPrefix        string
	directivesEndMarker *bool
	verifyAliasOrder    bool

	colors *Colors
}

func defaultOpts() *encOpts {
	return &encOpts{
		indent:                         2,
		indentSeq:                      true,
		lineWidth:                      80,
		minContentWidth:                20,
		doubleQuotedMinMultiLineLength: 40,
		maxFlowStringSingleLineLength:  60,
		nullStr:                        "null",
		trueStr:                        "true",
		falseStr:                       "false",
		defaultStringType:              ir.Plain,
		defaultKeyType:                 ir.AnyStyle,
		anchorPrefix:                   "a",
		verifyAliasOrder:               true,
	}
}

type Option func(*encOpts)

// Indent sets the indentation step; it must be positive.
func Indent(n int) Option {
	return func(o *encOpts) { o.indent = n }
}

// IndentSeq controls whether sequence items are indented an extra
// step inside mappings. With false, the "-" marker aligns with its
// mapping key.
func IndentSeq(v bool) Option {
	return func(o *encOpts) { o.indentSeq = v }
}

// LineWidth bounds emitted lines; 0 disables folding.
func LineWidth(n int) Option {
	return func(o *encOpts) { o.lineWidth = n }
}

// MinContentWidth is the minimum content width kept per folded line
// even under deep indentation.
func MinContentWidth(n int) Option {
	return func(o *encOpts) { o.minContentWidth = n }
}

// DoubleQuotedAsJSON restricts double-quoted escapes to the JSON set.
func DoubleQuotedAsJSON(v bool) Option {
	return func(o *encOpts) { o.doubleQuotedAsJSON = v }
}

// DoubleQuotedMinMultiLineLength is the minimum length at which
// double-quoted strings fold over multiple lines.
func DoubleQuotedMinMultiLineLength(n int) Option {
	return func(o *encOpts) { o.doubleQuotedMinMultiLineLength = n }
}

// MaxFlowStringSingleLineLength bounds inline flow collections; longer
// ones break one item per line.
func MaxFlowStringSingleLineLength(n int) Option {
	return func(o *encOpts) { o.maxFlowStringSingleLineLength = n }
}

// NullStr sets the rendering of null values.
func NullStr(s string) Option {
	return func(o *encOpts) { o.nullStr = s }
}

// TrueStr sets the rendering of true.
func TrueStr(s string) Option {
	return func(o *encOpts) { o.trueStr = s }
}

// FalseStr sets the rendering of false.
func FalseStr(s string) Option {
	return func(o *encOpts) { o.falseStr = s }
}

// DefaultStringType sets the style used for strings with no explicit
// style.
func DefaultStringType(s ir.Style) Option {
	return func(o *encOpts) { o.defaultStringType = s }
}

// DefaultKeyType sets the style for implicit keys, falling back to
// DefaultStringType.
func DefaultKeyType(s ir.Style) Option {
	return func(o *encOpts) { o.defaultKeyType = s }
}

// SingleQuote prefers single-quoted over double-quoted style where
// both are legal.
func SingleQuote(v bool) Option {
	return func(o *encOpts) { o.singleQuote = v }
}

// SimpleKeys forbids keys that would need ? explicit-key rendering.
func SimpleKeys(v bool) Option {
	return func(o *encOpts) { o.simpleKeys = v }
}

// SortMapEntries emits map entries in lexicographic key order.
func SortMapEntries(v bool) Option {
	return func(o *encOpts) { o.sortMapEntries = v }
}

// SortMapEntriesBy emits map entries ordered by cmp.
func SortMapEntriesBy(cmp func(a, b *ir.Pair) int) Option {
	return func(o *encOpts) {
		o.sortMapEntries = true
		o.sortCmp = cmp
	}
}

// AnchorPrefix sets the prefix for generated anchor labels.
func AnchorPrefix(s string) Option {
	return func(o *encOpts) { o.anchorPrefix = s }
}

// DirectivesEndMarker forces or suppresses the leading "---".
func DirectivesEndMarker(v bool) Option {
	return func(o *encOpts) { o.directivesEndMarker = &v }
}

// VerifyAliasOrder checks that every alias follows its anchor in
// document order; on by default.
func VerifyAliasOrder(v bool) Option {
	return func(o *encOpts) { o.verifyAliasOrder = v }
}

// WithColors renders with ANSI colors; for terminal display only.
func WithColors(c *Colors) Option {
	return func(o *encOpts) { o.colors = c }
}
