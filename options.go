package yamlkit

import (
	"github.com/yamlkit/yamlkit/compose"
	"github.com/yamlkit/yamlkit/encode"
	"github.com/yamlkit/yamlkit/ir"
	"github.com/yamlkit/yamlkit/schema"
)

// LogLevel controls how parse problems surface outside the document's
// error lists.
type LogLevel string

const (
	LogSilent LogLevel = "silent"
	LogWarn   LogLevel = "warn"
	LogError  LogLevel = "error"
)

type options struct {
	schemaName    string
	version       string
	customTags    []*schema.Tag
	maxAliasCount int
	strict        bool
	prettyErrors  bool
	logLevel      LogLevel
	lineCounter   *LineCounter

	keepUndefined bool
	replacer      ir.ReplacerFunc

	encOpts []encode.Option
}

func newOptions(opts []Option) *options {
	o := &options{
		maxAliasCount: ir.DefaultMaxAliasCount,
		logLevel:      LogError,
	}
	for _, f := range opts {
		f(o)
	}
	return o
}

func (o *options) composeOpts() []compose.Option {
	var res []compose.Option
	if o.schemaName != "" {
		res = append(res, compose.WithSchema(o.schemaName))
	}
	if o.version != "" {
		res = append(res, compose.WithVersion(o.version))
	}
	if len(o.customTags) > 0 {
		res = append(res, compose.WithCustomTags(o.customTags...))
	}
	res = append(res, compose.WithMaxAliasCount(o.maxAliasCount))
	return res
}

type Option func(*options)

// Schema selects the tag schema: failsafe, json, core or yaml-1.1.
func Schema(name string) Option {
	return func(o *options) { o.schemaName = name }
}

// Version sets the default YAML version, "1.1" or "1.2".
func Version(v string) Option {
	return func(o *options) { o.version = v }
}

// CustomTags registers additional tags ahead of the schema's
// defaults.
func CustomTags(tags ...*schema.Tag) Option {
	return func(o *options) { o.customTags = tags }
}

// MaxAliasCount bounds alias expansion during native conversion;
// negative disables the guard.
func MaxAliasCount(n int) Option {
	return func(o *options) { o.maxAliasCount = n }
}

// Strict enables pedantic parse checks.
func Strict(v bool) Option {
	return func(o *options) { o.strict = v }
}

// PrettyErrors includes line/column locations in error messages.
func PrettyErrors(v bool) Option {
	return func(o *options) { o.prettyErrors = v }
}

// WithLogLevel controls error escalation and warning output.
func WithLogLevel(l LogLevel) Option {
	return func(o *options) { o.logLevel = l }
}

// WithLineCounter fills lc with the parsed input's line offsets.
func WithLineCounter(lc *LineCounter) Option {
	return func(o *options) { o.lineCounter = lc }
}

// KeepUndefined maps Undefined values to nulls instead of dropping
// their entries.
func KeepUndefined(v bool) Option {
	return func(o *options) { o.keepUndefined = v }
}

// Replacer filters and transforms values during document
// construction; see ir.ReplacerFunc.
func Replacer(r ir.ReplacerFunc) Option {
	return func(o *options) { o.replacer = r }
}

// ReplacerKeys keeps only the named map keys, like JSON's array
// replacer.
func ReplacerKeys(keys []string) Option {
	return func(o *options) { o.replacer = ir.KeyFilter(keys) }
}

// EncodeOptions passes stringifier options through: indent, line
// width, styles, sorting and the rest.
func EncodeOptions(opts ...encode.Option) Option {
	return func(o *options) { o.encOpts = append(o.encOpts, opts...) }
}
