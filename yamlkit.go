package yamlkit

import (
	"fmt"
	"os"

	"github.com/yamlkit/yamlkit/compose"
	"github.com/yamlkit/yamlkit/encode"
	"github.com/yamlkit/yamlkit/ir"
	"github.com/yamlkit/yamlkit/parse"
	"github.com/yamlkit/yamlkit/schema"
)

// Undefined is the "no value" sentinel: a map entry with this value
// is dropped, and stringifying it as the root yields no output.
var Undefined = ir.Undefined

// Stream is the result of parsing input that may hold any number of
// documents.
type Stream struct {
	Docs []*ir.Document
	// Empty is set for input with no content at all.
	Empty bool
}

// ParseAllDocuments parses every document in src. Syntax errors are
// recorded on the documents, never returned.
func ParseAllDocuments(src string, opts ...Option) *Stream {
	o := newOptions(opts)
	st := parse.Parse([]byte(src), parse.Strict(o.strict))
	docs := compose.Compose(st, o.composeOpts()...)
	o.fillLineCounter(src)
	for _, d := range docs {
		o.emitWarnings(d)
	}
	return &Stream{Docs: docs, Empty: st.Empty}
}

// ParseDocument parses exactly one document. Additional documents
// append a MULTIPLE_DOCS error to the first.
func ParseDocument(src string, opts ...Option) *ir.Document {
	o := newOptions(opts)
	st := parse.Parse([]byte(src), parse.Strict(o.strict))
	docs := compose.Compose(st, o.composeOpts()...)
	o.fillLineCounter(src)
	if len(docs) == 0 {
		doc := ir.NewDocument(nil)
		doc.Contents = ir.Null()
		doc.MaxAliasCount = o.maxAliasCount
		return doc
	}
	doc := docs[0]
	for _, extra := range docs[1:] {
		off := 0
		if extra.Contents != nil {
			off = extra.Contents.Range[0]
		}
		doc.AddError(ir.CodeMultipleDocs, off,
			"source contains multiple documents; please use ParseAllDocuments")
	}
	o.emitWarnings(doc)
	return doc
}

// Parse parses a single document and converts it to native Go
// values. The first document error is escalated unless the log level
// is silent.
func Parse(src string, opts ...Option) (any, error) {
	o := newOptions(opts)
	doc := ParseDocument(src, opts...)
	if len(doc.Errors) > 0 && o.logLevel != LogSilent {
		return nil, o.escalate(doc.Errors[0])
	}
	return doc.ToNative()
}

// NewDocument builds a document from a host value. Shared and cyclic
// references become anchors and aliases at serialization.
func NewDocument(value any, opts ...Option) (*ir.Document, error) {
	o := newOptions(opts)
	s, err := o.buildSchema()
	if err != nil {
		return nil, err
	}
	doc := ir.NewDocument(s)
	doc.MaxAliasCount = o.maxAliasCount
	if ir.IsUndefined(value) {
		return doc, nil
	}
	createOpts := []ir.CreateOption{ir.AllowAliases()}
	if o.replacer != nil {
		createOpts = append(createOpts, ir.CreateReplacer(o.replacer))
	}
	if o.keepUndefined {
		createOpts = append(createOpts, ir.KeepUndefined())
	}
	// custom tags may claim the value and convert it before the
	// generic walk
	for _, t := range s.Tags {
		if t.CreateNode == nil || t.Identify == nil || !t.Identify(value) {
			continue
		}
		v2, err := t.CreateNode(value)
		if err != nil {
			return nil, err
		}
		n := &ir.Node{Type: ir.ScalarType, Value: v2, Tag: t.Tag}
		doc.Contents = n
		return doc, nil
	}
	n, err := ir.CreateNode(value, createOpts...)
	if err != nil {
		return nil, err
	}
	doc.Contents = n
	return doc, nil
}

// Stringify renders a host value (or a prebuilt document) as YAML.
// An Undefined root produces no output.
func Stringify(value any, opts ...Option) (string, error) {
	o := newOptions(opts)
	if ir.IsUndefined(value) {
		return "", nil
	}
	doc, ok := value.(*ir.Document)
	if !ok {
		var err error
		doc, err = NewDocument(value, opts...)
		if err != nil {
			return "", err
		}
	}
	return encode.String(doc, o.encOpts...)
}

// StringifyAll renders a document stream, separating documents with
// "---" markers.
func StringifyAll(docs []*ir.Document, opts ...Option) (string, error) {
	o := newOptions(opts)
	out := ""
	for i, doc := range docs {
		encOpts := o.encOpts
		if i > 0 || doc.DirectivesEndMarker {
			encOpts = append(encOpts[:len(encOpts):len(encOpts)],
				encode.DirectivesEndMarker(true))
		}
		s, err := encode.String(doc, encOpts...)
		if err != nil {
			return "", err
		}
		out += s
	}
	return out, nil
}

func (o *options) buildSchema() (*schema.Schema, error) {
	if o.schemaName != "" {
		return schema.New(o.schemaName, o.customTags...)
	}
	if o.version == "1.1" {
		return schema.New(schema.YAML11, o.customTags...)
	}
	return schema.New(schema.Core, o.customTags...)
}

func (o *options) fillLineCounter(src string) {
	if o.lineCounter == nil {
		return
	}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			o.lineCounter.AddNewLine(i + 1)
		}
	}
}

func (o *options) emitWarnings(doc *ir.Document) {
	if o.logLevel != LogWarn {
		return
	}
	for _, w := range doc.Warnings {
		fmt.Fprintf(os.Stderr, "%s\n", w.Error())
	}
}

// escalate converts a recorded document error into a returned one.
func (o *options) escalate(e *ir.Error) error {
	if o.prettyErrors {
		return e
	}
	plain := *e
	plain.Line, plain.Col = 0, 0
	return &plain
}
