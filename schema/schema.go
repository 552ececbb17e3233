package schema

import (
	"fmt"
	"math/big"
	"regexp"
	"time"
)

// Canonical tag URIs.
const (
	TagStr       = "tag:yaml.org,2002:str"
	TagMap       = "tag:yaml.org,2002:map"
	TagSeq       = "tag:yaml.org,2002:seq"
	TagNull      = "tag:yaml.org,2002:null"
	TagBool      = "tag:yaml.org,2002:bool"
	TagInt       = "tag:yaml.org,2002:int"
	TagFloat     = "tag:yaml.org,2002:float"
	TagMerge     = "tag:yaml.org,2002:merge"
	TagBinary    = "tag:yaml.org,2002:binary"
	TagTimestamp = "tag:yaml.org,2002:timestamp"
	TagOmap      = "tag:yaml.org,2002:omap"
	TagPairs     = "tag:yaml.org,2002:pairs"
	TagSet       = "tag:yaml.org,2002:set"
)

// StringifyCtx carries scalar formatting state into tag stringifiers.
type StringifyCtx struct {
	// Format is "HEX", "OCT", "EXP" or empty.
	Format            string
	MinFractionDigits int
	Version           string
}

// Tag defines one tag's behavior: how plain scalars resolve to native
// values, which native values the tag claims, and optionally how a
// value renders back to source text.
type Tag struct {
	// Tag is the absolute tag URI.
	Tag string
	// Collection marks map/seq tags; they have no scalar resolution.
	Collection bool
	// Test matches plain scalar source for implicit resolution, tried
	// in schema order.
	Test *regexp.Regexp
	// Resolve converts matched plain-scalar source to a native value.
	Resolve func(src string) (any, error)
	// Identify claims native values for stringification.
	Identify func(v any) bool
	// Stringify renders a native value to scalar source. When nil the
	// stringifier's defaults apply.
	Stringify func(v any, ctx *StringifyCtx) (string, bool)
	// CreateNode converts non-scalar inputs for custom tags; the
	// returned value is wrapped as a scalar.
	CreateNode func(v any) (any, error)
}

// Schema is an ordered tag set plus version-dependent policy.
type Schema struct {
	Name    string
	Version string
	// Merge enables "<<" merge-key semantics at native conversion.
	Merge bool
	Tags  []*Tag

	byURI map[string]*Tag
}

const (
	Failsafe = "failsafe"
	JSON     = "json"
	Core     = "core"
	YAML11   = "yaml-1.1"
)

// New returns a preset schema by name, with custom tags placed ahead
// of all of the preset's tags.
func New(name string, custom ...*Tag) (*Schema, error) {
	var s *Schema
	switch name {
	case Failsafe:
		s = &Schema{Name: name, Version: "1.2", Tags: failsafeTags()}
	case JSON:
		s = &Schema{Name: name, Version: "1.2", Tags: jsonTags()}
	case Core, "":
		s = &Schema{Name: Core, Version: "1.2", Tags: coreTags()}
	case YAML11:
		s = &Schema{Name: name, Version: "1.1", Merge: true, Tags: yaml11Tags()}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSchema, name)
	}
	if len(custom) > 0 {
		// custom tags resolve before every preset tag
		tags := make([]*Tag, 0, len(s.Tags)+len(custom))
		tags = append(tags, custom...)
		tags = append(tags, s.Tags...)
		s.Tags = tags
	}
	s.index()
	return s, nil
}

// ForVersion returns the default schema for a YAML version.
func ForVersion(version string) (*Schema, error) {
	switch version {
	case "1.1":
		return New(YAML11)
	case "1.2", "":
		return New(Core)
	default:
		return nil, fmt.Errorf("%w: version %q", ErrUnknownSchema, version)
	}
}

func (s *Schema) index() {
	s.byURI = make(map[string]*Tag, len(s.Tags))
	for _, t := range s.Tags {
		if _, ok := s.byURI[t.Tag]; !ok {
			s.byURI[t.Tag] = t
		}
	}
}

// Lookup returns the tag registered for an absolute URI, or nil.
func (s *Schema) Lookup(uri string) *Tag {
	if s.byURI == nil {
		s.index()
	}
	return s.byURI[uri]
}

// ResolveScalar resolves plain-scalar source against the schema's tags
// in order, returning the native value and winning tag URI. Unmatched
// source resolves as a string.
func (s *Schema) ResolveScalar(src string) (any, string, error) {
	for _, t := range s.Tags {
		if t.Test == nil || t.Resolve == nil {
			continue
		}
		if !t.Test.MatchString(src) {
			continue
		}
		v, err := t.Resolve(src)
		if err != nil {
			return nil, t.Tag, err
		}
		return v, t.Tag, nil
	}
	return src, TagStr, nil
}

// TagFor returns the first tag whose Identify claims v, or nil.
func (s *Schema) TagFor(v any) *Tag {
	for _, t := range s.Tags {
		if t.Identify != nil && t.Identify(v) {
			return t
		}
	}
	return nil
}

// Knows reports whether the schema can emit a node with the given
// explicit tag.
func (s *Schema) Knows(uri string) bool {
	return s.Lookup(uri) != nil
}

func identifyString(v any) bool {
	_, ok := v.(string)
	return ok
}

func identifyNull(v any) bool {
	return v == nil
}

func identifyBool(v any) bool {
	_, ok := v.(bool)
	return ok
}

func identifyInt(v any) bool {
	switch v.(type) {
	case int, int64, *big.Int:
		return true
	}
	return false
}

func identifyFloat(v any) bool {
	switch v.(type) {
	case float32, float64:
		return true
	}
	return false
}

func identifyTime(v any) bool {
	_, ok := v.(time.Time)
	return ok
}

func identifyBinary(v any) bool {
	_, ok := v.([]byte)
	return ok
}
