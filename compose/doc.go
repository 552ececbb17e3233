// Package compose resolves parsed token trees into typed documents.
//
// The composer walks the parse tree, extracting node properties,
// decoding quoted and block scalars, matching plain scalars against
// the active schema, and attaching source ranges. Anchors register on
// the nodes themselves; aliases stay unresolved until native
// conversion.
//
// # Usage
//
//	st := parse.Parse([]byte(src))
//	docs := compose.Compose(st, compose.WithSchema(schema.YAML11))
//
// # Related Packages
//
//   - github.com/yamlkit/yamlkit/parse - produces the input trees
//   - github.com/yamlkit/yamlkit/schema - tag resolution rules
//   - github.com/yamlkit/yamlkit/ir - the output document model
package compose
