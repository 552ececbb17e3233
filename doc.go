// Package yamlkit converts between YAML source text and in-memory
// document trees, and back.
//
// The pipeline runs token -> parse -> compose on the way in, and
// encode on the way out. Parsed documents keep enough structure to
// round-trip style choices: block vs flow layout, scalar quoting,
// comments, anchors and aliases.
//
// # Usage
//
//	v, err := yamlkit.Parse("a: [1, 2]\n")
//
//	doc := yamlkit.ParseDocument(src)
//	for _, e := range doc.Errors {
//		fmt.Println(e)
//	}
//
//	out, err := yamlkit.Stringify(map[string]any{"a": 1},
//		yamlkit.EncodeOptions(encode.Indent(4)))
//
// # Related Packages
//
//   - github.com/yamlkit/yamlkit/token - the lexer
//   - github.com/yamlkit/yamlkit/parse - the block-structure parser
//   - github.com/yamlkit/yamlkit/compose - schema-directed composition
//   - github.com/yamlkit/yamlkit/ir - the document model
//   - github.com/yamlkit/yamlkit/encode - the stringifier
package yamlkit
