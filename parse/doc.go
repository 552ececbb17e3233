// Package parse groups source tokens into a document token tree.
//
// The parser tracks the base indent of each enclosing block
// collection: an item belongs to the collection whose base indent is
// smaller than the item's column, and a line at or above the base
// terminates the collection. Flow collections are parsed across line
// breaks up to their closing bracket.
//
// All syntax errors are recorded on the containing Document with a
// stable code and source offset; parsing continues best-effort so the
// composer can still produce a partial node tree.
//
// # Usage
//
//	st := parse.Parse([]byte("a: 1\nb: [2, 3]\n"))
//	for _, doc := range st.Docs {
//		_ = doc.Root
//	}
//
// # Related Packages
//
//   - github.com/yamlkit/yamlkit/token - the lexer feeding this parser
//   - github.com/yamlkit/yamlkit/compose - resolves parsed trees to nodes
package parse
