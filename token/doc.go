// Package token tokenizes YAML source text.
//
// The lexer is a character scanner over a complete document. It emits
// typed tokens with byte offsets and never fails; malformed input
// produces marker tokens the parser reports as structured errors.
//
// # Usage
//
//	toks, posDoc := token.Tokenize([]byte("a: 1\n"))
//	for _, t := range toks {
//		fmt.Println(t.Type, t.Pos.I, string(t.Bytes))
//	}
//
// # Related Packages
//
//   - github.com/yamlkit/yamlkit/parse - groups tokens into a document tree
//   - github.com/yamlkit/yamlkit/compose - resolves the tree into typed nodes
package token
