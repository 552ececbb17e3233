// Package encode serializes document trees to YAML text.
//
// Scalar styles are chosen under line-width and context constraints:
// plain when unambiguous, quoted when indicators or resolution would
// interfere, block literal or folded for multi-line content. Before
// emission, identity-shared nodes are given anchors and later
// occurrences become aliases, which also breaks genuine cycles.
//
// # Usage
//
//	out, err := encode.String(doc, encode.Indent(4), encode.LineWidth(100))
//
// # Related Packages
//
//   - github.com/yamlkit/yamlkit/ir - the document model
//   - github.com/yamlkit/yamlkit/schema - tag-directed stringification
package encode
