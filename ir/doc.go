// Package ir holds the in-memory representation of YAML documents.
//
// # Overview
//
// A Document owns a tree of Node values. Node is a tagged union over
// scalars, mappings, sequences and aliases, discriminated by Type and
// tested with the IsScalar/IsMap/IsSeq/IsAlias predicates. Mapping
// items are Pair values; duplicate keys are legal at the tree level,
// so lookups are linear over the item list.
//
// Nodes carry presentation state alongside values: a style, number
// formatting hints, comments and anchors. The compose package builds
// these trees from parsed source; the encode package writes them back
// out.
//
// # Usage
//
//	n, _ := ir.CreateNode(map[string]any{"a": 1})
//	doc := ir.NewDocument(nil)
//	doc.Contents = n
//	v, _ := doc.ToNative()
//
// # Related Packages
//
//   - github.com/yamlkit/yamlkit/compose - builds documents from source
//   - github.com/yamlkit/yamlkit/encode - serializes documents
//   - github.com/yamlkit/yamlkit/schema - tag resolution
package ir
