// Package schema defines tag resolution for YAML documents.
//
// A Schema is an ordered list of Tag definitions. Plain scalars
// resolve against the tags' patterns in order; native values are
// claimed for stringification through each tag's Identify hook.
//
// Four presets exist: failsafe (strings and collections only), json,
// core (YAML 1.2 defaults) and yaml-1.1 (timestamps, binary, sets,
// ordered maps, merge keys and the wider 1.1 scalar forms).
//
// # Usage
//
//	s, _ := schema.New(schema.Core)
//	v, tag, _ := s.ResolveScalar("0x2a")  // int64(42), "tag:yaml.org,2002:int"
//
// # Related Packages
//
//   - github.com/yamlkit/yamlkit/compose - applies schemas while composing
//   - github.com/yamlkit/yamlkit/encode - applies schemas while serializing
package schema
