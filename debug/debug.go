// Package debug provides env-gated debug logging for the library.
// Nothing here is part of the stable API.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Lexer   bool
	Parse   bool
	Compose bool
	Encode  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Lexer = boolEnv("YAMLKIT_DEBUG_LEXER")
	d.Parse = boolEnv("YAMLKIT_DEBUG_PARSE")
	d.Compose = boolEnv("YAMLKIT_DEBUG_COMPOSE")
	d.Encode = boolEnv("YAMLKIT_DEBUG_ENCODE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Lexer() bool {
	return d.Lexer
}
func Parse() bool {
	return d.Parse
}
func Compose() bool {
	return d.Compose
}
func Encode() bool {
	return d.Encode
}
