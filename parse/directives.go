package parse

import (
	"strings"

	"github.com/yamlkit/yamlkit/ir"
	"github.com/yamlkit/yamlkit/token"
)

// parseDirective interprets a %-line. %YAML yields a version, %TAG a
// handle mapping; anything else is reserved and reported as a warning
// on the following document.
func parseDirective(t *token.Token, doc *Document) (string, map[string]string) {
	fields := strings.Fields(string(t.Bytes))
	if len(fields) == 0 {
		return "", nil
	}
	switch fields[0] {
	case "%YAML":
		if len(fields) < 2 {
			addDirectiveError(doc, t, "%%YAML directive needs a version argument")
			return "", nil
		}
		switch fields[1] {
		case "1.1", "1.2":
			return fields[1], nil
		default:
			addDirectiveError(doc, t, "unsupported YAML version %q", fields[1])
			return "", nil
		}
	case "%TAG":
		if len(fields) < 3 {
			addDirectiveError(doc, t, "%%TAG directive needs handle and prefix arguments")
			return "", nil
		}
		handle := fields[1]
		if !validTagHandle(handle) {
			addDirectiveError(doc, t, "invalid tag handle %q", handle)
			return "", nil
		}
		return "", map[string]string{handle: fields[2]}
	default:
		if doc != nil {
			doc.addWarning(ir.CodeBadDirective, t.Pos.I,
				"unknown directive %s", fields[0])
		}
		return "", nil
	}
}

func addDirectiveError(doc *Document, t *token.Token, format string, args ...any) {
	if doc != nil {
		doc.addError(ir.CodeBadDirective, t.Pos.I, format, args...)
	}
}

func validTagHandle(h string) bool {
	if len(h) < 1 || h[0] != '!' {
		return false
	}
	if len(h) == 1 || h == "!!" {
		return true
	}
	if h[len(h)-1] != '!' {
		return false
	}
	for _, c := range h[1 : len(h)-1] {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-':
		default:
			return false
		}
	}
	return true
}
