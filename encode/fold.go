package encode

import (
	"strings"

	"github.com/mitchellh/go-wordwrap"
)

// contentWidth returns the usable width for content at the given
// indentation, or 0 when folding is off.
func (es *encState) contentWidth(indent string) int {
	if es.opts.lineWidth <= 0 {
		return 0
	}
	w := es.opts.lineWidth - len(indent)
	if w < es.opts.minContentWidth {
		w = es.opts.minContentWidth
	}
	return w
}

// foldable rejects content whose space runs would be damaged by
// re-folding: breaks only fold back to a single space.
func foldable(s string) bool {
	return !strings.Contains(s, "  ") && !strings.Contains(s, "\t")
}

// foldLine breaks one line of flow-scalar content at word boundaries,
// re-indenting continuation lines. The input must not contain
// newlines.
func foldLine(s, indent string, width int) string {
	if width <= 0 || len(s) <= width || !foldable(s) {
		return s
	}
	wrapped := wordwrap.WrapString(s, uint(width))
	return strings.ReplaceAll(wrapped, "\n", "\n"+indent)
}

// foldBlockLines folds the paragraphs of a folded block scalar.
// More-indented lines are preserved verbatim; everything else wraps
// at width.
func foldBlockLines(lines []string, width int) []string {
	if width <= 0 {
		return lines
	}
	var out []string
	for _, ln := range lines {
		if ln == "" || ln[0] == ' ' || ln[0] == '\t' ||
			len(ln) <= width || !foldable(ln) {
			out = append(out, ln)
			continue
		}
		out = append(out, strings.Split(wordwrap.WrapString(ln, uint(width)), "\n")...)
	}
	return out
}
