package yamlkit

import "sort"

// LineCounter collects newline offsets during a parse so later code
// can map byte offsets to line/column pairs.
type LineCounter struct {
	lineStarts []int
}

// AddNewLine records the start offset of a line after the first (the
// first line starts at offset 0 without being recorded); offsets may
// arrive in any order.
func (lc *LineCounter) AddNewLine(offset int) {
	lc.lineStarts = append(lc.lineStarts, offset)
}

// LinePos returns the 1-based line and column of a byte offset.
func (lc *LineCounter) LinePos(offset int) (line, col int) {
	if !sort.IntsAreSorted(lc.lineStarts) {
		sort.Ints(lc.lineStarts)
	}
	i := sort.SearchInts(lc.lineStarts, offset+1)
	if i == 0 {
		return 1, offset + 1
	}
	return i + 1, offset - lc.lineStarts[i-1] + 1
}
