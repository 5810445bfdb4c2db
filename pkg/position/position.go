// Package position converts byte offsets from a scan into line/column
// places for editors and reports. Columns count grapheme clusters, not
// bytes, so multi-byte and combining characters land where a reader
// expects them.
package position

import (
	"sort"

	"github.com/apparentlymart/go-textseg/v13/textseg"
)

// Place is a zero-based line and column in the source text.
type Place struct {
	Line      int
	Character int
}

// Range is a half-open [Start, End) span of places.
type Range struct {
	Start Place
	End   Place
}

// Map resolves byte offsets in one immutable source text. Build it once
// per text; lookups are safe concurrently.
type Map struct {
	src        string
	lineStarts []int
}

// NewMap indexes the line starts of src.
func NewMap(src string) *Map {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Map{src: src, lineStarts: starts}
}

// PlaceOf returns the place of the given byte offset. Offsets past the
// end of the text clamp to the end.
func (m *Map) PlaceOf(offset int) Place {
	if offset < 0 {
		offset = 0
	}
	if offset > len(m.src) {
		offset = len(m.src)
	}

	line := sort.Search(len(m.lineStarts), func(i int) bool {
		return m.lineStarts[i] > offset
	}) - 1

	prefix := m.src[m.lineStarts[line]:offset]
	col, err := textseg.TokenCount([]byte(prefix), textseg.ScanGraphemeClusters)
	if err != nil {
		// ScanGraphemeClusters never fails on valid input; fall back to
		// byte columns rather than lose the line number.
		col = len(prefix)
	}

	return Place{Line: line, Character: col}
}

// RangeOf returns the range covering length bytes starting at offset.
func (m *Map) RangeOf(offset, length int) Range {
	return Range{
		Start: m.PlaceOf(offset),
		End:   m.PlaceOf(offset + length),
	}
}
