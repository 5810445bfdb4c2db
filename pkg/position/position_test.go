package position_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/walteh/relex/pkg/position"
)

func TestPlaceOf(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		offset int
		want   position.Place
	}{
		{
			name:   "empty_text",
			text:   "",
			offset: 0,
			want:   position.Place{Line: 0, Character: 0},
		},
		{
			name:   "single_line_start",
			text:   "Hello, World!",
			offset: 0,
			want:   position.Place{Line: 0, Character: 0},
		},
		{
			name:   "single_line_middle",
			text:   "Hello, World!",
			offset: 7,
			want:   position.Place{Line: 0, Character: 7},
		},
		{
			name:   "second_line",
			text:   "Hello\nWorld",
			offset: 8,
			want:   position.Place{Line: 1, Character: 2},
		},
		{
			name:   "offset_at_newline",
			text:   "ab\ncd",
			offset: 2,
			want:   position.Place{Line: 0, Character: 2},
		},
		{
			name:   "offset_just_after_newline",
			text:   "ab\ncd",
			offset: 3,
			want:   position.Place{Line: 1, Character: 0},
		},
		{
			name:   "multibyte_column_counts_graphemes",
			text:   "héllo",
			offset: 3, // past "h" and the two-byte "é"
			want:   position.Place{Line: 0, Character: 2},
		},
		{
			name:   "clamped_past_end",
			text:   "ab",
			offset: 99,
			want:   position.Place{Line: 0, Character: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := position.NewMap(tt.text)
			require.Equal(t, tt.want, m.PlaceOf(tt.offset))
		})
	}
}

func TestRangeOf(t *testing.T) {
	m := position.NewMap("IF x\nTHEN y")

	r := m.RangeOf(5, 4) // "THEN"
	require.Equal(t, position.Range{
		Start: position.Place{Line: 1, Character: 0},
		End:   position.Place{Line: 1, Character: 4},
	}, r)
}
