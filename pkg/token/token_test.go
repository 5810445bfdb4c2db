package token_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/walteh/relex/pkg/token"
)

func TestTypeHierarchy(t *testing.T) {
	tests := []struct {
		name     string
		typ      token.Type
		parent   token.Type
		category token.Type
		str      string
	}{
		{name: "top_level", typ: token.Keyword, parent: token.None, category: token.Keyword, str: "Keyword"},
		{name: "keyword_type", typ: token.KeywordType, parent: token.Keyword, category: token.Keyword, str: "Keyword.Type"},
		{name: "comment_multiline", typ: token.CommentMultiline, parent: token.Comment, category: token.Comment, str: "Comment.Multiline"},
		{name: "whitespace_under_text", typ: token.Whitespace, parent: token.Text, category: token.Text, str: "Text.Whitespace"},
		{name: "number_float", typ: token.NumberFloat, parent: token.Number, category: token.Number, str: "Number.Float"},
		{name: "string_escape", typ: token.StringEscape, parent: token.String, category: token.String, str: "String.Escape"},
		{name: "operator_word", typ: token.OperatorWord, parent: token.Operator, category: token.Operator, str: "Operator.Word"},
		{name: "error", typ: token.Error, parent: token.None, category: token.Error, str: "Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.parent, tt.typ.Parent())
			require.Equal(t, tt.category, tt.typ.Category())
			require.Equal(t, tt.str, tt.typ.String())
		})
	}
}

func TestTypeIn(t *testing.T) {
	require.True(t, token.NumberFloat.In(token.Number))
	require.True(t, token.Number.In(token.Number))
	require.False(t, token.Number.In(token.NumberFloat))
	require.False(t, token.Keyword.In(token.Name))
}

func TestTokenEnd(t *testing.T) {
	tok := token.Token{Type: token.Keyword, Text: "END_IF", Offset: 12}
	require.Equal(t, 18, tok.End())
}

func TestTokenString(t *testing.T) {
	tok := token.Token{Type: token.NumberFloat, Text: "1.5e10", Offset: 0}
	require.Equal(t, `Number.Float:"1.5e10"@0`, tok.String())
}
