package format_test

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/walteh/relex/pkg/format"
	"github.com/walteh/relex/pkg/position"
	"github.com/walteh/relex/pkg/token"
)

var sample = []token.Token{
	{Type: token.Keyword, Text: "IF", Offset: 0},
	{Type: token.Whitespace, Text: " ", Offset: 2},
	{Type: token.Name, Text: "x<y", Offset: 3},
	{Type: token.Error, Text: "@", Offset: 6},
}

func TestPlainFormat(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, (&format.Plain{}).Format(&sb, sample))
	require.Equal(t, ""+
		"@0 Keyword \"IF\"\n"+
		"@2 Text.Whitespace \" \"\n"+
		"@3 Name \"x<y\"\n"+
		"@6 Error \"@\"\n",
		sb.String())
}

func TestPlainFormatWithPlaces(t *testing.T) {
	src := "IF x<y@"
	var sb strings.Builder
	p := &format.Plain{Places: position.NewMap(src)}
	require.NoError(t, p.Format(&sb, sample))
	require.Equal(t, ""+
		"1:1 Keyword \"IF\"\n"+
		"1:3 Text.Whitespace \" \"\n"+
		"1:4 Name \"x<y\"\n"+
		"1:7 Error \"@\"\n",
		sb.String())
}

func TestHTMLFormatEscapesAndClasses(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, (format.HTML{}).Format(&sb, sample))

	out := sb.String()
	require.True(t, strings.HasPrefix(out, `<pre class="relex">`))
	require.True(t, strings.HasSuffix(out, "</pre>\n"))
	require.Contains(t, out, `<span class="tok-keyword">IF</span>`)
	require.Contains(t, out, `<span class="tok-text-whitespace"> </span>`)
	require.Contains(t, out, `<span class="tok-name">x&lt;y</span>`)
	require.NotContains(t, out, "x<y")
}

func TestANSIFormatRoundTripsText(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	var sb strings.Builder
	require.NoError(t, (format.ANSI{}).Format(&sb, sample))

	// With color disabled the output is exactly the source text.
	require.Equal(t, "IF x<y@", sb.String())
}
