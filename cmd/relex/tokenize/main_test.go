package tokenize

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/walteh/relex/pkg/registry"

	_ "github.com/walteh/relex/pkg/lexer/grammars/iecst"
)

func testFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "blink.st", []byte("IF x THEN y END_IF"), 0o644))
	return fs
}

func TestTokenizePlain(t *testing.T) {
	me := &Handler{formatName: "plain"}

	var sb strings.Builder
	err := me.Run(context.Background(), testFs(t), &sb, []string{"blink.st"})
	require.NoError(t, err)

	require.Contains(t, sb.String(), `@0 Keyword "IF"`)
	require.Contains(t, sb.String(), `@3 Name "x"`)
	require.Contains(t, sb.String(), `@12 Keyword "END_IF"`)
}

func TestTokenizePlainWithPlaces(t *testing.T) {
	me := &Handler{formatName: "plain", places: true}

	var sb strings.Builder
	err := me.Run(context.Background(), testFs(t), &sb, []string{"blink.st"})
	require.NoError(t, err)

	require.Contains(t, sb.String(), `1:1 Keyword "IF"`)
}

func TestTokenizeExplicitLexer(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "noext", []byte("IF"), 0o644))

	me := &Handler{formatName: "plain", lexerName: "iecst"}
	var sb strings.Builder
	require.NoError(t, me.Run(context.Background(), fs, &sb, []string{"noext"}))
	require.Contains(t, sb.String(), `Keyword "IF"`)
}

func TestTokenizeUnknownGrammar(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "data.bin", []byte("x"), 0o644))

	me := &Handler{formatName: "plain"}
	err := me.Run(context.Background(), fs, &strings.Builder{}, []string{"data.bin"})
	require.ErrorIs(t, err, registry.ErrUnknownGrammar)
}

func TestTokenizeUnknownFormat(t *testing.T) {
	me := &Handler{formatName: "yaml"}
	err := me.Run(context.Background(), testFs(t), &strings.Builder{}, []string{"blink.st"})
	require.Error(t, err)
	require.Contains(t, err.Error(), `"yaml"`)
}

func TestTokenizeHTMLRoundTrip(t *testing.T) {
	me := &Handler{formatName: "html"}

	var sb strings.Builder
	require.NoError(t, me.Run(context.Background(), testFs(t), &sb, []string{"blink.st"}))
	require.Contains(t, sb.String(), `<span class="tok-keyword">IF</span>`)
}
