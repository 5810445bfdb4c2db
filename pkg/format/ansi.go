package format

import (
	"io"

	"github.com/fatih/color"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/relex/pkg/token"
)

// ansiPalette maps top-level token categories to terminal colors. Leaf
// types inherit their category's color, so new leaves render sensibly
// without palette changes.
var ansiPalette = map[token.Type]*color.Color{
	token.Keyword:     color.New(color.FgBlue, color.Bold),
	token.Name:        color.New(color.FgWhite),
	token.String:      color.New(color.FgYellow),
	token.Number:      color.New(color.FgCyan),
	token.Operator:    color.New(color.FgMagenta),
	token.Punctuation: color.New(color.FgWhite),
	token.Comment:     color.New(color.FgGreen),
	token.Error:       color.New(color.FgRed, color.Underline),
}

// ANSI renders tokens with terminal escape codes. The emitted text,
// escape codes aside, is byte-identical to the scanned input. Respects
// NO_COLOR and non-TTY output through the color library's global toggle.
type ANSI struct{}

func (ANSI) Format(w io.Writer, tokens []token.Token) error {
	for _, tok := range tokens {
		c, ok := ansiPalette[tok.Type.Category()]
		if !ok {
			if _, err := io.WriteString(w, tok.Text); err != nil {
				return errors.Errorf("writing token: %w", err)
			}
			continue
		}
		if _, err := c.Fprint(w, tok.Text); err != nil {
			return errors.Errorf("writing colored token: %w", err)
		}
	}
	return nil
}
