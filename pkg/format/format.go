// Package format renders token streams for humans: ANSI for terminals,
// HTML for pages, and a plain dump for debugging. Formatters are pure
// consumers of the token stream; the engine does not know they exist.
package format

import (
	"fmt"
	"io"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/relex/pkg/position"
	"github.com/walteh/relex/pkg/token"
)

// Formatter writes a rendering of tokens to w. Implementations must not
// mutate the tokens.
type Formatter interface {
	Format(w io.Writer, tokens []token.Token) error
}

// Plain writes one line per token: classification, quoted text, and
// either the byte offset or, when Places is set, line:column.
type Plain struct {
	// Places, when non-nil, is used to print line:column instead of the
	// byte offset.
	Places *position.Map
}

func (p *Plain) Format(w io.Writer, tokens []token.Token) error {
	for _, tok := range tokens {
		var err error
		if p.Places != nil {
			place := p.Places.PlaceOf(tok.Offset)
			_, err = fmt.Fprintf(w, "%d:%d %s %q\n", place.Line+1, place.Character+1, tok.Type, tok.Text)
		} else {
			_, err = fmt.Fprintf(w, "@%d %s %q\n", tok.Offset, tok.Type, tok.Text)
		}
		if err != nil {
			return errors.Errorf("writing token line: %w", err)
		}
	}
	return nil
}
