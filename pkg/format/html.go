package format

import (
	"html"
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/relex/pkg/token"
)

// HTML renders tokens as spans inside a <pre> block. Each span's class is
// the dotted type path lowered and dashed, e.g. "tok-comment-multiline",
// so styling stays a stylesheet concern.
type HTML struct{}

func classFor(t token.Type) string {
	return "tok-" + strings.ReplaceAll(strings.ToLower(t.String()), ".", "-")
}

func (HTML) Format(w io.Writer, tokens []token.Token) error {
	if _, err := io.WriteString(w, `<pre class="relex">`); err != nil {
		return errors.Errorf("writing opening tag: %w", err)
	}
	for _, tok := range tokens {
		_, err := io.WriteString(w, `<span class="`+classFor(tok.Type)+`">`+html.EscapeString(tok.Text)+`</span>`)
		if err != nil {
			return errors.Errorf("writing token span: %w", err)
		}
	}
	if _, err := io.WriteString(w, "</pre>\n"); err != nil {
		return errors.Errorf("writing closing tag: %w", err)
	}
	return nil
}
