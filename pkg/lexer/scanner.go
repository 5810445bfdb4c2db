package lexer

import (
	"unicode/utf8"

	"github.com/walteh/relex/pkg/token"
)

// Scanner is one tokenization pass over one input string. It owns the
// only mutable pieces of the engine, the cursor and the state stack, so
// independent scans over a shared Table need no coordination.
//
// Scanning is a pure pull: each Next call does one bounded unit of work
// and returns. A Scanner is not restartable; make a new one per pass.
type Scanner struct {
	table *Table
	src   string
	pos   int
	base  int
	stack []int
	queue []token.Token
}

// New returns a Scanner over src starting in the table's root state.
func New(table *Table, src string) *Scanner {
	return newScannerAt(table, src, 0)
}

// newScannerAt starts a scan whose token offsets are rebased by base, for
// delegated sub-scans over a captured substring.
func newScannerAt(table *Table, src string, base int) *Scanner {
	return &Scanner{
		table: table,
		src:   src,
		base:  base,
		stack: []int{table.root},
	}
}

// Next returns the next token of the scan, or ok=false at end of input.
//
// Rules of the active state are tried in declared order; the first one
// whose pattern matches at the cursor fires. A zero-width match fires only
// when the rule carries a state action, otherwise the rule is skipped so
// it cannot stall the scan. When nothing matches, one token.Error covering
// exactly one rune is emitted and the cursor moves past it.
func (s *Scanner) Next() (token.Token, bool) {
	for {
		if len(s.queue) > 0 {
			tok := s.queue[0]
			s.queue = s.queue[1:]
			return tok, true
		}
		if s.pos >= len(s.src) {
			return token.Token{}, false
		}

		rules := s.table.states[s.stack[len(s.stack)-1]]
		fired := false
		for i := range rules {
			r := &rules[i]
			if r.byDefault {
				s.applyState(r)
				fired = true
				break
			}
			m := r.re.FindStringSubmatchIndex(s.src[s.pos:])
			if m == nil {
				continue
			}
			if m[1] == 0 && !r.hasNext {
				continue
			}
			if r.emit != nil && m[1] > 0 {
				s.rebase(m)
				s.queue = append(s.queue, r.emit.EmitTokens(&Match{
					src:    s.src,
					groups: m,
					base:   s.base,
					table:  s.table,
				})...)
			}
			s.applyState(r)
			s.pos += m[1] - m[0]
			fired = true
			break
		}
		if fired {
			continue
		}

		// Fallback: cover one rune and keep going. Malformed input
		// degrades to Error tokens, never to a stalled or failed scan.
		_, size := utf8.DecodeRuneInString(s.src[s.pos:])
		if size == 0 {
			size = 1
		}
		tok := token.Token{Type: token.Error, Text: s.src[s.pos : s.pos+size], Offset: s.base + s.pos}
		s.pos += size
		return tok, true
	}
}

// rebase shifts submatch indices from the remaining-input slice to
// absolute positions in src.
func (s *Scanner) rebase(m []int) {
	for i, idx := range m {
		if idx >= 0 {
			m[i] = idx + s.pos
		}
	}
}

// applyState pops then pushes per the rule's state action. Pops stop at
// the sentinel: the stack never becomes empty.
func (s *Scanner) applyState(r *compiledRule) {
	if !r.hasNext {
		return
	}
	for n := r.pops; n > 0 && len(s.stack) > 1; n-- {
		s.stack = s.stack[:len(s.stack)-1]
	}
	s.stack = append(s.stack, r.push...)
}

// Drain runs the scan to end of input and returns all remaining tokens.
func (s *Scanner) Drain() []token.Token {
	var out []token.Token
	for {
		tok, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, tok)
	}
}
