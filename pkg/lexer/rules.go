// Package lexer implements a stateful regex-driven tokenizer engine. A
// grammar is a table of named states, each an ordered list of rules; a
// Scanner walks an input string, always trying the rules of the state on
// top of its state stack, in declared order, anchored at the cursor.
//
// The engine guarantees total tokenization: any input is consumed to the
// end, with token.Error covering positions no rule matches.
package lexer

import (
	"regexp"
	"sort"
	"strings"

	"github.com/walteh/relex/pkg/token"
)

// Rules maps state names to their ordered rule lists. Every table must
// declare a "root" state; it is the sentinel at the bottom of the state
// stack and is never popped.
type Rules map[string][]Rule

// Rule pairs a pattern with what happens when it matches. Patterns are
// matched against the remaining input only, anchored at the cursor; they
// never scan ahead for a match elsewhere. Case folding and dot-all
// behavior are chosen per rule with RE2 inline flags ("(?i)", "(?s)").
//
// Because only the remaining input is visible to the pattern, zero-width
// assertions cannot see already-consumed text: a leading `\b` treats the
// cursor as start of text and holds whenever the next character is a word
// character, even right after a word character the previous rule consumed.
// Trailing assertions look at unconsumed input and behave as usual.
//
// Declaration order is priority: the first rule whose pattern matches
// wins, even if a later rule would match a longer prefix.
type Rule struct {
	// Pattern is an RE2 pattern, compiled once at table compile time.
	Pattern string

	// Emit produces the rule's tokens, or nil for rules that only
	// transition state.
	Emit Emitter

	// Next mutates the state stack after emission, or nil to stay.
	Next *StateAction

	include   string
	byDefault bool
}

// Include splices the named state's rules in place of this rule, in order,
// at table compile time. Includes may nest but must not form a cycle.
func Include(state string) Rule {
	return Rule{include: state}
}

// Default declares the state's fallback: when reached it fires without
// consuming input and without emitting, applying only next. It exists so a
// state can hand control to another state from positions none of its own
// patterns match.
func Default(next *StateAction) Rule {
	return Rule{byDefault: true, Next: next}
}

// StateAction is a pop count followed by zero or more pushes, applied to
// the state stack after a rule's tokens are emitted. Pops at the sentinel
// are no-ops.
type StateAction struct {
	pops int
	push []string
}

// Push pushes the named states in order, so the last one becomes the
// active state.
func Push(states ...string) *StateAction {
	return &StateAction{push: states}
}

// Pop removes n states from the stack. Pop(1) is the conventional "#pop".
func Pop(n int) *StateAction {
	return &StateAction{pops: n}
}

// Swap pops one state and pushes the named one in its place.
func Swap(state string) *StateAction {
	return &StateAction{pops: 1, push: []string{state}}
}

// Words builds an alternation pattern matching any of the given literal
// words, longest first so that alternatives sharing a prefix cannot
// shadow a longer one. suffix is typically `\b` to keep a word from
// matching as the prefix of a longer identifier.
func Words(prefix, suffix string, words ...string) string {
	sorted := make([]string, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})
	for i, w := range sorted {
		sorted[i] = regexp.QuoteMeta(w)
	}
	return prefix + "(?:" + strings.Join(sorted, "|") + ")" + suffix
}

// Match describes one rule application: the matched span and its capture
// groups, with offsets already rebased to the outermost input.
type Match struct {
	src    string
	groups []int // submatch pairs, indices into src
	base   int   // rebase for delegated scans
	table  *Table
}

// Text returns the whole matched span.
func (m *Match) Text() string {
	return m.src[m.groups[0]:m.groups[1]]
}

// Start returns the absolute offset of the match.
func (m *Match) Start() int {
	return m.base + m.groups[0]
}

// Group returns the text and absolute offset of capture group i (1-based),
// with ok false when the group did not participate in the match.
func (m *Match) Group(i int) (text string, offset int, ok bool) {
	if 2*i+1 >= len(m.groups) || m.groups[2*i] < 0 {
		return "", 0, false
	}
	return m.src[m.groups[2*i]:m.groups[2*i+1]], m.base + m.groups[2*i], true
}

// Emitter turns a rule match into tokens.
type Emitter interface {
	EmitTokens(m *Match) []token.Token
}

type singleEmitter struct {
	typ token.Type
}

// Emit classifies the whole match as one token of type t.
func Emit(t token.Type) Emitter {
	return singleEmitter{typ: t}
}

func (e singleEmitter) EmitTokens(m *Match) []token.Token {
	return []token.Token{{Type: e.typ, Text: m.Text(), Offset: m.Start()}}
}

type groupEmitter struct {
	types []token.Type
}

// ByGroups emits one token per capture group, in group order, with the
// i-th type bound to group i+1. Groups that did not participate in the
// match are skipped silently, as are groups bound to token.None.
func ByGroups(types ...token.Type) Emitter {
	return groupEmitter{types: types}
}

func (e groupEmitter) EmitTokens(m *Match) []token.Token {
	var out []token.Token
	for i, typ := range e.types {
		if typ == token.None {
			continue
		}
		text, offset, ok := m.Group(i + 1)
		if !ok {
			continue
		}
		out = append(out, token.Token{Type: typ, Text: text, Offset: offset})
	}
	return out
}

type usingEmitter struct {
	resolve func() *Table
}

// Using hands the matched span to an independent Scanner over the resolved
// table and splices its token stream in place, offsets rebased to the
// outer input. The table is resolved lazily so grammars can delegate to
// tables that are still being built when the rule literal is declared.
func Using(resolve func() *Table) Emitter {
	return usingEmitter{resolve: resolve}
}

func (e usingEmitter) EmitTokens(m *Match) []token.Token {
	sub := newScannerAt(e.resolve(), m.Text(), m.Start())
	return sub.Drain()
}

type usingSelfEmitter struct {
	state string
}

// UsingSelf is Using with the scanner's own table, starting the delegated
// scan in the named state.
func UsingSelf(state string) Emitter {
	return usingSelfEmitter{state: state}
}

func (e usingSelfEmitter) EmitTokens(m *Match) []token.Token {
	// The state name was validated at compile time.
	sub := newScannerAt(m.table, m.Text(), m.Start())
	sub.stack[0] = m.table.names[e.state]
	return sub.Drain()
}
