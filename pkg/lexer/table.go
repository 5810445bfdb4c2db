package lexer

import (
	"regexp"
	"sort"

	"github.com/hashicorp/go-multierror"
	"gitlab.com/tozd/go/errors"
)

// RootState is the sentinel state every table must declare. It sits at the
// bottom of the state stack and is never popped.
const RootState = "root"

// Table is a compiled, immutable grammar: per-state rule lists with
// includes expanded, patterns compiled, and state names interned to
// indices. A Table is safe for concurrent use by any number of scans.
type Table struct {
	names  map[string]int
	states [][]compiledRule
	root   int
}

type compiledRule struct {
	re        *regexp.Regexp
	emit      Emitter
	pops      int
	push      []int
	hasNext   bool
	byDefault bool
}

// Compile flattens and validates a rule table. Includes are expanded
// depth-first at the point of inclusion, preserving declared order; a
// state may be included from several places, but include cycles, rules
// targeting undeclared states, invalid patterns, and a missing root state
// are compile errors. All problems are reported together, once.
func Compile(rules Rules) (*Table, error) {
	var result *multierror.Error

	if _, ok := rules[RootState]; !ok {
		result = multierror.Append(result, errors.Errorf("table declares no %q state", RootState))
	}

	// Intern state names in a stable order so compiled tables are
	// reproducible.
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)

	t := &Table{
		names:  make(map[string]int, len(rules)),
		states: make([][]compiledRule, len(rules)),
	}
	for i, name := range names {
		t.names[name] = i
	}
	t.root = t.names[RootState]

	flattened := make(map[string][]Rule, len(rules))
	for _, name := range names {
		flat, err := expandIncludes(rules, name, nil)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		flattened[name] = flat
	}

	for _, name := range names {
		for i, r := range flattened[name] {
			cr, err := t.compileRule(name, i, r)
			if err != nil {
				result = multierror.Append(result, err)
				continue
			}
			t.states[t.names[name]] = append(t.states[t.names[name]], cr)
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return t, nil
}

// MustCompile is Compile but panics on error, for tables built from
// package-level grammar literals.
func MustCompile(rules Rules) *Table {
	t, err := Compile(rules)
	if err != nil {
		panic(err)
	}
	return t
}

// expandIncludes resolves one state's rule list, splicing included states
// in place. path holds the include chain being expanded, for cycle
// detection.
func expandIncludes(rules Rules, state string, path []string) ([]Rule, error) {
	for _, seen := range path {
		if seen == state {
			return nil, errors.Errorf("include cycle: %v -> %s", path, state)
		}
	}
	list, ok := rules[state]
	if !ok {
		return nil, errors.Errorf("state %q includes undeclared state %q", path[len(path)-1], state)
	}
	var out []Rule
	for _, r := range list {
		if r.include == "" {
			out = append(out, r)
			continue
		}
		inner, err := expandIncludes(rules, r.include, append(path, state))
		if err != nil {
			return nil, err
		}
		out = append(out, inner...)
	}
	return out, nil
}

func (t *Table) compileRule(state string, i int, r Rule) (compiledRule, error) {
	cr := compiledRule{emit: r.Emit, byDefault: r.byDefault}

	if r.Next != nil {
		cr.hasNext = true
		cr.pops = r.Next.pops
		for _, name := range r.Next.push {
			idx, ok := t.names[name]
			if !ok {
				return cr, errors.Errorf("state %q rule %d pushes undeclared state %q", state, i, name)
			}
			cr.push = append(cr.push, idx)
		}
	}

	// Delegation targets are state references too; refuse them at load
	// time like include and push targets.
	if e, ok := r.Emit.(usingSelfEmitter); ok {
		if _, ok := t.names[e.state]; !ok {
			return cr, errors.Errorf("state %q rule %d delegates to undeclared state %q", state, i, e.state)
		}
	}

	if r.byDefault {
		if !cr.hasNext {
			return cr, errors.Errorf("state %q rule %d: default rule without a state action", state, i)
		}
		return cr, nil
	}

	// Anchor at the cursor; the wrapping group keeps capture numbering
	// intact.
	re, err := regexp.Compile(`\A(?:` + r.Pattern + `)`)
	if err != nil {
		return cr, errors.Errorf("state %q rule %d: compiling pattern: %w", state, i, err)
	}
	cr.re = re
	return cr, nil
}

// State returns the interned index for a state name.
func (t *Table) State(name string) (int, bool) {
	idx, ok := t.names[name]
	return idx, ok
}
