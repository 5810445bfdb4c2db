// Package registry maps grammar metadata (names, aliases, filename
// patterns, MIME types) to compiled lexer tables. The engine itself knows
// nothing about files or MIME types; this is the hand-off layer between
// it and callers that do.
package registry

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/relex/pkg/lexer"
)

// ErrUnknownGrammar is returned by lookups that resolve nothing.
var ErrUnknownGrammar = errors.New("unknown grammar")

// Grammar bundles a compiled table with its registration metadata.
type Grammar struct {
	// Name is the canonical display name, e.g. "IEC Structured Text".
	Name string

	// Aliases are the short names accepted by Get, e.g. "iecst", "st".
	Aliases []string

	// Filenames are glob patterns matched against base names, e.g. "*.st".
	Filenames []string

	// MIMETypes are the media types served by this grammar.
	MIMETypes []string

	// Table is the compiled rule table handed to lexer.New.
	Table *lexer.Table
}

// Registry is a collection of grammars. Registration happens up front
// (usually from grammar package init); lookups are safe concurrently.
type Registry struct {
	mu      sync.RWMutex
	byAlias map[string]*Grammar
	all     []*Grammar
}

func New() *Registry {
	return &Registry{
		byAlias: make(map[string]*Grammar),
	}
}

// Register adds a grammar. The canonical name and every alias must be new
// to the registry; aliases are case-insensitive.
func (r *Registry) Register(g *Grammar) error {
	if g.Table == nil {
		return errors.Errorf("grammar %q has no compiled table", g.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	keys := append([]string{g.Name}, g.Aliases...)
	for _, key := range keys {
		key = strings.ToLower(key)
		if prev, ok := r.byAlias[key]; ok {
			return errors.Errorf("alias %q already registered to %q", key, prev.Name)
		}
	}
	for _, key := range keys {
		r.byAlias[strings.ToLower(key)] = g
	}
	r.all = append(r.all, g)
	return nil
}

// Get resolves a grammar by canonical name or alias.
func (r *Registry) Get(ctx context.Context, name string) (*Grammar, error) {
	r.mu.RLock()
	g, ok := r.byAlias[strings.ToLower(name)]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.Errorf("%w: %q", ErrUnknownGrammar, name)
	}
	zerolog.Ctx(ctx).Debug().Str("grammar", g.Name).Str("alias", name).Msg("resolved grammar by name")
	return g, nil
}

// ForFilename resolves a grammar whose filename patterns match the base
// name of path. The first registered match wins.
func (r *Registry) ForFilename(ctx context.Context, path string) (*Grammar, error) {
	base := filepath.Base(path)

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, g := range r.all {
		for _, pattern := range g.Filenames {
			ok, err := doublestar.Match(pattern, base)
			if err != nil {
				return nil, errors.Errorf("matching %q against %q: %w", base, pattern, err)
			}
			if ok {
				zerolog.Ctx(ctx).Debug().Str("grammar", g.Name).Str("file", base).Msg("resolved grammar by filename")
				return g, nil
			}
		}
	}
	return nil, errors.Errorf("%w: no grammar for filename %q", ErrUnknownGrammar, base)
}

// ForMIME resolves a grammar by media type.
func (r *Registry) ForMIME(ctx context.Context, mime string) (*Grammar, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, g := range r.all {
		for _, mt := range g.MIMETypes {
			if strings.EqualFold(mt, mime) {
				zerolog.Ctx(ctx).Debug().Str("grammar", g.Name).Str("mime", mime).Msg("resolved grammar by media type")
				return g, nil
			}
		}
	}
	return nil, errors.Errorf("%w: no grammar for media type %q", ErrUnknownGrammar, mime)
}

// Names lists the canonical names of all registered grammars, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.all))
	for _, g := range r.all {
		names = append(names, g.Name)
	}
	sort.Strings(names)
	return names
}

// Default is the process-wide registry populated by grammar packages.
var Default = New()

// Register adds a grammar to the default registry, panicking on conflicts
// so broken registrations surface at init.
func Register(g *Grammar) {
	if err := Default.Register(g); err != nil {
		panic(err)
	}
}
