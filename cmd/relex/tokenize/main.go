package tokenize

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/relex/pkg/format"
	"github.com/walteh/relex/pkg/lexer"
	"github.com/walteh/relex/pkg/position"
	"github.com/walteh/relex/pkg/registry"
)

type Handler struct {
	lexerName  string
	formatName string
	places     bool
}

func NewTokenizeCommand() *cobra.Command {
	me := &Handler{}

	cmd := &cobra.Command{
		Use:   "tokenize [files...]",
		Short: "tokenize source files and render the token stream",
		Args:  cobra.MinimumNArgs(1),
	}

	cmd.Flags().StringVar(&me.lexerName, "lexer", "", "grammar name or alias (default: resolved from the filename)")
	cmd.Flags().StringVar(&me.formatName, "format", "ansi", "output format: ansi, html or plain")
	cmd.Flags().BoolVar(&me.places, "places", false, "plain format: print line:column instead of byte offsets")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.Run(cmd.Context(), afero.NewOsFs(), cmd.OutOrStdout(), args)
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context, fs afero.Fs, w io.Writer, files []string) error {
	for _, path := range files {
		if err := me.tokenizeFile(ctx, fs, w, path); err != nil {
			return errors.Errorf("tokenizing %s: %w", path, err)
		}
	}
	return nil
}

func (me *Handler) tokenizeFile(ctx context.Context, fs afero.Fs, w io.Writer, path string) error {
	grammar, err := me.resolveGrammar(ctx, path)
	if err != nil {
		return err
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return errors.Errorf("reading file: %w", err)
	}
	src := string(data)

	tokens := lexer.New(grammar.Table, src).Drain()
	zerolog.Ctx(ctx).Debug().
		Str("grammar", grammar.Name).
		Str("file", path).
		Int("tokens", len(tokens)).
		Msg("tokenized file")

	formatter, err := me.formatter(src)
	if err != nil {
		return err
	}
	if err := formatter.Format(w, tokens); err != nil {
		return errors.Errorf("rendering tokens: %w", err)
	}
	return nil
}

func (me *Handler) resolveGrammar(ctx context.Context, path string) (*registry.Grammar, error) {
	if me.lexerName != "" {
		return registry.Default.Get(ctx, me.lexerName)
	}
	return registry.Default.ForFilename(ctx, path)
}

func (me *Handler) formatter(src string) (format.Formatter, error) {
	switch me.formatName {
	case "ansi":
		return format.ANSI{}, nil
	case "html":
		return format.HTML{}, nil
	case "plain":
		if me.places {
			return &format.Plain{Places: position.NewMap(src)}, nil
		}
		return &format.Plain{}, nil
	default:
		return nil, errors.Errorf("unknown format %q", me.formatName)
	}
}
