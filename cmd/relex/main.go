package main

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/relex/cmd/relex/tokenize"
	"github.com/walteh/relex/pkg/registry"

	// Registered grammars.
	_ "github.com/walteh/relex/pkg/lexer/grammars/iecst"
)

func main() {
	if err := run(); err != nil {
		println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	verbose := false

	rootCmd := &cobra.Command{
		Use:   "relex",
		Short: "A stateful regex-driven tokenizer",
	}

	rootCmd.PersistentFlags().BoolVar(&verbose, "debug", false, "enable debug logging")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().
			Timestamp().
			Logger()
		cmd.SetContext(logger.WithContext(cmd.Context()))
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		rootCmd.Version = "unknown"
	} else {
		rootCmd.Version = info.Main.Version
	}

	rootCmd.AddCommand(tokenize.NewTokenizeCommand())
	rootCmd.AddCommand(newLexersCommand())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		return errors.Errorf("failed to execute command: %w", err)
	}

	return nil
}

func newLexersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lexers",
		Short: "list registered grammars",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range registry.Default.Names() {
				cmd.Println(name)
			}
		},
	}
}
