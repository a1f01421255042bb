// Package main provides the rregex CLI entry point.
//
// rregex prints the syntax tree of a pattern as a tagged value and runs the
// search, capture, replace and split operations of the library on text
// given as an argument or on standard input.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/coregx/rregex"
	"github.com/coregx/rregex/internal/config"
)

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app is the state shared by the commands of one invocation.
type app struct {
	cfgFile string
	format  string
	noColor bool

	cfg    *config.Config
	logger *slog.Logger
	cache  *rregex.Cache
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "rregex",
		Short: "Inspect regular expressions and their matches",
		Long: `rregex shows the syntax tree of a regular expression as a tagged value
tree and runs searches, captures, replacements and splits with it.

Text arguments may be given as - (or left out) to read standard input.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./rregex.yaml, then $HOME/rregex.yaml)")
	flags.StringVarP(&a.format, "output", "o", "", "output format: "+strings.Join(config.Formats, ", "))
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(a.syntaxCmd())
	rootCmd.AddCommand(a.explainCmd())
	rootCmd.AddCommand(a.schemaCmd())
	rootCmd.AddCommand(a.findCmd())
	rootCmd.AddCommand(a.capturesCmd())
	rootCmd.AddCommand(a.replaceCmd())
	rootCmd.AddCommand(a.splitCmd())
	rootCmd.AddCommand(a.escapeCmd())
	rootCmd.AddCommand(a.setCmd())
	rootCmd.AddCommand(a.batchCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}

	if a.format != "" {
		cfg.Output.Format = a.format
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if a.noColor {
		cfg.Output.Color = false
	}

	a.cfg = cfg
	a.logger = cfg.NewLogger(cmd.ErrOrStderr())

	a.cache, err = rregex.NewCacheWithConfig(cfg.Cache.Size, cfg.EngineConfig())
	if err != nil {
		return fmt.Errorf("create cache: %w", err)
	}
	return nil
}

func (a *app) compile(pattern string) (*rregex.Regex, error) {
	re, err := a.cache.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", pattern, err)
	}
	a.logger.Debug("compiled pattern", "pattern", pattern, "strategy", re.Strategy())
	return re, nil
}

// paint returns a color for text output, disabled when color is off.
func (a *app) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if !a.cfg.Output.Color {
		c.DisableColor()
	}
	return c
}

// inputText returns args[i], or standard input when it is missing or "-".
// A single trailing newline is dropped from standard input.
func inputText(cmd *cobra.Command, args []string, i int) (string, error) {
	if i < len(args) && args[i] != "-" {
		return args[i], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	text := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(text, "\r"), nil
}
