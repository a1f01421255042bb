package main

import (
	"github.com/spf13/cobra"
)

// setReport is the structured output of set.
type setReport struct {
	Patterns []string `json:"patterns" yaml:"patterns"`
	Matched  []int    `json:"matched" yaml:"matched"`
}

func (a *app) setCmd() *cobra.Command {
	var patterns []string

	cmd := &cobra.Command{
		Use:   "set -e <pattern>... [text|-]",
		Short: "Report which of several patterns match text",
		Long: `Match several patterns against the same text and report which of them
match. Matches of different patterns may overlap.

Examples:
  rregex set -e '\w+' -e '\d+' -e foo foobar
  rregex set -o json -e bar -e baz - < input.txt
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := a.cache.Set(patterns)
			if err != nil {
				return err
			}
			text, err := inputText(cmd, args, 0)
			if err != nil {
				return err
			}
			matches := set.Matches(text)
			out := cmd.OutOrStdout()

			if a.structured() {
				return a.emit(out, setReport{Patterns: set.Patterns(), Matched: matches.Indices()})
			}

			tbl := newTable(out, "#", "pattern", "matched")
			for i, p := range set.Patterns() {
				mark := a.paint(noMatchColor).Sprint("no")
				if matches.Matched(i) {
					mark = a.paint(okColor).Sprint("yes")
				}
				tbl.AppendRow([]any{i, p, mark})
			}
			tbl.Render()
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&patterns, "regexp", "e", nil, "pattern to match (repeatable)")
	_ = cmd.MarkFlagRequired("regexp")

	return cmd
}
