package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coregx/rregex"
)

// shortestResult is the structured output of find --shortest.
type shortestResult struct {
	End   int  `json:"end" yaml:"end"`
	Found bool `json:"found" yaml:"found"`
}

func (a *app) findCmd() *cobra.Command {
	var (
		all      bool
		shortest bool
		at       int
	)

	cmd := &cobra.Command{
		Use:   "find <pattern> [text|-]",
		Short: "Find matches of a pattern in text",
		Long: `Find the leftmost-first match of a pattern, or every match with --all.

Examples:
  rregex find '\d+' 'age: 42'
  rregex find --all -o json '\w+' 'one two'
  rregex find --shortest 'a+' aaaa
  echo 'x 7' | rregex find '\d'
`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			re, err := a.compile(args[0])
			if err != nil {
				return err
			}
			text, err := inputText(cmd, args, 1)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			switch {
			case shortest:
				end, ok := re.ShortestMatchAt(text, at)
				if a.structured() {
					return a.emit(out, shortestResult{End: end, Found: ok})
				}
				if !ok {
					a.paint(noMatchColor).Fprintln(out, "no match")
					return nil
				}
				fmt.Fprintln(out, end)
				return nil

			case all:
				matches := re.FindAll(text)
				if a.structured() {
					if matches == nil {
						matches = []rregex.Match{}
					}
					return a.emit(out, matches)
				}
				if len(matches) == 0 {
					a.paint(noMatchColor).Fprintln(out, "no match")
					return nil
				}
				tbl := newTable(out, "#", "start", "end", "value")
				for i := range matches {
					tbl.AppendRow(matchRow([]any{i}, &matches[i]))
				}
				tbl.Render()
				return nil
			}

			m := re.FindAt(text, at)
			if a.structured() {
				return a.emit(out, m)
			}
			if m == nil {
				a.paint(noMatchColor).Fprintln(out, "no match")
				return nil
			}
			tbl := newTable(out, "start", "end", "value")
			tbl.AppendRow(matchRow(nil, m))
			tbl.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "report every non-overlapping match")
	cmd.Flags().BoolVar(&shortest, "shortest", false, "report only the end of the shortest match")
	cmd.Flags().IntVar(&at, "at", 0, "byte offset to start searching at")
	cmd.MarkFlagsMutuallyExclusive("all", "shortest")
	cmd.MarkFlagsMutuallyExclusive("all", "at")

	return cmd
}

func (a *app) capturesCmd() *cobra.Command {
	var (
		all bool
		at  int
	)

	cmd := &cobra.Command{
		Use:   "captures <pattern> [text|-]",
		Short: "Show the capture groups of a match by index and by name",
		Long: `Show every capture group of the leftmost-first match, or of every match with
--all. Groups that did not take part in the match are shown as -.

Examples:
  rregex captures '(?P<first>\w)(\w)(?:\w)\w(?P<last>\w)' toady
  rregex captures --all -o json '(?P<y>\d{4})-(?P<m>\d{2})' '2012-03, 2013-01'
`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			re, err := a.compile(args[0])
			if err != nil {
				return err
			}
			text, err := inputText(cmd, args, 1)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			var results []*rregex.Captures
			if all {
				results = re.CapturesAll(text)
			} else if caps := re.CapturesAt(text, at); caps != nil {
				results = []*rregex.Captures{caps}
			}

			if a.structured() {
				if all {
					if results == nil {
						results = []*rregex.Captures{}
					}
					return a.emit(out, results)
				}
				if len(results) == 0 {
					return a.emit(out, nil)
				}
				return a.emit(out, results[0])
			}

			if len(results) == 0 {
				a.paint(noMatchColor).Fprintln(out, "no match")
				return nil
			}
			names := re.CaptureNames()
			tbl := newTable(out, "match", "group", "name", "start", "end", "value")
			for n, caps := range results {
				if n > 0 {
					tbl.AppendSeparator()
				}
				for i, m := range caps.Groups() {
					name := names[i]
					if name == "" {
						name = absent
					}
					tbl.AppendRow(matchRow([]any{n, i, name}, m))
				}
			}
			tbl.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "show the groups of every non-overlapping match")
	cmd.Flags().IntVar(&at, "at", 0, "byte offset to start searching at")
	cmd.MarkFlagsMutuallyExclusive("all", "at")

	return cmd
}

func (a *app) replaceCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "replace <pattern> <replacement> [text|-]",
		Short: "Replace matches of a pattern",
		Long: `Replace matches of a pattern with a template. In the template $N and ${N}
refer to groups by index, $name and ${name} to groups by name, and $$ is a
literal $. Every match is replaced unless --limit is given.

Examples:
  rregex replace '(?P<last>[^,\s]+),\s+(?P<first>\S+)' '$first $last' 'Springsteen, Bruce'
  rregex replace --limit 1 a z abcabc
`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			re, err := a.compile(args[0])
			if err != nil {
				return err
			}
			text, err := inputText(cmd, args, 2)
			if err != nil {
				return err
			}

			result := re.Replacen(text, limit, args[1])
			if a.structured() {
				return a.emit(cmd.OutOrStdout(), result)
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "replace at most this many matches (0 replaces all)")

	return cmd
}

func (a *app) splitCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "split <pattern> [text|-]",
		Short: "Split text at the matches of a pattern",
		Long: `Split text at the matches of a pattern and print one piece per line.

Examples:
  rregex split '[ \t]+' 'a b  c'
  rregex split --limit 2 , a,b,c
`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			re, err := a.compile(args[0])
			if err != nil {
				return err
			}
			text, err := inputText(cmd, args, 1)
			if err != nil {
				return err
			}

			pieces := re.Splitn(text, limit)
			if a.structured() {
				if pieces == nil {
					pieces = []string{}
				}
				return a.emit(cmd.OutOrStdout(), pieces)
			}
			for _, p := range pieces {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", -1, "return at most this many pieces (negative means no limit)")

	return cmd
}

func (a *app) escapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "escape [text|-]",
		Short: "Escape text so that it matches literally as a pattern",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inputText(cmd, args, 0)
			if err != nil {
				return err
			}
			escaped := rregex.Escape(text)
			if a.structured() {
				return a.emit(cmd.OutOrStdout(), escaped)
			}
			fmt.Fprintln(cmd.OutOrStdout(), escaped)
			return nil
		},
	}
}
