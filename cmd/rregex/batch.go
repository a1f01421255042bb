package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/coregx/rregex"
)

var errMissingTab = errors.New("expected <pattern><TAB><text>")

// maxLineSize bounds one line of batch input.
const maxLineSize = 1 << 20

// batchCase is one input line of a batch run.
type batchCase struct {
	line    int
	pattern string
	text    string
	err     error
}

// batchResult is the outcome of one batch line.
type batchResult struct {
	Line    int           `json:"line" yaml:"line"`
	Pattern string        `json:"pattern" yaml:"pattern"`
	Text    string        `json:"text" yaml:"text"`
	Match   *rregex.Match `json:"match" yaml:"match"`
	Error   string        `json:"error,omitempty" yaml:"error,omitempty"`
}

func (a *app) batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [file|-]",
		Short: "Run many pattern and text pairs",
		Long: `Run one search per input line. Each line holds a pattern and a text
separated by a tab; blank lines and lines starting with # are skipped.
Patterns are compiled once and shared through the pattern cache, and lines
are processed by the number of workers set in batch.workers.

Examples:
  printf '\\d+\tage 42\n[a-z]+\tABC\n' | rregex batch
  rregex batch -o json cases.tsv
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open batch input: %w", err)
				}
				defer f.Close()
				in = f
			}

			cases, size, err := readBatch(in)
			if err != nil {
				return err
			}
			results := a.runBatch(cases)

			out := cmd.OutOrStdout()
			if a.structured() {
				return a.emit(out, results)
			}
			a.writeBatch(out, results, size)
			return nil
		},
	}

	return cmd
}

func readBatch(r io.Reader) ([]batchCase, uint64, error) {
	var (
		cases []batchCase
		size  uint64
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for n := 1; sc.Scan(); n++ {
		line := sc.Text()
		size += uint64(len(line)) + 1
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		pattern, text, ok := strings.Cut(line, "\t")
		c := batchCase{line: n, pattern: pattern, text: text}
		if !ok {
			c.err = errMissingTab
		}
		cases = append(cases, c)
	}
	if err := sc.Err(); err != nil {
		return nil, 0, fmt.Errorf("read batch input: %w", err)
	}
	return cases, size, nil
}

// runBatch processes cases concurrently. Results keep input order.
func (a *app) runBatch(cases []batchCase) []batchResult {
	results := make([]batchResult, len(cases))

	var g errgroup.Group
	g.SetLimit(a.cfg.Batch.Workers)
	for i, c := range cases {
		g.Go(func() error {
			results[i] = a.runCase(c)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (a *app) runCase(c batchCase) batchResult {
	res := batchResult{Line: c.line, Pattern: c.pattern, Text: c.text}
	if c.err != nil {
		res.Error = c.err.Error()
		return res
	}
	re, err := a.compile(c.pattern)
	if err != nil {
		a.logger.Warn("batch line skipped", "line", c.line, "error", err)
		res.Error = err.Error()
		return res
	}
	res.Match = re.Find(c.text)
	return res
}

func (a *app) writeBatch(out io.Writer, results []batchResult, size uint64) {
	var matched, failed int

	tbl := newTable(out, "line", "pattern", "start", "end", "value")
	for _, r := range results {
		prefix := []any{r.Line, r.Pattern}
		switch {
		case r.Error != "":
			failed++
			tbl.AppendRow(append(prefix, a.paint(errorColor).Sprint(r.Error), "", ""))
		default:
			if r.Match != nil {
				matched++
			}
			tbl.AppendRow(matchRow(prefix, r.Match))
		}
	}
	tbl.Render()

	fmt.Fprintf(out, "%s lines (%s), %s matched, %s failed, %d patterns cached\n",
		humanize.Comma(int64(len(results))), humanize.Bytes(size),
		humanize.Comma(int64(matched)), humanize.Comma(int64(failed)), a.cache.Len())
}
