package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sys/cpu"

	"github.com/coregx/rregex/hir"
	"github.com/coregx/rregex/schema"
)

func (a *app) syntaxCmd() *cobra.Command {
	var (
		validate   bool
		bytesModel bool
	)

	cmd := &cobra.Command{
		Use:   "syntax <pattern>",
		Short: "Print the syntax tree of a pattern as a tagged value",
		Long: `Print the syntax tree of a pattern as a tagged value tree. Every node
carries its type name and variant name, in the layout described by
'rregex schema'.

Examples:
  rregex syntax 'a+'
  rregex syntax -o json 'cat|dog'
  rregex syntax --bytes -o yaml '[0-9]'
  rregex syntax -o proto '\w+' > tree.pb
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.parse(args[0], bytesModel)
			if err != nil {
				return err
			}
			v := hir.Encode(h)
			if validate {
				if err := schema.Validate(v); err != nil {
					return err
				}
				a.logger.Info("syntax tree matches schema", "pattern", args[0])
			}
			return a.emitValue(cmd.OutOrStdout(), v)
		},
	}

	cmd.Flags().BoolVar(&validate, "validate", false, "check the tree against the schema before printing")
	cmd.Flags().BoolVar(&bytesModel, "bytes", false, "print ASCII-only classes as byte classes")

	return cmd
}

func (a *app) parse(pattern string, bytesModel bool) (*hir.Hir, error) {
	cfg := hir.DefaultConfig()
	cfg.Unicode = a.cfg.Syntax.Unicode && !bytesModel
	h, err := hir.Parse(pattern, cfg)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", pattern, err)
	}
	return h, nil
}

// explainReport is the structured output of explain.
type explainReport struct {
	Pattern  string          `json:"pattern" yaml:"pattern"`
	Strategy string          `json:"strategy" yaml:"strategy"`
	Groups   int             `json:"groups" yaml:"groups"`
	Names    []string        `json:"names" yaml:"names"`
	Nodes    int             `json:"nodes" yaml:"nodes"`
	Depth    int             `json:"depth" yaml:"depth"`
	Kinds    map[string]int  `json:"kinds" yaml:"kinds"`
	CPU      map[string]bool `json:"cpu" yaml:"cpu"`
}

func (a *app) explainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <pattern>",
		Short: "Describe how a pattern is compiled and what its tree contains",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			re, err := a.compile(args[0])
			if err != nil {
				return err
			}
			h, err := a.parse(args[0], false)
			if err != nil {
				return err
			}
			stats := hir.Summarize(h)

			report := explainReport{
				Pattern:  re.String(),
				Strategy: re.Strategy(),
				Groups:   re.CapturesLen(),
				Names:    re.CaptureNames(),
				Nodes:    stats.Nodes,
				Depth:    stats.Depth,
				Kinds:    make(map[string]int, len(stats.ByKind)),
				CPU:      cpuFeatures(),
			}
			for k, n := range stats.ByKind {
				report.Kinds[k.String()] = n
			}

			out := cmd.OutOrStdout()
			if a.structured() {
				return a.emit(out, report)
			}
			writeExplain(out, report)
			return nil
		},
	}
}

func writeExplain(out io.Writer, r explainReport) {
	tbl := newTable(out, "property", "value")
	tbl.AppendRow([]any{"pattern", r.Pattern})
	tbl.AppendRow([]any{"strategy", r.Strategy})
	tbl.AppendRow([]any{"groups", r.Groups})
	tbl.AppendRow([]any{"nodes", r.Nodes})
	tbl.AppendRow([]any{"depth", r.Depth})
	tbl.AppendSeparator()
	for _, k := range hir.Kinds() {
		if n := r.Kinds[k.String()]; n > 0 {
			tbl.AppendRow([]any{k.String(), n})
		}
	}
	tbl.AppendSeparator()
	for _, name := range cpuFeatureNames {
		tbl.AppendRow([]any{name, r.CPU[name]})
	}
	tbl.Render()
}

// cpuFeatureNames lists the features the engine's search kernels use.
var cpuFeatureNames = []string{"x86.sse42", "x86.avx2", "x86.bmi2", "arm64.asimd"}

func cpuFeatures() map[string]bool {
	return map[string]bool{
		"x86.sse42":   cpu.X86.HasSSE42,
		"x86.avx2":    cpu.X86.HasAVX2,
		"x86.bmi2":    cpu.X86.HasBMI2,
		"arm64.asimd": cpu.ARM64.HasASIMD,
	}
}

func (a *app) schemaCmd() *cobra.Command {
	var definitions bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of syntax tree encodings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if !definitions {
				_, err := out.Write(schema.Bytes())
				return err
			}
			names, err := schema.Definitions()
			if err != nil {
				return err
			}
			if a.structured() {
				return a.emit(out, names)
			}
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&definitions, "definitions", false, "list the definition names only")
	cmd.AddCommand(a.schemaValidateCmd())

	return cmd
}

func (a *app) schemaValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file.json|->",
		Short: "Validate a JSON syntax tree against the schema",
		Long: `Validate a JSON encoded syntax tree, such as the output of
'rregex syntax -o json', against the schema.

Examples:
  rregex syntax -o json 'a+' | rregex schema validate -
  rregex schema validate tree.json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, label, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			err = schema.ValidateJSON(doc)
			if err == nil {
				a.paint(okColor).Fprintf(out, "syntax tree is valid (%s)\n", label)
				return nil
			}

			a.paint(errorColor).Fprintf(out, "syntax tree validation failed (%s)\n", label)
			var verr *schema.ValidationError
			if errors.As(err, &verr) {
				for _, p := range verr.Problems {
					a.paint(errorColor).Fprintf(out, "  - %s\n", p)
				}
			}
			return err
		},
	}
}

func readDocument(cmd *cobra.Command, path string) ([]byte, string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "stdin", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	return data, path, nil
}
