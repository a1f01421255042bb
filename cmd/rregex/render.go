package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/coregx/rregex"
	"github.com/coregx/rregex/internal/config"
	"github.com/coregx/rregex/tagged"
)

// errProtoUnsupported is returned for proto output of anything but a tagged
// value.
var errProtoUnsupported = errors.New("proto output is only available for syntax trees")

// absent marks a group that did not take part in a match.
const absent = "-"

const (
	noMatchColor = color.FgYellow
	okColor      = color.FgGreen
	errorColor   = color.FgRed
)

func (a *app) structured() bool {
	return a.cfg.Output.Format != config.FormatText
}

// emit writes v in the configured structured format. Text output is left to
// the caller.
func (a *app) emit(w io.Writer, v any) error {
	switch a.cfg.Output.Format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err := enc.Encode(v)
		if closeErr := enc.Close(); err == nil {
			err = closeErr
		}
		return err
	case config.FormatProto:
		tv, ok := v.(tagged.Value)
		if !ok {
			return errProtoUnsupported
		}
		data, err := tagged.MarshalProto(tv)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	return fmt.Errorf("%w: %q", config.ErrInvalidFormat, a.cfg.Output.Format)
}

// emitValue writes a tagged value, in debug notation for text output.
func (a *app) emitValue(w io.Writer, v tagged.Value) error {
	if !a.structured() {
		_, err := fmt.Fprintln(w, v.String())
		return err
	}
	return a.emit(w, v)
}

func newTable(w io.Writer, header ...any) table.Writer {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row(header))
	return tbl
}

func matchRow(prefix []any, m *rregex.Match) table.Row {
	row := table.Row(prefix)
	if m == nil {
		return append(row, absent, absent, absent)
	}
	return append(row, m.Start, m.End, fmt.Sprintf("%q", m.Value))
}
