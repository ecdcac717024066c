package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	formatTable    = "table"
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

// tableView is the tabular rendering of a command result.
type tableView struct {
	title   string
	header  table.Row
	rows    []table.Row
	footer  table.Row
	numeric []int // 1-based columns aligned right
}

// render writes v as indented JSON, or view as a table in the selected format with the
// title printed above it.
func (a *app) render(w io.Writer, v any, view tableView) error {
	if a.format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding output: %w", err)
		}
		return nil
	}

	// A table title wider than the columns gets wrapped, so it goes on its own line.
	if view.title != "" {
		if _, err := fmt.Fprintln(w, view.title); err != nil {
			return err
		}
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(view.header)
	tw.AppendRows(view.rows)
	if view.footer != nil {
		tw.AppendFooter(view.footer)
	}

	configs := make([]table.ColumnConfig, 0, len(view.numeric))
	for _, number := range view.numeric {
		configs = append(configs, table.ColumnConfig{Number: number, Align: text.AlignRight, AlignFooter: text.AlignRight})
	}
	tw.SetColumnConfigs(configs)

	var out string
	if a.format == formatMarkdown {
		out = tw.RenderMarkdown()
	} else {
		out = tw.Render()
	}
	_, err := fmt.Fprintln(w, out)
	return err
}
