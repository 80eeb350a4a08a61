// Package summary renders a human-readable overview of a conversion.
package summary

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/specialistvlad/calparse/internal/export"
	"github.com/specialistvlad/calparse/internal/report"
)

// Render writes one row per parsed section item and the file it ended up in.
func Render(w io.Writer, doc *report.Document, written []export.Written) error {
	files := make(map[string][]string)
	for _, f := range written {
		files[f.Kind] = append(files[f.Kind], f.Path)
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Section", "Item", "Kind", "Size", "File"})

	t.AppendRow(table.Row{"metadata", "-", "record", doc.Metadata.Len(), first(files["metadata"])})
	t.AppendSeparator()

	for _, entry := range doc.Calibration {
		t.AppendRow(table.Row{"calibration", strings.Join(entry.Info.Items(), " "), string(entry.Kind), entrySize(entry), first(files["calibration"])})
	}
	if len(doc.Calibration) > 0 {
		t.AppendSeparator()
	}

	for i, res := range doc.Results {
		name := strings.Join(res.Info, " ")
		path := ""
		if i < len(files["result"]) {
			path = files["result"][i]
		}
		t.AppendRow(table.Row{"results", name, fmt.Sprintf("%d cols", len(res.Data.Columns)), len(res.Data.Rows), path})
	}

	t.SetStyle(table.StyleLight)
	t.Style().Format = table.FormatOptions{
		Footer: text.FormatDefault,
		Header: text.FormatDefault,
		Row:    text.FormatDefault,
	}
	t.Style().Options.DrawBorder = false

	_, err := io.WriteString(w, t.Render()+"\n")
	return err
}

func entrySize(entry *report.CalibrationEntry) int {
	if kv, ok := entry.TabularKV(); ok {
		return kv.Len()
	}
	if g, ok := entry.Groups(); ok {
		return g.Len()
	}
	if rows, ok := entry.Rows(); ok {
		return len(rows)
	}
	return 0
}

func first(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	return paths[0]
}
