// Package render writes the profile output: console tables in several
// formats and the saved YAML/JSON reports.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/tracklens/tracklens/internal/stats"
)

// Formats supported by the table renderers.
const (
	FormatTable    = "table"
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
)

// ParseFormat validates an output format name.
func ParseFormat(name string) (string, error) {
	switch name {
	case FormatTable, FormatJSON, FormatCSV, FormatMarkdown, "md":
		if name == "md" {
			return FormatMarkdown, nil
		}
		return name, nil
	default:
		return "", fmt.Errorf("unknown output format %q (supported: table, json, csv, markdown)", name)
	}
}

// Summaries renders the descriptive statistics of the numeric columns.
func Summaries(w io.Writer, summaries []stats.ColumnSummary, format string) error {
	if format == FormatJSON {
		return renderJSON(w, summaries)
	}

	cols := []string{"column", "count", "missing", "mean", "std", "min", "25%", "50%", "75%", "max", "skew"}
	rows := make([][]string, len(summaries))
	for i, s := range summaries {
		rows[i] = []string{
			s.Column,
			strconv.Itoa(s.Count),
			strconv.Itoa(s.Missing),
			formatFloat(s.Mean),
			formatFloat(s.StdDev),
			formatFloat(s.Min),
			formatFloat(s.Q25),
			formatFloat(s.Median),
			formatFloat(s.Q75),
			formatFloat(s.Max),
			formatFloat(s.Skewness),
		}
	}
	return renderRows(w, cols, rows, format)
}

// Frequencies renders the level counts of one categorical column.
func Frequencies(w io.Writer, column string, levels []stats.LevelCount, format string) error {
	if format == FormatJSON {
		return renderJSON(w, map[string]any{"column": column, "levels": levels})
	}

	fmt.Fprintf(w, "%s:\n", column)
	cols := []string{"level", "count", "share"}
	rows := make([][]string, len(levels))
	for i, l := range levels {
		rows[i] = []string{l.Level, strconv.Itoa(l.Count), fmt.Sprintf("%.1f%%", l.Share*100)}
	}
	return renderRows(w, cols, rows, format)
}

// Correlations renders the correlation matrix with row labels.
func Correlations(w io.Writer, m stats.Matrix, format string) error {
	if format == FormatJSON {
		return renderJSON(w, m)
	}

	cols := append([]string{""}, m.Labels...)
	rows := make([][]string, len(m.Labels))
	for i, label := range m.Labels {
		row := make([]string, len(cols))
		row[0] = label
		for j := range m.Labels {
			row[j+1] = formatFloat(m.At(i, j))
		}
		rows[i] = row
	}
	return renderRows(w, cols, rows, format)
}

func renderRows(w io.Writer, cols []string, rows [][]string, format string) error {
	switch format {
	case FormatCSV:
		return renderCSV(w, cols, rows)
	case FormatMarkdown:
		return renderMarkdown(w, cols, rows)
	default:
		return renderTable(w, cols, rows)
	}
}

func renderTable(w io.Writer, cols []string, rows [][]string) error {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(cols))
	for i, col := range cols {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	for _, r := range rows {
		row := make(table.Row, len(r))
		for i, v := range r {
			row[i] = v
		}
		t.AppendRow(row)
	}

	t.Render()
	return nil
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderCSV(w io.Writer, cols []string, rows [][]string) error {
	_, _ = fmt.Fprintln(w, strings.Join(cols, ","))
	for _, r := range rows {
		values := make([]string, len(r))
		for i, v := range r {
			values[i] = escapeCSV(v)
		}
		_, _ = fmt.Fprintln(w, strings.Join(values, ","))
	}
	return nil
}

func renderMarkdown(w io.Writer, cols []string, rows [][]string) error {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(cols, " | "))
	seps := make([]string, len(cols))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))

	for _, r := range rows {
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(r, " | "))
	}
	return nil
}

func escapeCSV(v string) string {
	if strings.ContainsAny(v, ",\"\n") {
		return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	return v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
