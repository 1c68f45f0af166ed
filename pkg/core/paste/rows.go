// Package paste turns spreadsheet clipboard text or workbook files into worker rows.
package paste

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/export"
)

// Options controls how raw rows are split and filtered
type Options struct {
	// ExtendedDelimiters also splits cells on ',' and ';'
	ExtendedDelimiters bool
	// SkipHeaderRows drops rows whose first cell contains "rut" (case-insensitive)
	SkipHeaderRows bool
}

// ParseRows splits pasted text into trimmed cells. Line endings are
// normalized, and rows whose cells are all blank are dropped.
func ParseRows(text string, opts Options) [][]string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		rows = append(rows, splitCells(line, opts.ExtendedDelimiters))
	}
	return filterRows(rows, opts)
}

// RowsFromXLSX reads the workers sheet of a workbook written by the export,
// or the first sheet of any other workbook, and applies the same row
// filtering as ParseRows. The export's own header row is dropped.
func RowsFromXLSX(r io.Reader, opts Options) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	// Prefer the exported workers sheet, fall back to the first one
	sheet := f.GetSheetName(0)
	if idx, err := f.GetSheetIndex(export.SheetWorkers); err == nil && idx >= 0 {
		sheet = export.SheetWorkers
	}
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	rows := make([][]string, 0, len(raw))
	for i, r := range raw {
		cells := make([]string, len(r))
		for j, c := range r {
			cells[j] = strings.TrimSpace(c)
		}
		if i == 0 && isExportHeader(cells) {
			continue
		}
		rows = append(rows, cells)
	}
	return filterRows(rows, opts), nil
}

// isExportHeader reports whether cells match the header row written by export.WorkerRows
func isExportHeader(cells []string) bool {
	header := export.WorkerHeader()
	if len(cells) == 0 || len(cells) > len(header) {
		return false
	}
	for i, c := range cells {
		if c != fmt.Sprint(header[i]) {
			return false
		}
	}
	return true
}

func splitCells(line string, extended bool) []string {
	isDelim := func(r rune) bool {
		return r == '\t' || (extended && (r == ',' || r == ';'))
	}

	var cells []string
	start := 0
	for i, r := range line {
		if isDelim(r) {
			cells = append(cells, strings.TrimSpace(line[start:i]))
			start = i + 1
		}
	}
	return append(cells, strings.TrimSpace(line[start:]))
}

func filterRows(rows [][]string, opts Options) [][]string {
	out := make([][]string, 0, len(rows))
	for _, cells := range rows {
		if isBlankRow(cells) {
			continue
		}
		if opts.SkipHeaderRows && isHeaderRow(cells) {
			continue
		}
		out = append(out, cells)
	}
	return out
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// isHeaderRow is a heuristic: a first cell mentioning "rut" is treated as a column title
func isHeaderRow(cells []string) bool {
	return len(cells) > 0 && strings.Contains(strings.ToLower(cells[0]), "rut")
}
