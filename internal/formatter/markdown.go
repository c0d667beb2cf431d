// Package formatter renders metrics results as markdown reports.
package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// AlignTables pads every markdown table in content so that its columns line
// up by display width. Lines outside tables are left untouched.
func AlignTables(content string) string {
	lines := strings.Split(content, "\n")

	var (
		out   []string
		table []string
	)

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|") {
			table = append(table, line)
			continue
		}

		if len(table) > 0 {
			out = append(out, alignTable(table)...)
			table = nil
		}

		out = append(out, line)
	}

	if len(table) > 0 {
		out = append(out, alignTable(table)...)
	}

	return strings.Join(out, "\n")
}

// splitRow returns the trimmed cells of a "| a | b |" row.
func splitRow(row string) []string {
	parts := strings.Split(row, "|")

	if len(parts) > 0 && strings.TrimSpace(parts[0]) == "" {
		parts = parts[1:]
	}

	if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}

	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}

	return cells
}

// separatorAlign reports whether cells form a separator row and, if so, the
// right-alignment of each column (a trailing ":").
func separatorAlign(cells []string) ([]bool, bool) {
	right := make([]bool, len(cells))

	for i, cell := range cells {
		bare := strings.NewReplacer("-", "", ":", "", " ", "").Replace(cell)
		if bare != "" || !strings.Contains(cell, "-") {
			return nil, false
		}

		right[i] = strings.HasSuffix(cell, ":")
	}

	return right, true
}

func alignTable(rows []string) []string {
	// Needs a header and a separator
	if len(rows) < 2 {
		return rows
	}

	table := make([][]string, 0, len(rows))
	colCount := 0

	for _, row := range rows {
		cells := splitRow(row)
		table = append(table, cells)
		colCount = max(colCount, len(cells))
	}

	right, hasSep := separatorAlign(table[1])

	widths := make([]int, colCount)

	for r, row := range table {
		if hasSep && r == 1 {
			continue
		}

		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	for i := range widths {
		widths[i] = max(widths[i], 3)
	}

	result := make([]string, 0, len(table))

	for r, row := range table {
		var sb strings.Builder

		sb.WriteString("|")

		for c := 0; c < colCount; c++ {
			sb.WriteString(" ")

			alignRight := hasSep && c < len(right) && right[c]

			switch {
			case hasSep && r == 1 && alignRight:
				sb.WriteString(strings.Repeat("-", widths[c]-1) + ":")
			case hasSep && r == 1:
				sb.WriteString(strings.Repeat("-", widths[c]))
			default:
				cell := ""
				if c < len(row) {
					cell = row[c]
				}

				pad := strings.Repeat(" ", widths[c]-runewidth.StringWidth(cell))
				if alignRight {
					sb.WriteString(pad + cell)
				} else {
					sb.WriteString(cell + pad)
				}
			}

			sb.WriteString(" |")
		}

		result = append(result, sb.String())
	}

	return result
}
