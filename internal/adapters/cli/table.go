package cli

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// PrintTable writes headers, rows and footers with columns padded to the
// widest cell.
func PrintTable(w io.Writer, headers []string, rows [][]string, footers []string) {
	colWidths := make([]int, len(headers))
	for i, header := range headers {
		colWidths[i] = utf8.RuneCountInString(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(colWidths) && utf8.RuneCountInString(cell) > colWidths[i] {
				colWidths[i] = utf8.RuneCountInString(cell)
			}
		}
	}

	printRow(w, colWidths, headers)
	for _, row := range rows {
		printRow(w, colWidths, row)
	}
	if len(footers) > 0 {
		printRow(w, colWidths, footers)
	}
}

func printRow(w io.Writer, widths []int, cells []string) {
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		fmt.Fprintf(w, "%-*s\t", width, cell)
	}
	fmt.Fprintln(w)
}
