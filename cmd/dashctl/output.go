package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"
)

const cellPadding = 2

// output renders command results: an aligned table on a terminal, JSON
// everywhere else so the tool composes with jq and friends.
type output struct {
	w     io.Writer
	table bool
	width int
}

func newOutput(f *os.File) *output {
	fd := int(f.Fd())
	o := &output{w: f}
	if term.IsTerminal(fd) {
		o.table = true
		if w, _, err := term.GetSize(fd); err == nil {
			o.width = w
		}
	}
	return o
}

func (o *output) print(v interface{}, header []string, rows [][]string) error {
	if !o.table {
		enc := json.NewEncoder(o.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return writeTable(o.w, o.width, header, rows)
}

// writeTable aligns rows under header. When width is positive the last
// column is truncated so each line fits.
func writeTable(w io.Writer, width int, header []string, rows [][]string) error {
	if width > 0 {
		rows = fitWidth(width, header, rows)
	}

	tw := tabwriter.NewWriter(w, 0, 0, cellPadding, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	return tw.Flush()
}

func fitWidth(width int, header []string, rows [][]string) [][]string {
	cols := len(header)
	if cols == 0 {
		return rows
	}

	widths := make([]int, cols)
	for i, h := range header {
		widths[i] = len([]rune(h))
	}
	for _, r := range rows {
		for i := 0; i < cols && i < len(r); i++ {
			if n := len([]rune(r[i])); n > widths[i] {
				widths[i] = n
			}
		}
	}

	used := 0
	for i := 0; i < cols-1; i++ {
		used += widths[i] + cellPadding
	}
	room := width - used
	if room < 4 {
		return rows
	}

	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = r
		if len(r) < cols {
			continue
		}
		last := []rune(r[cols-1])
		if len(last) > room {
			cp := append([]string(nil), r...)
			cp[cols-1] = string(last[:room-1]) + "…"
			out[i] = cp
		}
	}
	return out
}
