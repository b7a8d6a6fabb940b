// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out Markdown pipe tables.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of Markdown tables. The first row is the header.
//
// Many of its methods return the Table so callers can easily chain
// them to build up many cells at once.
type Table struct {
	rows  [][]string
	cols  int
	align []Align
}

// Align is the alignment of a column.
type Align int

const (
	Left Align = iota
	Center
	Right
)

func (a Align) pad(s string, w int) string {
	n := w - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	switch a {
	case Center:
		l := n / 2
		return fmt.Sprintf("%*s%s%*s", l, "", s, n-l, "")
	case Right:
		return fmt.Sprintf("%*s%s", n, "", s)
	}
	return s + strings.Repeat(" ", n)
}

// rule returns the separator cell for a column of width w.
func (a Align) rule(w int) string {
	switch a {
	case Center:
		return ":" + strings.Repeat("-", w-2) + ":"
	case Right:
		return strings.Repeat("-", w-1) + ":"
	}
	return strings.Repeat("-", w)
}

// Row starts a new row in table t.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Cell adds a cell at the end of the current row.
func (t *Table) Cell(value string) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	r := len(t.rows) - 1
	t.rows[r] = append(t.rows[r], value)
	if n := len(t.rows[r]); n > t.cols {
		t.cols = n
	}
	return t
}

// Cells adds a cell for each value at the end of the current row.
func (t *Table) Cells(values ...string) *Table {
	for _, v := range values {
		t.Cell(v)
	}
	return t
}

// SetAlign sets the alignment of column col. Columns are numbered
// starting at 0 and default to Left.
func (t *Table) SetAlign(col int, a Align) *Table {
	for len(t.align) < col+1 {
		t.align = append(t.align, Left)
	}
	t.align[col] = a
	return t
}

func (t *Table) alignment(col int) Align {
	if col < len(t.align) {
		return t.align[col]
	}
	return Left
}

// Format lays out table t and writes it to w. Rows shorter than the
// widest row are padded with empty cells.
func (t *Table) Format(w io.Writer) error {
	if len(t.rows) == 0 {
		return nil
	}

	// A separator needs at least three characters.
	ws := make([]int, t.cols)
	for i := range ws {
		ws[i] = 3
	}
	for _, row := range t.rows {
		for col, v := range row {
			if n := utf8.RuneCountInString(v); n > ws[col] {
				ws[col] = n
			}
		}
	}

	line := func(cells func(col int) string) error {
		var b strings.Builder
		b.WriteString("|")
		for col := 0; col < t.cols; col++ {
			fmt.Fprintf(&b, " %s |", cells(col))
		}
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	for i, row := range t.rows {
		err := line(func(col int) string {
			v := ""
			if col < len(row) {
				v = row[col]
			}
			return t.alignment(col).pad(v, ws[col])
		})
		if err != nil {
			return err
		}
		if i == 0 {
			err := line(func(col int) string {
				return t.alignment(col).rule(ws[col])
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}
