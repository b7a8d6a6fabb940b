// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"cmp"
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/sparsebench/critreport/benchfmt"
)

// A Table is a grouped view of benchmark results: case name by column
// key.
type Table[K cmp.Ordered] struct {
	// Kind is benchfmt.Sequential or benchfmt.ThreadScaling.
	Kind benchfmt.Kind

	// Op is the operation measured by every result in this table.
	Op string

	// Algorithm is the parallel algorithm of a thread scaling
	// table, or "" for sequential tables.
	Algorithm string

	// Rows is sorted by ascending NNZ, then by case name.
	Rows []*Row[K]

	// Cols is every column key present in any row, ascending.
	// Not every row has a cell for every column.
	Cols []K
}

// A Row is the results for one case.
type Row[K cmp.Ordered] struct {
	Case string
	Dims string
	NNZ  int

	// Keys is the column keys present in this row, ascending.
	Keys []K

	Cells map[K]*benchfmt.Result
}

// Cell returns the result in column k, if any.
func (r *Row[K]) Cell(k K) (*benchfmt.Result, bool) {
	res, ok := r.Cells[k]
	return res, ok
}

// Winner returns the column key with the lowest median time. Ties go
// to the smallest key.
func (r *Row[K]) Winner() K {
	best := r.Keys[0]
	for _, k := range r.Keys[1:] {
		if r.Cells[k].Median < r.Cells[best].Median {
			best = k
		}
	}
	return best
}

// A Slowdown is the time of one column relative to a reference.
type Slowdown[K cmp.Ordered] struct {
	Key   K
	Ratio float64
}

func (s Slowdown[K]) String() string {
	return fmt.Sprintf("%v is %.1fx slower", s.Key, s.Ratio)
}

// Slowdowns returns the ratio of every non-winning column's median to
// the winner's median, in column order.
func (r *Row[K]) Slowdowns() []Slowdown[K] {
	w := r.Winner()
	base := r.Cells[w].Median
	var out []Slowdown[K]
	for _, k := range r.Keys {
		if k == w {
			continue
		}
		out = append(out, Slowdown[K]{k, ratio(r.Cells[k].Median, base)})
	}
	return out
}

// ratio returns a/b, treating 0/0 as 1. It returns NaN if only b is 0.
func ratio(a, b float64) float64 {
	switch {
	case a == b:
		return 1
	case b == 0:
		return math.NaN()
	}
	return a / b
}

// A Category is a size bucket derived from a non-zero count.
type Category int

const (
	Small  Category = iota // fewer than 1,000 non-zeros
	Medium                 // 1,000 to 99,999
	Large                  // 100,000 or more
)

// Categories lists every Category in report order.
var Categories = []Category{Small, Medium, Large}

// CategoryOf returns the size bucket of a case with nnz non-zeros.
func CategoryOf(nnz int) Category {
	switch {
	case nnz < 1000:
		return Small
	case nnz < 100000:
		return Medium
	}
	return Large
}

func (c Category) String() string {
	switch c {
	case Small:
		return "Small"
	case Medium:
		return "Medium"
	case Large:
		return "Large"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// A Summary ranks the columns of a table over the rows of one
// Category.
type Summary[K cmp.Ordered] struct {
	Category Category

	// Rows is the rows of this category, in table order.
	Rows []*Row[K]

	// Winner is the column that wins the most rows. Ties go to the
	// column that comes first in the table. Wins is the number of
	// rows it won.
	Winner K
	Wins   int

	// GeoMean is the geometric mean, over the rows where each
	// column is present, of that column's slowdown relative to the
	// row winner. It is in table column order. Columns whose ratios
	// cannot be summarized are left out.
	GeoMean []Slowdown[K]
}

// Summarize returns one Summary for each non-empty Category of t, in
// order of Categories.
func (t *Table[K]) Summarize() []*Summary[K] {
	byCat := make(map[Category][]*Row[K])
	for _, row := range t.Rows {
		c := CategoryOf(row.NNZ)
		byCat[c] = append(byCat[c], row)
	}
	var out []*Summary[K]
	for _, c := range Categories {
		if rows := byCat[c]; len(rows) > 0 {
			out = append(out, t.summarize(c, rows))
		}
	}
	return out
}

func (t *Table[K]) summarize(c Category, rows []*Row[K]) *Summary[K] {
	s := &Summary[K]{Category: c, Rows: rows}

	wins := make(map[K]int)
	ratios := make(map[K][]float64)
	for _, row := range rows {
		w := row.Winner()
		wins[w]++
		base := row.Cells[w].Median
		for _, k := range row.Keys {
			ratios[k] = append(ratios[k], ratio(row.Cells[k].Median, base))
		}
	}

	for _, k := range t.Cols {
		if n := wins[k]; n > s.Wins {
			s.Winner, s.Wins = k, n
		}
		xs := ratios[k]
		if len(xs) == 0 {
			continue
		}
		// GeoMean is NaN if any ratio is NaN or non-positive.
		gm := stats.GeoMean(xs)
		if math.IsNaN(gm) || math.IsInf(gm, 0) {
			continue
		}
		s.GeoMean = append(s.GeoMean, Slowdown[K]{k, gm})
	}
	return s
}
