// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchtab groups benchmark results into comparison tables
// and ranks the implementations in each table.
//
// A Table has one row per case and one column per secondary key: an
// implementation label for sequential tables, or a thread count for
// thread scaling tables. Presentation order is always re-derived by
// sorting, never taken from the order results were added in.
package benchtab

import (
	"cmp"
	"sort"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/sparsebench/critreport/benchfmt"
)

// A Builder collects benchmark results into a Table.
type Builder[K cmp.Ordered] struct {
	key func(*benchfmt.Result) K

	// rows maps from case name to the cells of that case.
	rows map[string]map[K]*benchfmt.Result
	// cols is the set of observed column keys.
	cols map[K]struct{}
}

// NewBuilder returns a Builder that maps each result to a column by
// key. Rows are always keyed by case name.
func NewBuilder[K cmp.Ordered](key func(*benchfmt.Result) K) *Builder[K] {
	return &Builder[K]{
		key:  key,
		rows: make(map[string]map[K]*benchfmt.Result),
		cols: make(map[K]struct{}),
	}
}

// Add adds res to the Builder. If a result for the same case and key
// was already added, res replaces it.
func (b *Builder[K]) Add(res *benchfmt.Result) {
	k := b.key(res)
	cells := b.rows[res.Case]
	if cells == nil {
		cells = make(map[K]*benchfmt.Result)
		b.rows[res.Case] = cells
	}
	cells[k] = res
	b.cols[k] = struct{}{}
}

// Len returns the number of rows added so far.
func (b *Builder[K]) Len() int {
	return len(b.rows)
}

// ToTable finalizes the Builder into a Table.
func (b *Builder[K]) ToTable() *Table[K] {
	t := &Table[K]{Cols: mapKeys(b.cols)}
	for name, cells := range b.rows {
		row := &Row[K]{Case: name, Keys: mapKeys(cells), Cells: cells}
		// All results of a case are assumed to share its
		// metadata. Take it from the first column so the
		// choice does not depend on map order.
		rep := cells[row.Keys[0]]
		row.Dims, row.NNZ = rep.Dims, rep.NNZ
		t.Rows = append(t.Rows, row)
	}
	sort.Slice(t.Rows, func(i, j int) bool {
		a, b := t.Rows[i], t.Rows[j]
		if a.NNZ != b.NNZ {
			return a.NNZ < b.NNZ
		}
		return a.Case < b.Case
	})
	return t
}

func mapKeys[K cmp.Ordered, V any](m map[K]V) []K {
	var keys []K
	for k := range m {
		keys = append(keys, k)
	}
	slice.Sort(keys)
	return keys
}

// Sequential builds one table per sequential operation present in
// results, in the order of Operations. Columns are implementation
// labels.
func Sequential(results []*benchfmt.Result) []*Table[string] {
	builders := make(map[string]*Builder[string])
	for _, res := range results {
		if res.Kind != benchfmt.Sequential {
			continue
		}
		b := builders[res.Op]
		if b == nil {
			b = NewBuilder((*benchfmt.Result).Label)
			builders[res.Op] = b
		}
		b.Add(res)
	}
	var tables []*Table[string]
	for _, op := range Operations {
		if b, ok := builders[op]; ok {
			t := b.ToTable()
			t.Kind, t.Op = benchfmt.Sequential, op
			tables = append(tables, t)
		}
	}
	return tables
}

// Parallel builds one table per thread scaling algorithm present in
// results. Columns are thread counts.
//
// The algorithms of Algorithms come first, in that order, followed by
// any others alphabetically.
func Parallel(results []*benchfmt.Result) []*Table[int] {
	builders := make(map[string]*Builder[int])
	ops := make(map[string]string)
	for _, res := range results {
		if !res.Scaling() {
			continue
		}
		b := builders[res.Algorithm]
		if b == nil {
			b = NewBuilder(func(r *benchfmt.Result) int { return r.Threads })
			builders[res.Algorithm] = b
			ops[res.Algorithm] = res.Op
		}
		b.Add(res)
	}
	var tables []*Table[int]
	for _, alg := range algorithmOrder(mapKeys(builders)) {
		t := builders[alg].ToTable()
		t.Kind, t.Op, t.Algorithm = benchfmt.ThreadScaling, ops[alg], alg
		tables = append(tables, t)
	}
	return tables
}

// Operations lists the sequential operations in report order.
var Operations = []string{benchfmt.OpSparseDense, benchfmt.OpDenseSparse, benchfmt.OpMatVec}

// Algorithms lists the well-known parallel algorithms in report order.
var Algorithms = []string{"simple", "merge", "buffer_foreign", benchfmt.OpDenseSparse}

// algorithmOrder orders the sorted names in algs by Algorithms first.
func algorithmOrder(algs []string) []string {
	present := make(map[string]bool)
	for _, a := range algs {
		present[a] = true
	}
	var out []string
	for _, a := range Algorithms {
		if present[a] {
			out = append(out, a)
			delete(present, a)
		}
	}
	for _, a := range algs {
		if present[a] {
			out = append(out, a)
		}
	}
	return out
}
