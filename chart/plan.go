// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"sort"
	"strconv"
	"strings"

	"github.com/sparsebench/critreport/benchfmt"
	"github.com/sparsebench/critreport/benchtab"
)

// Ops lists the operations that have thread scaling charts, in
// gallery order.
var Ops = []string{benchfmt.OpSparseDense, benchfmt.OpDenseSparse}

// A Spec describes one thread scaling chart: every parallel result of
// one case and operation, plus its sequential baselines.
type Spec struct {
	Case string
	Op   string

	// BaselineCase is the sequential case the baselines were taken
	// from. It differs from Case when the match was fuzzy, and is
	// "" if no baseline was found.
	BaselineCase string

	// Baselines holds one sequential result per implementation,
	// ordered by implementation label.
	Baselines []*benchfmt.Result

	// Algorithms lists the algorithms in Curves in chart order.
	Algorithms []string

	// Curves maps from algorithm to its results in ascending thread
	// order, with at most one result per thread count.
	Curves map[string][]*benchfmt.Result

	file string // set by Plan when FileName collides with another Spec
}

// File returns the base name of the image for s.
func (s *Spec) File() string {
	if s.file != "" {
		return s.file
	}
	return FileName(s.Case, s.Op)
}

// FileName returns the deterministic image name of the chart for the
// given case and operation.
func FileName(caseName, op string) string {
	return sanitize(caseName) + "_" + op + "_thread_scaling.png"
}

// sanitize replaces every character that is not safe in a file name.
func sanitize(s string) string {
	if s == "" {
		return benchfmt.UnknownCase
	}
	return strings.Map(func(r rune) rune {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		}
		return '_'
	}, s)
}

// baselineOp returns the chart operation a sequential result serves
// as a baseline for. Sparse matrix-vector products are sparse-dense.
func baselineOp(op string) string {
	if op == benchfmt.OpMatVec {
		return benchfmt.OpSparseDense
	}
	return op
}

// Plan groups results into chart Specs, one per case and operation
// with at least one thread scaling result. Specs are ordered by case
// name, then by Ops.
func Plan(results []*benchfmt.Result) []*Spec {
	// seq maps from case to chart operation to implementation.
	seq := make(map[string]map[string]map[string]*benchfmt.Result)
	// par maps from case to operation to algorithm to thread count.
	par := make(map[string]map[string]map[string]map[int]*benchfmt.Result)

	for _, r := range results {
		switch {
		case r.Kind == benchfmt.Sequential:
			op := baselineOp(r.Op)
			ops := seq[r.Case]
			if ops == nil {
				ops = make(map[string]map[string]*benchfmt.Result)
				seq[r.Case] = ops
			}
			impls := ops[op]
			if impls == nil {
				impls = make(map[string]*benchfmt.Result)
				ops[op] = impls
			}
			// A direct sparse-dense measurement beats a matvec stand-in.
			if old, ok := impls[r.Label()]; ok && old.Op == op && r.Op != op {
				continue
			}
			impls[r.Label()] = r
		case r.Scaling():
			ops := par[r.Case]
			if ops == nil {
				ops = make(map[string]map[string]map[int]*benchfmt.Result)
				par[r.Case] = ops
			}
			algs := ops[r.Op]
			if algs == nil {
				algs = make(map[string]map[int]*benchfmt.Result)
				ops[r.Op] = algs
			}
			if algs[r.Algorithm] == nil {
				algs[r.Algorithm] = make(map[int]*benchfmt.Result)
			}
			// A later result replaces an earlier one, as in the tables.
			algs[r.Algorithm][r.Threads] = r
		}
	}

	// candidates maps from operation to the sorted sequential cases
	// that have a baseline for it.
	candidates := make(map[string][]string)
	for name, ops := range seq {
		for op := range ops {
			candidates[op] = append(candidates[op], name)
		}
	}
	for _, c := range candidates {
		sort.Strings(c)
	}

	var specs []*Spec
	files := make(map[string]bool)
	for _, name := range sortedKeys(par) {
		for _, op := range Ops {
			algs := par[name][op]
			if len(algs) == 0 {
				continue
			}
			s := &Spec{Case: name, Op: op, Curves: make(map[string][]*benchfmt.Result)}
			for alg, byThreads := range algs {
				rs := make([]*benchfmt.Result, 0, len(byThreads))
				for _, r := range byThreads {
					rs = append(rs, r)
				}
				sort.Slice(rs, func(i, j int) bool { return rs[i].Threads < rs[j].Threads })
				s.Curves[alg] = rs
			}
			s.Algorithms = orderAlgorithms(sortedKeys(algs))
			if match, ok := benchfmt.MatchCase(name, candidates[op]); ok {
				s.BaselineCase = match
				impls := seq[match][op]
				for _, impl := range sortedKeys(impls) {
					s.Baselines = append(s.Baselines, impls[impl])
				}
			}
			s.file = uniqueFile(files, name, op)
			specs = append(specs, s)
		}
	}
	return specs
}

// uniqueFile returns FileName(caseName, op), or, if a case that
// sanitizes to the same name already took it, the first free name
// with a numeric suffix after the case. It records the result in used.
func uniqueFile(used map[string]bool, caseName, op string) string {
	f := FileName(caseName, op)
	for n := 2; used[f]; n++ {
		f = FileName(caseName+"_"+strconv.Itoa(n), op)
	}
	used[f] = true
	return f
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// orderAlgorithms puts the well-known algorithms first.
func orderAlgorithms(algs []string) []string {
	rank := make(map[string]int)
	for i, a := range benchtab.Algorithms {
		rank[a] = i + 1
	}
	out := append([]string(nil), algs...)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := rank[out[i]], rank[out[j]]
		if ri == 0 || rj == 0 {
			return ri != 0 && rj == 0
		}
		return ri < rj
	})
	return out
}
