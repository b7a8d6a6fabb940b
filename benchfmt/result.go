// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchfmt reads Criterion benchmark measurements and decodes
// them into a flat, normalized result model.
//
// Two artifact shapes are supported: a text log captured from a
// benchmark run (see Reader), and the per-case JSON tree that Criterion
// leaves under target/criterion (see Tree). Both produce *Result
// records whose identifiers have been decoded by ParseGroup,
// ParseParam and ParseAlgorithm.
//
// Malformed records are reported as *FormatError or *StructureError
// records rather than stopping the scan, so one broken case never
// hides the rest of a run.
package benchfmt

import "fmt"

// A Result is a single measured benchmark case.
//
// Times are in nanoseconds. Lower ≤ Median ≤ Upper is expected but not
// enforced; the bounds come straight from the benchmark harness.
type Result struct {
	// GroupID, FunctionID and Parameter are the raw identifier
	// segments, kept verbatim for traceability.
	GroupID    string
	FunctionID string
	Parameter  string

	// Kind and Op classify the benchmark group. For thread
	// scaling results Op is derived from Algorithm.
	Kind Kind
	Op   string

	// Case is the decoded workload (matrix) name.
	Case string

	// Dims is the matrix shape, such as "18x18", or "" if unknown.
	Dims string

	// NNZ is the number of non-zero entries, or 0 if unknown.
	NNZ int

	// Threads is the thread count of a thread scaling result.
	// It is 0 for results that are not part of a scaling run.
	Threads int

	// Algorithm names the parallel strategy of a thread scaling
	// result, or "" for sequential results.
	Algorithm string

	Median, Lower, Upper float64

	// fileName and line record where this Result was read from.
	fileName string
	line     int
}

// Deviation returns a rough standard deviation derived from the width
// of the confidence interval, (Upper-Lower)/4. It is an approximation,
// not a statistic computed from samples, and is negative if the bounds
// are inverted.
func (r *Result) Deviation() float64 {
	return (r.Upper - r.Lower) / 4
}

// Label returns the implementation label that distinguishes results
// within one sequential group, such as "faer" or "sprs".
func (r *Result) Label() string {
	return r.FunctionID
}

// Scaling reports whether r is a point of a thread scaling curve.
func (r *Result) Scaling() bool {
	return r.Kind == ThreadScaling && r.Threads > 0
}

// Pos returns the file name and line number of r. Line is 0 for
// results read from a JSON tree.
func (r *Result) Pos() (fileName string, line int) {
	return r.fileName, r.line
}

// Clone makes a copy of r.
func (r *Result) Clone() *Result {
	r2 := *r
	return &r2
}

// FullID returns the slash-joined identifier of r, as printed by the
// benchmark harness.
func (r *Result) FullID() string {
	return r.GroupID + "/" + r.FunctionID + "/" + r.Parameter
}

func (r *Result) String() string {
	return fmt.Sprintf("%s [%v %v %v]", r.FullID(), r.Lower, r.Median, r.Upper)
}
