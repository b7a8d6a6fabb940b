// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"fmt"
	"strconv"
	"strings"
)

// A Kind classifies a benchmark group.
type Kind int

const (
	// Unknown is a group id that matches no known naming rule.
	Unknown Kind = iota
	// Sequential is a single-threaded comparison between
	// implementations.
	Sequential
	// ThreadScaling is a parallel algorithm measured at several
	// thread counts.
	ThreadScaling
)

func (k Kind) String() string {
	switch k {
	case Unknown:
		return "unknown"
	case Sequential:
		return "sequential"
	case ThreadScaling:
		return "thread_scaling"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Operations.
const (
	OpSparseDense = "sparse_dense"
	OpDenseSparse = "dense_sparse"
	OpMatVec      = "matvec"
)

const (
	// UnknownCase is the case name of identifiers that could not
	// be decoded.
	UnknownCase = "unknown"

	// SyntheticCase is the case token used for generated matrices.
	// Distinct synthetic shapes are told apart by folding their
	// dimensions into the case name.
	SyntheticCase = "synthetic"
)

// A Group is a decoded group id.
type Group struct {
	Kind Kind
	Op   string // operation of a Sequential group; "" otherwise
	Case string
	Dims string
	NNZ  int
}

// A groupRule decodes group ids that start with prefix.
type groupRule struct {
	prefix string
	kind   Kind
	op     string
	decode func(r *groupRule, id string) Group
}

var groupRules = []groupRule{
	{"sequential_sparse_dense_", Sequential, OpSparseDense, decodeSequential},
	{"sequential_dense_sparse_", Sequential, OpDenseSparse, decodeSequential},
	{"sequential_matvec_", Sequential, OpMatVec, decodeSequential},
	{"thread_scaling_", ThreadScaling, "", decodeThreadScaling},
}

// ParseGroup decodes a benchmark group id of the form
// "<kind>_<case>[-<dims>_nnz<N>]".
//
// Ids that match no rule decode to Kind Unknown and Case UnknownCase.
// ParseGroup never fails: a malformed group id must not stop the rest
// of a run from being reported.
func ParseGroup(id string) Group {
	for i := range groupRules {
		r := &groupRules[i]
		if strings.HasPrefix(id, r.prefix) {
			return r.decode(r, id)
		}
	}
	return Group{Kind: Unknown, Case: UnknownCase}
}

// decodeSequential takes the case from the underscore-separated tokens
// that follow the rule prefix, up to the first hyphen.
func decodeSequential(r *groupRule, id string) Group {
	g := Group{Kind: r.kind, Op: r.op}
	head, rest, _ := strings.Cut(id, "-")
	toks := strings.Split(head, "_")
	n := strings.Count(r.prefix, "_")
	g.Case = strings.Join(toks[n:], "_")
	if g.Case == "" {
		g.Case = UnknownCase
	}
	g.Case = foldSynthetic(g.Case, rest)
	g.Dims, g.NNZ = groupShape(id)
	return g
}

// decodeThreadScaling takes the case from everything between the rule
// prefix and the first hyphen.
func decodeThreadScaling(r *groupRule, id string) Group {
	g := Group{Kind: r.kind}
	tok, rest, _ := strings.Cut(strings.TrimPrefix(id, r.prefix), "-")
	if tok == "" {
		tok = UnknownCase
	}
	g.Case = foldSynthetic(tok, rest)
	g.Dims, g.NNZ = groupShape(id)
	return g
}

// foldSynthetic appends the dimensions of a synthetic matrix to its
// case name. rest is the part of the group id after the first hyphen,
// for example "10000x10000_0.00-10000x10000_nnz1000000", in which case
// the result is "synthetic_10000x10000".
func foldSynthetic(name, rest string) string {
	if name != SyntheticCase || !strings.Contains(rest, "x") || !strings.Contains(rest, "_nnz") {
		return name
	}
	before, _, _ := strings.Cut(rest, "_nnz")
	segs := strings.Split(before, "-")
	return name + "_" + segs[len(segs)-1]
}

// groupShape extracts the "<dims>_nnz<N>" segment embedded in a group
// id. Synthetic group ids carry extra hyphen-separated fields, so the
// last segment is tried before the second.
func groupShape(id string) (dims string, nnz int) {
	segs := strings.Split(id, "-")
	if len(segs) < 2 {
		return "", 0
	}
	for _, seg := range []string{segs[len(segs)-1], segs[1]} {
		if d, n, ok := parseShape(seg); ok {
			return d, n
		}
	}
	return "", 0
}

// parseShape parses s as "<dims>_nnz<N>".
func parseShape(s string) (dims string, nnz int, ok bool) {
	dims, count, found := strings.Cut(s, "_nnz")
	if !found || dims == "" {
		return "", 0, false
	}
	n, err := strconv.Atoi(count)
	if err != nil || n < 0 {
		return "", 0, false
	}
	return dims, n, true
}

// A Param is a decoded parameter string. At most one of Threads,
// Dims/NNZ and Label is set.
type Param struct {
	Threads int    // from "<N>_threads"
	Dims    string // from "<dims>_nnz<N>"
	NNZ     int
	Label   string // any other parameter, taken verbatim
}

// ParseParam decodes a parameter string. A parameter containing
// "_threads" must be "<N>_threads" and one containing "_nnz" must be
// "<dims>_nnz<N>"; otherwise ParseParam returns a *FormatError. Any
// other parameter is returned as an opaque Label.
func ParseParam(p string) (Param, error) {
	switch {
	case strings.Contains(p, "_threads"):
		n, err := strconv.Atoi(strings.TrimSuffix(p, "_threads"))
		if err != nil || n <= 0 {
			return Param{}, &FormatError{Name: p, Msg: "bad thread count"}
		}
		return Param{Threads: n}, nil
	case strings.Contains(p, "_nnz"):
		dims, nnz, ok := parseShape(p)
		if !ok {
			return Param{}, &FormatError{Name: p, Msg: "bad non-zero count"}
		}
		return Param{Dims: dims, NNZ: nnz}, nil
	}
	return Param{Label: p}, nil
}

// ParseAlgorithm decodes the parallel strategy named by a thread
// scaling function id. "sparse_dense_merge" names "merge"; the bare
// "sparse_dense" and "dense_sparse" functions name themselves. Other
// function ids return "".
func ParseAlgorithm(functionID string) string {
	if alg, ok := strings.CutPrefix(functionID, OpSparseDense+"_"); ok && alg != "" {
		return alg
	}
	switch functionID {
	case OpSparseDense, OpDenseSparse:
		return functionID
	}
	return ""
}

// Decode decodes the three identifier segments of a benchmark into a
// Result with no timings set.
//
// The shape comes from the parameter when it has one and from the
// group id otherwise. Thread counts and algorithms are only decoded
// for thread scaling groups.
func Decode(groupID, functionID, parameter string) (*Result, error) {
	g := ParseGroup(groupID)
	p, err := ParseParam(parameter)
	if err != nil {
		return nil, err
	}
	r := &Result{
		GroupID:    groupID,
		FunctionID: functionID,
		Parameter:  parameter,
		Kind:       g.Kind,
		Op:         g.Op,
		Case:       g.Case,
		Dims:       p.Dims,
		NNZ:        p.NNZ,
	}
	if r.Dims == "" {
		r.Dims, r.NNZ = g.Dims, g.NNZ
	}
	if r.Case == UnknownCase && p.Label != "" {
		r.Case = p.Label
	}
	if g.Kind == ThreadScaling {
		r.Threads = p.Threads
		r.Algorithm = ParseAlgorithm(functionID)
		r.Op = OpSparseDense
		if r.Algorithm == OpDenseSparse {
			r.Op = OpDenseSparse
		}
	}
	return r, nil
}

// MatchCase looks for name among candidates. An exact match wins.
// Otherwise the first candidate that contains name, is contained in
// name, or equals name once underscores and hyphens are removed is
// returned. Callers that need a stable answer must pass candidates in
// a stable order; when several candidates match loosely, the first
// one wins.
func MatchCase(name string, candidates []string) (string, bool) {
	for _, c := range candidates {
		if c == name {
			return c, true
		}
	}
	norm := normalizeCase(name)
	for _, c := range candidates {
		if c == "" || name == "" {
			continue
		}
		if strings.Contains(c, name) || strings.Contains(name, c) || normalizeCase(c) == norm {
			return c, true
		}
	}
	return "", false
}

var caseNormalizer = strings.NewReplacer("_", "", "-", "")

func normalizeCase(s string) string {
	return caseNormalizer.Replace(s)
}
