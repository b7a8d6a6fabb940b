// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Names in a Criterion output tree.
const (
	// LeafDir holds the statistics of the most recent run of a case.
	LeafDir = "new"
	// EstimatesFile holds the summary statistics of a case.
	EstimatesFile = "estimates.json"
	// BenchmarkFile holds the identifiers of a case.
	BenchmarkFile = "benchmark.json"
	// ReportDir is Criterion's HTML report, which may appear at any
	// level of the tree.
	ReportDir = "report"
)

// A Tree reads benchmark results from a Criterion output directory
// laid out as Root/<group>/<function>/<parameter>/new/, where each
// leaf holds an estimates.json and a benchmark.json.
//
// Directories are visited in lexical order. Report directories are
// skipped. A leaf that lacks either file produces a *StructureError
// record; a leaf whose statistics cannot be decoded produces a
// *FormatError record. Neither stops the walk.
type Tree struct {
	// Root is the directory to walk, typically "target/criterion".
	Root string

	// leaves is the sequence of remaining leaves, or nil if this
	// Tree has not started yet. Note that this distinguishes nil
	// from length 0.
	leaves []leaf

	rec Record
	err error
}

type leaf struct {
	group, function, param string
	dir                    string
	err                    *StructureError // set if dir could not be listed
}

// A StructureError reports a missing or unreadable part of an
// artifact tree. The affected leaf is skipped.
type StructureError struct {
	Path string
	Msg  string
}

func (e *StructureError) Pos() (fileName string, line int) {
	return e.Path, 0
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

// init does first-use initialization of t by listing every leaf under
// t.Root.
func (t *Tree) init() {
	t.leaves = []leaf{}

	groups, err := subdirs(t.Root)
	if err != nil {
		t.err = err
		return
	}
	for _, g := range groups {
		gdir := filepath.Join(t.Root, g)
		functions, err := subdirs(gdir)
		if err != nil {
			t.leaves = append(t.leaves, leaf{err: &StructureError{gdir, err.Error()}})
			continue
		}
		for _, f := range functions {
			fdir := filepath.Join(gdir, f)
			params, err := subdirs(fdir)
			if err != nil {
				t.leaves = append(t.leaves, leaf{err: &StructureError{fdir, err.Error()}})
				continue
			}
			for _, p := range params {
				t.leaves = append(t.leaves, leaf{g, f, p, filepath.Join(fdir, p), nil})
			}
		}
	}
}

// subdirs returns the names of the directories in dir other than
// ReportDir, in lexical order.
func subdirs(dir string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, ent := range ents {
		if ent.IsDir() && ent.Name() != ReportDir {
			names = append(names, ent.Name())
		}
	}
	return names, nil
}

// Scan advances to the next leaf of the tree and reports whether a
// record was read. The caller should use the Result method to get the
// record. If Scan reaches the end of the tree, or if Root cannot be
// read, it returns false. In this case, the caller should use the Err
// method to check for errors.
func (t *Tree) Scan() bool {
	if t.err != nil {
		return false
	}
	if t.leaves == nil {
		t.init()
		if t.err != nil {
			return false
		}
	}
	if len(t.leaves) == 0 {
		return false
	}
	l := t.leaves[0]
	t.leaves = t.leaves[1:]
	if l.err != nil {
		t.rec = l.err
	} else {
		t.rec = loadLeaf(l)
	}
	return true
}

// Result returns the record that was just read by Scan: a *Result, a
// *FormatError or a *StructureError.
func (t *Tree) Result() Record {
	if t.rec == nil {
		return noResult
	}
	return t.rec
}

// Err returns the error that stopped Scan, if any. Only a failure to
// read Root itself is reported here.
func (t *Tree) Err() error {
	return t.err
}

// estimates is the part of Criterion's estimates.json that is used.
// Pointers distinguish missing keys from zero values.
type estimates struct {
	Median *struct {
		PointEstimate      *float64 `json:"point_estimate"`
		ConfidenceInterval *struct {
			LowerBound *float64 `json:"lower_bound"`
			UpperBound *float64 `json:"upper_bound"`
		} `json:"confidence_interval"`
	} `json:"median"`
}

func loadLeaf(l leaf) Record {
	dir := filepath.Join(l.dir, LeafDir)
	estPath := filepath.Join(dir, EstimatesFile)
	metaPath := filepath.Join(dir, BenchmarkFile)
	for _, p := range []string{estPath, metaPath} {
		if fi, err := os.Stat(p); err != nil || !fi.Mode().IsRegular() {
			return &StructureError{dir, "missing " + filepath.Base(p)}
		}
	}
	name := l.group + "/" + l.function + "/" + l.param

	var est estimates
	if err := readJSON(estPath, &est); err != nil {
		return &FormatError{FileName: estPath, Name: name, Msg: "cannot decode", Err: err}
	}
	// The metadata is read to check it is well-formed, but the
	// directory names are authoritative.
	var meta map[string]interface{}
	if err := readJSON(metaPath, &meta); err != nil {
		return &FormatError{FileName: metaPath, Name: name, Msg: "cannot decode", Err: err}
	}

	m := est.Median
	switch {
	case m == nil:
		return &FormatError{FileName: estPath, Name: "median", Msg: "missing"}
	case m.PointEstimate == nil:
		return &FormatError{FileName: estPath, Name: "median.point_estimate", Msg: "missing"}
	case m.ConfidenceInterval == nil:
		return &FormatError{FileName: estPath, Name: "median.confidence_interval", Msg: "missing"}
	case m.ConfidenceInterval.LowerBound == nil:
		return &FormatError{FileName: estPath, Name: "median.confidence_interval.lower_bound", Msg: "missing"}
	case m.ConfidenceInterval.UpperBound == nil:
		return &FormatError{FileName: estPath, Name: "median.confidence_interval.upper_bound", Msg: "missing"}
	}

	res, err := Decode(l.group, l.function, l.param)
	if err != nil {
		return withPos(err, estPath, 0, name)
	}
	res.Median = *m.PointEstimate
	res.Lower = *m.ConfidenceInterval.LowerBound
	res.Upper = *m.ConfidenceInterval.UpperBound
	res.fileName = estPath
	return res
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
