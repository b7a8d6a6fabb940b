// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"errors"
	"fmt"
	"os"
)

// A Mode is an artifact ingestion mode.
type Mode int

const (
	// FlatMode reads a single text log.
	FlatMode Mode = iota
	// TreeMode walks a Criterion output directory.
	TreeMode
)

func (m Mode) String() string {
	switch m {
	case FlatMode:
		return "flat"
	case TreeMode:
		return "tree"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ErrNoResults is wrapped by *EmptyResultError.
var ErrNoResults = errors.New("no results found")

// An EmptyResultError reports that a complete scan of an artifact
// produced no usable results.
type EmptyResultError struct {
	Source string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("%s: %s", e.Source, ErrNoResults)
}

func (e *EmptyResultError) Unwrap() error {
	return ErrNoResults
}

// A Source is a stream of records, such as a *Reader or a *Tree.
type Source interface {
	Scan() bool
	Result() Record
	Err() error
}

var _ Source = (*Reader)(nil)
var _ Source = (*Tree)(nil)

// A Collector gathers every result from an artifact.
type Collector struct {
	// Warn, if non-nil, is called with each *FormatError. The
	// offending result is dropped either way.
	Warn func(err error)

	// Skip, if non-nil, is called with each *StructureError. The
	// offending leaf is skipped either way.
	Skip func(err error)
}

// Collect reads all results from the artifact at path. A regular file
// is read as a text log and a directory is walked as a Criterion tree.
//
// If path does not exist, Collect returns the error from os.Stat. If
// no results survive, it returns an *EmptyResultError.
func (c *Collector) Collect(path string) ([]*Result, Mode, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, 0, err
	}
	if fi.IsDir() {
		res, err := c.Read(&Tree{Root: path}, path)
		return res, TreeMode, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, FlatMode, err
	}
	defer f.Close()
	res, err := c.Read(NewReader(f, path), path)
	return res, FlatMode, err
}

// Read drains src and returns the results it yields. name identifies
// src in an *EmptyResultError.
func (c *Collector) Read(src Source, name string) ([]*Result, error) {
	var results []*Result
	for src.Scan() {
		switch rec := src.Result(); rec := rec.(type) {
		case *Result:
			results = append(results, rec)
		case *FormatError:
			if c.Warn != nil {
				c.Warn(rec)
			}
		case *StructureError:
			if c.Skip != nil {
				c.Skip(rec)
			}
		}
	}
	if err := src.Err(); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, &EmptyResultError{name}
	}
	return results, nil
}
