// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCollectTree(t *testing.T) {
	root := t.TempDir()
	writeCase(t, root, "sequential_matvec_0-18x18_nnz68", "faer", "18x18_nnz68", 61938, 59882, 64625)
	writeFile(t, filepath.Join(root, "sequential_matvec_0-18x18_nnz68", "sprs", "18x18_nnz68", LeafDir, EstimatesFile), "{}")
	writeCase(t, root, "sequential_matvec_0-18x18_nnz68", "nalgebra", "18x18_nnz68", 1, 1, 1)
	writeFile(t, filepath.Join(root, "sequential_matvec_0-18x18_nnz68", "nalgebra", "18x18_nnz68", LeafDir, EstimatesFile), "{}")

	var warned, skipped []error
	c := &Collector{
		Warn: func(err error) { warned = append(warned, err) },
		Skip: func(err error) { skipped = append(skipped, err) },
	}
	res, mode, err := c.Collect(root)
	if err != nil {
		t.Fatal(err)
	}
	if mode != TreeMode {
		t.Errorf("mode = %v, want %v", mode, TreeMode)
	}
	if len(res) != 1 || res[0].Case != "0" || res[0].Deviation() != 1185.75 {
		t.Errorf("got %v", res)
	}
	if len(warned) != 1 || len(skipped) != 1 {
		t.Errorf("got %d warnings and %d skips, want 1 and 1", len(warned), len(skipped))
	}
	var se *StructureError
	if len(skipped) == 1 && !errors.As(skipped[0], &se) {
		t.Errorf("skip %v is %T, want *StructureError", skipped[0], skipped[0])
	}
}

func TestCollectFlat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.txt")
	writeFile(t, path, "sequential_matvec_0-18x18_nnz68/faer/18x18_nnz68\n"+
		"                        time:   [59.882 µs 61.938 µs 64.625 µs]\n")
	var c Collector
	res, mode, err := c.Collect(path)
	if err != nil {
		t.Fatal(err)
	}
	if mode != FlatMode {
		t.Errorf("mode = %v, want %v", mode, FlatMode)
	}
	if len(res) != 1 || res[0].Median != 61938 || res[0].NNZ != 68 {
		t.Errorf("got %v", res)
	}
}

func TestCollectEmpty(t *testing.T) {
	root := t.TempDir()
	// Only report directories and a leaf with no data.
	writeFile(t, filepath.Join(root, ReportDir, "index.html"), "")
	if err := os.MkdirAll(filepath.Join(root, "thread_scaling_a-1x1_nnz1", "sparse_dense", "2_threads"), 0777); err != nil {
		t.Fatal(err)
	}
	var c Collector
	_, _, err := c.Collect(root)
	if !errors.Is(err, ErrNoResults) {
		t.Fatalf("err = %v, want ErrNoResults", err)
	}
	var ee *EmptyResultError
	if !errors.As(err, &ee) || ee.Source != root {
		t.Errorf("err = %#v, want *EmptyResultError for %s", err, root)
	}
}

func TestCollectMissing(t *testing.T) {
	var c Collector
	_, _, err := c.Collect(filepath.Join(t.TempDir(), "target", "criterion"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want not exist", err)
	}
}
