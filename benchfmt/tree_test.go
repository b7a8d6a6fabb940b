// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0666); err != nil {
		t.Fatal(err)
	}
}

func estimatesJSON(median, lo, hi float64) string {
	return fmt.Sprintf(`{"mean":{"point_estimate":1,"confidence_interval":{"confidence_level":0.95,"lower_bound":0,"upper_bound":2}},`+
		`"median":{"point_estimate":%v,"standard_error":1.5,"confidence_interval":{"confidence_level":0.95,"lower_bound":%v,"upper_bound":%v}}}`,
		median, lo, hi)
}

// writeCase writes one Criterion leaf under root.
func writeCase(t *testing.T, root, group, function, param string, median, lo, hi float64) {
	t.Helper()
	dir := filepath.Join(root, group, function, param, LeafDir)
	writeFile(t, filepath.Join(dir, EstimatesFile), estimatesJSON(median, lo, hi))
	writeFile(t, filepath.Join(dir, BenchmarkFile),
		fmt.Sprintf(`{"group_id":%q,"function_id":%q,"value_str":%q}`, group, function, param))
}

func scanTree(t *testing.T, root string) []Record {
	t.Helper()
	tr := &Tree{Root: root}
	var out []Record
	for tr.Scan() {
		out = append(out, tr.Result())
	}
	if err := tr.Err(); err != nil {
		t.Fatal(err)
	}
	return out
}

func TestTree(t *testing.T) {
	root := t.TempDir()
	writeCase(t, root, "thread_scaling_bcsstk01-48x48_nnz400", "sparse_dense_merge", "4_threads", 2000, 1900, 2100)
	writeCase(t, root, "thread_scaling_bcsstk01-48x48_nnz400", "sparse_dense_merge", "2_threads", 3000, 2900, 3100)
	writeCase(t, root, "sequential_sparse_dense_bcsstk01-48x48_nnz400", "faer", "48x48_nnz400", 5000, 4900, 5200)
	// Criterion's HTML reports live beside the data at every level.
	writeFile(t, filepath.Join(root, ReportDir, "index.html"), "<html></html>")
	writeFile(t, filepath.Join(root, "sequential_sparse_dense_bcsstk01-48x48_nnz400", ReportDir, "index.html"), "")
	writeFile(t, filepath.Join(root, "sequential_sparse_dense_bcsstk01-48x48_nnz400", "faer", ReportDir, "index.html"), "")
	// Stray files are not directories to walk.
	writeFile(t, filepath.Join(root, "sequential_sparse_dense_bcsstk01-48x48_nnz400", "faer", "notes.txt"), "")

	recs := scanTree(t, root)
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3: %v", len(recs), recs)
	}
	var got []string
	for _, rec := range recs {
		res, ok := rec.(*Result)
		if !ok {
			t.Fatalf("got %T %v, want *Result", rec, rec)
		}
		got = append(got, fmt.Sprintf("%s %v", res.FullID(), res.Median))
	}
	want := []string{
		"sequential_sparse_dense_bcsstk01-48x48_nnz400/faer/48x48_nnz400 5000",
		"thread_scaling_bcsstk01-48x48_nnz400/sparse_dense_merge/2_threads 3000",
		"thread_scaling_bcsstk01-48x48_nnz400/sparse_dense_merge/4_threads 2000",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("got:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}

	res := recs[2].(*Result)
	if res.Threads != 4 || res.Algorithm != "merge" || res.Lower != 1900 || res.Upper != 2100 || res.NNZ != 400 {
		t.Errorf("decoded %+v", res)
	}
	if file, _ := res.Pos(); !strings.HasSuffix(file, filepath.Join(LeafDir, EstimatesFile)) {
		t.Errorf("Pos() = %s", file)
	}
}

func TestTreeBadLeaves(t *testing.T) {
	root := t.TempDir()
	g := "sequential_matvec_0-18x18_nnz68"
	writeCase(t, root, g, "faer", "18x18_nnz68", 61.938, 59.882, 64.625)

	// Missing metadata file.
	writeFile(t, filepath.Join(root, g, "nalgebra", "18x18_nnz68", LeafDir, EstimatesFile), estimatesJSON(1, 1, 1))
	// No leaf directory at all.
	if err := os.MkdirAll(filepath.Join(root, g, "sprs", "18x18_nnz68", "base"), 0777); err != nil {
		t.Fatal(err)
	}
	// Non-numeric median.
	writeCase(t, root, g, "sprs2", "18x18_nnz68", 1, 1, 1)
	writeFile(t, filepath.Join(root, g, "sprs2", "18x18_nnz68", LeafDir, EstimatesFile),
		`{"median":{"point_estimate":"fast","confidence_interval":{"lower_bound":1,"upper_bound":2}}}`)
	// Missing bound.
	writeCase(t, root, g, "sprs3", "18x18_nnz68", 1, 1, 1)
	writeFile(t, filepath.Join(root, g, "sprs3", "18x18_nnz68", LeafDir, EstimatesFile),
		`{"median":{"point_estimate":3,"confidence_interval":{"lower_bound":1}}}`)
	// Metadata that is not JSON.
	writeCase(t, root, g, "sprs4", "18x18_nnz68", 1, 1, 1)
	writeFile(t, filepath.Join(root, g, "sprs4", "18x18_nnz68", LeafDir, BenchmarkFile), `not json`)
	// Bad thread count in the parameter.
	writeCase(t, root, "thread_scaling_x-1x1_nnz1", "sparse_dense", "many_threads", 1, 1, 1)

	recs := scanTree(t, root)
	var kinds []string
	for _, rec := range recs {
		switch rec := rec.(type) {
		case *Result:
			kinds = append(kinds, "result "+rec.FunctionID)
		case *StructureError:
			kinds = append(kinds, "structure "+filepath.Base(filepath.Dir(filepath.Dir(rec.Path))))
		case *FormatError:
			kinds = append(kinds, "format "+rec.Name)
		}
	}
	want := []string{
		"result faer",
		"structure nalgebra",
		"structure sprs",
		"format " + g + "/sprs2/18x18_nnz68",
		"format median.confidence_interval.upper_bound",
		"format " + g + "/sprs4/18x18_nnz68",
		"format many_threads",
	}
	if strings.Join(kinds, "\n") != strings.Join(want, "\n") {
		t.Errorf("got:\n%s\nwant:\n%s", strings.Join(kinds, "\n"), strings.Join(want, "\n"))
	}
}

func TestTreeMissingRoot(t *testing.T) {
	tr := &Tree{Root: filepath.Join(t.TempDir(), "nope")}
	if tr.Scan() {
		t.Fatal("Scan succeeded on missing root")
	}
	if err := tr.Err(); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Err() = %v, want not exist", err)
	}
}
