// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sparsebench/critreport/benchfmt"
)

func res(t *testing.T, group, function, param string, median float64) *benchfmt.Result {
	t.Helper()
	r, err := benchfmt.Decode(group, function, param)
	if err != nil {
		t.Fatal(err)
	}
	r.Median, r.Lower, r.Upper = median, median*0.9, median*1.1
	return r
}

func testResults(t *testing.T) []*benchfmt.Result {
	return []*benchfmt.Result{
		// Exact baselines for bcsstk01, fuzzy ones for aniso.
		res(t, "sequential_sparse_dense_bcsstk01-48x48_nnz400", "sprs", "48x48_nnz400", 9e6),
		res(t, "sequential_sparse_dense_bcsstk01-48x48_nnz400", "faer", "48x48_nnz400", 8e6),
		res(t, "sequential_dense_sparse_bcsstk01-48x48_nnz400", "faer", "48x48_nnz400", 7e6),
		res(t, "sequential_matvec_bcsstk01-48x48_nnz400", "faer", "48x48_nnz400", 1),
		res(t, "sequential_matvec_anisotropy_3d-10x10_nnz50", "nalgebra", "10x10_nnz50", 4e6),
		res(t, "thread_scaling_bcsstk01-48x48_nnz400", "sparse_dense_merge", "4_threads", 2e6),
		res(t, "thread_scaling_bcsstk01-48x48_nnz400", "sparse_dense_merge", "1_threads", 6e6),
		res(t, "thread_scaling_bcsstk01-48x48_nnz400", "sparse_dense_simple", "1_threads", 6.5e6),
		res(t, "thread_scaling_bcsstk01-48x48_nnz400", "dense_sparse", "2_threads", 3e6),
		res(t, "thread_scaling_anisotropy-10x10_nnz50", "sparse_dense_zeta", "2_threads", 3e6),
		res(t, "thread_scaling_lonely-10x10_nnz50", "dense_sparse", "2_threads", 3e6),
	}
}

func TestPlan(t *testing.T) {
	specs := Plan(testResults(t))

	type summary struct {
		Case, Op, BaselineCase string
		Baselines              []float64
		Algorithms             []string
		Threads                map[string][]int
	}
	var got []summary
	for _, s := range specs {
		sum := summary{Case: s.Case, Op: s.Op, BaselineCase: s.BaselineCase,
			Algorithms: s.Algorithms, Threads: make(map[string][]int)}
		for _, b := range s.Baselines {
			sum.Baselines = append(sum.Baselines, b.Median)
		}
		for alg, rs := range s.Curves {
			for _, r := range rs {
				sum.Threads[alg] = append(sum.Threads[alg], r.Threads)
			}
		}
		got = append(got, sum)
	}
	want := []summary{
		{"anisotropy", "sparse_dense", "anisotropy_3d", []float64{4e6}, []string{"zeta"},
			map[string][]int{"zeta": {2}}},
		{"bcsstk01", "sparse_dense", "bcsstk01", []float64{8e6, 9e6}, []string{"simple", "merge"},
			map[string][]int{"merge": {1, 4}, "simple": {1}}},
		{"bcsstk01", "dense_sparse", "bcsstk01", []float64{7e6}, []string{"dense_sparse"},
			map[string][]int{"dense_sparse": {2}}},
		{"lonely", "dense_sparse", "", nil, []string{"dense_sparse"},
			map[string][]int{"dense_sparse": {2}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("plan (-want +got):\n%s", diff)
	}
}

func TestPlanDuplicates(t *testing.T) {
	specs := Plan([]*benchfmt.Result{
		res(t, "thread_scaling_dup-4x4_nnz4", "sparse_dense_merge", "2_threads", 5e6),
		res(t, "thread_scaling_dup-4x4_nnz4", "sparse_dense_merge", "1_threads", 8e6),
		res(t, "thread_scaling_dup-4x4_nnz4", "sparse_dense_merge", "2_threads", 4e6),
	})
	if len(specs) != 1 {
		t.Fatalf("got %d specs, want 1", len(specs))
	}
	var got []float64
	for _, r := range specs[0].Curves["merge"] {
		got = append(got, r.Median)
	}
	// The later 2-thread result replaces the earlier one.
	if diff := cmp.Diff([]float64{8e6, 4e6}, got); diff != "" {
		t.Errorf("merge curve medians (-want +got):\n%s", diff)
	}
}

func TestPlanFileCollision(t *testing.T) {
	specs := Plan([]*benchfmt.Result{
		res(t, "thread_scaling_a_b-4x4_nnz4", "sparse_dense_merge", "2_threads", 5e6),
		res(t, "thread_scaling_a b-4x4_nnz4", "sparse_dense_merge", "2_threads", 5e6),
		res(t, "thread_scaling_a b-4x4_nnz4", "dense_sparse", "2_threads", 5e6),
	})
	var got []string
	for _, s := range specs {
		got = append(got, s.Case+" "+s.File())
	}
	want := []string{
		"a b a_b_sparse_dense_thread_scaling.png",
		"a b a_b_dense_sparse_thread_scaling.png",
		"a_b a_b_2_sparse_dense_thread_scaling.png",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("files (-want +got):\n%s", diff)
	}
}

func TestThreadTicks(t *testing.T) {
	ticks := threadTicks(map[int]bool{16: true, 1: true, 1000000000: true, 4: true})
	var got []string
	for _, tk := range ticks {
		got = append(got, tk.Label)
	}
	if diff := cmp.Diff([]string{"1", "4", "16", "1000000000"}, got); diff != "" {
		t.Errorf("tick labels (-want +got):\n%s", diff)
	}
}

func TestFileName(t *testing.T) {
	for _, test := range []struct {
		name, op, want string
	}{
		{"bcsstk01", "sparse_dense", "bcsstk01_sparse_dense_thread_scaling.png"},
		{"synthetic_10000x10000", "dense_sparse", "synthetic_10000x10000_dense_sparse_thread_scaling.png"},
		{"a/b c", "sparse_dense", "a_b_c_sparse_dense_thread_scaling.png"},
		{"", "sparse_dense", "unknown_sparse_dense_thread_scaling.png"},
	} {
		if got := FileName(test.name, test.op); got != test.want {
			t.Errorf("FileName(%q, %q) = %q, want %q", test.name, test.op, got, test.want)
		}
	}
}

func TestGenerate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "figures")
	rs := append(testResults(t),
		res(t, "thread_scaling_zero-1x1_nnz1", "sparse_dense_merge", "1_threads", 0))

	var warnings []error
	g := &Generator{Dir: dir, Warn: func(err error) { warnings = append(warnings, err) }}
	figs, err := g.Generate(rs)
	if err != nil {
		t.Fatal(err)
	}
	want := []Figure{
		{"anisotropy", "sparse_dense", "anisotropy_sparse_dense_thread_scaling.png"},
		{"bcsstk01", "sparse_dense", "bcsstk01_sparse_dense_thread_scaling.png"},
		{"bcsstk01", "dense_sparse", "bcsstk01_dense_sparse_thread_scaling.png"},
		{"lonely", "dense_sparse", "lonely_dense_sparse_thread_scaling.png"},
	}
	if diff := cmp.Diff(want, figs); diff != "" {
		t.Errorf("figures (-want +got):\n%s", diff)
	}
	if len(warnings) != 1 {
		t.Errorf("got warnings %v, want 1 for the zero-time case", warnings)
	}

	png := []byte("\x89PNG\r\n\x1a\n")
	for _, f := range figs {
		data, err := os.ReadFile(filepath.Join(dir, f.File))
		if err != nil {
			t.Error(err)
			continue
		}
		if !bytes.HasPrefix(data, png) {
			t.Errorf("%s is not a PNG", f.File)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, FileName("zero", "sparse_dense"))); err == nil {
		t.Errorf("chart written for case with no positive timings")
	}
}

func TestGenerateNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "figures")
	g := &Generator{Dir: dir}
	figs, err := g.Generate([]*benchfmt.Result{
		res(t, "sequential_matvec_a-1x1_nnz1", "faer", "1x1_nnz1", 1),
	})
	if err != nil || len(figs) != 0 {
		t.Fatalf("got %v, %v; want no figures", figs, err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("figures directory created with nothing to draw")
	}
}
