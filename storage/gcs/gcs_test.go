// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gcs

import "testing"

func TestParseURL(t *testing.T) {
	for _, test := range []struct {
		url     string
		want    Location
		wantErr bool
	}{
		{"gs://bench", Location{"bench", ""}, false},
		{"gs://bench/", Location{"bench", ""}, false},
		{"gs://bench/nightly/2026-10-17/", Location{"bench", "nightly/2026-10-17"}, false},
		{"s3://bench/x", Location{}, true},
		{"gs:///x", Location{}, true},
		{"bench/x", Location{}, true},
	} {
		got, err := ParseURL(test.url)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseURL(%q): err = %v, want error %v", test.url, err, test.wantErr)
			continue
		}
		if got != test.want {
			t.Errorf("ParseURL(%q) = %+v, want %+v", test.url, got, test.want)
		}
	}
}

func TestObject(t *testing.T) {
	l := Location{"bench", "nightly"}
	if got := l.Object("figures/a_sparse_dense_thread_scaling.png"); got != "nightly/figures/a_sparse_dense_thread_scaling.png" {
		t.Errorf("Object = %q", got)
	}
	if got := (Location{"bench", ""}).Object("BENCHMARK_RESULTS.md"); got != "BENCHMARK_RESULTS.md" {
		t.Errorf("Object without prefix = %q", got)
	}
	if got := l.String(); got != "gs://bench/nightly" {
		t.Errorf("String = %q", got)
	}
}

func TestClientOptions(t *testing.T) {
	if n := len(ClientOptions("", "")); n != 0 {
		t.Errorf("default credentials: got %d options", n)
	}
	if n := len(ClientOptions("key.json", "")); n != 1 {
		t.Errorf("credentials file: got %d options", n)
	}
	if n := len(ClientOptions("key.json", "tok")); n != 1 {
		t.Errorf("token: got %d options", n)
	}
}

func TestContentType(t *testing.T) {
	for name, want := range map[string]string{
		"BENCHMARK_RESULTS.md": "text/markdown; charset=utf-8",
		"figures/a.PNG":        "image/png",
		"blob":                 "application/octet-stream",
	} {
		if got := ContentType(name); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", name, got, want)
		}
	}
}
