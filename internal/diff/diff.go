// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff describes differences between expected and actual
// test output.
package diff

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Diff returns a human-readable description of the differences
// between want and got, or "" if they are equal. If the "diff"
// command is available, it returns a unified diff labeled "want" and
// "got"; otherwise it quotes both strings.
func Diff(want, got string) string {
	if want == got {
		return ""
	}
	if _, err := exec.LookPath("diff"); err != nil {
		return fmt.Sprintf("want: %q\ngot:  %q", want, got)
	}
	d, err := os.MkdirTemp("", "critreport-diff")
	if err != nil {
		return err.Error()
	}
	defer os.RemoveAll(d)

	for name, s := range map[string]string{"want": want, "got": got} {
		if err := os.WriteFile(filepath.Join(d, name), []byte(s), 0666); err != nil {
			return err.Error()
		}
	}

	cmd := exec.Command("diff", "-Nu", "want", "got")
	cmd.Dir = d
	data, err := cmd.CombinedOutput()
	if len(data) > 0 {
		// diff exits with a non-zero status when the files don't
		// match. Ignore that failure as long as we get output.
		return string(data)
	}
	if err != nil {
		return err.Error()
	}
	return fmt.Sprintf("want: %q\ngot:  %q", want, got)
}
