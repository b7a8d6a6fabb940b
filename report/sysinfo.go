// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"os"
	"os/exec"
	"strings"
)

// NoCPUInfo is reported when no CPU description can be found.
const NoCPUInfo = "CPU information not available"

var (
	lscpu       = func() ([]byte, error) { return exec.Command("lscpu").Output() }
	cpuinfoPath = "/proc/cpuinfo"
)

// CPUInfo describes the processor of this machine. It tries lscpu,
// then /proc/cpuinfo, and otherwise returns NoCPUInfo.
func CPUInfo() string {
	if out, err := lscpu(); err == nil {
		if s := strings.TrimSpace(string(out)); s != "" {
			return s
		}
	}
	if data, err := os.ReadFile(cpuinfoPath); err == nil {
		if s := strings.TrimSpace(string(data)); s != "" {
			return s
		}
	}
	return NoCPUInfo
}
