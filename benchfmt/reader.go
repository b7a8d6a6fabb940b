// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/sparsebench/critreport/benchunit"
)

// A Reader reads benchmark results from the text log of a Criterion
// run.
//
// Its API is modeled on bufio.Scanner. Each result is an identifier
// line, "<group>/<function>/<parameter>", followed sooner or later by
// a line containing "time: [<lo> <unit> <median> <unit> <hi> <unit>]".
// Any other lines, such as warm-up progress and outlier reports, may
// appear in between and are ignored.
type Reader struct {
	s        *bufio.Scanner
	fileName string
	line     int
	err      error // current I/O error

	// pending is the identifier waiting for its time line, and
	// pendingLine is the line it was read from.
	pending     []string
	pendingLine int

	rec Record
}

// A FormatError reports a result whose timings or identifiers could
// not be parsed. The result is dropped but reading continues.
type FormatError struct {
	FileName string
	Line     int    // 0 if not read from a text file
	Name     string // benchmark identifier or JSON field
	Msg      string
	Err      error // underlying error, if any
}

func (e *FormatError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *FormatError) Error() string {
	var b strings.Builder
	if e.FileName != "" {
		b.WriteString(e.FileName)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
		b.WriteString(": ")
	}
	if e.Name != "" {
		fmt.Fprintf(&b, "%s: ", e.Name)
	}
	b.WriteString(e.Msg)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// withPos returns err with its position filled in if it is a
// *FormatError, or a new *FormatError wrapping err otherwise.
func withPos(err error, fileName string, line int, name string) *FormatError {
	fe, ok := err.(*FormatError)
	if !ok {
		return &FormatError{FileName: fileName, Line: line, Name: name, Msg: "bad identifier", Err: err}
	}
	fe2 := *fe
	fe2.FileName, fe2.Line = fileName, line
	if fe2.Name == "" {
		fe2.Name = name
	}
	return &fe2
}

// A Record is a single record read from benchmark artifacts. It is a
// *Result, a *FormatError or a *StructureError.
type Record interface {
	// Pos returns the position of this record as a file name and
	// a 1-based line number within that file. Line is 0 for
	// records that do not come from a text file.
	Pos() (fileName string, line int)
}

var _ Record = (*Result)(nil)
var _ Record = (*FormatError)(nil)
var _ Record = (*StructureError)(nil)

var noResult = &FormatError{Msg: "Scan has not been called"}

// NewReader constructs a Reader that parses the text log in r.
// fileName is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	if fileName == "" {
		fileName = "<unknown>"
	}
	return &Reader{s: bufio.NewScanner(r), fileName: fileName}
}

var (
	identRE = regexp.MustCompile(`^([^\s/]+)/([^\s/]+)/([^\s/]+)`)
	timeRE  = regexp.MustCompile(`time:\s*\[([^\]]*)\]`)
)

// Scan advances the reader to the next result and reports whether a
// result was read. The caller should use the Result method to get the
// result. If Scan reaches EOF or an I/O error occurs, it returns false,
// in which case the caller should use the Err method to check for
// errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	for r.s.Scan() {
		r.line++
		line := r.s.Text()
		if m := identRE.FindStringSubmatch(line); m != nil {
			r.pending = m[1:4]
			r.pendingLine = r.line
		}
		if r.pending == nil {
			continue
		}
		m := timeRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		id := r.pending
		r.pending = nil
		r.rec = r.parseResult(id[0], id[1], id[2], m[1])
		return true
	}
	if err := r.s.Err(); err != nil {
		r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.line, err)
	}
	return false
}

// parseResult decodes one identifier and its bracketed time triple.
func (r *Reader) parseResult(group, function, param, times string) Record {
	name := group + "/" + function + "/" + param
	f := strings.Fields(times)
	if len(f) != 6 {
		return &FormatError{r.fileName, r.pendingLine, name, fmt.Sprintf("want 3 timings, got %q", times), nil}
	}
	var vals [3]float64
	for i := range vals {
		v, err := benchunit.ParseTime(f[2*i] + " " + f[2*i+1])
		if err != nil {
			return &FormatError{r.fileName, r.pendingLine, name, "bad timing", err}
		}
		vals[i] = v
	}
	res, err := Decode(group, function, param)
	if err != nil {
		return withPos(err, r.fileName, r.pendingLine, name)
	}
	res.Lower, res.Median, res.Upper = vals[0], vals[1], vals[2]
	res.fileName, res.line = r.fileName, r.pendingLine
	return res
}

// Result returns the record that was just read by Scan. This is either
// a *Result or a *FormatError. Format errors are non-fatal, so the
// caller can continue to call Scan.
//
// Each *Result is freshly allocated and may be retained.
func (r *Reader) Result() Record {
	if r.rec == nil {
		return noResult
	}
	return r.rec
}

// Err returns the first non-EOF I/O error that was encountered by the
// Reader.
func (r *Reader) Err() error {
	return r.err
}
