// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchunit parses benchmark time measurements and formats
// nanosecond values in human-scaled units.
package benchunit

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// A FormatError reports a time string that is not a decimal
// magnitude followed by a known time unit.
type FormatError struct {
	Text string // the offending input
	Msg  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("bad time %q: %s", e.Text, e.Msg)
}

// unitFactors maps each recognized unit to its size in nanoseconds.
// Both the micro sign (U+00B5) and the Greek small mu (U+03BC) appear
// in tool output for microseconds.
var unitFactors = map[string]float64{
	"ns": 1,
	"us": 1e3,
	"µs": 1e3,
	"μs": 1e3,
	"ms": 1e6,
}

// ParseTime parses s, a decimal magnitude followed by optional
// whitespace and a unit of ns, us, µs or ms, and returns the value in
// nanoseconds. For example, ParseTime("29.783 µs") returns 29783.
//
// If s is not of this form, ParseTime returns a *FormatError.
func ParseTime(s string) (float64, error) {
	p := newParser(s)
	num, unit, ok := p.split()
	if !ok {
		return 0, &FormatError{s, p.msg}
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, &FormatError{s, "bad magnitude " + strconv.Quote(num)}
	}
	f, ok := unitFactors[unit]
	if !ok {
		return 0, &FormatError{s, "unknown unit " + strconv.Quote(unit)}
	}
	return v * f, nil
}

type parser struct {
	rest string // unparsed input
	msg  string // reason for the last failed split
}

func newParser(s string) *parser {
	return &parser{rest: strings.TrimSpace(s)}
}

// split separates the magnitude from the unit. The magnitude is a run
// of digits and at most one decimal point; the unit is everything
// after the whitespace that follows it.
func (p *parser) split() (num, unit string, ok bool) {
	end, dots := 0, 0
	for end < len(p.rest) {
		c := p.rest[end]
		if c == '.' {
			dots++
		} else if c < '0' || c > '9' {
			break
		}
		end++
	}
	switch {
	case end == 0:
		p.msg = "missing magnitude"
		return "", "", false
	case dots > 1:
		p.msg = "too many decimal points"
		return "", "", false
	}
	num = p.rest[:end]
	unit = strings.TrimLeftFunc(p.rest[end:], unicode.IsSpace)
	if unit == "" {
		p.msg = "missing unit"
		return "", "", false
	}
	return num, unit, true
}
