// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import "strconv"

// A Scaler represents a scaling factor for a nanosecond value and the
// unit it is displayed in.
type Scaler struct {
	Prec   int     // Digits after the decimal point
	Factor float64 // Nanoseconds in one Unit
	Unit   string  // "ns", "µs" or "ms"
}

var (
	nanos  = Scaler{1, 1, "ns"}
	micros = Scaler{2, 1e3, "µs"}
	millis = Scaler{3, 1e6, "ms"}
)

// TimeScale returns the Scaler for displaying ns nanoseconds. Values
// under 1,000 stay in ns, values under 1,000,000 are shown in µs, and
// everything else in ms.
//
// To keep a median and its spread comparable, pick the Scaler from the
// median and format both values with it.
func TimeScale(ns float64) Scaler {
	switch {
	case ns < 1e3:
		return nanos
	case ns < 1e6:
		return micros
	}
	return millis
}

// Format formats val, in nanoseconds, in the scale's unit without
// appending the unit. For example, micros.Format(61938) returns
// "61.94".
func (s Scaler) Format(val float64) string {
	buf := make([]byte, 0, 20)
	buf = strconv.AppendFloat(buf, val/s.Factor, 'f', s.Prec, 64)
	return string(buf)
}

// FormatUnit is like Format, but appends a space and the unit.
func (s Scaler) FormatUnit(val float64) string {
	return s.Format(val) + " " + s.Unit
}

// FormatTime formats ns in its own scale, for example "61.94 µs".
func FormatTime(ns float64) string {
	return TimeScale(ns).FormatUnit(ns)
}
