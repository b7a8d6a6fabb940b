// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package texttab

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Title converts an underscore-separated identifier to a title by
// replacing underscores with sep and upper-casing the first letter of
// every word. Title("sparse_dense", "-") returns "Sparse-Dense".
func Title(id, sep string) string {
	words := strings.Split(id, "_")
	for i, w := range words {
		r, n := utf8.DecodeRuneInString(w)
		if n > 0 {
			words[i] = string(unicode.ToUpper(r)) + w[n:]
		}
	}
	return strings.Join(words, sep)
}
