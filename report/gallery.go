// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bytes"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/google/safehtml/template"

	"github.com/sparsebench/critreport/benchfmt"
	"github.com/sparsebench/critreport/chart"
	"github.com/sparsebench/critreport/internal/texttab"
)

const galleryHTML = `<table><tr>
{{range .}}<td><img src="{{.Src}}" alt="{{.Alt}}" width="500"></td>
{{end}}</tr></table>
`

var galleryTmpl = template.Must(template.New("gallery").Parse(galleryHTML))

type galleryImage struct {
	Src string
	Alt string
}

// caseInfo is the shape of a case, for gallery headings.
type caseInfo struct {
	dims string
	nnz  int
}

// caseInfos returns the shape of every case with a known shape. Later
// results win, so the answer follows collection order.
func caseInfos(results []*benchfmt.Result) map[string]caseInfo {
	m := make(map[string]caseInfo)
	for _, r := range results {
		if r.Case != "" && r.Dims != "" && r.NNZ != 0 {
			m[r.Case] = caseInfo{r.Dims, r.NNZ}
		}
	}
	return m
}

// Density returns the percentage of non-zero entries in a matrix of
// the given dimensions, such as "48x48". ok is false if dims cannot
// be parsed or describes an empty matrix.
func Density(dims string, nnz int) (pct float64, ok bool) {
	rs, cs, found := strings.Cut(dims, "x")
	if !found {
		return 0, false
	}
	rows, err1 := strconv.Atoi(rs)
	cols, err2 := strconv.Atoi(cs)
	if err1 != nil || err2 != nil || rows <= 0 || cols <= 0 {
		return 0, false
	}
	return float64(nnz) / (float64(rows) * float64(cols)) * 100, true
}

func galleryHeading(name string, info caseInfo, ok bool) string {
	h := "### " + name
	if !ok {
		return h
	}
	if d, ok := Density(info.dims, info.nnz); ok {
		return h + fmt.Sprintf(" (%s, %s nnz, %.3f%% dense)", info.dims, FormatCount(info.nnz), d)
	}
	return h + fmt.Sprintf(" (%s, %s nnz)", info.dims, FormatCount(info.nnz))
}

func writeGallery(w *bytes.Buffer, results []*benchfmt.Result, opts Options) error {
	fmt.Fprintf(w, "## Thread Scaling Plots\n")

	byCase := make(map[string]map[string]chart.Figure)
	for _, f := range opts.Figures {
		if byCase[f.Case] == nil {
			byCase[f.Case] = make(map[string]chart.Figure)
		}
		byCase[f.Case][f.Op] = f
	}
	names := make([]string, 0, len(byCase))
	for name := range byCase {
		names = append(names, name)
	}
	sort.Strings(names)

	infos := caseInfos(results)
	for _, name := range names {
		info, ok := infos[name]
		fmt.Fprintf(w, "\n%s\n\n", galleryHeading(name, info, ok))

		var imgs []galleryImage
		for _, op := range chart.Ops {
			f, ok := byCase[name][op]
			if !ok {
				continue
			}
			imgs = append(imgs, galleryImage{
				Src: path.Join(opts.FigureDir, f.File),
				Alt: fmt.Sprintf("%s %s Thread Scaling", name, texttab.Title(op, "-")),
			})
		}
		if err := galleryTmpl.Execute(w, imgs); err != nil {
			return err
		}
	}
	return nil
}
