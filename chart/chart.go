// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart draws thread scaling charts.
//
// Each chart shows, for one case and operation, the median time of
// every parallel algorithm against its thread count, with a shaded
// band between the confidence bounds, and a dashed horizontal line
// for every sequential baseline of the same case.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/sparsebench/critreport/benchfmt"
	"github.com/sparsebench/critreport/internal/texttab"
)

// Image geometry.
const (
	width  = 10 * vg.Inch
	height = 6 * vg.Inch
	dpi    = 150
)

// A Figure is a chart written to disk.
type Figure struct {
	Case string
	Op   string
	File string // base name within the output directory
}

// A Generator writes chart images into Dir.
type Generator struct {
	Dir string

	// Warn, if non-nil, is called for each chart that could not be
	// drawn. Generation continues with the next chart.
	Warn func(err error)
}

// Generate draws one chart per Spec from Plan(results) and returns the
// figures that were written, in Plan order. It fails only if Dir
// cannot be created.
func (g *Generator) Generate(results []*benchfmt.Result) ([]Figure, error) {
	specs := Plan(results)
	if len(specs) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(g.Dir, 0777); err != nil {
		return nil, err
	}
	var figs []Figure
	for _, s := range specs {
		if err := g.write(s); err != nil {
			if g.Warn != nil {
				g.Warn(fmt.Errorf("chart %s/%s: %w", s.Case, s.Op, err))
			}
			continue
		}
		figs = append(figs, Figure{s.Case, s.Op, s.File()})
	}
	return figs, nil
}

func (g *Generator) write(s *Spec) error {
	p, err := Draw(s)
	if err != nil {
		return err
	}
	c := vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(width, height),
		vgimg.UseDPI(dpi), vgimg.UseBackgroundColor(color.White))}
	p.Draw(draw.New(c))

	f, err := os.Create(filepath.Join(g.Dir, s.File()))
	if err != nil {
		return err
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// errNoData is returned by Draw when a Spec has nothing that can be
// shown on a log axis.
var errNoData = errors.New("no positive timings")

// Draw lays out the chart for s. Times are plotted in milliseconds.
// Points with a non-positive time are left out, since the time axis is
// logarithmic.
func Draw(s *Spec) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s - %s Thread Scaling", s.Case, texttab.Title(s.Op, "-"))
	p.X.Label.Text = "Number of Threads"
	p.Y.Label.Text = "Time (ms)"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Legend.Top = true

	grid := plotter.NewGrid()
	grid.Vertical.Color = color.Gray{0xd0}
	grid.Horizontal.Color = color.Gray{0xd0}
	p.Add(grid)

	var yr yRange
	threads := make(map[int]bool)
	for _, alg := range s.Algorithms {
		for _, r := range s.Curves[alg] {
			threads[r.Threads] = true
		}
	}
	ticks := threadTicks(threads)
	var xmin, xmax float64
	if len(ticks) > 0 {
		xmin, xmax = ticks[0].Value, ticks[len(ticks)-1].Value
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)

	for i, b := range s.Baselines {
		y := ms(b.Median)
		if !(y > 0) {
			continue
		}
		l, err := plotter.NewLine(plotter.XYs{{X: xmin, Y: y}, {X: xmax, Y: y}})
		if err != nil {
			return nil, err
		}
		l.Color = baselineColor(i)
		l.Width = vg.Points(1)
		l.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
		p.Add(l)
		p.Legend.Add(b.Label()+" sequential", l)
		yr.add(y)
	}

	for i, alg := range s.Algorithms {
		var line, lo, hi plotter.XYs
		for _, r := range s.Curves[alg] {
			x, y := float64(r.Threads), ms(r.Median)
			if !(y > 0) {
				continue
			}
			line = append(line, plotter.XY{X: x, Y: y})
			yr.add(y)
			if l, h := ms(r.Lower), ms(r.Upper); l > 0 && h > 0 {
				lo = append(lo, plotter.XY{X: x, Y: l})
				hi = append(hi, plotter.XY{X: x, Y: h})
				yr.add(l)
				yr.add(h)
			}
		}
		if len(line) == 0 {
			continue
		}
		c := algorithmColor(alg, i)

		if len(lo) > 1 {
			band := append(plotter.XYs(nil), hi...)
			for j := len(lo) - 1; j >= 0; j-- {
				band = append(band, lo[j])
			}
			poly, err := plotter.NewPolygon(band)
			if err != nil {
				return nil, err
			}
			poly.Color = withAlpha(c, 0x33)
			poly.LineStyle.Width = 0
			p.Add(poly)
		}

		l, pts, err := plotter.NewLinePoints(line)
		if err != nil {
			return nil, err
		}
		l.Color = c
		l.Width = vg.Points(2)
		pts.Color = c
		pts.Shape = draw.CircleGlyph{}
		pts.Radius = vg.Points(3)
		p.Add(l, pts)
		p.Legend.Add(texttab.Title(alg, " "), l, pts)
	}

	if yr.empty() {
		return nil, errNoData
	}
	// Pad the axis so that a single value still spans a range.
	p.Y.Min, p.Y.Max = yr.min/1.25, yr.max*1.25
	return p, nil
}

// threadTicks returns one labeled tick per thread count, ascending.
func threadTicks(threads map[int]bool) []plot.Tick {
	ns := make([]int, 0, len(threads))
	for t := range threads {
		ns = append(ns, t)
	}
	sort.Ints(ns)
	ticks := make([]plot.Tick, len(ns))
	for i, t := range ns {
		ticks[i] = plot.Tick{Value: float64(t), Label: strconv.Itoa(t)}
	}
	return ticks
}

func ms(ns float64) float64 {
	return ns / 1e6
}

type yRange struct {
	min, max float64
	n        int
}

func (r *yRange) add(y float64) {
	if r.n == 0 || y < r.min {
		r.min = y
	}
	if r.n == 0 || y > r.max {
		r.max = y
	}
	r.n++
}

func (r *yRange) empty() bool {
	return r.n == 0
}

var (
	algPalette  = mustPalette("Set1", 9)
	basePalette = mustPalette("Dark2", 8)
)

func mustPalette(name string, n int) []color.Color {
	p, err := brewer.GetPalette(brewer.TypeQualitative, name, n)
	if err != nil {
		panic(err)
	}
	return p.Colors()
}

// algColors pins the well-known algorithms to fixed Set1 entries so
// their color is the same in every chart.
var algColors = map[string]int{
	"merge":                 0, // red
	"simple":                1, // blue
	"buffer_foreign":        2, // green
	benchfmt.OpDenseSparse: 3, // purple
}

func algorithmColor(alg string, i int) color.Color {
	if j, ok := algColors[alg]; ok {
		return algPalette[j]
	}
	return algPalette[(len(algColors)+i)%len(algPalette)]
}

func baselineColor(i int) color.Color {
	return basePalette[i%len(basePalette)]
}

func withAlpha(c color.Color, a uint8) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), a}
}
