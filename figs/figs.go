// Copyright (c) 2024, The vesselfigs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package figs renders the paper figures from accumulated analysis
// results: per-animal and grand-mean traces, summary scatter plots,
// spectra, the single-trial illustrative figure, and a montage sheet
// of everything rendered.
package figs

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/emer/etable/etable"
	"github.com/nvclab/vesselfigs/analysis"
)

// Config has the figure rendering options.
type Config struct {

	// OutDir is where rendered figures are written.
	OutDir string `yaml:"outDir" desc:"output directory for figures"`

	// Figures selects which paper figures to render; empty = all.
	Figures []string `yaml:"figures" desc:"figure names to render, empty for all"`

	// WidthIn, HeightIn are the single-panel figure size in inches.
	WidthIn  float64 `default:"6" yaml:"widthIn" desc:"figure width, inches"`
	HeightIn float64 `default:"4" yaml:"heightIn" desc:"figure height, inches"`

	// Montage also composes the rendered figures into one summary sheet.
	Montage bool `yaml:"montage" desc:"compose rendered figures into a summary sheet"`
}

// Defaults sets default values.
func (cfg *Config) Defaults() {
	cfg.OutDir = "figures"
	cfg.WidthIn = 6
	cfg.HeightIn = 4
}

// Generator renders figures from a completed analysis pipeline.
type Generator struct {

	// Config has the rendering options.
	Config Config `desc:"figure configuration"`

	// Pipe is the analysis pipeline holding the accumulated results.
	Pipe *analysis.Pipeline `view:"-" desc:"completed analysis pipeline"`

	// Saved collects the paths of rendered figures, for the montage.
	Saved []string `view:"-" desc:"rendered figure paths"`

	trialSummary  *etable.Table
	animalSummary *etable.Table
}

// NewGenerator returns a Generator over the given pipeline results.
func NewGenerator(cfg Config, pl *analysis.Pipeline) *Generator {
	if cfg.WidthIn == 0 || cfg.HeightIn == 0 {
		cfg.Defaults()
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "figures"
	}
	return &Generator{Config: cfg, Pipe: pl}
}

// RenderAll renders the selected paper figures (all eight by default)
// and, when configured, the montage sheet.  Figures whose analysis
// pass produced no results are skipped with a logged notice.
func (gn *Generator) RenderAll() error {
	if err := os.MkdirAll(gn.Config.OutDir, 0755); err != nil {
		return err
	}
	sel := map[string]bool{}
	for _, nm := range gn.Config.Figures {
		sel[nm] = true
	}
	for kind := Kind(0); kind < KindN; kind++ {
		if len(sel) > 0 && !sel[kind.String()] {
			continue
		}
		if err := gn.Render(kind); err != nil {
			return err
		}
	}
	if gn.Config.Montage {
		return gn.SummarySheet()
	}
	return nil
}

// Render renders one paper figure.
func (gn *Generator) Render(kind Kind) error {
	switch kind {
	case EvokedTraces:
		return gn.EvokedTraces()
	case EvokedScatter:
		return gn.EvokedScatter()
	case XCorrTraces:
		return gn.XCorrTraces()
	case XCorrLagSummary:
		return gn.XCorrLagSummary()
	case CoherenceSpectra:
		return gn.CoherenceSpectra()
	case CoherenceSummary:
		return gn.CoherenceSummary()
	case DiamPower:
		return gn.DiamPower()
	case WhiskPower:
		return gn.WhiskPower()
	}
	return fmt.Errorf("figs: unknown figure %d", kind)
}

// save writes a single-panel plot as PNG under OutDir and records it
// for the montage.
func (gn *Generator) save(p *plot.Plot, name string) error {
	fnm := filepath.Join(gn.Config.OutDir, name+".png")
	if err := p.Save(vg.Length(gn.Config.WidthIn)*vg.Inch, vg.Length(gn.Config.HeightIn)*vg.Inch, fnm); err != nil {
		return err
	}
	gn.Saved = append(gn.Saved, fnm)
	return nil
}

// summaries lazily computes the cross-pass trial and animal summary
// tables used by the scatter and summary figures.
func (gn *Generator) summaries() (*etable.Table, *etable.Table) {
	if gn.trialSummary == nil {
		gn.trialSummary = gn.Pipe.TrialSummary()
		gn.animalSummary = gn.Pipe.AnimalSummary(gn.trialSummary)
	}
	return gn.trialSummary, gn.animalSummary
}

// xyPairs zips x and y into plotter XYs, dropping NaN pairs.
func xyPairs(xs, ys []float64) plotter.XYs {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	xys := make(plotter.XYs, 0, n)
	for i := 0; i < n; i++ {
		if xs[i] != xs[i] || ys[i] != ys[i] { // NaN
			continue
		}
		xys = append(xys, plotter.XY{X: xs[i], Y: ys[i]})
	}
	return xys
}

// addAnimalLine adds one animal's trace with the pack palette color.
func addAnimalLine(p *plot.Plot, xs, ys []float64, ai int, name string) error {
	ln, err := plotter.NewLine(xyPairs(xs, ys))
	if err != nil {
		return err
	}
	ln.Color = plotutil.Color(ai)
	ln.Width = vg.Points(0.75)
	p.Add(ln)
	p.Legend.Add(name, ln)
	return nil
}

// addGrandMean adds the thick black grand-mean trace.
func addGrandMean(p *plot.Plot, xs, ys []float64) error {
	ln, err := plotter.NewLine(xyPairs(xs, ys))
	if err != nil {
		return err
	}
	ln.Color = color.Black
	ln.Width = vg.Points(2)
	p.Add(ln)
	p.Legend.Add("Mean", ln)
	return nil
}

// meanAcross averages equal-length per-animal traces, equal weighting
// per animal.
func meanAcross(traces [][]float64) []float64 {
	if len(traces) == 0 {
		return nil
	}
	gm := make([]float64, len(traces[0]))
	for _, tr := range traces {
		for i := range gm {
			gm[i] += tr[i]
		}
	}
	for i := range gm {
		gm[i] /= float64(len(traces))
	}
	return gm
}

// tracesFigure renders per-animal mean traces of a tensor column plus
// the grand mean: the shared layout of the evoked, cross-correlation
// and coherence trace figures.
func (gn *Generator) tracesFigure(kind analysis.Kind, col string, xAxis func(dt *etable.Table) ([]float64, error),
	title, xLab, yLab, name string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLab
	p.Y.Label.Text = yLab
	var xs []float64
	var traces [][]float64
	for ai, an := range gn.Pipe.Cmp.Animals {
		dt := gn.Pipe.Cmp.Table(an, kind)
		if dt == nil || dt.Rows == 0 {
			continue
		}
		if xs == nil {
			var err error
			xs, err = xAxis(dt)
			if err != nil {
				return err
			}
		}
		mt := analysis.MeanTensorCol(dt, col)
		if len(mt) != len(xs) {
			log.Printf("figs: %s: %s trace length %d != axis %d, skipping animal", an, name, len(mt), len(xs))
			continue
		}
		if err := addAnimalLine(p, xs, mt, ai, an); err != nil {
			return err
		}
		traces = append(traces, mt)
	}
	if len(traces) == 0 {
		log.Printf("figs: no %s results accumulated, skipping figure", name)
		return nil
	}
	if err := addGrandMean(p, xs, meanAcross(traces)); err != nil {
		return err
	}
	return gn.save(p, name)
}
