// Copyright (c) 2024, The vesselfigs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figs

import (
	"log"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/emer/etable/etable"
	"github.com/nvclab/vesselfigs/analysis"
)

// EvokedTraces renders the mean evoked diameter response: one trace
// per animal plus the grand mean.
func (gn *Generator) EvokedTraces() error {
	return gn.tracesFigure(analysis.Evoked, "Trace", analysis.EvokedTime,
		"Stimulation-evoked vessel response", "Peri-stimulus time (s)", "Diameter (% change)",
		EvokedTraces.String())
}

// EvokedScatter renders evoked peak percent change against time to
// peak, one point per trial, colored per animal.
func (gn *Generator) EvokedScatter() error {
	ts, _ := gn.summaries()
	if ts.Rows == 0 {
		log.Printf("figs: no trial summary rows, skipping %s", EvokedScatter)
		return nil
	}
	p := plot.New()
	p.Title.Text = "Evoked response peak vs latency"
	p.X.Label.Text = "Time to peak (s)"
	p.Y.Label.Text = "Peak diameter (% change)"
	for ai, an := range gn.Pipe.Cmp.Animals {
		var xs, ys []float64
		for ri := 0; ri < ts.Rows; ri++ {
			if ts.CellString("Animal", ri) != an {
				continue
			}
			xs = append(xs, ts.CellFloat("EvokedTimeToPeakSec", ri))
			ys = append(ys, ts.CellFloat("EvokedPeak", ri))
		}
		pts := xyPairs(xs, ys)
		if len(pts) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		sc.GlyphStyle.Color = plotutil.Color(ai)
		sc.GlyphStyle.Radius = vg.Points(2.5)
		p.Add(sc)
		p.Legend.Add(an, sc)
	}
	return gn.save(p, EvokedScatter.String())
}

// XCorrTraces renders the whisking/diameter cross-correlation traces
// per animal with the grand mean.
func (gn *Generator) XCorrTraces() error {
	return gn.tracesFigure(analysis.XCorr, "Corr", analysis.XCorrLags,
		"Whisking / diameter cross-correlation", "Lag (s)", "Correlation",
		XCorrTraces.String())
}

// XCorrLagSummary renders the peak cross-correlation lag per animal,
// mean and SEM, with the across-animal mean.
func (gn *Generator) XCorrLagSummary() error {
	return gn.summaryFigure("XCorrLagSec", "Peak cross-correlation lag", "Lag (s)", XCorrLagSummary.String())
}

// CoherenceSpectra renders the whisking/diameter coherence spectra per
// animal with the grand mean.
func (gn *Generator) CoherenceSpectra() error {
	return gn.tracesFigure(analysis.Coherence, "Coh", freqAxis,
		"Whisking / diameter coherence", "Frequency (Hz)", "Coherence",
		CoherenceSpectra.String())
}

// CoherenceSummary renders the band-averaged coherence per animal,
// mean and SEM.
func (gn *Generator) CoherenceSummary() error {
	return gn.summaryFigure("BandCoh", "Band-averaged coherence", "Coherence", CoherenceSummary.String())
}

// DiamPower renders the vessel diameter power spectra, log-log.
func (gn *Generator) DiamPower() error {
	return gn.powerFigure("DiamPSD", "Vessel diameter power", "PSD (%^2/Hz)", DiamPower.String())
}

// WhiskPower renders the whisking envelope power spectra, log-log.
func (gn *Generator) WhiskPower() error {
	return gn.powerFigure("WhiskPSD", "Whisking envelope power", "PSD (a.u./Hz)", WhiskPower.String())
}

// freqAxis reads the per-row frequency axis tensor shared by the
// spectral pass tables.
func freqAxis(dt *etable.Table) ([]float64, error) {
	return analysis.CellVector(dt, "Freqs", 0), nil
}

// summaryFigure renders one per-animal scalar statistic as points with
// SEM error bars, X positions by animal index.
func (gn *Generator) summaryFigure(col, title, yLab, name string) error {
	_, as := gn.summaries()
	if as == nil || as.Rows == 0 {
		log.Printf("figs: no animal summary rows, skipping %s", name)
		return nil
	}
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLab
	var xys plotter.XYs
	var yerrs plotter.YErrors
	var ticks []plot.Tick
	xi := 0
	for _, an := range gn.Pipe.Cmp.Animals {
		ri := summaryRow(as, an)
		if ri < 0 {
			continue
		}
		mean := as.CellFloat(col+":Mean", ri)
		sem := as.CellFloat(col+":Sem", ri)
		if math.IsNaN(mean) {
			continue
		}
		xys = append(xys, plotter.XY{X: float64(xi), Y: mean})
		yerrs = append(yerrs, struct{ Low, High float64 }{sem, sem})
		ticks = append(ticks, plot.Tick{Value: float64(xi), Label: an})
		xi++
	}
	if len(xys) == 0 {
		log.Printf("figs: no %s values accumulated, skipping figure", col)
		return nil
	}
	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	sc.GlyphStyle.Radius = vg.Points(3)
	bars, err := plotter.NewYErrorBars(struct {
		plotter.XYs
		plotter.YErrors
	}{xys, yerrs})
	if err != nil {
		return err
	}
	p.Add(sc, bars)
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Min = -0.5
	p.X.Max = float64(len(xys)) - 0.5
	return gn.save(p, name)
}

// summaryRow finds the animal's row in the aggregated summary table.
func summaryRow(as *etable.Table, animal string) int {
	for ri := 0; ri < as.Rows; ri++ {
		if as.CellString("Animal", ri) == animal {
			return ri
		}
	}
	return -1
}

// powerFigure renders per-animal mean PSDs on log-log axes, dropping
// the zero-frequency bin.
func (gn *Generator) powerFigure(col, title, yLab, name string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Frequency (Hz)"
	p.Y.Label.Text = yLab
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	var traces [][]float64
	var xs []float64
	for ai, an := range gn.Pipe.Cmp.Animals {
		dt := gn.Pipe.Cmp.Table(an, analysis.Power)
		if dt == nil || dt.Rows == 0 {
			continue
		}
		freqs := analysis.CellVector(dt, "Freqs", 0)
		psd := analysis.MeanTensorCol(dt, col)
		fp, pp := dropNonPositive(freqs, psd)
		if xs == nil {
			xs = fp
		}
		if len(pp) != len(xs) {
			log.Printf("figs: %s: %s spectrum length %d != axis %d, skipping animal", an, name, len(pp), len(xs))
			continue
		}
		if err := addAnimalLine(p, xs, pp, ai, an); err != nil {
			return err
		}
		traces = append(traces, pp)
	}
	if len(traces) == 0 {
		log.Printf("figs: no power results accumulated, skipping figure")
		return nil
	}
	if err := addGrandMean(p, xs, meanAcross(traces)); err != nil {
		return err
	}
	return gn.save(p, name)
}

// dropNonPositive filters out bins unusable on log axes.
func dropNonPositive(freqs, vals []float64) ([]float64, []float64) {
	var fo, vo []float64
	for i := range freqs {
		if i >= len(vals) {
			break
		}
		if freqs[i] <= 0 || vals[i] <= 0 {
			continue
		}
		fo = append(fo, freqs[i])
		vo = append(vo, vals[i])
	}
	return fo, vo
}
