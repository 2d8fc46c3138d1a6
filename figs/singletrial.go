// Copyright (c) 2024, The vesselfigs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figs

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/nvclab/vesselfigs/data"
	"github.com/nvclab/vesselfigs/dsp"
)

// SingleTrial renders the illustrative four-panel figure for one trial:
// filtered whisker angle, filtered force sensor, normalized diameter
// with stimulation markers, and the LFP spectrogram heatmap, all
// sharing x-limits equal to the trial duration.  A missing SpecData
// file degrades to three panels with a logged notice.
func (gn *Generator) SingleTrial(mergedPath string) error {
	md, err := data.OpenMergedData(mergedPath)
	if err != nil {
		return err
	}
	dir := filepath.Dir(mergedPath)
	rb, err := data.OpenRestingBaselines(data.BaselinesPath(dir, md.AnimalID))
	if err != nil {
		return err
	}
	bl, err := rb.Baseline(md.Date, md.VesselID)
	if err != nil {
		return err
	}
	fc := &gn.Pipe.Config.Filt

	wlp, err := dsp.Butterworth(fc.Order, fc.LowPassFrac*md.WhiskerRate, md.WhiskerRate)
	if err != nil {
		return err
	}
	flp, err := dsp.Butterworth(fc.Order, fc.LowPassFrac*md.ForceRate, md.ForceRate)
	if err != nil {
		return err
	}
	vcut := fc.VesselCutoffHz
	if vcut >= md.VesselRate/2 {
		vcut = 0.45 * md.VesselRate
	}
	vlp, err := dsp.Butterworth(fc.Order, vcut, md.VesselRate)
	if err != nil {
		return err
	}
	whisk := wlp.FiltFilt(md.WhiskerAngle)
	force := flp.FiltFilt(md.ForceSensor)
	nrm, err := data.NormalizeDiameter(md.VesselDiam, bl)
	if err != nil {
		return err
	}
	diam := vlp.FiltFilt(nrm)

	var sd *data.SpecData
	specPath := data.SpecPath(dir, md.FileKey)
	if _, serr := os.Stat(specPath); serr == nil {
		sd, err = data.OpenSpecData(specPath)
		if err != nil {
			return err
		}
	} else {
		log.Printf("figs: no SpecData for %s, rendering without spectrogram panel", md.Stem())
	}

	panels := []*plot.Plot{
		tracePanel("Whisker angle", "Angle (deg)", whisk, md.WhiskerRate, md.TrialDuration),
		tracePanel("Force sensor", "Force (V)", force, md.ForceRate, md.TrialDuration),
		diamPanel(diam, md, bl),
	}
	if sd != nil {
		panels = append(panels, specPanel(sd, md.TrialDuration))
	}
	panels[len(panels)-1].X.Label.Text = "Time (s)"

	fnm := filepath.Join(gn.Config.OutDir, md.Stem()+"_SingleTrial.png")
	if err := savePanels(panels, vg.Length(gn.Config.WidthIn)*vg.Inch,
		vg.Length(gn.Config.HeightIn)*vg.Inch*vg.Length(len(panels))/2, fnm); err != nil {
		return err
	}
	gn.Saved = append(gn.Saved, fnm)
	return nil
}

// tracePanel plots one uniformly sampled stream over the trial.
func tracePanel(title, yLab string, x []float64, rate, dur float64) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLab
	p.X.Min, p.X.Max = 0, dur
	xys := make(plotter.XYs, len(x))
	for i, v := range x {
		xys[i] = plotter.XY{X: float64(i) / rate, Y: v}
	}
	ln, err := plotter.NewLine(xys)
	if err == nil {
		ln.Width = vg.Points(0.5)
		p.Add(ln)
	}
	return p
}

// diamPanel plots the normalized diameter with stimulation markers.
func diamPanel(diam []float64, md *data.MergedData, bl data.Baseline) *plot.Plot {
	p := tracePanel(fmt.Sprintf("Vessel %s diameter (baseline %.1f um)", md.VesselID, bl.DiamMean),
		"Diameter (% change)", diam, md.VesselRate, md.TrialDuration)
	if len(md.StimTimes) == 0 {
		return p
	}
	lo, hi := diam[0], diam[0]
	for _, v := range diam {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	for _, st := range md.StimTimes {
		mk, err := plotter.NewLine(plotter.XYs{{X: st, Y: lo}, {X: st, Y: hi}})
		if err != nil {
			continue
		}
		mk.Dashes = []vg.Length{vg.Points(3), vg.Points(2)}
		p.Add(mk)
	}
	return p
}

// specPanel renders the LFP spectrogram heatmap.
func specPanel(sd *data.SpecData, dur float64) *plot.Plot {
	p := plot.New()
	p.Title.Text = "LFP spectrogram"
	p.Y.Label.Text = "Frequency (Hz)"
	p.X.Min, p.X.Max = 0, dur
	hm := plotter.NewHeatMap(SpecGrid{SD: sd}, moreland.SmoothBlueRed().Palette(255))
	p.Add(hm)
	return p
}

// savePanels draws vertically stacked panels into one PNG.
func savePanels(panels []*plot.Plot, w, h vg.Length, fnm string) error {
	img := vgimg.New(w, h)
	dc := draw.New(img)
	rows := make([][]*plot.Plot, len(panels))
	for i, p := range panels {
		rows[i] = []*plot.Plot{p}
	}
	t := draw.Tiles{Rows: len(panels), Cols: 1, PadX: vg.Points(4), PadY: vg.Points(4)}
	cvs := plot.Align(rows, t, dc)
	for i, p := range panels {
		p.Draw(cvs[i][0])
	}
	f, err := os.Create(fnm)
	if err != nil {
		return err
	}
	defer f.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return err
	}
	return nil
}
