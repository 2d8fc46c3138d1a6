// Copyright (c) 2024, The vesselfigs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package analysis runs the four analysis passes (evoked response,
// cross-correlation, coherence, power spectrum) over the fixed animal
// list, accumulating per-animal result tables into ComparisonData for
// the figure generators.
package analysis

import (
	"fmt"

	"github.com/nvclab/vesselfigs/data"
	"github.com/nvclab/vesselfigs/dsp"
)

// Pipeline owns the analysis configuration and accumulated results.
// All functionality is methods on this struct, which runs strictly
// sequentially: load trial, condition signals, accumulate, next.
type Pipeline struct {

	// Config has all analysis parameters.
	Config Config `desc:"analysis configuration"`

	// Cmp accumulates the per-animal results across passes.
	Cmp *ComparisonData `view:"no-inline" desc:"accumulated comparison data"`

	// Baselines caches each animal's resting baselines.
	Baselines map[string]*data.RestingBaselines `view:"-" desc:"per-animal resting baselines"`

	steps, totalSteps int
}

// New returns a Pipeline with the given config, defaults applied for
// zero values.
func New(cfg Config) *Pipeline {
	if len(cfg.Animals) == 0 {
		cfg.Animals = append([]string{}, DefaultAnimals...)
	}
	if cfg.Filt.Order == 0 {
		cfg.Filt.Defaults()
	}
	if cfg.Evoked.PostSec == 0 {
		cfg.Evoked.Defaults()
	}
	if cfg.XCorr.MaxLagSec == 0 {
		cfg.XCorr.Defaults()
	}
	if cfg.Spectral.SegSec == 0 {
		cfg.Spectral.Defaults()
	}
	return &Pipeline{
		Config:    cfg,
		Cmp:       NewComparisonData(cfg.Animals),
		Baselines: make(map[string]*data.RestingBaselines),
	}
}

// Run executes all four passes for every animal in order.
func (pl *Pipeline) Run() error {
	pl.steps = 0
	pl.totalSteps = len(pl.Config.Animals) * int(KindN)
	for _, an := range pl.Config.Animals {
		for kind := Kind(0); kind < KindN; kind++ {
			if err := pl.RunPass(an, kind); err != nil {
				return err
			}
			pl.step()
		}
	}
	if !pl.Config.Quiet {
		fmt.Println()
	}
	return nil
}

// RunPass runs one analysis pass for one animal.
func (pl *Pipeline) RunPass(animalID string, kind Kind) error {
	switch kind {
	case Evoked:
		return pl.RunEvoked(animalID)
	case XCorr:
		return pl.RunXCorr(animalID)
	case Coherence:
		return pl.RunCoherence(animalID)
	case Power:
		return pl.RunPower(animalID)
	}
	return fmt.Errorf("analysis: unknown pass %d", kind)
}

// step advances the passive progress counter.  Display only: it has no
// control-flow effect.
func (pl *Pipeline) step() {
	pl.steps++
	if pl.Config.Quiet || pl.totalSteps == 0 {
		return
	}
	fmt.Printf("\rAnalyzing: %3.0f%%", 100*float64(pl.steps)/float64(pl.totalSteps))
}

// mergedFiles returns the MergedData paths for one animal: the explicit
// config selection when present, otherwise discovery under DataDir.
func (pl *Pipeline) mergedFiles(animalID string) ([]string, error) {
	if len(pl.Config.MergedFiles) > 0 {
		var fls []string
		for _, f := range pl.Config.MergedFiles {
			fk, _, err := data.ParseStem(f)
			if err != nil {
				return nil, err
			}
			if fk.AnimalID == animalID {
				fls = append(fls, f)
			}
		}
		return fls, nil
	}
	return data.FindMergedData(pl.Config.DataDir, animalID)
}

// baselines returns the cached resting baselines for one animal,
// loading on first use.
func (pl *Pipeline) baselines(animalID string) (*data.RestingBaselines, error) {
	if rb, ok := pl.Baselines[animalID]; ok {
		return rb, nil
	}
	rb, err := data.OpenRestingBaselines(data.BaselinesPath(pl.Config.DataDir, animalID))
	if err != nil {
		return nil, err
	}
	pl.Baselines[animalID] = rb
	return rb, nil
}

// Trial is one conditioned trial: filtered and normalized streams ready
// for the analysis passes.
type Trial struct {
	MD       *data.MergedData `desc:"source record"`
	NormDiam []float64        `desc:"low-passed diameter, percent change from resting baseline"`
	WhiskEnv []float64        `desc:"whisking envelope at the vessel rate"`
}

// Condition filters and normalizes one trial.  Vessel diameter is
// normalized to percent change against the trial day's resting baseline
// and low-passed at the configured vessel cutoff; the whisking envelope
// is the rectified, low-passed whisker angle velocity resampled down to
// the vessel rate.
func (pl *Pipeline) Condition(md *data.MergedData) (*Trial, error) {
	rb, err := pl.baselines(md.AnimalID)
	if err != nil {
		return nil, err
	}
	bl, err := rb.Baseline(md.Date, md.VesselID)
	if err != nil {
		return nil, err
	}
	nrm, err := data.NormalizeDiameter(md.VesselDiam, bl)
	if err != nil {
		return nil, err
	}
	fc := &pl.Config.Filt
	vlp, err := dsp.Butterworth(fc.Order, capCutoff(fc.VesselCutoffHz, md.VesselRate), md.VesselRate)
	if err != nil {
		return nil, err
	}
	wlp, err := dsp.Butterworth(fc.Order, fc.LowPassFrac*md.WhiskerRate, md.WhiskerRate)
	if err != nil {
		return nil, err
	}
	elp, err := dsp.Butterworth(fc.Order, capCutoff(fc.VesselCutoffHz, md.WhiskerRate), md.WhiskerRate)
	if err != nil {
		return nil, err
	}
	wa := wlp.FiltFilt(md.WhiskerAngle)
	env := dsp.AbsEnvelope(dsp.Velocity(wa, md.WhiskerRate))
	env = elp.FiltFilt(env)
	env, err = dsp.Resample(env, md.WhiskerRate, md.VesselRate)
	if err != nil {
		return nil, err
	}
	// resampling can disagree with the diameter length by a sample
	nd := vlp.FiltFilt(nrm)
	if len(env) > len(nd) {
		env = env[:len(nd)]
	} else if len(env) < len(nd) {
		nd = nd[:len(env)]
	}
	return &Trial{MD: md, NormDiam: nd, WhiskEnv: env}, nil
}

// capCutoff keeps a fixed cutoff below the Nyquist frequency of a
// stream so low-rate streams stay designable.
func capCutoff(cutoffHz, rate float64) float64 {
	nyq := rate / 2
	if cutoffHz >= nyq {
		return 0.9 * nyq
	}
	return cutoffHz
}

// conditionedTrials loads and conditions every trial for one animal,
// logging and skipping trials that fail to load.
func (pl *Pipeline) conditionedTrials(animalID string) ([]*Trial, error) {
	fls, err := pl.mergedFiles(animalID)
	if err != nil {
		return nil, err
	}
	var trls []*Trial
	for _, f := range fls {
		md, err := data.OpenMergedData(f)
		if err != nil {
			return nil, err
		}
		tr, err := pl.Condition(md)
		if err != nil {
			return nil, err
		}
		trls = append(trls, tr)
	}
	return trls, nil
}
