// Copyright (c) 2024, The vesselfigs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

// DefaultAnimals is the fixed set of animal subjects included in the
// paper.  Overridable in the config for partial reruns.
var DefaultAnimals = []string{"T72", "T73", "T74", "T75", "T76", "T80", "T81", "T82", "T83"}

// FiltConfig has the signal conditioning parameters.
type FiltConfig struct {

	// Order is the Butterworth filter order (even).
	Order int `default:"4" desc:"Butterworth low-pass filter order"`

	// LowPassFrac sets each behavioral stream's low-pass cutoff as a
	// fraction of that stream's sampling rate (1/30 of 150 Hz whisker
	// rate = 5 Hz).
	LowPassFrac float64 `default:"0.0333" desc:"cutoff as fraction of stream sampling rate"`

	// VesselCutoffHz is the fixed low-pass cutoff for vessel diameter
	// and for smoothing the whisking envelope, capped below Nyquist.
	VesselCutoffHz float64 `default:"1" desc:"vessel diameter low-pass cutoff, Hz"`
}

func (fc *FiltConfig) Defaults() {
	fc.Order = 4
	fc.LowPassFrac = 1.0 / 30
	fc.VesselCutoffHz = 1
}

// EvokedConfig has the peri-event alignment window.
type EvokedConfig struct {
	PreSec  float64 `default:"2" desc:"window before stimulation onset, sec"`
	PostSec float64 `default:"10" desc:"window after stimulation onset, sec"`
}

func (ec *EvokedConfig) Defaults() {
	ec.PreSec = 2
	ec.PostSec = 10
}

// XCorrConfig has the cross-correlation parameters.
type XCorrConfig struct {
	MaxLagSec float64 `default:"25" desc:"maximum lag between whisking and diameter, sec"`
}

func (xc *XCorrConfig) Defaults() {
	xc.MaxLagSec = 25
}

// SpectralConfig has the Welch estimation parameters shared by the
// coherence and power passes.
type SpectralConfig struct {
	SegSec  float64 `default:"100" desc:"Welch segment length, sec"`
	Overlap float64 `default:"0.5" desc:"fractional segment overlap"`
	BandLo  float64 `default:"0.05" desc:"low edge of the summary coherence band, Hz"`
	BandHi  float64 `default:"0.15" desc:"high edge of the summary coherence band, Hz"`
}

func (sc *SpectralConfig) Defaults() {
	sc.SegSec = 100
	sc.Overlap = 0.5
	sc.BandLo = 0.05
	sc.BandHi = 0.15
}

// Config has the full analysis pipeline configuration.
type Config struct {

	// DataDir is the processed data directory holding the MergedData,
	// RestingBaselines and SpecData records.
	DataDir string `yaml:"dataDir" desc:"processed data directory"`

	// Animals is the list of animal IDs to analyze.
	Animals []string `yaml:"animals" desc:"animal subject IDs"`

	// MergedFiles, when non-empty, is an explicit list of MergedData
	// paths to analyze instead of discovering them under DataDir.
	MergedFiles []string `yaml:"mergedFiles" desc:"explicit trial file selection"`

	// SaveTables also writes the accumulated comparison tables as TSV
	// files next to the figures.  Off by default: figures are the
	// pipeline's output.
	SaveTables bool `yaml:"saveTables" desc:"save comparison tables as TSV"`

	// Quiet suppresses the progress counter.
	Quiet bool `yaml:"quiet" desc:"suppress progress output"`

	Filt     FiltConfig     `yaml:"filt" desc:"signal conditioning parameters"`
	Evoked   EvokedConfig   `yaml:"evoked" desc:"evoked response window"`
	XCorr    XCorrConfig    `yaml:"xcorr" desc:"cross-correlation parameters"`
	Spectral SpectralConfig `yaml:"spectral" desc:"Welch parameters for coherence and power"`
}

// Defaults sets all default values.
func (cfg *Config) Defaults() {
	cfg.DataDir = "processed"
	cfg.Animals = append([]string{}, DefaultAnimals...)
	cfg.Filt.Defaults()
	cfg.Evoked.Defaults()
	cfg.XCorr.Defaults()
	cfg.Spectral.Defaults()
}
