// Copyright (c) 2024, The vesselfigs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"log"
	"math"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"

	"github.com/nvclab/vesselfigs/dsp"
)

// RunPower computes Welch power spectral densities of the normalized
// diameter and of the whisking envelope for one animal.  One row per
// trial.
func (pl *Pipeline) RunPower(animalID string) error {
	trls, err := pl.conditionedTrials(animalID)
	if err != nil {
		return err
	}
	sc := &pl.Config.Spectral
	var dt *etable.Table
	var nf int
	for _, tr := range trls {
		r := tr.MD.VesselRate
		seg := int(math.Round(sc.SegSec * r))
		freqs, dpsd, err := dsp.Welch(tr.NormDiam, r, seg, sc.Overlap)
		if err != nil {
			log.Printf("analysis: %s: power: %v, skipping trial", tr.MD.Stem(), err)
			continue
		}
		_, wpsd, err := dsp.Welch(tr.WhiskEnv, r, seg, sc.Overlap)
		if err != nil {
			log.Printf("analysis: %s: power: %v, skipping trial", tr.MD.Stem(), err)
			continue
		}
		if dt == nil {
			nf = len(freqs)
			dt = newPassTable("Power", etable.Schema{
				{"DiamPSD", etensor.FLOAT64, []int{nf}, nil},
				{"WhiskPSD", etensor.FLOAT64, []int{nf}, nil},
				{"Freqs", etensor.FLOAT64, []int{nf}, nil},
			})
		} else if len(freqs) != nf {
			log.Printf("analysis: %s: %d power bins differ from %d, skipping trial", tr.MD.Stem(), len(freqs), nf)
			continue
		}
		row := dt.Rows
		dt.AddRows(1)
		setIDCells(dt, row, tr)
		setVectorCell(dt, "DiamPSD", row, dpsd)
		setVectorCell(dt, "WhiskPSD", row, wpsd)
		setVectorCell(dt, "Freqs", row, freqs)
	}
	if dt == nil {
		dt = &etable.Table{}
		dt.SetMetaData("name", "Power")
	}
	return pl.Cmp.Add(animalID, Power, dt)
}
