// Copyright (c) 2024, The vesselfigs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"fmt"
	"path/filepath"

	"github.com/emer/etable/etable"
	"github.com/goki/gi/gi"
)

// AnimalResults holds one animal's accumulated analysis tables, one
// per pass, each with one row per analyzed trial.
type AnimalResults struct {
	AnimalID string                 `desc:"animal subject ID"`
	Tables   map[Kind]*etable.Table `desc:"result table per analysis pass"`
}

// ComparisonData is the cross-animal accumulation: per-animal result
// tables keyed by animal ID, written once per (animal, pass) at
// analysis time and read at figure time.
type ComparisonData struct {
	Animals []string                  `desc:"animal IDs in analysis order"`
	Results map[string]*AnimalResults `desc:"per-animal results"`
}

// NewComparisonData returns a ComparisonData for the given animal list.
func NewComparisonData(animals []string) *ComparisonData {
	cd := &ComparisonData{
		Animals: append([]string{}, animals...),
		Results: make(map[string]*AnimalResults, len(animals)),
	}
	for _, an := range animals {
		cd.Results[an] = &AnimalResults{AnimalID: an, Tables: make(map[Kind]*etable.Table)}
	}
	return cd
}

// Add records one pass's result table for an animal.  Each (animal,
// pass) slot is write-once: a second add for the same slot is an error,
// preventing a rerun pass from silently shadowing accumulated results.
func (cd *ComparisonData) Add(animalID string, kind Kind, dt *etable.Table) error {
	ar, ok := cd.Results[animalID]
	if !ok {
		return fmt.Errorf("analysis: animal %s not in comparison set", animalID)
	}
	if _, ok := ar.Tables[kind]; ok {
		return fmt.Errorf("analysis: %s results for %s already recorded", kind, animalID)
	}
	ar.Tables[kind] = dt
	return nil
}

// Table returns the result table for (animal, pass), or nil when that
// pass has not run for the animal.
func (cd *ComparisonData) Table(animalID string, kind Kind) *etable.Table {
	ar, ok := cd.Results[animalID]
	if !ok {
		return nil
	}
	return ar.Tables[kind]
}

// SaveAll writes every accumulated table as a TSV file under dir,
// named {animal}_{pass}.tsv.
func (cd *ComparisonData) SaveAll(dir string) error {
	for _, an := range cd.Animals {
		ar := cd.Results[an]
		for kind, dt := range ar.Tables {
			fnm := filepath.Join(dir, fmt.Sprintf("%s_%s.tsv", an, kind))
			if err := dt.SaveCSV(gi.FileName(fnm), etable.Tab, etable.Headers); err != nil {
				return err
			}
		}
	}
	return nil
}
