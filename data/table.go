// Copyright (c) 2024, The vesselfigs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package data

import (
	"fmt"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/goki/gi/gi"
)

// openTable opens one etable TSV record and verifies it has at least
// one row and all required columns.
func openTable(path string, reqCols []string) (*etable.Table, error) {
	dt := &etable.Table{}
	if err := dt.OpenCSV(gi.FileName(path), etable.Tab); err != nil {
		return nil, fmt.Errorf("data: open %s: %w", path, err)
	}
	if dt.Rows < 1 {
		return nil, fmt.Errorf("data: %s: no rows", path)
	}
	for _, cn := range reqCols {
		if _, err := dt.ColByNameTry(cn); err != nil {
			return nil, fmt.Errorf("data: %s: missing column %q", path, cn)
		}
	}
	return dt, nil
}

// cellFloats returns a copy of the tensor cell at (col, row) as a flat
// float64 slice.
func cellFloats(dt *etable.Table, col string, row int) []float64 {
	ct := dt.CellTensor(col, row)
	if ct == nil {
		return nil
	}
	fs := make([]float64, ct.Len())
	for i := range fs {
		fs[i] = ct.FloatVal1D(i)
	}
	return fs
}

// optCellFloats is cellFloats for an optional column: nil when absent.
func optCellFloats(dt *etable.Table, col string, row int) []float64 {
	if _, err := dt.ColByNameTry(col); err != nil {
		return nil
	}
	return cellFloats(dt, col, row)
}

// setCellFloats sets the tensor cell at (col, row) from a float64 slice.
func setCellFloats(dt *etable.Table, col string, row int, vals []float64) {
	tsr := etensor.NewFloat64([]int{len(vals)}, nil, nil)
	copy(tsr.Values, vals)
	dt.SetCellTensor(col, row, tsr)
}
