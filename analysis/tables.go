// Copyright (c) 2024, The vesselfigs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"fmt"
	"strconv"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
)

// LogPrec is precision for saving float values in result tables.
const LogPrec = 6

// idCols are the leading identity columns shared by every pass table.
var idCols = etable.Schema{
	{"AnimalID", etensor.STRING, nil, nil},
	{"VesselID", etensor.STRING, nil, nil},
	{"FileID", etensor.STRING, nil, nil},
	{"Date", etensor.STRING, nil, nil},
}

// newPassTable returns an empty pass table with identity columns, the
// given extra schema, and standard metadata.
func newPassTable(name string, extra etable.Schema) *etable.Table {
	dt := &etable.Table{}
	dt.SetMetaData("name", name)
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", strconv.Itoa(LogPrec))
	sch := append(etable.Schema{}, idCols...)
	sch = append(sch, extra...)
	dt.SetFromSchema(sch, 0)
	return dt
}

// setIDCells fills the identity columns for one row.
func setIDCells(dt *etable.Table, row int, tr *Trial) {
	dt.SetCellString("AnimalID", row, tr.MD.AnimalID)
	dt.SetCellString("VesselID", row, tr.MD.VesselID)
	dt.SetCellString("FileID", row, tr.MD.FileID)
	dt.SetCellString("Date", row, tr.MD.Date)
}

// setMetaFloat stores a float parameter in table metadata.
func setMetaFloat(dt *etable.Table, key string, val float64) {
	dt.SetMetaData(key, strconv.FormatFloat(val, 'g', -1, 64))
}

// MetaFloat reads a float parameter from table metadata.
func MetaFloat(dt *etable.Table, key string) (float64, error) {
	s, ok := dt.MetaData[key]
	if !ok {
		return 0, fmt.Errorf("analysis: table %s missing metadata %q", dt.MetaData["name"], key)
	}
	return strconv.ParseFloat(s, 64)
}

// CellVector returns a copy of the tensor cell (col, row) as a slice.
func CellVector(dt *etable.Table, col string, row int) []float64 {
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

// MeanTensorCol averages a tensor column element-wise across all rows,
// e.g. the grand mean evoked trace for an animal.  Nil for an empty
// table.
func MeanTensorCol(dt *etable.Table, col string) []float64 {
	if dt == nil || dt.Rows == 0 {
		return nil
	}
	sum := CellVector(dt, col, 0)
	for ri := 1; ri < dt.Rows; ri++ {
		v := CellVector(dt, col, ri)
		for i := range sum {
			sum[i] += v[i]
		}
	}
	for i := range sum {
		sum[i] /= float64(dt.Rows)
	}
	return sum
}

// setVectorCell writes a slice into the tensor cell (col, row).
func setVectorCell(dt *etable.Table, col string, row int, vals []float64) {
	tsr := etensor.NewFloat64([]int{len(vals)}, nil, nil)
	copy(tsr.Values, vals)
	dt.SetCellTensor(col, row, tsr)
}
