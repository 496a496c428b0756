package riskmodel

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Scaler standardizes features to zero mean and unit variance using
// statistics captured from the training set.
type Scaler struct {
	mean  []float64
	scale []float64
}

// FitScaler computes per-column mean and population standard deviation.
// A constant column gets scale 1 so that it maps to zero.
func FitScaler(x [][]float64) (*Scaler, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("fit scaler: empty matrix")
	}
	width := len(x[0])
	s := &Scaler{
		mean:  make([]float64, width),
		scale: make([]float64, width),
	}

	col := make([]float64, len(x))
	for j := 0; j < width; j++ {
		for i, row := range x {
			if len(row) != width {
				return nil, fmt.Errorf("fit scaler: row %d has %d columns, want %d", i, len(row), width)
			}
			col[i] = row[j]
		}
		mean, std := stat.PopMeanStdDev(col, nil)
		if std == 0 {
			std = 1
		}
		s.mean[j] = mean
		s.scale[j] = std
	}
	return s, nil
}

// Transform returns a standardized copy of row.
func (s *Scaler) Transform(row []float64) []float64 {
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - s.mean[j]) / s.scale[j]
	}
	return out
}

// TransformAll standardizes every row of x.
func (s *Scaler) TransformAll(x [][]float64) [][]float64 {
	out := make([][]float64, len(x))
	for i, row := range x {
		out[i] = s.Transform(row)
	}
	return out
}

// Mean returns a copy of the per-feature means.
func (s *Scaler) Mean() []float64 { return append([]float64(nil), s.mean...) }

// Scale returns a copy of the per-feature standard deviations.
func (s *Scaler) Scale() []float64 { return append([]float64(nil), s.scale...) }
