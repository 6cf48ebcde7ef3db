package calculator

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// timeTable 随时间分段线性变化的量，超出表格范围时取端点值
type timeTable struct {
	rows [][2]float64
	pl   interp.PiecewiseLinear
}

func newTimeTable(rows [][2]float64) (*timeTable, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty table")
	}
	tt := &timeTable{rows: append([][2]float64(nil), rows...)}
	if len(rows) == 1 {
		return tt, nil
	}
	xs := make([]float64, len(rows))
	ys := make([]float64, len(rows))
	for i, r := range rows {
		if i > 0 && r[0] <= rows[i-1][0] {
			return nil, fmt.Errorf("table times must be strictly increasing at row %d", i)
		}
		xs[i], ys[i] = r[0], r[1]
	}
	if err := tt.pl.Fit(xs, ys); err != nil {
		return nil, err
	}
	return tt, nil
}

func (tt *timeTable) At(t float64) float64 {
	if len(tt.rows) == 1 {
		return tt.rows[0][1]
	}
	return tt.pl.Predict(t)
}
