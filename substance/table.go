package substance

import (
	"fmt"
)

// Table 分段线性物性表，比焓与温度均严格递增，区间外按端部线段外推
type Table struct {
	Enthalpy []float64 // 焓
	Temp     []float64 // 温度
	Lambda   []float64 // 导热系数
	Density  []float64 // 密度
	C        []float64 // 比热容
}

func NewTable(enthalpy, temp, lambda, density, c []float64) (*Table, error) {
	n := len(enthalpy)
	if n < 2 {
		return nil, fmt.Errorf("substance table: need at least 2 points, got %d", n)
	}
	for _, col := range [][]float64{temp, lambda, density, c} {
		if len(col) != n {
			return nil, fmt.Errorf("substance table: column length %d, want %d", len(col), n)
		}
	}
	for i := 1; i < n; i++ {
		if enthalpy[i] <= enthalpy[i-1] || temp[i] <= temp[i-1] {
			return nil, fmt.Errorf("substance table: point %d is not strictly increasing", i)
		}
	}
	return &Table{Enthalpy: enthalpy, Temp: temp, Lambda: lambda, Density: density, C: c}, nil
}

// 二分查找 x 所在区间的左端点，越界时返回端部区间
func segment(xs []float64, x float64) int {
	left, right := 0, len(xs)-2
	for left < right {
		m := left + (right-left+1)>>1
		if xs[m] <= x {
			left = m
		} else {
			right = m - 1
		}
	}
	return left
}

func lerp(xs, ys []float64, i int, x float64) float64 {
	return ys[i] + (ys[i+1]-ys[i])/(xs[i+1]-xs[i])*(x-xs[i])
}

func (t *Table) T(h float64) float64 {
	return lerp(t.Enthalpy, t.Temp, segment(t.Enthalpy, h), h)
}

func (t *Table) H(T float64) float64 {
	return lerp(t.Temp, t.Enthalpy, segment(t.Temp, T), T)
}

// 物性在表外保持端点值
func (t *Table) clamped(ys []float64, h float64) float64 {
	n := len(t.Enthalpy)
	if h <= t.Enthalpy[0] {
		return ys[0]
	}
	if h >= t.Enthalpy[n-1] {
		return ys[n-1]
	}
	return lerp(t.Enthalpy, ys, segment(t.Enthalpy, h), h)
}

func (t *Table) Rho(h float64) float64 { return t.clamped(t.Density, h) }
func (t *Table) Cp(h float64) float64  { return t.clamped(t.C, h) }
func (t *Table) K(h float64) float64   { return t.clamped(t.Lambda, h) }
