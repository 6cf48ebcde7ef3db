// Package analytical 一维非稳态导热与活塞流的解析解，用于校核数值结果。
//
// θ = (T - T∞)/(T0 - T∞)，Bi = h·L/k，Fo = α·t/L²。
package analytical

import (
	"math"
)

// Terms 级数解取的项数
const Terms = 100

const (
	bisectIter = 200
	bracketEps = 1e-12
)

// bisect 在 [a, b] 上求单调递增函数 f 的零点
func bisect(f func(float64) float64, a, b float64) float64 {
	for i := 0; i < bisectIter; i++ {
		m := (a + b) / 2
		if m == a || m == b {
			break
		}
		if f(m) > 0 {
			b = m
		} else {
			a = m
		}
	}
	return (a + b) / 2
}

// WallEigenvalues λ·tan(λ) = Bi 的前 n 个正根
func WallEigenvalues(Bi float64, n int) []float64 {
	roots := make([]float64, n)
	for i := range roots {
		left := math.Pi * float64(i)
		right := left + math.Pi/2 - bracketEps
		roots[i] = bisect(func(x float64) float64 { return x*math.Tan(x) - Bi }, left, right)
	}
	return roots
}

// SphereEigenvalues 1 - λ·cot(λ) = Bi 的前 n 个正根
func SphereEigenvalues(Bi float64, n int) []float64 {
	roots := make([]float64, n)
	for i := range roots {
		left := math.Pi*float64(i) + bracketEps
		right := math.Pi*float64(i+1) - bracketEps
		roots[i] = bisect(func(x float64) float64 { return 1 - x/math.Tan(x) - Bi }, left, right)
	}
	return roots
}

// Wall 两侧对流冷却的平板，xs 为 x/L，0 为对称面
func Wall(Bi, Fo float64, xs []float64) []float64 {
	lambdas := WallEigenvalues(Bi, Terms)
	theta := make([]float64, len(xs))
	for k, x := range xs {
		for _, l := range lambdas {
			c := 4 * math.Sin(l) / (2*l + math.Sin(2*l))
			theta[k] += c * math.Exp(-l*l*Fo) * math.Cos(l*x)
		}
	}
	return theta
}

// Sphere 表面对流冷却的球，rs 为 r/R
func Sphere(Bi, Fo float64, rs []float64) []float64 {
	lambdas := SphereEigenvalues(Bi, Terms)
	theta := make([]float64, len(rs))
	for k, r := range rs {
		for _, l := range lambdas {
			c := 4 * (math.Sin(l) - l*math.Cos(l)) / (2*l - math.Sin(2*l))
			shape := 1.0
			if r != 0 {
				shape = math.Sin(l*r) / (l * r)
			}
			theta[k] += c * math.Exp(-l*l*Fo) * shape
		}
	}
	return theta
}

// Step 活塞流入口温度阶跃后的温度分布，ys 为 y/H，X 为无量纲时间 t·u/H。
// 已被入口流体置换的位置 θ = 0，其余 θ = 1
func Step(X float64, ys []float64) []float64 {
	theta := make([]float64, len(ys))
	for k, y := range ys {
		if y >= X {
			theta[k] = 1
		}
	}
	return theta
}
