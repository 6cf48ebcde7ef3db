package substance

import (
	"math"
)

const (
	newtonMaxIter = 50
	newtonTol     = 1e-12
)

// Poly 多项式系数，按升幂排列
type Poly []float64

// Eval 秦九韶算法求值
func (p Poly) Eval(x float64) float64 {
	var y float64
	for i := len(p) - 1; i >= 0; i-- {
		y = y*x + p[i]
	}
	return y
}

// Deriv 导函数
func (p Poly) Deriv() Poly {
	if len(p) < 2 {
		return Poly{0}
	}
	d := make(Poly, len(p)-1)
	for i := 1; i < len(p); i++ {
		d[i-1] = float64(i) * p[i]
	}
	return d
}

// Polynomial 以比焓为自变量的多项式拟合物性
type Polynomial struct {
	Temp Poly
	Dens Poly
	Cond Poly
	Heat Poly
	Visc Poly // 可为空
	Pran Poly // 可为空

	dTemp Poly
}

func NewPolynomial(temp, rho, cp, k, mu, pr Poly) *Polynomial {
	return &Polynomial{
		Temp:  temp,
		Dens:  rho,
		Heat:  cp,
		Cond:  k,
		Visc:  mu,
		Pran:  pr,
		dTemp: temp.Deriv(),
	}
}

func (p *Polynomial) T(h float64) float64   { return p.Temp.Eval(h) }
func (p *Polynomial) Rho(h float64) float64 { return p.Dens.Eval(h) }
func (p *Polynomial) Cp(h float64) float64  { return p.Heat.Eval(h) }
func (p *Polynomial) K(h float64) float64   { return p.Cond.Eval(h) }

func (p *Polynomial) Mu(h float64) float64 {
	if len(p.Visc) == 0 {
		return math.NaN()
	}
	return p.Visc.Eval(h)
}

func (p *Polynomial) Pr(h float64) float64 {
	if len(p.Pran) == 0 {
		return math.NaN()
	}
	return p.Pran.Eval(h)
}

// H 牛顿迭代求 T(h) 的反函数，保证 H(T(h)) == h
func (p *Polynomial) H(T float64) float64 {
	h := 0.0
	if len(p.Temp) > 1 && p.Temp[1] != 0 {
		h = (T - p.Temp[0]) / p.Temp[1]
	}
	for i := 0; i < newtonMaxIter; i++ {
		d := p.dTemp.Eval(h)
		if d == 0 {
			break
		}
		dh := (p.Temp.Eval(h) - T) / d
		h -= dh
		if math.Abs(dh) <= newtonTol*math.Max(1, math.Abs(h)) {
			break
		}
	}
	return h
}
