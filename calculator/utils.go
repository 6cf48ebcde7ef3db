package calculator

import (
	"math"

	"tes/scheme"
)

// 计算时间步长 ------------------------------------------------------------------------------------------------------------------

// maxTimeStep 显式格式的稳定性上限：每个节点 ρ·cp·V / (ΣD + |F| + Σ1/R)
func (p *Phase) maxTimeStep(t float64) float64 {
	if p.domain == nil || !p.initialized {
		return inf
	}
	var mdot float64
	if p.conv != scheme.NoConvection && p.massFlow != nil {
		mdot = math.Abs(p.massFlow.At(t))
	}
	g := p.grid
	min := inf
	for j := 0; j < p.tracks; j++ {
		for i := 0; i < g.N; i++ {
			var denominator float64
			if p.diff != scheme.NoDiffusion && g.Dx[i] > 0 {
				denominator += p.k.At(j, i) * (g.AWest[i] + g.AEast[i]) / g.Dx[i]
			}
			denominator += mdot * p.cp.At(j, i)
			for _, s := range p.sources {
				denominator += 1 / s.R.At(j, i)
			}
			if denominator == 0 {
				continue
			}
			dt := p.rho.At(j, i) * p.cp.At(j, i) * g.V[i] / denominator
			if min > dt {
				min = dt
			}
		}
	}
	return min
}

// MaxTimeStep 所有相在起始时刻的最小稳定时间步长，没有约束时返回 +Inf
func (s *Simulation) MaxTimeStep() float64 {
	min := inf
	for _, p := range s.phases {
		if dt := p.maxTimeStep(s.TStart); min > dt {
			min = dt
		}
	}
	return min
}

// 计算时间步长 ------------------------------------------------------------------------------------------------------------------
