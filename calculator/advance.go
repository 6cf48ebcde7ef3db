package calculator

import (
	"math"

	log "github.com/sirupsen/logrus"

	"tes/model"
	"tes/scheme"
)

var inf = math.Inf(1)

// index 边界位置对应的节点下标
func (p *Phase) index(pos Position) int {
	if pos == First {
		return 0
	}
	return p.grid.Last()
}

// validate 检查相是否可以推进，在时间循环开始前调用
func (p *Phase) validate() error {
	component := "phase " + p.Name
	if p.substance == nil {
		return configError(component, "substance", "missing substance")
	}
	if p.domain == nil {
		return configError(component, "domain", "missing domain")
	}
	if !p.initialized {
		return configError(component, "T_init", "missing initial condition")
	}
	if p.diff == scheme.NoDiffusion && p.conv == scheme.NoConvection && len(p.sources) == 0 {
		return configError(component, "schemes", "no active scheme and no source term, nothing to advance")
	}
	if p.conv != scheme.NoConvection && p.massFlow == nil {
		return configError(component, "mdot", "advection selected but mass flow is not set")
	}
	return nil
}

// Advance 显式欧拉推进一步：
// 边界条件 -> 扩散 -> 对流 -> 源项 -> 由新的 h 重新计算物性
func (p *Phase) Advance(dt, t float64) error {
	if p.substance == nil || p.domain == nil || !p.initialized {
		return stateError(p.Name, "advance", "phase is not configured")
	}
	if p.diff == scheme.NoDiffusion && p.conv == scheme.NoConvection && len(p.sources) == 0 {
		return stateError(p.Name, "advance", "no active scheme and no source term")
	}
	if p.conv != scheme.NoConvection && p.massFlow == nil {
		return configError("phase "+p.Name, "mdot", "advection selected but mass flow is not set")
	}

	p.capture(t, dt/2)

	// 传导系数由当前的 k、cp、mdot 计算，零梯度边界也要用到
	if p.conv != scheme.NoConvection {
		p.updateMassFlow(t)
	}
	p.updateConductance()

	p.dh.Zero()
	fixed := p.applyFixedValue(t)
	p.applyZeroGradient()

	if p.diff == scheme.CentralDifference {
		scheme.CentralDifferenceFlux(p.temp, p.D, p.flux)
		p.accumulate(p.flux)
	}
	if p.conv == scheme.Upwind {
		scheme.UpwindFlux(p.temp, p.F, p.flux)
		p.accumulate(p.flux)
	}
	p.applySources(fixed)

	v := p.grid.V
	for j := 0; j < p.tracks; j++ {
		h, dh, rho := p.h.Row(j), p.dh.Row(j), p.rho.Row(j)
		for i := range h {
			h[i] += dh[i] * dt / (rho[i] * v[i])
		}
	}
	p.updateProperties()
	p.steps++
	return nil
}

func (p *Phase) accumulate(flux model.Field) {
	for i, f := range flux.Data {
		p.dh.Data[i] += f
	}
}

func (p *Phase) updateMassFlow(t float64) {
	v := p.massFlow.At(t)
	for i := range p.mdot.Data {
		p.mdot.Data[i] = v
	}
}

// updateConductance D = k·A/dx，F = mdot·cp
func (p *Phase) updateConductance() {
	g := p.grid
	for j := 0; j < p.tracks; j++ {
		k, cp, mdot := p.k.Row(j), p.cp.Row(j), p.mdot.Row(j)
		dw, de := p.D[0].Row(j), p.D[1].Row(j)
		fw, fe := p.F[0].Row(j), p.F[1].Row(j)
		for i := 0; i < g.N; i++ {
			if p.diff != scheme.NoDiffusion && g.Dx[i] > 0 {
				dw[i] = k[i] * g.AWest[i] / g.Dx[i]
				de[i] = k[i] * g.AEast[i] / g.Dx[i]
			} else {
				dw[i], de[i] = 0, 0
			}
			if p.conv != scheme.NoConvection {
				fw[i] = mdot[i] * cp[i]
				fe[i] = fw[i]
			} else {
				fw[i], fe[i] = 0, 0
			}
		}
	}
}

// applyFixedValue 直接设定边界节点的焓，返回被固定的节点
func (p *Phase) applyFixedValue(t float64) []int {
	var fixed []int
	for _, bc := range p.bcs {
		if bc.Kind != FixedValue {
			continue
		}
		i := p.index(bc.Position)
		h := p.substance.H(bc.ValueAt(t))
		for j := 0; j < p.tracks; j++ {
			p.h.Set(j, i, h)
			p.updateNode(j, i)
		}
		fixed = append(fixed, i)
	}
	return fixed
}

// applyZeroGradient 边界半控制体的能量平衡：只计入内侧控制面上的扩散与对流，
// 内侧控制面的传导系数取相邻节点一侧的值，与内部节点的通量大小相等方向相反。
// 外侧控制面没有导热，出流按迎风带走边界节点自身的焓
func (p *Phase) applyZeroGradient() {
	n := p.grid.N
	if n < 2 {
		return
	}
	diff := p.diff != scheme.NoDiffusion
	conv := p.conv != scheme.NoConvection
	for _, bc := range p.bcs {
		if bc.Kind != ZeroGradient {
			continue
		}
		for j := 0; j < p.tracks; j++ {
			T := p.temp.Row(j)
			dw, de := p.D[0].Row(j), p.D[1].Row(j)
			fw, fe := p.F[0].Row(j), p.F[1].Row(j)
			var q float64
			if bc.Position == First {
				if diff {
					q += dw[1] * (T[1] - T[0])
				}
				if conv {
					q += math.Max(0, -fw[1])*T[1] - math.Max(0, -fw[0])*T[0] +
						math.Max(0, fe[0])*T[0] - math.Max(0, fe[1])*T[0]
				}
				p.dh.Add(j, 0, q)
			} else {
				l := n - 1
				if diff {
					q += de[l-1] * (T[l-1] - T[l])
				}
				if conv {
					q += math.Max(0, fe[l-1])*T[l-1] - math.Max(0, fe[l])*T[l] +
						math.Max(0, -fw[l])*T[l] - math.Max(0, -fw[l-1])*T[l]
				}
				p.dh.Add(j, l, q)
			}
		}
	}
}

// applySources 固定温度的边界节点不受源项影响
func (p *Phase) applySources(fixed []int) {
	for _, s := range p.sources {
		for j := 0; j < p.tracks; j++ {
			T, R, Tinf, dh := p.temp.Row(j), s.R.Row(j), s.Tinf.Row(j), p.dh.Row(j)
			for i := range dh {
				if math.IsInf(R[i], 1) || contains(fixed, i) {
					continue
				}
				dh[i] += (Tinf[i] - T[i]) / R[i]
			}
		}
	}
}

// fixedNodes 第一类边界所在的节点
func (p *Phase) fixedNodes() []int {
	var fixed []int
	for _, bc := range p.bcs {
		if bc.Kind == FixedValue {
			fixed = append(fixed, p.index(bc.Position))
		}
	}
	return fixed
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// updateProperties 由 h 重新计算 T、ρ、cp、k
func (p *Phase) updateProperties() {
	for idx := range p.h.Data {
		h := p.h.Data[idx]
		p.temp.Data[idx] = p.substance.T(h)
		p.rho.Data[idx] = p.substance.Rho(h)
		p.cp.Data[idx] = p.substance.Cp(h)
		p.k.Data[idx] = p.substance.K(h)
	}
}

func (p *Phase) updateNode(j, i int) {
	h := p.h.At(j, i)
	p.temp.Set(j, i, p.substance.T(h))
	p.rho.Set(j, i, p.substance.Rho(h))
	p.cp.Set(j, i, p.substance.Cp(h))
	p.k.Set(j, i, p.substance.K(h))
}

// capture 当 t 与下一个输出时刻相差不超过 tol 时保存快照，已经错过的输出时刻被跳过
func (p *Phase) capture(t, tol float64) {
	for p.nextOutput < len(p.outputTimes) && p.outputTimes[p.nextOutput] < t-tol {
		p.logger().WithField("time", p.outputTimes[p.nextOutput]).Warn("output time is not on the time grid, skipped")
		p.nextOutput++
	}
	if p.nextOutput >= len(p.outputTimes) || math.Abs(p.outputTimes[p.nextOutput]-t) > tol {
		return
	}
	p.nextOutput++
	for _, name := range p.outputFields {
		f := p.field(name)
		p.snapshots = append(p.snapshots, model.Snapshot{
			Phase:  p.Name,
			Time:   t,
			Field:  name,
			Tracks: f.M,
			Nodes:  f.N,
			Data:   append([]float64(nil), f.Data...),
		})
	}
	p.logger().WithFields(log.Fields{
		"time":   t,
		"fields": p.outputFields,
	}).Debug("snapshot")
}

func (p *Phase) field(name string) model.Field {
	switch name {
	case "h":
		return p.h
	case "rho":
		return p.rho
	case "cp":
		return p.cp
	case "k":
		return p.k
	default:
		return p.temp
	}
}
