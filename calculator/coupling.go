package calculator

import (
	"fmt"
)

// Coupling 流体相与床层相之间的换热，H 为换热系数 W/(m² K)
type Coupling struct {
	Fluid *Phase
	Bed   *Phase
	H     float64
}

func checkCoupling(fluid, bed *Phase, hCoeff float64) error {
	if fluid == nil || bed == nil {
		return configError("coupling", "phase", "nil phase")
	}
	if fluid == bed {
		return configError("coupling", "bed", "a phase cannot be coupled with itself")
	}
	component := fmt.Sprintf("coupling %s/%s", fluid.Name, bed.Name)
	if fluid.domain == nil || bed.domain == nil {
		return configError(component, "domain", "both phases need a domain")
	}
	if fluid.tracks != 1 {
		return configError(component, "tracks", "fluid phase must have a single track")
	}
	if bed.tracks != fluid.domain.N {
		return configError(component, "tracks",
			fmt.Sprintf("bed has %d tracks, fluid has %d nodes", bed.tracks, fluid.domain.N))
	}
	if fluid.porosity >= 1 {
		return configError(component, "porosity", "fluid porosity must be below 1 to hold a bed")
	}
	if !(hCoeff >= 0) {
		return configError(component, "h", "must not be negative")
	}
	return nil
}

// ParticleCount 每个流体节点所代表的床层颗粒数：
// 流体控制体的几何体积中 (1-φ) 为固体，除以单个颗粒的体积
func ParticleCount(fluid, bed *Phase) []float64 {
	phi := fluid.porosity
	np := make([]float64, fluid.grid.N)
	for i, v := range fluid.grid.V {
		np[i] = (1 - phi) * (v / phi) / bed.domain.V0
	}
	return np
}

// Couple 在两相都完成本步推进后调用：
// Q_j = h·A·(T_f[j] - T_b[j, last])·dt，床层第 j 条轨道的外层节点吸收 Q_j，
// 流体节点 j 放出 Q_j 乘以该节点代表的颗粒数。
// 第一类边界上的流体节点温度保持给定值，只作为床层的热源
func Couple(fluid, bed *Phase, hCoeff, dt float64) error {
	if err := checkCoupling(fluid, bed, hCoeff); err != nil {
		return err
	}
	if fluid.steps == 0 {
		return stateError(fluid.Name, "couple", "phase has not been advanced")
	}
	if bed.steps == 0 {
		return stateError(bed.Name, "couple", "phase has not been advanced")
	}
	last := bed.grid.Last()
	area := bed.grid.AEast[last]
	vb := bed.grid.V[last]
	np := ParticleCount(fluid, bed)
	fixed := fluid.fixedNodes()
	for j := 0; j < fluid.grid.N; j++ {
		q := hCoeff * area * (fluid.temp.At(0, j) - bed.temp.At(j, last)) * dt
		bed.h.Add(j, last, q/(bed.rho.At(j, last)*vb))
		bed.updateNode(j, last)
		if contains(fixed, j) {
			continue
		}
		fluid.h.Add(0, j, -q*np[j]/(fluid.rho.At(0, j)*fluid.grid.V[j]))
		fluid.updateNode(0, j)
	}
	return nil
}

// SystemEnergy 流体与其中全部颗粒的总焓
func SystemEnergy(fluid, bed *Phase) float64 {
	e := fluid.TotalEnergy()
	for j, n := range ParticleCount(fluid, bed) {
		e += n * bed.TrackEnergy(j)
	}
	return e
}
