// Package scheme 显式通量格式，边界节点的值由边界条件负责，这里保持为 0
package scheme

import (
	"math"
	"strings"

	"tes/model"
)

// Diffusion 扩散格式
type Diffusion int

const (
	NoDiffusion Diffusion = iota
	CentralDifference
)

// Convection 对流格式
type Convection int

const (
	NoConvection Convection = iota
	Upwind
)

var diffusionNames = [...]string{NoDiffusion: "none", CentralDifference: "central_difference"}
var convectionNames = [...]string{NoConvection: "none", Upwind: "upwind"}

func (d Diffusion) String() string  { return diffusionNames[d] }
func (c Convection) String() string { return convectionNames[c] }

func ParseDiffusion(name string) (Diffusion, error) {
	for i, n := range diffusionNames {
		if strings.EqualFold(n, name) {
			return Diffusion(i), nil
		}
	}
	return 0, &model.ConfigurationError{
		Component: "diffusion scheme",
		Key:       name,
		Reason:    "unknown scheme",
		Valid:     diffusionNames[:],
	}
}

func ParseConvection(name string) (Convection, error) {
	for i, n := range convectionNames {
		if strings.EqualFold(n, name) {
			return Convection(i), nil
		}
	}
	return 0, &model.ConfigurationError{
		Component: "convection scheme",
		Key:       name,
		Reason:    "unknown scheme",
		Valid:     convectionNames[:],
	}
}

// CentralDifferenceFlux 二阶中心差分扩散，D[0]/D[1] 为西/东侧传导系数。
// 显式格式要求 α·dt/dx² ≤ 0.5，由调用方选择 dt 保证。
func CentralDifferenceFlux(T model.Field, D [2]model.Field, out model.Field) {
	n := T.N
	for j := 0; j < T.M; j++ {
		t, dw, de, o := T.Row(j), D[0].Row(j), D[1].Row(j), out.Row(j)
		o[0] = 0
		o[n-1] = 0
		for i := 1; i < n-1; i++ {
			o[i] = t[i-1]*dw[i] + t[i+1]*de[i] - t[i]*(dw[i]+de[i])
		}
	}
}

// UpwindFlux 一阶迎风对流，F 的符号决定流向
func UpwindFlux(T model.Field, F [2]model.Field, out model.Field) {
	n := T.N
	for j := 0; j < T.M; j++ {
		t, fw, fe, o := T.Row(j), F[0].Row(j), F[1].Row(j), out.Row(j)
		o[0] = 0
		o[n-1] = 0
		for i := 1; i < n-1; i++ {
			o[i] = t[i+1]*math.Max(0, -fw[i]) + t[i-1]*math.Max(0, fe[i]) +
				t[i]*(math.Min(0, fw[i])-math.Max(0, fe[i]))
		}
	}
}
