// Package grid 一维有限体积网格
//
// 节点在区域内均匀分布，控制面位于相邻节点中点，区域两端的物理边界为首末控制面，
// 因此边界节点只拥有半个控制体。控制体体积由面积公式在两个控制面之间的解析积分得到，
// 所有体积之和严格等于几何体总体积。
package grid

import (
	"math"
	"strconv"
	"strings"

	"tes/model"
)

type Kind int

const (
	Cylinder Kind = iota
	Sphere
	HollowSphere
	Block
	Lumped
)

var kindNames = [...]string{
	Cylinder:     "cylinder",
	Sphere:       "sphere",
	HollowSphere: "hollow_sphere",
	Block:        "block",
	Lumped:       "lumped",
}

// MaxNodes 单个区域的节点数上限
const MaxNodes = 1 << 20

// 每种几何需要的参数
var required = [...][]string{
	Cylinder:     {"n", "D", "H"},
	Sphere:       {"n", "R"},
	HollowSphere: {"n", "Rin", "Rout"},
	Block:        {"n", "A", "L"},
	Lumped:       {"V", "A"},
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Required 返回该几何需要的参数名
func (k Kind) Required() []string {
	return append([]string(nil), required[k]...)
}

func KindNames() []string {
	return append([]string(nil), kindNames[:]...)
}

func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if strings.EqualFold(n, name) {
			return Kind(k), nil
		}
	}
	return 0, &model.ConfigurationError{
		Component: "domain",
		Key:       name,
		Reason:    "unknown domain",
		Valid:     KindNames(),
	}
}

// Params 几何参数，键名见 Kind.Required
type Params map[string]float64

// Grid 网格建好后不再修改
type Grid struct {
	Kind    Kind
	N       int       // 节点数
	NodePos []float64 // 节点坐标
	Dx      []float64 // 节点间距，集总参数为 0
	V       []float64 // 控制体体积
	AWest   []float64 // 西侧控制面面积
	AEast   []float64 // 东侧控制面面积
	V0      float64   // 几何体总体积
}

// 面积公式与从起点开始的累积体积
type shape struct {
	start, extent float64
	area          func(x float64) float64
	vol           func(x float64) float64
}

func configErr(k Kind, key, reason string) error {
	return &model.ConfigurationError{Component: "domain " + k.String(), Key: key, Reason: reason}
}

// Build 根据几何类型和参数生成网格
func Build(kind Kind, p Params) (*Grid, error) {
	if kind < 0 || int(kind) >= len(kindNames) {
		return nil, &model.ConfigurationError{Component: "domain", Reason: "unknown domain", Valid: KindNames()}
	}
	for _, key := range required[kind] {
		if _, ok := p[key]; !ok {
			return nil, configErr(kind, key, "missing parameter")
		}
	}
	for _, key := range required[kind] {
		if key == "n" || (kind == HollowSphere && key == "Rin") {
			continue
		}
		if !(p[key] > 0) || math.IsInf(p[key], 0) {
			return nil, configErr(kind, key, "must be positive and finite")
		}
	}
	if kind == Lumped {
		if n, ok := p["n"]; ok && n != 1 {
			return nil, configErr(kind, "n", "lumped domain has exactly one node")
		}
		return lumped(p["V"], p["A"]), nil
	}

	n := p["n"]
	if !(n >= 1 && n <= MaxNodes) || n != math.Trunc(n) {
		return nil, configErr(kind, "n", "must be an integer between 1 and "+strconv.Itoa(MaxNodes))
	}

	var s shape
	switch kind {
	case Cylinder:
		a := math.Pi * p["D"] * p["D"] / 4
		s = shape{extent: p["H"], area: constArea(a), vol: func(x float64) float64 { return a * x }}
	case Block:
		a := p["A"]
		s = shape{extent: p["L"], area: constArea(a), vol: func(x float64) float64 { return a * x }}
	case Sphere:
		s = shape{extent: p["R"], area: sphereArea, vol: sphereVol}
	case HollowSphere:
		rin, rout := p["Rin"], p["Rout"]
		if rin < 0 {
			return nil, configErr(kind, "Rin", "must not be negative")
		}
		if rin >= rout {
			return nil, configErr(kind, "Rin", "must be smaller than Rout")
		}
		s = shape{start: rin, extent: rout - rin, area: sphereArea, vol: sphereVol}
	}
	g := s.discretize(int(n))
	g.Kind = kind
	return g, nil
}

func constArea(a float64) func(float64) float64 {
	return func(float64) float64 { return a }
}

func sphereArea(r float64) float64 { return 4 * math.Pi * r * r }
func sphereVol(r float64) float64  { return 4.0 / 3.0 * math.Pi * r * r * r }

func (s shape) discretize(n int) *Grid {
	g := &Grid{
		N:       n,
		NodePos: make([]float64, n),
		Dx:      make([]float64, n),
		V:       make([]float64, n),
		AWest:   make([]float64, n),
		AEast:   make([]float64, n),
	}
	end := s.start + s.extent
	faces := make([]float64, n+1)
	faces[0] = s.start
	faces[n] = end
	dx := s.extent
	if n > 1 {
		dx = s.extent / float64(n-1)
	}
	for i := 0; i < n; i++ {
		g.NodePos[i] = s.start + float64(i)*dx
		g.Dx[i] = dx
		if i > 0 {
			faces[i] = s.start + (float64(i)-0.5)*dx
		}
	}
	for i := 0; i < n; i++ {
		g.AWest[i] = s.area(faces[i])
		g.AEast[i] = s.area(faces[i+1])
		g.V[i] = s.vol(faces[i+1]) - s.vol(faces[i])
	}
	g.V0 = s.vol(end) - s.vol(s.start)
	return g
}

// 集总参数：单节点，无空间离散
func lumped(v, a float64) *Grid {
	return &Grid{
		Kind:    Lumped,
		N:       1,
		NodePos: []float64{0},
		Dx:      []float64{0},
		V:       []float64{v},
		AWest:   []float64{0},
		AEast:   []float64{a},
		V0:      v,
	}
}

// Scale 返回体积按孔隙率缩放后的网格，面积与坐标不变
func (g *Grid) Scale(phi float64) *Grid {
	c := &Grid{
		Kind:    g.Kind,
		N:       g.N,
		NodePos: append([]float64(nil), g.NodePos...),
		Dx:      append([]float64(nil), g.Dx...),
		V:       make([]float64, g.N),
		AWest:   append([]float64(nil), g.AWest...),
		AEast:   append([]float64(nil), g.AEast...),
		V0:      g.V0 * phi,
	}
	for i, v := range g.V {
		c.V[i] = v * phi
	}
	return c
}

// Last 最后一个节点的下标
func (g *Grid) Last() int { return g.N - 1 }
