package calculator

import (
	"sort"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"tes/grid"
	"tes/model"
	"tes/scheme"
	"tes/substance"
)

// 可以输出的场
var fieldNames = []string{"T", "h", "rho", "cp", "k"}

// Robin 型源项，(T_inf - T)/R
type source struct {
	R    model.Field
	Tinf model.Field
}

// Phase 一个相（流体或床层）的全部状态，h 是唯一的状态量，其余物性每步由 h 重新计算
type Phase struct {
	Name string

	tracks    int
	substance substance.Model
	domain    *grid.Grid // 几何网格
	grid      *grid.Grid // 按孔隙率缩放后的网格
	porosity  float64

	diff scheme.Diffusion
	conv scheme.Convection

	h    model.Field
	temp model.Field
	rho  model.Field
	cp   model.Field
	k    model.Field

	D    [2]model.Field // 扩散传导系数，西/东
	F    [2]model.Field // 对流传导系数，西/东
	mdot model.Field

	massFlow *timeTable
	bcs      []BoundaryCondition
	sources  []source

	outputTimes  []float64
	outputFields []string
	nextOutput   int
	snapshots    []model.Snapshot

	flux model.Field
	dh   model.Field

	initialized bool
	steps       int
}

// NewPhase tracks 为并行轨道数，床层每个流体节点对应一条轨道
func NewPhase(name string, tracks int) *Phase {
	if tracks < 1 {
		tracks = 1
	}
	return &Phase{Name: name, tracks: tracks, porosity: 1}
}

func (p *Phase) logger() *log.Entry {
	return log.WithField("phase", p.Name)
}

func (p *Phase) SelectSubstance(m substance.Model) error {
	if m == nil {
		return configError("phase "+p.Name, "substance", "nil substance model")
	}
	p.substance = m
	p.initialized = false
	return nil
}

// SelectDomain 网格确定后分配所有场
func (p *Phase) SelectDomain(g *grid.Grid) error {
	if g == nil {
		return configError("phase "+p.Name, "domain", "nil grid")
	}
	p.domain = g
	p.grid = g.Scale(p.porosity)
	m, n := p.tracks, g.N
	p.h = model.NewField(m, n)
	p.temp = model.NewField(m, n)
	p.rho = model.NewField(m, n)
	p.cp = model.NewField(m, n)
	p.k = model.NewField(m, n)
	p.D = [2]model.Field{model.NewField(m, n), model.NewField(m, n)}
	p.F = [2]model.Field{model.NewField(m, n), model.NewField(m, n)}
	p.mdot = model.NewField(m, n)
	p.flux = model.NewField(m, n)
	p.dh = model.NewField(m, n)
	p.sources = nil
	p.initialized = false
	return nil
}

// SetPorosity 流体所占体积分数，控制体体积按比例缩小
func (p *Phase) SetPorosity(phi float64) error {
	if !(phi > 0 && phi <= 1) {
		return configError("phase "+p.Name, "porosity", "must be in (0, 1]")
	}
	p.porosity = phi
	if p.domain != nil {
		p.grid = p.domain.Scale(phi)
	}
	return nil
}

func (p *Phase) SelectSchemes(diff scheme.Diffusion, conv scheme.Convection) {
	p.diff = diff
	p.conv = conv
	p.logger().WithFields(log.Fields{
		"diffusion":  diff,
		"convection": conv,
	}).Debug("select schemes")
}

// SetInitialCondition 标量、每个节点一个值或完整 m×n 场
func (p *Phase) SetInitialCondition(T0 ...float64) error {
	if p.substance == nil || p.domain == nil {
		return stateError(p.Name, "set initial condition", "substance and domain must be selected first")
	}
	m, n := p.tracks, p.domain.N
	switch len(T0) {
	case 1:
		for i := range p.h.Data {
			p.h.Data[i] = p.substance.H(T0[0])
		}
	case n:
		for j := 0; j < m; j++ {
			row := p.h.Row(j)
			for i := range row {
				row[i] = p.substance.H(T0[i])
			}
		}
	case m * n:
		for i := range p.h.Data {
			p.h.Data[i] = p.substance.H(T0[i])
		}
	default:
		return configError("phase "+p.Name, "T_init", "length must be 1, n or m·n")
	}
	p.updateProperties()
	p.initialized = true
	p.steps = 0
	p.nextOutput = 0
	p.snapshots = nil
	return nil
}

// SetMassFlow 常数质量流量 kg/s，负值表示反向流动
func (p *Phase) SetMassFlow(v float64) {
	p.massFlow = &timeTable{rows: [][2]float64{{0, v}}}
}

// SetMassFlowTable 按时间线性插值的质量流量表
func (p *Phase) SetMassFlowTable(rows [][2]float64) error {
	tt, err := newTimeTable(rows)
	if err != nil {
		return configError("phase "+p.Name, "mdot_table", err.Error())
	}
	p.massFlow = tt
	return nil
}

// MassFlow t 时刻的质量流量，未设置时返回 StateError
func (p *Phase) MassFlow(t float64) (float64, error) {
	if p.massFlow == nil {
		return 0, stateError(p.Name, "mass flow", "mass flow has not been set")
	}
	return p.massFlow.At(t), nil
}

// AddBoundaryCondition 同一位置重复添加会覆盖原有边界条件
func (p *Phase) AddBoundaryCondition(pos Position, kind BCKind, value ...float64) error {
	bc := BoundaryCondition{Kind: kind, Position: pos}
	switch kind {
	case FixedValue:
		if len(value) != 1 {
			return configError("phase "+p.Name, "bc_"+pos.String(), "fixed_value requires exactly one value")
		}
		bc.Value = value[0]
	case ZeroGradient:
	default:
		return configError("phase "+p.Name, "bc_"+pos.String(), "unknown kind", bcKindNames[:]...)
	}
	p.setBoundaryCondition(bc)
	return nil
}

// AddBoundaryConditionTable 随时间变化的第一类边界
func (p *Phase) AddBoundaryConditionTable(pos Position, rows [][2]float64) error {
	tt, err := newTimeTable(rows)
	if err != nil {
		return configError("phase "+p.Name, "bc_"+pos.String(), err.Error())
	}
	p.setBoundaryCondition(BoundaryCondition{Kind: FixedValue, Position: pos, Value: rows[0][1], table: tt})
	return nil
}

func (p *Phase) setBoundaryCondition(bc BoundaryCondition) {
	for i := range p.bcs {
		if p.bcs[i].Position == bc.Position {
			p.bcs[i] = bc
			return
		}
	}
	p.bcs = append(p.bcs, bc)
}

func (p *Phase) BoundaryConditions() []BoundaryCondition {
	return append([]BoundaryCondition(nil), p.bcs...)
}

// AddSourceTerm 与外部热源的 Robin 型耦合，多次调用累加。R 为无穷大的节点没有贡献
func (p *Phase) AddSourceTerm(R, Tinf model.Field) error {
	if p.domain == nil {
		return stateError(p.Name, "add source term", "domain must be selected first")
	}
	if R.M != p.tracks || R.N != p.domain.N || !R.SameShape(Tinf) {
		return configError("phase "+p.Name, "source", "R and T_inf must have the phase's m×n shape")
	}
	p.sources = append(p.sources, source{R: R.Clone(), Tinf: Tinf.Clone()})
	return nil
}

// AddSurfaceConvection 最外层控制面上的对流换热，换热系数 hc W/(m² K)
func (p *Phase) AddSurfaceConvection(hc, Tinf float64) error {
	if p.domain == nil {
		return stateError(p.Name, "add surface convection", "domain must be selected first")
	}
	if !(hc > 0) {
		return configError("phase "+p.Name, "h_surface", "must be positive")
	}
	m, n := p.tracks, p.domain.N
	R := model.FilledField(m, n, inf)
	last := p.domain.Last()
	for j := 0; j < m; j++ {
		R.Set(j, last, 1/(hc*p.domain.AEast[last]))
	}
	return p.AddSourceTerm(R, model.FilledField(m, n, Tinf))
}

// SaveOutput 注册输出时间与输出的场，默认输出温度
func (p *Phase) SaveOutput(times []float64, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{"T"}
	}
	for _, f := range fields {
		if !validField(f) {
			return configError("phase "+p.Name, "output_fields", "unknown field "+f, fieldNames...)
		}
	}
	p.outputTimes = append([]float64(nil), times...)
	sort.Float64s(p.outputTimes)
	p.outputFields = append([]string(nil), fields...)
	p.nextOutput = 0
	return nil
}

func validField(f string) bool {
	for _, n := range fieldNames {
		if n == f {
			return true
		}
	}
	return false
}

// 访问器，返回内部场，调用方不应修改

func (p *Phase) T() model.Field     { return p.temp }
func (p *Phase) H() model.Field     { return p.h }
func (p *Phase) Rho() model.Field   { return p.rho }
func (p *Phase) Grid() *grid.Grid   { return p.grid }
func (p *Phase) Domain() *grid.Grid { return p.domain }
func (p *Phase) Porosity() float64  { return p.porosity }
func (p *Phase) Tracks() int        { return p.tracks }
func (p *Phase) Steps() int         { return p.steps }

func (p *Phase) Substance() substance.Model {
	return p.substance
}

func (p *Phase) Snapshots() []model.Snapshot {
	return p.snapshots
}

// TotalEnergy 所有轨道的 Σ h·ρ·V
func (p *Phase) TotalEnergy() float64 {
	var e float64
	for j := 0; j < p.tracks; j++ {
		e += p.TrackEnergy(j)
	}
	return e
}

// TrackEnergy 第 j 条轨道的 Σ h·ρ·V
func (p *Phase) TrackEnergy(j int) float64 {
	w := make([]float64, p.grid.N)
	floats.MulTo(w, p.rho.Row(j), p.grid.V)
	return floats.Dot(p.h.Row(j), w)
}
