// Package verify 用解析解检验数值计算：
// 球体与平板的对流加热（Biot/Fourier 数级数解），以及活塞流中的温度阶跃
package verify

import (
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"tes/analytical"
	"tes/calculator"
	"tes/grid"
	"tes/scheme"
	"tes/substance"
)

// 水的常物性
const (
	cp  = 4179.0
	rho = 993.0
	k   = 0.627
)

// Case 一个检验算例，Tolerance 为无量纲温度的允许偏差
type Case struct {
	Name      string
	Tolerance float64

	sim       *calculator.Simulation
	deviation func() float64
}

type Result struct {
	Name         string
	MaxDeviation float64
	Tolerance    float64
	Steps        int
	Err          error
}

func (r Result) Passed() bool {
	return r.Err == nil && r.MaxDeviation <= r.Tolerance
}

// convection 初始温度 Ti 的物体在 Tinf 的流体中被加热，比较 θ = (T-Tinf)/(Ti-Tinf) 与解析解
func convection(name string, kind grid.Kind, p grid.Params, L, hc, dt, tEnd float64,
	exact func(Bi, Fo float64, xs []float64) []float64) (*Case, error) {
	const (
		Ti   = 273.15
		Tinf = 373.15
	)
	g, err := grid.Build(kind, p)
	if err != nil {
		return nil, err
	}
	ph := calculator.NewPhase(name, 1)
	if err := ph.SelectSubstance(substance.NewConstant(cp, rho, k)); err != nil {
		return nil, err
	}
	if err := ph.SelectDomain(g); err != nil {
		return nil, err
	}
	if err := ph.SetInitialCondition(Ti); err != nil {
		return nil, err
	}
	ph.SelectSchemes(scheme.CentralDifference, scheme.NoConvection)
	if err := ph.AddBoundaryCondition(calculator.First, calculator.ZeroGradient); err != nil {
		return nil, err
	}
	if err := ph.AddBoundaryCondition(calculator.Last, calculator.ZeroGradient); err != nil {
		return nil, err
	}
	if err := ph.AddSurfaceConvection(hc, Tinf); err != nil {
		return nil, err
	}
	sim := calculator.NewSimulation(0, tEnd, dt)
	sim.Name = name
	sim.AddPhase(ph)

	Bi := hc * L / k
	Fo := k / (rho * cp) * tEnd / (L * L)
	return &Case{
		Name:      name,
		Tolerance: 5e-3,
		sim:       sim,
		deviation: func() float64 {
			xs := make([]float64, g.N)
			floats.ScaleTo(xs, 1/L, g.NodePos)
			want := exact(Bi, Fo, xs)
			theta := make([]float64, g.N)
			for i, T := range ph.T().Row(0) {
				theta[i] = (T - Tinf) / (Ti - Tinf)
			}
			return floats.Distance(theta, want, math.Inf(1))
		},
	}, nil
}

// plugFlow 圆管内初始温度 Ti 的流体被 Tin 的入口流体推出，
// 只在离阶跃前沿 0.1 个管长以外的节点上比较，前沿处一阶迎风格式有数值扩散
func plugFlow() (*Case, error) {
	const (
		n    = 200
		D    = 0.5
		H    = 2.0
		mdot = 1.0
		Ti   = 323.15
		Tin  = 373.15
		tEnd = 120.0
	)
	g, err := grid.Build(grid.Cylinder, grid.Params{"n": n, "D": D, "H": H})
	if err != nil {
		return nil, err
	}
	ph := calculator.NewPhase("plug flow", 1)
	if err := ph.SelectSubstance(substance.NewConstant(cp, rho, k)); err != nil {
		return nil, err
	}
	if err := ph.SelectDomain(g); err != nil {
		return nil, err
	}
	if err := ph.SetInitialCondition(Ti); err != nil {
		return nil, err
	}
	ph.SelectSchemes(scheme.NoDiffusion, scheme.Upwind)
	ph.SetMassFlow(mdot)
	if err := ph.AddBoundaryCondition(calculator.First, calculator.FixedValue, Tin); err != nil {
		return nil, err
	}
	if err := ph.AddBoundaryCondition(calculator.Last, calculator.ZeroGradient); err != nil {
		return nil, err
	}
	sim := calculator.NewSimulation(0, tEnd, 0.1)
	sim.Name = "plug flow"
	sim.AddPhase(ph)

	X := tEnd * (mdot / rho / (math.Pi * D * D / 4)) / H
	return &Case{
		Name:      "plug flow",
		Tolerance: 1.5e-2,
		sim:       sim,
		deviation: func() float64 {
			ys := make([]float64, n)
			floats.ScaleTo(ys, 1/H, g.NodePos)
			want := analytical.Step(X, ys)
			var dev float64
			for i, T := range ph.T().Row(0) {
				if math.Abs(ys[i]-X) > 0.1 {
					dev = math.Max(dev, math.Abs((T-Tin)/(Ti-Tin)-want[i]))
				}
			}
			return dev
		},
	}, nil
}

// Cases 所有检验算例
func Cases() ([]*Case, error) {
	sphere, err := convection("sphere", grid.Sphere, grid.Params{"n": 50, "R": 0.025}, 0.025, 200, 1e-2, 200, analytical.Sphere)
	if err != nil {
		return nil, err
	}
	wall, err := convection("wall", grid.Block, grid.Params{"n": 50, "A": 1, "L": 0.05}, 0.05, 200, 0.1, 3000, analytical.Wall)
	if err != nil {
		return nil, err
	}
	wall.Tolerance = 1e-3
	flow, err := plugFlow()
	if err != nil {
		return nil, err
	}
	return []*Case{sphere, wall, flow}, nil
}

// Run 并发运行算例并与解析解比较
func Run(cases []*Case, workers int) []Result {
	sims := make([]*calculator.Simulation, len(cases))
	for i, c := range cases {
		sims[i] = c.sim
	}
	errs := calculator.RunBatch(sims, workers)
	results := make([]Result, len(cases))
	for i, c := range cases {
		results[i] = Result{
			Name:      c.Name,
			Tolerance: c.Tolerance,
			Steps:     c.sim.Steps(),
			Err:       errs[i],
		}
		if errs[i] == nil {
			results[i].MaxDeviation = c.deviation()
		}
		log.WithFields(log.Fields{
			"case":      c.Name,
			"deviation": results[i].MaxDeviation,
			"passed":    results[i].Passed(),
		}).Debug("verify")
	}
	return results
}
