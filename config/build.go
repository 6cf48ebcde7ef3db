package config

import (
	"fmt"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"

	"tes/calculator"
	"tes/grid"
	"tes/model"
	"tes/scheme"
	"tes/substance"
)

// Build 按配置组装计算，所有配置错误都在时间循环开始前返回
func (c *Config) Build() (*calculator.Simulation, error) {
	sim := calculator.NewSimulation(c.Simulation.TStart, c.Simulation.TEnd, c.Simulation.Dt)
	sim.Name = c.Simulation.Name
	if every := c.Simulation.ProgressEvery; every > 0 {
		total := sim.TotalSteps()
		sim.SetProgress(every, func(step int, t float64) {
			log.WithFields(log.Fields{
				"simulation": sim.Name,
				"step":       humanize.Comma(int64(step)),
				"total":      humanize.Comma(int64(total)),
				"t":          t,
			}).Info("progress")
		})
	}
	phases := make(map[string]*calculator.Phase, len(c.Phases))
	names := make([]string, 0, len(c.Phases))
	for _, pc := range c.Phases {
		if _, ok := phases[pc.Name]; ok {
			return nil, &model.ConfigurationError{Component: "config", Key: phasePrefix + pc.Name, Reason: "duplicate phase"}
		}
		p, err := pc.Build()
		if err != nil {
			return nil, fmt.Errorf("[%s%s]: %w", phasePrefix, pc.Name, err)
		}
		phases[pc.Name] = p
		names = append(names, pc.Name)
		sim.AddPhase(p)
	}
	for _, cc := range c.Couplings {
		fluid, ok := phases[cc.Fluid]
		if !ok {
			return nil, &model.ConfigurationError{Component: "[coupling]", Key: "fluid", Reason: "unknown phase " + cc.Fluid, Valid: names}
		}
		bed, ok := phases[cc.Bed]
		if !ok {
			return nil, &model.ConfigurationError{Component: "[coupling]", Key: "bed", Reason: "unknown phase " + cc.Bed, Valid: names}
		}
		if err := sim.AddCoupling(fluid, bed, cc.H); err != nil {
			return nil, err
		}
	}
	return sim, nil
}

// Build 组装一个相
func (pc PhaseConfig) Build() (*calculator.Phase, error) {
	p := calculator.NewPhase(pc.Name, pc.Tracks)

	var m substance.Model
	if pc.Substance != "" {
		var err error
		if m, err = substance.Lookup(pc.Substance); err != nil {
			return nil, err
		}
	} else {
		m = substance.NewConstant(pc.Cp, pc.Rho, pc.K)
	}
	if err := p.SelectSubstance(m); err != nil {
		return nil, err
	}

	kind, err := grid.ParseKind(pc.Domain)
	if err != nil {
		return nil, err
	}
	g, err := grid.Build(kind, pc.Geometry)
	if err != nil {
		return nil, err
	}
	if err := p.SelectDomain(g); err != nil {
		return nil, err
	}
	if err := p.SetPorosity(pc.Porosity); err != nil {
		return nil, err
	}

	diff, err := scheme.ParseDiffusion(pc.Diffusion)
	if err != nil {
		return nil, err
	}
	conv, err := scheme.ParseConvection(pc.Convection)
	if err != nil {
		return nil, err
	}
	p.SelectSchemes(diff, conv)

	if err := p.SetInitialCondition(pc.TInit...); err != nil {
		return nil, err
	}
	if e, ok := substance.Get(pc.Substance); ok {
		for _, T := range pc.TInit {
			if !e.Range.Contains(T) {
				log.WithFields(log.Fields{
					"phase":     pc.Name,
					"substance": e.Name,
					"T_init":    T,
					"T_min":     e.Range.TMin,
					"T_max":     e.Range.TMax,
				}).Warn("initial temperature outside the fitted range")
				break
			}
		}
	}

	switch {
	case len(pc.MassFlowTable) > 0:
		if err := p.SetMassFlowTable(pc.MassFlowTable); err != nil {
			return nil, err
		}
	case len(pc.MassFlow) > 0:
		p.SetMassFlow(pc.MassFlow[0])
	}

	for _, bc := range pc.BCs {
		pos, err := calculator.ParsePosition(bc.Position)
		if err != nil {
			return nil, err
		}
		if len(bc.Table) > 0 {
			err = p.AddBoundaryConditionTable(pos, bc.Table)
		} else {
			var kind calculator.BCKind
			if kind, err = calculator.ParseBCKind(bc.Kind); err == nil {
				err = p.AddBoundaryCondition(pos, kind, bc.Value...)
			}
		}
		if err != nil {
			return nil, err
		}
	}

	if pc.Surface {
		if err := p.AddSurfaceConvection(pc.SurfaceH, pc.SurfaceT); err != nil {
			return nil, err
		}
	}

	if len(pc.OutputTimes) > 0 {
		if err := p.SaveOutput(pc.OutputTimes, pc.OutputFields...); err != nil {
			return nil, err
		}
	}
	return p, nil
}
