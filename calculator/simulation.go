package calculator

import (
	"math"
	"time"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"

	"tes/model"
)

// Simulation 时间循环，持有所有相和耦合关系
type Simulation struct {
	Name   string
	TStart float64
	TEnd   float64
	Dt     float64

	phases    []*Phase
	couplings []Coupling

	calcHub       *CalcHub
	progressEvery int
	progress      func(step int, t float64)

	steps int
}

func NewSimulation(tStart, tEnd, dt float64) *Simulation {
	return &Simulation{TStart: tStart, TEnd: tEnd, Dt: dt}
}

// AddPhase 按添加顺序推进
func (s *Simulation) AddPhase(p *Phase) {
	s.phases = append(s.phases, p)
}

// AddCoupling 每步在所有相推进之后按添加顺序执行
func (s *Simulation) AddCoupling(fluid, bed *Phase, h float64) error {
	if err := checkCoupling(fluid, bed, h); err != nil {
		return err
	}
	s.couplings = append(s.couplings, Coupling{Fluid: fluid, Bed: bed, H: h})
	log.WithFields(log.Fields{
		"fluid": fluid.Name,
		"bed":   bed.Name,
		"h":     h,
	}).Info("add coupling")
	return nil
}

func (s *Simulation) Phases() []*Phase {
	return s.phases
}

func (s *Simulation) Phase(name string) *Phase {
	for _, p := range s.phases {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func (s *Simulation) Couplings() []Coupling {
	return s.couplings
}

// SetHub 设置后快照会推送到 hub，并且可以通过 hub 停止计算
func (s *Simulation) SetHub(ch *CalcHub) {
	s.calcHub = ch
}

func (s *Simulation) GetCalcHub() *CalcHub {
	return s.calcHub
}

// SetProgress 每 every 步回调一次
func (s *Simulation) SetProgress(every int, fn func(step int, t float64)) {
	s.progressEvery = every
	s.progress = fn
}

// Steps 已完成的时间步数
func (s *Simulation) Steps() int {
	return s.steps
}

// TotalSteps 从 TStart 推进到 TEnd 需要的步数
func (s *Simulation) TotalSteps() int {
	return int(math.Ceil((s.TEnd-s.TStart)/s.Dt - 1e-9))
}

func (s *Simulation) validate() error {
	if !(s.Dt > 0) {
		return configError("simulation", "dt", "must be positive")
	}
	if !(s.TEnd > s.TStart) {
		return configError("simulation", "t_end", "must be after t_start")
	}
	if len(s.phases) == 0 {
		return configError("simulation", "phases", "no phase to advance")
	}
	for _, p := range s.phases {
		if err := p.validate(); err != nil {
			return err
		}
	}
	for _, c := range s.couplings {
		if err := checkCoupling(c.Fluid, c.Bed, c.H); err != nil {
			return err
		}
		if s.Phase(c.Fluid.Name) != c.Fluid || s.Phase(c.Bed.Name) != c.Bed {
			return configError("coupling "+c.Fluid.Name+"/"+c.Bed.Name, "phase", "coupled phases must be added to the simulation")
		}
	}
	return nil
}

// Run 串行推进直到 TEnd，第 k+1 步在第 k 步的耦合完成后才开始
func (s *Simulation) Run() error {
	if err := s.validate(); err != nil {
		return err
	}
	total := s.TotalSteps()
	if maxDt := s.MaxTimeStep(); s.Dt > maxDt {
		log.WithFields(log.Fields{
			"dt":    s.Dt,
			"maxDt": maxDt,
		}).Warn("time step exceeds the explicit stability limit")
	}
	log.WithFields(log.Fields{
		"simulation": s.Name,
		"phases":     len(s.phases),
		"couplings":  len(s.couplings),
		"steps":      humanize.Comma(int64(total)),
		"dt":         s.Dt,
	}).Info("simulation start")

	start := time.Now()
	s.steps = 0
	for step := 0; step < total; step++ {
		if s.calcHub != nil && s.calcHub.Stopped() {
			log.WithFields(log.Fields{
				"simulation": s.Name,
				"steps":      humanize.Comma(int64(step)),
			}).Info("simulation stopped")
			return ErrStopped
		}
		t := s.TStart + float64(step)*s.Dt
		for _, p := range s.phases {
			before := len(p.snapshots)
			if err := p.Advance(s.Dt, t); err != nil {
				return err
			}
			s.push(p.snapshots[before:])
		}
		for _, c := range s.couplings {
			if err := Couple(c.Fluid, c.Bed, c.H, s.Dt); err != nil {
				return err
			}
		}
		s.steps++
		if s.progress != nil && s.progressEvery > 0 && s.steps%s.progressEvery == 0 {
			s.progress(s.steps, t+s.Dt)
		}
	}

	// 最后时刻的输出
	tEnd := s.TStart + float64(total)*s.Dt
	for _, p := range s.phases {
		before := len(p.snapshots)
		p.capture(tEnd, s.Dt/2)
		s.push(p.snapshots[before:])
	}

	log.WithFields(log.Fields{
		"simulation": s.Name,
		"steps":      humanize.Comma(int64(s.steps)),
		"duration":   time.Since(start),
	}).Info("simulation finished")
	return nil
}

func (s *Simulation) push(snapshots []model.Snapshot) {
	if s.calcHub == nil {
		return
	}
	for _, snap := range snapshots {
		if !s.calcHub.PushSignal(snap) {
			return
		}
	}
}
