// Package config 从 ini 文件组装计算
//
//	[simulation]
//	t_end = 3600
//	dt    = 0.05
//
//	[phase.fluid]
//	substance = air
//	domain    = cylinder
//	n = 50
//	D = 0.3
//	H = 1
//	...
//
//	[coupling]
//	fluid = fluid
//	bed   = bed
//	h     = 100
package config

import (
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"

	"tes/grid"
	"tes/model"
)

const (
	phasePrefix    = "phase."
	couplingPrefix = "coupling"
)

// 几何参数的键名
var geometryKeys = []string{"n", "D", "H", "R", "Rin", "Rout", "A", "L", "V"}

type Config struct {
	Simulation SimulationConfig
	Phases     []PhaseConfig
	Couplings  []CouplingConfig
}

type SimulationConfig struct {
	Name          string
	TStart        float64
	TEnd          float64
	Dt            float64
	ProgressEvery int
}

// BCConfig 边界条件，Table 非空时为随时间变化的第一类边界
type BCConfig struct {
	Position string
	Kind     string
	Value    []float64
	Table    [][2]float64
}

type PhaseConfig struct {
	Name string

	Substance string // 为空时使用常物性 Cp/Rho/K
	Cp        float64
	Rho       float64
	K         float64

	Domain   string
	Geometry grid.Params
	Tracks   int
	Porosity float64

	Diffusion  string
	Convection string

	TInit         []float64
	MassFlow      []float64 // 常数质量流量，至多一个值
	MassFlowTable [][2]float64

	BCs []BCConfig

	Surface  bool // 配置了 h_surface 时为 true
	SurfaceH float64
	SurfaceT float64

	OutputTimes  []float64
	OutputFields []string
}

type CouplingConfig struct {
	Fluid string
	Bed   string
	H     float64
}

// Load 从文件加载
func Load(path string) (*Config, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return loadCfg(file)
}

// Parse 从 ini 文本加载
func Parse(data []byte) (*Config, error) {
	file, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return loadCfg(file)
}

func loadCfg(file *ini.File) (*Config, error) {
	cfg := &Config{}
	sec, err := file.GetSection("simulation")
	if err != nil {
		return nil, &model.ConfigurationError{Component: "config", Key: "simulation", Reason: "missing section"}
	}
	r := reader{sec: sec}
	cfg.Simulation = SimulationConfig{
		Name:          sec.Key("name").MustString(""),
		TStart:        r.float("t_start", 0),
		TEnd:          r.required("t_end"),
		Dt:            r.required("dt"),
		ProgressEvery: sec.Key("progress_every").MustInt(0),
	}
	if r.err != nil {
		return nil, r.err
	}

	// 有 [coupling.X] 时 [coupling] 只提供共用的默认值
	shared := false
	for _, name := range file.SectionStrings() {
		if strings.HasPrefix(name, couplingPrefix+".") {
			shared = true
			break
		}
	}

	for _, sec := range file.Sections() {
		name := sec.Name()
		switch {
		case name == couplingPrefix && shared:
			continue
		case strings.HasPrefix(name, phasePrefix):
			pc, err := loadPhase(strings.TrimPrefix(name, phasePrefix), sec)
			if err != nil {
				return nil, err
			}
			cfg.Phases = append(cfg.Phases, pc)
		case name == couplingPrefix || strings.HasPrefix(name, couplingPrefix+"."):
			r := reader{sec: sec}
			cc := CouplingConfig{
				Fluid: r.str("fluid"),
				Bed:   r.str("bed"),
				H:     r.required("h"),
			}
			if r.err != nil {
				return nil, r.err
			}
			cfg.Couplings = append(cfg.Couplings, cc)
		}
	}
	if len(cfg.Phases) == 0 {
		return nil, &model.ConfigurationError{Component: "config", Key: phasePrefix + "*", Reason: "no phase section"}
	}

	log.WithFields(log.Fields{
		"simulation": cfg.Simulation.Name,
		"t_end":      cfg.Simulation.TEnd,
		"dt":         cfg.Simulation.Dt,
		"phases":     len(cfg.Phases),
		"couplings":  len(cfg.Couplings),
	}).Info("load config")
	return cfg, nil
}

func loadPhase(name string, sec *ini.Section) (PhaseConfig, error) {
	r := reader{sec: sec}
	pc := PhaseConfig{
		Name:         name,
		Substance:    sec.Key("substance").MustString(""),
		Domain:       r.str("domain"),
		Geometry:     grid.Params{},
		Tracks:       sec.Key("tracks").MustInt(1),
		Porosity:     r.float("porosity", 1),
		Diffusion:    sec.Key("diff").MustString("none"),
		Convection:   sec.Key("conv").MustString("none"),
		TInit:        r.floats("T_init"),
		OutputFields: r.list("output_fields"),
	}
	if pc.Substance == "" {
		pc.Cp = r.required("cp")
		pc.Rho = r.required("rho")
		pc.K = r.required("k")
	}
	for _, key := range geometryKeys {
		if sec.HasKey(key) {
			pc.Geometry[key] = r.float(key, 0)
		}
	}
	if len(pc.TInit) == 0 && r.err == nil {
		r.fail("T_init", "missing key")
	}
	if sec.HasKey("mdot") {
		pc.MassFlow = []float64{r.float("mdot", 0)}
	}
	if sec.HasKey("mdot_table") {
		pc.MassFlowTable = r.table("mdot_table")
	}
	for _, pos := range []string{"first", "last"} {
		if bc, ok := r.boundary(pos); ok {
			pc.BCs = append(pc.BCs, bc)
		}
	}
	if sec.HasKey("h_surface") {
		pc.Surface = true
		pc.SurfaceH = r.float("h_surface", 0)
		pc.SurfaceT = r.required("T_surface")
	}
	if sec.HasKey("output_times") {
		pc.OutputTimes = r.times("output_times")
	}
	return pc, r.err
}

// reader 读取一个 section，记录遇到的第一个错误
type reader struct {
	sec *ini.Section
	err error
}

func (r *reader) fail(key, reason string) {
	if r.err == nil {
		r.err = &model.ConfigurationError{Component: "[" + r.sec.Name() + "]", Key: key, Reason: reason}
	}
}

func (r *reader) str(key string) string {
	if !r.sec.HasKey(key) {
		r.fail(key, "missing key")
		return ""
	}
	return strings.TrimSpace(r.sec.Key(key).String())
}

func (r *reader) float(key string, def float64) float64 {
	if !r.sec.HasKey(key) {
		return def
	}
	v, err := r.sec.Key(key).Float64()
	if err != nil {
		r.fail(key, "not a number")
		return def
	}
	return v
}

func (r *reader) required(key string) float64 {
	if !r.sec.HasKey(key) {
		r.fail(key, "missing key")
		return 0
	}
	return r.float(key, 0)
}

func (r *reader) list(key string) []string {
	if !r.sec.HasKey(key) {
		return nil
	}
	var out []string
	for _, s := range strings.Split(r.sec.Key(key).String(), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (r *reader) floats(key string) []float64 {
	vs, err := parseFloats(r.list(key))
	if err != nil {
		r.fail(key, err.Error())
	}
	return vs
}

// table 形如 "0:0.1, 400:0.1, 500:-0.1"
func (r *reader) table(key string) [][2]float64 {
	rows, err := parseTable(r.list(key))
	if err != nil {
		r.fail(key, err.Error())
	}
	return rows
}

// times 形如 "0:3600:600"（起点:终点:间隔）或逗号分隔的时刻
func (r *reader) times(key string) []float64 {
	v := strings.TrimSpace(r.sec.Key(key).String())
	if parts := strings.Split(v, ":"); len(parts) == 3 && !strings.Contains(v, ",") {
		vs, err := parseFloats(parts)
		if err != nil {
			r.fail(key, err.Error())
			return nil
		}
		return timeRange(vs[0], vs[1], vs[2], key, r)
	}
	return r.floats(key)
}

func timeRange(start, stop, step float64, key string, r *reader) []float64 {
	if !(step > 0) || stop < start {
		r.fail(key, "range needs start <= stop and a positive step")
		return nil
	}
	var out []float64
	n := int((stop-start)/step + 1e-9)
	for i := 0; i <= n; i++ {
		out = append(out, start+float64(i)*step)
	}
	return out
}

// boundary bc_first = fixed_value:773.15 或 zero_gradient；bc_first_table 为随时间变化的温度
func (r *reader) boundary(pos string) (BCConfig, bool) {
	key := "bc_" + pos
	bc := BCConfig{Position: pos}
	if r.sec.HasKey(key + "_table") {
		bc.Kind = "fixed_value"
		bc.Table = r.table(key + "_table")
		return bc, true
	}
	if !r.sec.HasKey(key) {
		return bc, false
	}
	parts := strings.SplitN(r.sec.Key(key).String(), ":", 2)
	bc.Kind = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			r.fail(key, "boundary value is not a number")
			return bc, false
		}
		bc.Value = []float64{v}
	}
	return bc, true
}

func parseFloats(items []string) ([]float64, error) {
	out := make([]float64, 0, len(items))
	for _, s := range items {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", s)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseTable(items []string) ([][2]float64, error) {
	rows := make([][2]float64, 0, len(items))
	for _, item := range items {
		parts := strings.Split(item, ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("%q is not a time:value pair", item)
		}
		vs, err := parseFloats(parts)
		if err != nil {
			return nil, err
		}
		rows = append(rows, [2]float64{vs[0], vs[1]})
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty table")
	}
	return rows, nil
}
