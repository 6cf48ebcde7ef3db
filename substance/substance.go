// Package substance 物性参数模型：由比焓计算温度、密度、比热容和导热系数
package substance

import (
	"sort"

	"tes/model"
)

// Model 物性模型，所有函数只依赖比焓 h (J/kg)
type Model interface {
	T(h float64) float64   // 温度 K
	H(T float64) float64   // 比焓 J/kg，T 的反函数
	Rho(h float64) float64 // 密度 kg/m³
	Cp(h float64) float64  // 比热容 J/(kg K)
	K(h float64) float64   // 导热系数 W/(m K)
}

// Transport 流体的输运性质，可选
type Transport interface {
	Mu(h float64) float64 // 动力粘度 Pa s
	Pr(h float64) float64 // 普朗特数
}

type Kind string

const (
	Fluid Kind = "fluid"
	Bed   Kind = "bed"
)

// Range 拟合公式的有效温度范围
type Range struct {
	TMin float64
	TMax float64
}

func (r Range) Contains(T float64) bool {
	return T >= r.TMin && T <= r.TMax
}

// Entry 内置物质
type Entry struct {
	Name  string
	Kind  Kind
	Range Range
	Model Model
}

var registry = map[string]Entry{}

func register(e Entry) {
	registry[e.Name] = e
}

// Names 按字母顺序返回所有内置物质名称
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get 获取内置物质的完整信息
func Get(name string) (Entry, bool) {
	e, ok := registry[name]
	return e, ok
}

// Lookup 根据名称获取物性模型，名称未知时返回列出所有可选值的配置错误
func Lookup(name string) (Model, error) {
	e, ok := registry[name]
	if !ok {
		return nil, &model.ConfigurationError{
			Component: "substance",
			Key:       name,
			Reason:    "unknown substance",
			Valid:     Names(),
		}
	}
	return e.Model, nil
}
