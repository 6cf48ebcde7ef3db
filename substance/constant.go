package substance

// Constant 常物性物质，h = cp·T
type Constant struct {
	CpV  float64
	RhoV float64
	KV   float64
}

func NewConstant(cp, rho, k float64) Constant {
	return Constant{CpV: cp, RhoV: rho, KV: k}
}

func (c Constant) T(h float64) float64 { return h / c.CpV }
func (c Constant) H(T float64) float64 { return c.CpV * T }
func (c Constant) Rho(float64) float64 { return c.RhoV }
func (c Constant) Cp(float64) float64  { return c.CpV }
func (c Constant) K(float64) float64   { return c.KV }
