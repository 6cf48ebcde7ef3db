package substance

import (
	"errors"
	"math"
	"testing"

	"tes/model"
)

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

func TestIdempotent(t *testing.T) {
	for _, name := range Names() {
		e, _ := Get(name)
		const n = 200
		for i := 0; i <= n; i++ {
			T := e.Range.TMin + (e.Range.TMax-e.Range.TMin)*float64(i)/n
			h := e.Model.H(T)
			if different(e.Model.T(h), T, 1e-10) {
				t.Errorf("%s: T(H(%g)) = %g", name, T, e.Model.T(h))
			}
			if h2 := e.Model.H(e.Model.T(h)); different(h2, h, 1e-10) {
				t.Errorf("%s: H(T(%g)) = %g", name, h, h2)
			}
		}
	}
}

func TestPropertiesPositive(t *testing.T) {
	for _, name := range Names() {
		e, _ := Get(name)
		for _, T := range []float64{e.Range.TMin, (e.Range.TMin + e.Range.TMax) / 2, e.Range.TMax} {
			h := e.Model.H(T)
			if e.Model.Rho(h) <= 0 || e.Model.Cp(h) <= 0 || e.Model.K(h) <= 0 {
				t.Errorf("%s at %g K: rho=%g cp=%g k=%g", name, T,
					e.Model.Rho(h), e.Model.Cp(h), e.Model.K(h))
			}
		}
	}
}

func TestWater(t *testing.T) {
	m, err := Lookup("water")
	if err != nil {
		t.Fatal(err)
	}
	h := m.H(293.15)
	if different(m.Rho(h), 998.2, 1e-3) {
		t.Errorf("water density at 20℃: %g", m.Rho(h))
	}
	if different(m.Cp(h), 4184, 1e-2) {
		t.Errorf("water cp at 20℃: %g", m.Cp(h))
	}
	tr, ok := m.(Transport)
	if !ok {
		t.Fatal("water should provide transport properties")
	}
	if tr.Mu(h) <= 0 || tr.Pr(h) <= 0 {
		t.Errorf("mu=%g Pr=%g", tr.Mu(h), tr.Pr(h))
	}
}

func TestPCMPlateau(t *testing.T) {
	for name, m := range map[string]pcm{"ats50": ats50, "ats58": ats58} {
		sub, err := Lookup(name)
		if err != nil {
			t.Fatal(err)
		}
		hs := m.Ts * m.Cp
		tests := []struct {
			h, T, k float64
		}{
			{h: 0.5 * hs, T: 0.5 * m.Ts, k: m.Ks},
			{h: hs, T: m.Ts, k: m.Ks},
			{h: hs + m.Hf/2, T: (m.Ts + m.Tl) / 2, k: (m.Ks + m.Kl) / 2},
			{h: hs + m.Hf, T: m.Tl, k: m.Kl},
			{h: hs + m.Hf + 10*m.Cp, T: m.Tl + 10, k: m.Kl},
			{h: hs + m.Hf + 1000*m.Cp, T: m.Tl + 1000, k: m.Kl},
		}
		for _, test := range tests {
			if different(sub.T(test.h), test.T, 1e-12) {
				t.Errorf("%s: T(%g) = %g, want %g", name, test.h, sub.T(test.h), test.T)
			}
			if different(sub.K(test.h), test.k, 1e-12) {
				t.Errorf("%s: k(%g) = %g, want %g", name, test.h, sub.K(test.h), test.k)
			}
		}
		if sub.Rho(hs) != m.Rho {
			t.Errorf("%s: rho = %g", name, sub.Rho(hs))
		}
	}
}

func TestBedMaterials(t *testing.T) {
	for _, name := range []string{"magnetite", "swedish_diabase", "ats50", "ats58"} {
		e, ok := Get(name)
		if !ok || e.Kind != Bed {
			t.Errorf("%s: %+v", name, e)
		}
	}
	m, _ := Lookup("swedish_diabase")
	if h := m.H(300); m.Cp(h) != 1272 || m.Rho(h) != 3007 || m.K(h) != 1.75 {
		t.Errorf("swedish_diabase: cp=%g rho=%g k=%g", m.Cp(h), m.Rho(h), m.K(h))
	}
}

func TestRange(t *testing.T) {
	e, _ := Get("water")
	for _, test := range []struct {
		T    float64
		want bool
	}{{273.15, true}, {300, true}, {373.15, true}, {373.2, false}, {200, false}} {
		if got := e.Range.Contains(test.T); got != test.want {
			t.Errorf("water range contains %g: %v", test.T, got)
		}
	}
}

func TestNewTable(t *testing.T) {
	_, err := NewTable([]float64{0}, []float64{0}, []float64{1}, []float64{1}, []float64{1})
	if err == nil {
		t.Error("single point table should fail")
	}
	_, err = NewTable([]float64{0, 1, 1}, []float64{0, 1, 2}, []float64{1, 1, 1}, []float64{1, 1, 1}, []float64{1, 1, 1})
	if err == nil {
		t.Error("non increasing enthalpy should fail")
	}
	_, err = NewTable([]float64{0, 1}, []float64{0, 1}, []float64{1}, []float64{1, 1}, []float64{1, 1})
	if err == nil {
		t.Error("short column should fail")
	}
}

func TestConstant(t *testing.T) {
	c := NewConstant(4179, 993, 0.627)
	if c.T(c.H(300)) != 300 {
		t.Errorf("T(H(300)) = %g", c.T(c.H(300)))
	}
	if c.Rho(1) != 993 || c.Cp(1) != 4179 || c.K(1) != 0.627 {
		t.Error("constant properties changed")
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("mercury")
	if !errors.Is(err, model.ErrConfiguration) {
		t.Fatalf("want configuration error, got %v", err)
	}
	var cfgErr *model.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatal("want *model.ConfigurationError")
	}
	if len(cfgErr.Valid) != len(Names()) {
		t.Errorf("valid names %v", cfgErr.Valid)
	}
}

func TestPolyEval(t *testing.T) {
	p := Poly{1, 2, 3}
	if p.Eval(2) != 17 {
		t.Errorf("eval = %g", p.Eval(2))
	}
	d := p.Deriv()
	if d.Eval(2) != 14 {
		t.Errorf("deriv eval = %g", d.Eval(2))
	}
}
