package grid

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"

	"tes/model"
)

func TestVolumeExact(t *testing.T) {
	tests := []struct {
		kind Kind
		p    Params
		v0   float64
	}{
		{kind: Cylinder, p: Params{"D": 0.5, "H": 2}, v0: math.Pi * 0.25 * 0.25 * 2},
		{kind: Sphere, p: Params{"R": 0.025}, v0: 4.0 / 3.0 * math.Pi * math.Pow(0.025, 3)},
		{kind: HollowSphere, p: Params{"Rin": 0.01, "Rout": 0.03}, v0: 4.0 / 3.0 * math.Pi * (math.Pow(0.03, 3) - math.Pow(0.01, 3))},
		{kind: Block, p: Params{"A": 0.1, "L": 0.1}, v0: 0.01},
	}
	for _, test := range tests {
		for _, n := range []int{1, 5, 50, 500} {
			p := Params{"n": float64(n)}
			for k, v := range test.p {
				p[k] = v
			}
			g, err := Build(test.kind, p)
			if err != nil {
				t.Fatalf("%v n=%d: %v", test.kind, n, err)
			}
			if g.N != n || len(g.V) != n {
				t.Fatalf("%v: n = %d, len(V) = %d", test.kind, g.N, len(g.V))
			}
			if !scalar.EqualWithinAbsOrRel(g.V0, test.v0, 1e-15, 1e-12) {
				t.Errorf("%v n=%d: V0 = %g, want %g", test.kind, n, g.V0, test.v0)
			}
			if sum := floats.Sum(g.V); !scalar.EqualWithinAbsOrRel(sum, test.v0, 1e-15, 1e-12) {
				t.Errorf("%v n=%d: sum(V) = %g, want %g", test.kind, n, sum, test.v0)
			}
			for i, v := range g.V {
				if v <= 0 {
					t.Errorf("%v n=%d: V[%d] = %g", test.kind, n, i, v)
				}
			}
		}
	}
}

func TestLumped(t *testing.T) {
	g, err := Build(Lumped, Params{"V": 2e-3, "A": 0.3})
	if err != nil {
		t.Fatal(err)
	}
	if g.N != 1 || g.V[0] != 2e-3 || g.AEast[0] != 0.3 || g.AWest[0] != 0 || g.Dx[0] != 0 || g.V0 != 2e-3 {
		t.Errorf("unexpected lumped grid %+v", g)
	}
	if _, err := Build(Lumped, Params{"V": 2e-3, "A": 0.3, "n": 3}); err == nil {
		t.Error("lumped grid with n=3 should fail")
	}
}

func TestFaces(t *testing.T) {
	g, err := Build(Sphere, Params{"n": 11, "R": 1})
	if err != nil {
		t.Fatal(err)
	}
	if g.AWest[0] != 0 {
		t.Errorf("sphere centre face area = %g", g.AWest[0])
	}
	if !scalar.EqualWithinAbsOrRel(g.AEast[g.Last()], 4*math.Pi, 1e-15, 1e-12) {
		t.Errorf("sphere surface area = %g", g.AEast[g.Last()])
	}
	for i := 0; i < g.N-1; i++ {
		if g.AEast[i] != g.AWest[i+1] {
			t.Errorf("face %d: east %g != west %g", i, g.AEast[i], g.AWest[i+1])
		}
	}
	if g.NodePos[0] != 0 || !scalar.EqualWithinAbsOrRel(g.NodePos[g.Last()], 1, 1e-15, 1e-12) {
		t.Errorf("node positions %v", g.NodePos)
	}
	// 边界节点只拥有半个控制体
	if !scalar.EqualWithinAbsOrRel(g.V[0], 4.0/3.0*math.Pi*math.Pow(0.05, 3), 1e-15, 1e-12) {
		t.Errorf("centre volume = %g", g.V[0])
	}
	for _, dx := range g.Dx {
		if !scalar.EqualWithinAbsOrRel(dx, 0.1, 1e-15, 1e-12) {
			t.Errorf("dx = %g", dx)
		}
	}

	h, err := Build(HollowSphere, Params{"n": 3, "Rin": 1, "Rout": 2})
	if err != nil {
		t.Fatal(err)
	}
	if !floats.Equal(h.NodePos, []float64{1, 1.5, 2}) {
		t.Errorf("hollow sphere node positions %v", h.NodePos)
	}
	if !scalar.EqualWithinAbsOrRel(h.AWest[0], 4*math.Pi, 1e-15, 1e-12) {
		t.Errorf("inner surface area = %g", h.AWest[0])
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		kind Kind
		p    Params
		key  string
	}{
		{kind: Cylinder, p: Params{"n": 5, "D": 1}, key: "H"},
		{kind: Cylinder, p: Params{"D": 1, "H": 1}, key: "n"},
		{kind: Sphere, p: Params{"n": 5}, key: "R"},
		{kind: Sphere, p: Params{"n": 5, "R": -1}, key: "R"},
		{kind: Sphere, p: Params{"n": 0, "R": 1}, key: "n"},
		{kind: Sphere, p: Params{"n": 2.5, "R": 1}, key: "n"},
		{kind: Sphere, p: Params{"n": math.Inf(1), "R": 1}, key: "n"},
		{kind: Sphere, p: Params{"n": math.NaN(), "R": 1}, key: "n"},
		{kind: Cylinder, p: Params{"n": 1e12, "D": 1, "H": 1}, key: "n"},
		{kind: Cylinder, p: Params{"n": 5, "D": 1, "H": math.Inf(1)}, key: "H"},
		{kind: Block, p: Params{"n": MaxNodes + 1, "A": 1, "L": 1}, key: "n"},
		{kind: HollowSphere, p: Params{"n": 5, "Rout": 1}, key: "Rin"},
		{kind: HollowSphere, p: Params{"n": 5, "Rin": 2, "Rout": 1}, key: "Rin"},
		{kind: Block, p: Params{"n": 5, "L": 1}, key: "A"},
		{kind: Lumped, p: Params{"A": 1}, key: "V"},
	}
	for _, test := range tests {
		_, err := Build(test.kind, test.p)
		if !errors.Is(err, model.ErrConfiguration) {
			t.Errorf("%v %v: want configuration error, got %v", test.kind, test.p, err)
			continue
		}
		var cfgErr *model.ConfigurationError
		if errors.As(err, &cfgErr) && cfgErr.Key != test.key {
			t.Errorf("%v %v: error names key %q, want %q", test.kind, test.p, cfgErr.Key, test.key)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, name := range KindNames() {
		k, err := ParseKind(name)
		if err != nil || k.String() != name {
			t.Errorf("ParseKind(%q) = %v, %v", name, k, err)
		}
	}
	_, err := ParseKind("torus")
	var cfgErr *model.ConfigurationError
	if !errors.As(err, &cfgErr) || len(cfgErr.Valid) != 5 {
		t.Errorf("ParseKind(torus) = %v", err)
	}
}

func TestScale(t *testing.T) {
	g, _ := Build(Cylinder, Params{"n": 10, "D": 0.3, "H": 1})
	s := g.Scale(0.4)
	if !scalar.EqualWithinAbsOrRel(floats.Sum(s.V), 0.4*g.V0, 1e-15, 1e-12) {
		t.Errorf("scaled volume = %g", floats.Sum(s.V))
	}
	if s.AEast[3] != g.AEast[3] || g.V[3] == s.V[3] {
		t.Error("scale should change volumes only")
	}
}
