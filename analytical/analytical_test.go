package analytical

import (
	"math"
	"testing"
)

func TestSphereEigenvalues(t *testing.T) {
	for _, Bi := range []float64{0.1, 1, 7.97, 100} {
		for i, l := range SphereEigenvalues(Bi, 20) {
			if r := 1 - l/math.Tan(l); math.Abs(r-Bi) > 1e-8*math.Max(1, Bi) {
				t.Errorf("Bi=%g root %d: 1-λcotλ = %g", Bi, i, r)
			}
			if l <= math.Pi*float64(i) || l >= math.Pi*float64(i+1) {
				t.Errorf("Bi=%g root %d = %g outside its bracket", Bi, i, l)
			}
		}
	}
}

func TestWallEigenvalues(t *testing.T) {
	// 查表：Bi = 1 时 λ1 = 0.8603
	l := WallEigenvalues(1, 1)[0]
	if math.Abs(l-0.8603) > 1e-4 {
		t.Errorf("λ1 = %g, want 0.8603", l)
	}
	for i, l := range WallEigenvalues(5, 20) {
		if r := l * math.Tan(l); math.Abs(r-5) > 1e-7 {
			t.Errorf("root %d: λtanλ = %g", i, r)
		}
	}
}

func TestInitialState(t *testing.T) {
	// Fo 很小时内部仍为初始温度
	xs := []float64{0, 0.25, 0.5}
	for k, th := range Sphere(5, 1e-3, xs) {
		if math.Abs(th-1) > 1e-3 {
			t.Errorf("sphere θ(%g) = %g at Fo≈0", xs[k], th)
		}
	}
	for k, th := range Wall(5, 1e-3, xs) {
		if math.Abs(th-1) > 1e-3 {
			t.Errorf("wall θ(%g) = %g at Fo≈0", xs[k], th)
		}
	}
}

func TestSphereOneTerm(t *testing.T) {
	// Fo > 0.2 时一项近似足够，Bi = 1：λ1 = 1.5708，C1 = 1.2732
	Bi, Fo := 1.0, 1.0
	th := Sphere(Bi, Fo, []float64{0})[0]
	want := 1.2732 * math.Exp(-1.5708*1.5708*Fo)
	if math.Abs(th-want) > 1e-3 {
		t.Errorf("θ0 = %g, want %g", th, want)
	}
}

func TestMonotonic(t *testing.T) {
	rs := []float64{0, 0.2, 0.4, 0.6, 0.8, 1}
	th := Sphere(7.97, 0.0483, rs)
	for i := 1; i < len(th); i++ {
		if th[i] > th[i-1]+1e-12 {
			t.Errorf("θ increases towards the surface: %v", th)
		}
	}
}

func TestStep(t *testing.T) {
	got := Step(0.3, []float64{0, 0.1, 0.29, 0.3, 0.5, 1})
	want := []float64{0, 0, 0, 1, 1, 1}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("Step = %v, want %v", got, want)
			break
		}
	}
}
