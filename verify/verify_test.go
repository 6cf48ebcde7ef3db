package verify

import (
	"testing"
)

func TestCases(t *testing.T) {
	if testing.Short() {
		t.Skip("analytical comparison runs about 50000 time steps")
	}
	cases, err := Cases()
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range Run(cases, 3) {
		if r.Err != nil {
			t.Errorf("%s: %v", r.Name, r.Err)
			continue
		}
		if !r.Passed() {
			t.Errorf("%s: max deviation %.2e exceeds %.0e", r.Name, r.MaxDeviation, r.Tolerance)
		}
		if r.Steps == 0 {
			t.Errorf("%s: no steps", r.Name)
		}
	}
}
