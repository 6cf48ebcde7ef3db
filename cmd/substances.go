package cmd

import (
	"github.com/spf13/cobra"

	"tes/model"
	"tes/substance"
)

var substancesCmd = &cobra.Command{
	Use:   "substances",
	Short: "List the built-in substances.",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range substance.Names() {
			e, _ := substance.Get(name)
			mid := (e.Range.TMin + e.Range.TMax) / 2
			m := e.Model
			h := m.H(mid)
			cmd.Printf("%-10s %-5s %7.2f .. %7.2f K   at %.0f ℃: rho %.4g  cp %.4g  k %.4g\n",
				name, e.Kind, e.Range.TMin, e.Range.TMax, mid-model.ZeroCelsius, m.Rho(h), m.Cp(h), m.K(h))
		}
	},
}
