package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tes/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Compare the solver with analytical solutions.",
	Long: `verify runs convective heating of a sphere and of a plane wall and a
temperature step carried by plug flow, and prints the largest deviation of the
dimensionless temperature from the analytical solution.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cases, err := verify.Cases()
		if err != nil {
			return err
		}
		start := time.Now()
		var failed int
		for _, r := range verify.Run(cases, len(cases)) {
			status := "ok"
			if !r.Passed() {
				status = "FAIL"
				failed++
			}
			if r.Err != nil {
				cmd.Printf("%-10s %s  %v\n", r.Name, status, r.Err)
				continue
			}
			cmd.Printf("%-10s %-4s  max |Δθ| %.2e  tolerance %.0e  steps %d\n",
				r.Name, status, r.MaxDeviation, r.Tolerance, r.Steps)
		}
		cmd.Printf("%d cases in %s\n", len(cases), time.Since(start).Round(time.Millisecond))
		if failed > 0 {
			return fmt.Errorf("%d cases failed", failed)
		}
		return nil
	},
}
