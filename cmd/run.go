package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"tes/calculator"
	"tes/config"
	"tes/model"
	"tes/store"
)

var (
	configFiles []string
	dbPath      string
	workers     int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run simulations from ini files.",
	Long: `run loads every --config file, builds the simulation it describes and runs
it to t_end. Several files are run concurrently on --workers goroutines.
With --db the configuration and all output snapshots are saved to SQLite.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(configFiles) == 0 {
			return errors.New("no --config file")
		}
		sims := make([]*calculator.Simulation, len(configFiles))
		raw := make([]string, len(configFiles))
		for i, path := range configFiles {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			cfg, err := config.Parse(data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if sims[i], err = cfg.Build(); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if sims[i].Name == "" {
				sims[i].Name = path
			}
			raw[i] = string(data)
		}

		var db *store.DB
		ids := make([]uuid.UUID, len(sims))
		if dbPath != "" {
			var err error
			if db, err = store.Open(dbPath); err != nil {
				return err
			}
			defer db.Close()
			for i, sim := range sims {
				if ids[i], err = db.CreateRun(sim.Name, raw[i]); err != nil {
					return err
				}
			}
		}

		errs := calculator.RunBatch(sims, workers)

		var failed int
		for i, sim := range sims {
			status := store.StatusFinished
			if errs[i] != nil {
				failed++
				status = store.StatusFailed
				log.WithField("simulation", sim.Name).WithError(errs[i]).Error("simulation failed")
			}
			if db != nil {
				var snaps []model.Snapshot
				for _, p := range sim.Phases() {
					snaps = append(snaps, p.Snapshots()...)
				}
				if err := db.SaveSnapshots(ids[i], snaps); err != nil {
					return err
				}
				if err := db.FinishRun(ids[i], status, sim.Steps()); err != nil {
					return err
				}
			}
			report(cmd, sim, ids[i])
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d simulations failed", failed, len(sims))
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringSliceVarP(&configFiles, "config", "c", nil, "simulation ini file, may be repeated")
	runCmd.Flags().StringVar(&dbPath, "db", "", "SQLite file to save runs and snapshots to")
	runCmd.Flags().IntVar(&workers, "workers", 2, "number of simulations run at the same time")
}

// report 每个相最终的温度范围和总焓
func report(cmd *cobra.Command, sim *calculator.Simulation, id uuid.UUID) {
	cmd.Printf("%s: %s steps", sim.Name, humanize.Comma(int64(sim.Steps())))
	if id != uuid.Nil {
		cmd.Printf(", run %s", id)
	}
	cmd.Println()
	for _, p := range sim.Phases() {
		T := p.T().Data
		cmd.Printf("  %-12s T %.2f .. %.2f K  energy %s J  snapshots %d\n",
			p.Name, floats.Min(T), floats.Max(T),
			humanize.CommafWithDigits(p.TotalEnergy(), 0), len(p.Snapshots()))
	}
}
