// Package cmd 命令行入口
package cmd

import (
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var logLevel string

// Root 所有子命令的根命令
var Root = &cobra.Command{
	Use:   "tes",
	Short: "One-dimensional two-phase thermal energy storage simulator.",
	Long: `tes simulates the transient temperature field of packed-bed thermal energy
storage: a fluid flowing through a porous domain and the solid particles it
exchanges heat with, each discretized with a one-dimensional finite volume
scheme and advanced with explicit Euler steps.

Simulations are described by ini files, see conf/packed_bed.ini.`,
	SilenceUsage:      true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setLogger() },
}

func init() {
	Root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
	Root.AddCommand(runCmd, serveCmd, verifyCmd, substancesCmd)
}

func setLogger() error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	return nil
}

func Execute() error {
	return Root.Execute()
}
