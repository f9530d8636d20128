package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ptbdnr/vrp/app"
	"github.com/ptbdnr/vrp/config"
	"github.com/ptbdnr/vrp/core/bounds"
	"github.com/ptbdnr/vrp/core/network"
	"github.com/ptbdnr/vrp/infra/logger"
)

var boundsCmd = &cobra.Command{
	Use:   "bounds",
	Short: "Print objective bounds for the configured instance",
	RunE:  runBounds,
}

func init() {
	rootCmd.AddCommand(boundsCmd)
}

func runBounds(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.SetLevel(cfg.Logging.Level)
	log := logger.NewWithBackend(cfg.Logging.Backend, "bounds-command")

	nodes, err := app.LoadNodes(cfg, log)
	if err != nil {
		return fmt.Errorf("load instance: %w", err)
	}
	store, err := network.NewStore(nodes)
	if err != nil {
		return fmt.Errorf("node store: %w", err)
	}
	calc := bounds.NewCalculator(store, network.NewDistanceCache(), log)
	lower, upper := calc.Range()
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "nodes: %d\nlower bound: %.4f\nupper bound: %.4f\n", store.Len(), lower, upper)
	return err
}
