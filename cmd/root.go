package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ptbdnr/vrp/app"
	"github.com/ptbdnr/vrp/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "vrp",
	Short: "Constrained route sequencing solver",
	Long: `vrp loads a node instance, searches for the route with the flattest
leg spread under the parity travel rules and writes the report, the export
files and the configured telemetry.`,
	RunE: run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute parses the command line and runs the selected command.
func Execute() error { return rootCmd.Execute() }

func run(cmd *cobra.Command, args []string) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := svc.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close service: %w", cerr))
		}
	}()
	return svc.Run(ctx)
}
