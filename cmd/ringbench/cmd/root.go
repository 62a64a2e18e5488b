/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/btreering/pkg/config"
)

var (
	configPath   string
	capacity     uint32
	mlockEnabled bool
	cfg          *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ringbench",
	Short: "Benchmark and exercise the btreering SPSC ring buffer",
	Long: `ringbench drives a pkg/ring.Ring through a producer/consumer
workload, reporting throughput. Prometheus metrics are recorded in the
default registry; no exporter serves them.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			cfg, err = config.LoadConfig(configPath)
		} else {
			cfg = config.DefaultConfig()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if capacity > 0 {
			cfg.Ring.CapacityBytes = capacity
		}
		if cmd.Flags().Changed("mlock") {
			cfg.Ring.Mlock = mlockEnabled
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().Uint32Var(&capacity, "capacity", 0, "override the ring's capacity in bytes (rounded up to a power of two)")
	rootCmd.PersistentFlags().BoolVar(&mlockEnabled, "mlock", false, "mlock the ring's backing buffer")
}
