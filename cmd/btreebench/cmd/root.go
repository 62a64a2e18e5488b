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
	configPath string
	min        int
	maxHeight  int
	cfg        *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "btreebench",
	Short: "Benchmark and exercise the btreering BTree",
	Long: `btreebench drives a pkg/btree.Tree through insert and in-order walk
workloads, reporting throughput. The insert command records Prometheus
metrics in the default registry; no exporter serves them.`,
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

		if min > 0 {
			cfg.BTree.Min = min
		}
		if maxHeight > 0 {
			cfg.BTree.MaxHeight = maxHeight
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
	rootCmd.PersistentFlags().IntVar(&min, "min", 0, "override the tree's minimum branching factor")
	rootCmd.PersistentFlags().IntVar(&maxHeight, "max-height", 0, "override the tree's maximum height")
}
