package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/ssargent/btreering/pkg/btree"
	"github.com/ssargent/btreering/pkg/metrics"
)

var insertCmd = &cobra.Command{
	Use:   "insert <n>",
	Short: "Insert n random integers and report throughput",
	Long: `Insert builds a tree from n random, unique integers and reports
total time and operations per second.

Example:
  btreebench insert 1000000`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		n, err := parseCount(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		m := metrics.NewMetrics()
		tree := btree.New(intCmp,
			btree.WithMin(cfg.BTree.Min),
			btree.WithMaxHeight(cfg.BTree.MaxHeight))

		values := rand.New(rand.NewSource(time.Now().UnixNano())).Perm(n)

		start := time.Now()
		for _, v := range values {
			opStart := time.Now()
			err := tree.Insert(v)
			m.RecordBTreeOperation("insert", err == nil, time.Since(opStart))
			if err != nil {
				fmt.Printf("Error inserting %d: %v\n", v, err)
				return
			}
		}
		elapsed := time.Since(start)

		m.UpdateBTreeStats(tree.Size(), tree.Height())
		fmt.Printf("inserted %d values in %s (%.0f ops/sec)\n",
			n, elapsed, float64(n)/elapsed.Seconds())
	},
}

func init() {
	rootCmd.AddCommand(insertCmd)
}
