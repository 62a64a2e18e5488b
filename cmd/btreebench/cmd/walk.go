package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/ssargent/btreering/pkg/btree"
)

var walkCmd = &cobra.Command{
	Use:   "walk <n>",
	Short: "Build a tree of n values and walk it in order",
	Long: `Walk builds a tree from n random integers, then iterates it from
Begin to End, verifying the walk comes out in ascending order.

Example:
  btreebench walk 1000`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		n, err := parseCount(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		tree := btree.New(intCmp,
			btree.WithMin(cfg.BTree.Min),
			btree.WithMaxHeight(cfg.BTree.MaxHeight))

		for _, v := range rand.New(rand.NewSource(time.Now().UnixNano())).Perm(n) {
			if err := tree.Insert(v); err != nil {
				fmt.Printf("Error inserting %d: %v\n", v, err)
				return
			}
		}

		count := 0
		prev := -1
		for it := tree.Begin(); !it.IsEnd(); {
			v := tree.Get(it).(int)
			if v <= prev {
				fmt.Printf("out of order walk: %d did not follow %d\n", v, prev)
				return
			}
			prev = v
			count++
			if err := it.Increment(); err != nil {
				fmt.Printf("Error advancing iterator: %v\n", err)
				return
			}
		}

		fmt.Printf("walked %d values in ascending order\n", count)
	},
}

func init() {
	rootCmd.AddCommand(walkCmd)
}
