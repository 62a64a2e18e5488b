package cmd

import (
	"bytes"
	"fmt"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/ssargent/btreering/pkg/btree"
)

func ksuidCmp(a, b any) int {
	ak, bk := a.(ksuid.KSUID), b.(ksuid.KSUID)
	return bytes.Compare(ak.Bytes(), bk.Bytes())
}

var idsCmd = &cobra.Command{
	Use:   "ids <n>",
	Short: "Insert n k-sortable IDs and confirm they walk out in ascending order",
	Long: `Ids builds a tree keyed by ksuid.KSUID instead of an integer, showing
the tree works with any opaque, comparator-ordered value. The walk is checked
to be strictly ascending in KSUID byte order. KSUIDs sort first by their
one-second timestamp and then by random payload, so the walk follows
generation order only to the second.

Example:
  btreebench ids 10000`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		n, err := parseCount(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		tree := btree.New(ksuidCmp,
			btree.WithMin(cfg.BTree.Min),
			btree.WithMaxHeight(cfg.BTree.MaxHeight))

		start := time.Now()
		for i := 0; i < n; i++ {
			if err := tree.Insert(ksuid.New()); err != nil {
				fmt.Printf("Error inserting id %d: %v\n", i, err)
				return
			}
		}
		elapsed := time.Since(start)

		var prev ksuid.KSUID
		count := 0
		for it := tree.Begin(); !it.IsEnd(); {
			id := tree.Get(it).(ksuid.KSUID)
			if count > 0 && ksuidCmp(id, prev) <= 0 {
				fmt.Printf("out of order walk at position %d\n", count)
				return
			}
			prev = id
			count++
			if err := it.Increment(); err != nil {
				fmt.Printf("Error advancing iterator: %v\n", err)
				return
			}
		}

		fmt.Printf("inserted and walked %d ids in %s (%.0f ops/sec)\n",
			count, elapsed, float64(n)/elapsed.Seconds())
	},
}

func init() {
	rootCmd.AddCommand(idsCmd)
}
