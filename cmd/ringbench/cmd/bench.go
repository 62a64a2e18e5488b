package cmd

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"github.com/ssargent/btreering/pkg/codec"
	"github.com/ssargent/btreering/pkg/metrics"
	"github.com/ssargent/btreering/pkg/ring"
)

var messageSize int

var benchCmd = &cobra.Command{
	Use:   "bench <n>",
	Short: "Push n framed messages through the ring and report throughput",
	Long: `Bench runs one producer goroutine and one consumer goroutine over a
single ring, framing each message with pkg/codec so the consumer can detect
corruption, and reports aggregate throughput.

Example:
  ringbench bench 100000`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fmt.Printf("Error: invalid count %q\n", args[0])
			return
		}

		r := ring.New(cfg.Ring.CapacityBytes)
		defer r.Close()

		if cfg.Ring.Mlock {
			if err := r.Mlock(); err != nil {
				fmt.Printf("warning: mlock failed: %v\n", err)
			}
		}

		m := metrics.NewMetrics()
		payload := make([]byte, messageSize)
		copy(payload, ksuid.New().Bytes())

		var wg sync.WaitGroup
		wg.Add(2)

		start := time.Now()

		go func() {
			defer wg.Done()
			for i := 0; i < n; i++ {
				frame := codec.Encode(payload, uint64(i))
				opStart := time.Now()
				for r.Write(frame) == 0 {
				}
				m.RecordRingOperation("write", true, len(frame), time.Since(opStart))
			}
		}()

		go func() {
			defer wg.Done()
			frameSize := codec.HeaderSize + messageSize
			dst := make([]byte, frameSize)
			for i := 0; i < n; i++ {
				opStart := time.Now()
				for r.Read(dst) == 0 {
				}
				if _, _, err := codec.Decode(dst); err != nil {
					fmt.Printf("Error decoding frame %d: %v\n", i, err)
				}
				m.RecordRingOperation("read", true, len(dst), time.Since(opStart))
			}
		}()

		wg.Wait()
		elapsed := time.Since(start)

		total := n * (codec.HeaderSize + messageSize)
		fmt.Printf("moved %d messages (%d bytes) in %s (%.0f msgs/sec, %.2f MB/sec)\n",
			n, total, elapsed, float64(n)/elapsed.Seconds(),
			float64(total)/elapsed.Seconds()/(1<<20))
	},
}

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().IntVar(&messageSize, "message-size", 64, "payload size in bytes for each framed message")
}
