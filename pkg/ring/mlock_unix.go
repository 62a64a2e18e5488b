//go:build unix

package ring

import "golang.org/x/sys/unix"

// mlockBuffer locks buf's pages into physical memory so the reader/writer
// goroutines never fault on it under memory pressure.
func mlockBuffer(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	return unix.Mlock(buf)
}
