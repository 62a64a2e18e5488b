//go:build fuzz
// +build fuzz

package codec

import (
	"bytes"
	"testing"
)

// FuzzFrameRoundTrip tests encode/decode round-trip with random payloads.
func FuzzFrameRoundTrip(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("message"))
	f.Add([]byte{0x00, 0x01, 0x02})

	f.Fuzz(func(t *testing.T, payload []byte) {
		if len(payload) > 100000 {
			t.Skip("payload too large for fuzz test")
		}

		encoded := Encode(payload, 42)

		frame, n, err := Decode(encoded)
		if err != nil {
			t.Fatalf("Decode failed for len(payload)=%d: %v", len(payload), err)
		}
		if n != len(encoded) {
			t.Fatalf("consumed %d bytes, want %d", n, len(encoded))
		}
		if !bytes.Equal(frame.Payload, payload) {
			t.Errorf("payload mismatch: got %q, want %q", frame.Payload, payload)
		}
		if err := frame.Validate(); err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
	})
}
