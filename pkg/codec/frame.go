// Package codec provides binary message framing for payloads pushed through
// a pkg/ring ring buffer.
//
// # Frame Format
//
// Frames are serialized in a binary format with the following structure:
//
//	[CRC32(4)][PayloadSize(4)][Sequence(8)][Payload]
//
// Fields:
//   - CRC32: 32-bit CRC checksum over PayloadSize, Sequence, and Payload (little-endian)
//   - PayloadSize: 32-bit unsigned integer indicating payload length in bytes (little-endian)
//   - Sequence: 64-bit unsigned sequence number, assigned by the caller (little-endian)
//   - Payload: variable-length message data
//
// The total frame size is: 16 bytes (header) + len(Payload).
//
// Framing messages this way lets a ring consumer detect torn reads (a
// producer crashing mid-write), bit corruption, and dropped or reordered
// messages (via Sequence) without needing the ring itself to be
// message-aware: the ring only ever sees bytes.
package codec

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/ssargent/btreering/pkg/status"
)

// HeaderSize is the fixed size of a Frame's header, in bytes.
const HeaderSize = 16

// Frame is a length-prefixed, checksummed, sequenced message.
type Frame struct {
	CRC32    uint32
	Sequence uint64
	Payload  []byte
}

// NewFrame builds a Frame wrapping payload and tagged with seq. The CRC32 is
// computed eagerly so Encode never fails.
func NewFrame(seq uint64, payload []byte) Frame {
	f := Frame{Sequence: seq, Payload: payload}
	f.CRC32 = f.calculateCRC32()
	return f
}

// Size returns the total encoded size of f.
func (f Frame) Size() int {
	return HeaderSize + len(f.Payload)
}

func (f Frame) calculateCRC32() uint32 {
	h := crc32.NewIEEE()
	var fieldBuf [12]byte
	binary.LittleEndian.PutUint32(fieldBuf[0:4], uint32(len(f.Payload)))
	binary.LittleEndian.PutUint64(fieldBuf[4:12], f.Sequence)
	h.Write(fieldBuf[:])
	h.Write(f.Payload)
	return h.Sum32()
}

// Validate reports whether f's stored CRC32 matches its payload.
func (f Frame) Validate() error {
	if f.calculateCRC32() != f.CRC32 {
		return fmt.Errorf("codec: frame CRC32 mismatch: %w", status.ErrCorrupt)
	}
	return nil
}

// Encode serializes payload, tagged with seq, into a framed, checksummed
// message.
func Encode(payload []byte, seq uint64) []byte {
	f := NewFrame(seq, payload)
	buf := make([]byte, f.Size())
	binary.LittleEndian.PutUint32(buf[0:4], f.CRC32)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(payload)))
	binary.LittleEndian.PutUint64(buf[8:16], seq)
	copy(buf[HeaderSize:], payload)
	return buf
}

// Decode parses a single Frame from the front of data. It returns the
// number of bytes consumed from data and the decoded Frame. It returns
// status.ErrIncomplete if data does not yet hold a complete frame (the caller
// should wait for more bytes, e.g. from a ring buffer still filling), or
// status.ErrCorrupt if the frame's declared payload size overflows int or
// its checksum fails to validate. No other limit is placed on the declared
// size.
func Decode(data []byte) (Frame, int, error) {
	if len(data) < HeaderSize {
		return Frame{}, 0, status.ErrIncomplete
	}

	crc := binary.LittleEndian.Uint32(data[0:4])
	payloadSize := binary.LittleEndian.Uint32(data[4:8])
	seq := binary.LittleEndian.Uint64(data[8:16])

	total := HeaderSize + int(payloadSize)
	if total < HeaderSize {
		// payloadSize overflowed int on a 32-bit platform.
		return Frame{}, 0, status.ErrCorrupt
	}
	if len(data) < total {
		return Frame{}, 0, status.ErrIncomplete
	}

	payload := make([]byte, payloadSize)
	copy(payload, data[HeaderSize:total])

	f := Frame{CRC32: crc, Sequence: seq, Payload: payload}
	if err := f.Validate(); err != nil {
		return Frame{}, 0, err
	}
	return f, total, nil
}
