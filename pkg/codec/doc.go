// Package codec provides binary message framing for the payloads carried
// through a pkg/ring ring buffer.
//
// The codec package implements a length-prefixed, checksummed, sequenced
// wire format so a ring consumer can detect a torn or corrupted message,
// or a gap in the sequence, without needing the ring itself to understand
// message boundaries.
//
// # Frame Format
//
// Frames are serialized in a binary format with the following structure:
//
//	[CRC32(4)][PayloadSize(4)][Sequence(8)][Payload]
//
// Fields:
//   - CRC32: 32-bit CRC checksum for integrity validation (little-endian)
//   - PayloadSize: 32-bit unsigned integer indicating payload length in bytes (little-endian)
//   - Sequence: 64-bit unsigned sequence number, assigned by the caller (little-endian)
//   - Payload: variable-length message data
//
// The total frame size is: 16 bytes (header) + len(Payload).
//
// # CRC32 Calculation
//
// The CRC32 checksum is calculated over all fields except the CRC32 field
// itself:
//   - PayloadSize (4 bytes)
//   - Sequence (8 bytes)
//   - Payload data (PayloadSize bytes)
//
// This ensures that any corruption in the frame header or payload is
// detected during validation.
//
// # Usage
//
// Basic encoding and decoding:
//
//	encoded := codec.Encode([]byte("message"), seq)
//
//	frame, n, err := codec.Decode(buffered)
//	if err != nil {
//	    return err // status.ErrIncomplete: wait for more bytes; status.ErrCorrupt: drop the stream
//	}
//	buffered = buffered[n:]
//
// # Error Handling
//
// Decode distinguishes two failure modes via the sentinel errors in
// pkg/status: status.ErrIncomplete means the caller hasn't yet buffered a
// full frame and should retry once more bytes have arrived (typically from
// a pkg/ring Read), while status.ErrCorrupt means the bytes that are present
// fail their checksum and the stream should be considered desynchronized.
package codec
