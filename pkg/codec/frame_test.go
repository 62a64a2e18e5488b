package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/btreering/pkg/status"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	payloads := [][]byte{
		[]byte("hello world"),
		[]byte(""),
		make([]byte, 4096),
		{0x00, 0x01, 0x02, 0xFF},
	}

	for i, payload := range payloads {
		encoded := Encode(payload, uint64(i))

		f, n, err := Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, len(encoded), n)
		assert.Equal(t, payload, f.Payload)
		assert.Equal(t, uint64(i), f.Sequence)
		require.NoError(t, f.Validate())
	}
}

func TestDecodeIncompleteHeader(t *testing.T) {
	_, _, err := Decode([]byte{1, 2, 3})
	assert.ErrorIs(t, err, status.ErrIncomplete)
}

func TestDecodeIncompletePayload(t *testing.T) {
	encoded := Encode([]byte("full message"), 1)
	_, _, err := Decode(encoded[:len(encoded)-2])
	assert.ErrorIs(t, err, status.ErrIncomplete)
}

func TestDecodeCorruptedCRC(t *testing.T) {
	encoded := Encode([]byte("full message"), 1)
	encoded[0] ^= 0xFF

	_, _, err := Decode(encoded)
	assert.ErrorIs(t, err, status.ErrCorrupt)
}

func TestDecodeCorruptedPayload(t *testing.T) {
	encoded := Encode([]byte("full message"), 1)
	encoded[HeaderSize] ^= 0xFF

	_, _, err := Decode(encoded)
	assert.ErrorIs(t, err, status.ErrCorrupt)
}

func TestDecodeCorruptedSequence(t *testing.T) {
	encoded := Encode([]byte("full message"), 1)
	encoded[8] ^= 0xFF

	_, _, err := Decode(encoded)
	assert.ErrorIs(t, err, status.ErrCorrupt)
}

func TestDecodeConsumesOnlyOneFrameFromAStream(t *testing.T) {
	stream := append(Encode([]byte("first"), 1), Encode([]byte("second"), 2)...)

	f1, n1, err := Decode(stream)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), f1.Payload)
	assert.Equal(t, uint64(1), f1.Sequence)

	f2, _, err := Decode(stream[n1:])
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), f2.Payload)
	assert.Equal(t, uint64(2), f2.Sequence)
}

func TestFrameSize(t *testing.T) {
	f := NewFrame(7, []byte("abc"))
	assert.Equal(t, HeaderSize+3, f.Size())
	assert.Equal(t, uint64(7), f.Sequence)
}
