package der

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/J08nY/ecsca-engine/bigint"
)

func TestEncodeSignatureScenario(t *testing.T) {
	got := EncodeSignature(bigint.FromUint64(1), bigint.FromUint64(1))
	want := []byte{0x30, 0x06, 0x02, 0x01, 0x01, 0x02, 0x01, 0x01}
	require.Equal(t, want, got)
}

func TestDecodeSignatureScenario(t *testing.T) {
	r, s, err := DecodeSignature([]byte{0x30, 0x06, 0x02, 0x01, 0x01, 0x02, 0x01, 0x01})
	require.NoError(t, err)
	require.True(t, r.Equal(bigint.FromUint64(1)))
	require.True(t, s.Equal(bigint.FromUint64(1)))
}

func TestSignatureRoundTrip(t *testing.T) {
	r, _ := bigint.FromHex("ab1234567890abcdef1234567890abcdef1234567890abcdef1234567890ab")
	s, _ := bigint.FromHex("ff00000000000000000000000000000000000000000000000000000000ff")

	encoded := EncodeSignature(r, s)
	gotR, gotS, err := DecodeSignature(encoded)
	require.NoError(t, err)
	require.True(t, gotR.Equal(r))
	require.True(t, gotS.Equal(s))
}

func TestEncodeIntegerPrependsZeroForHighBit(t *testing.T) {
	v := bigint.FromUint64(0x80)
	encoded := EncodeSignature(v, bigint.FromUint64(1))
	require.Equal(t, byte(0x02), encoded[2])
	require.Equal(t, byte(0x02), encoded[3]) // length 2: 0x00, 0x80
	require.Equal(t, byte(0x00), encoded[4])
	require.Equal(t, byte(0x80), encoded[5])
}

func TestDecodeRejectsTruncatedInput(t *testing.T) {
	_, _, err := DecodeSignature([]byte{0x30, 0x06, 0x02, 0x01})
	require.Error(t, err)
}
