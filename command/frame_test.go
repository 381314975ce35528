package command

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFrameDecodesLetterAndHexPayload(t *testing.T) {
	f, err := ParseFrame("c deadbeef ")
	require.NoError(t, err)
	require.Equal(t, byte('c'), f.Letter)
	require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, f.Payload)
}

func TestParseFrameRejectsOddLengthHex(t *testing.T) {
	_, err := ParseFrame("c abc")
	require.Error(t, err)
}

func TestParseFrameRejectsEmptyLine(t *testing.T) {
	_, err := ParseFrame("")
	require.Error(t, err)
}

func TestFormatFrameRoundTripsThroughParseFrame(t *testing.T) {
	rendered := FormatFrame('k', []byte{0x01, 0x02})
	f, err := ParseFrame(rendered[:len(rendered)-1])
	require.NoError(t, err)
	require.Equal(t, byte('k'), f.Letter)
	require.Equal(t, []byte{0x01, 0x02}, f.Payload)
}

func TestFormatStatusRendersStatusByte(t *testing.T) {
	require.Equal(t, "z 02 \n", FormatStatus(StatusInvalidInput))
}
