package command

import (
	"encoding/hex"
	"strings"

	"github.com/J08nY/ecsca-engine/bserrors"
)

// Frame is one decoded command line, per spec.md §6: "an ASCII frame
// `c XX…XX \n` where `c` is a single command letter and `XX…XX` is an
// even-length hex string of the payload bytes."
type Frame struct {
	Letter  byte
	Payload []byte
}

// ParseFrame decodes one command-frame line (without its trailing
// newline, which the caller's line-reader already stripped).
func ParseFrame(line string) (Frame, error) {
	line = strings.TrimSpace(line)
	if len(line) == 0 {
		return Frame{}, bserrors.Wrapf(bserrors.ErrInvalidInput, "empty command line")
	}
	letter := line[0]
	rest := strings.TrimSpace(line[1:])
	payload, err := hex.DecodeString(rest)
	if err != nil {
		return Frame{}, bserrors.Wrapf(bserrors.ErrInvalidInput, "malformed hex payload: %v", err)
	}
	return Frame{Letter: letter, Payload: payload}, nil
}

// FormatFrame renders a reply frame `k LL…LL \n`, per spec.md §6: letter,
// space, even-length hex payload, trailing space, newline.
func FormatFrame(letter byte, payload []byte) string {
	return string(letter) + " " + hex.EncodeToString(payload) + " \n"
}

// FormatStatus renders the status reply `z NN \n`, a single status byte.
func FormatStatus(status byte) string {
	return FormatFrame('z', []byte{status})
}
