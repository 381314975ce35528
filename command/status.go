package command

import (
	"errors"

	"github.com/J08nY/ecsca-engine/bserrors"
)

// Status bytes, per spec.md §7's discriminated status set
// {ok, oom, invalid-input, buffer-too-small, overflow, max-iterations}.
const (
	StatusOK             byte = 0x00
	StatusOOM            byte = 0x01
	StatusInvalidInput   byte = 0x02
	StatusBufferTooSmall byte = 0x03
	StatusOverflow       byte = 0x04
	StatusMaxIterations  byte = 0x05
)

// statusFor translates an engine/core error into the wire status byte,
// per spec.md §7: "command handlers translate failures to a non-zero
// status byte; malformed TLV yields a no-op with error status." No
// failure here is fatal: previous engine state is left intact either way
// (spec.md §7's "Fatal: none at runtime").
func statusFor(err error) byte {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, bserrors.ErrOOM):
		return StatusOOM
	case errors.Is(err, bserrors.ErrBufferTooSmall):
		return StatusBufferTooSmall
	case errors.Is(err, bserrors.ErrOverflow):
		return StatusOverflow
	case errors.Is(err, bserrors.ErrMaxIterations):
		return StatusMaxIterations
	default:
		return StatusInvalidInput
	}
}
