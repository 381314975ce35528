// Package command implements spec.md §6's external interface: the
// byte-framed ASCII command loop, its nested TLV payload grammar, and the
// twelve command letters, dispatched against the process-wide engine
// singleton.
//
// Grounded on spec.md §6's grammar directly; no original_source file is
// in scope, since the dispatcher itself is listed as an out-of-scope
// collaborator per spec.md §1. The TLV decoder and frame codec are
// therefore new code implementing a documented external interface, using
// only bufio/encoding/hex per SPEC_FULL.md's domain-stack wiring note.
package command

import "github.com/J08nY/ecsca-engine/bserrors"

// DecodeTLV parses a repeated {name:1 byte, len:1 byte, value:len bytes}
// sequence into a flat map keyed by path, per spec.md §6: "if the high
// bit of name is set, the value is itself a TLV sub-tree and name & 0x7f
// is the child container name. Paths are concatenations of single-byte
// names." So a curve payload's "gx"/"gy" are physically a parent entry
// named 'g' (high bit set) containing children 'x' and 'y'; this
// decoder flattens that nesting into the "gx"/"gy" keys spec.md §6's
// example payload names directly.
func DecodeTLV(data []byte) (map[string][]byte, error) {
	out := make(map[string][]byte)
	if err := decodeTLVInto(data, "", out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeTLVInto(data []byte, prefix string, out map[string][]byte) error {
	for len(data) > 0 {
		if len(data) < 2 {
			return bserrors.Wrapf(bserrors.ErrInvalidInput, "TLV entry truncated before length byte")
		}
		name := data[0]
		length := int(data[1])
		if len(data) < 2+length {
			return bserrors.Wrapf(bserrors.ErrInvalidInput, "TLV entry for name 0x%02x truncated: need %d bytes", name, length)
		}
		value := data[2 : 2+length]
		rest := data[2+length:]

		if name&0x80 != 0 {
			childPrefix := prefix + string(rune(name&0x7f))
			if err := decodeTLVInto(value, childPrefix, out); err != nil {
				return err
			}
		} else {
			out[prefix+string(rune(name))] = value
		}
		data = rest
	}
	return nil
}

// EncodeTLV renders a flat one-level {name:value} set back into TLV
// entries, for tests and for any future command that needs to emit a
// TLV-shaped reply (spec.md §6's reply grammar, per the letter table, is
// otherwise fixed-width concatenation rather than TLV).
func EncodeTLV(entries map[byte][]byte) []byte {
	out := make([]byte, 0, len(entries)*2)
	for name, value := range entries {
		out = append(out, name, byte(len(value)))
		out = append(out, value...)
	}
	return out
}
