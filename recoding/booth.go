package recoding

import (
	"github.com/J08nY/ecsca-engine/bigint"
	"github.com/J08nY/ecsca-engine/bserrors"
)

// Booth computes the width-w Booth recoding of k per spec.md §4.3: k is
// scanned in overlapping (w+1)-bit fields, each sharing its low bit with
// the high bit of the previous field (the very first field's low bit is
// the conceptual padding bit b_{-1} = 0), and each field's unsigned value
// v is mapped to a signed digit by
//
//	word(v) = (v+1)/2            if v <= 2^w - 1
//	word(v) = -(2^(w+1) - v)/2   otherwise
//
// producing floor(bitlen(k)/w)+1 digits: one per w bits of k, with the top
// field's sign bit always zero so the last carry is kept. Each digit
// weighs 2^w times the one after it. Digits come out LSB-first from the
// scan; Booth reverses that before returning, so index 0 is the
// most-significant digit like every other recoder in this package.
func Booth(k *bigint.Int, w int) (Digits, error) {
	if w < 1 || w > 32 {
		return nil, bserrors.ErrUnsupportedWidth
	}

	bitlen := k.BitLen()
	windows := bitlen/w + 1
	if windows == 0 {
		windows = 1
	}

	var lsbFirst Digits
	var paddingBit int64
	for i := 0; i < windows; i++ {
		base := i * w
		v := paddingBit
		for j := 0; j < w; j++ {
			v |= int64(k.Bit(base+j)) << uint(j+1)
		}
		lsbFirst = append(lsbFirst, boothWord(v, w))
		paddingBit = int64(k.Bit(base + w - 1))
	}
	return reverseDigits(lsbFirst), nil
}

func boothWord(v int64, w int) int64 {
	limit := int64(1) << uint(w)
	if v <= limit-1 {
		return (v + 1) / 2
	}
	full := int64(1) << uint(w+1)
	return -((full - v) / 2)
}
