package recoding

import (
	"github.com/J08nY/ecsca-engine/bigint"
	"github.com/J08nY/ecsca-engine/bserrors"
)

// WidthNAF computes the width-w non-adjacent form of k, per spec.md §4.3:
// repeatedly, if k is odd, let d = k mod 2^w; if d >= 2^(w-1) then
// d -= 2^w; emit d; subtract d from k; else emit 0; then k /= 2. Digits are
// produced LSB-first and the returned sequence is that order reversed, so
// callers consume MSB-first starting at index 0 — this matches
// scenario 1 in spec.md §8 (wNAF(45, w=3) = [3,0,0,0,-3], i.e. the
// LSB-first scan [-3,0,0,0,3] reversed).
//
// w must be in [2,8]; outside that range WidthNAF returns
// ErrUnsupportedWidth, the "unsupported" sentinel spec.md §4.3 calls for.
func WidthNAF(k *bigint.Int, w int) (Digits, error) {
	if w < 2 || w > 8 {
		return nil, bserrors.ErrUnsupportedWidth
	}
	modulus := bigint.FromUint64(1).Lsh(uint(w))
	half := bigint.FromUint64(1).Lsh(uint(w - 1))

	var lsbFirst Digits
	remaining := k.Clone()
	for !remaining.IsZero() {
		if remaining.Bit(0) == 1 {
			d := remaining.Mod(modulus)
			var digit int64
			if d.Cmp(half) >= 0 {
				dSigned := d.Sub(modulus)
				digit, _ = toInt64(dSigned)
				remaining = remaining.Sub(dSigned)
			} else {
				digit, _ = toInt64(d)
				remaining = remaining.Sub(d)
			}
			lsbFirst = append(lsbFirst, digit)
		} else {
			lsbFirst = append(lsbFirst, 0)
		}
		remaining = remaining.Rsh(1)
	}
	return reverseDigits(lsbFirst), nil
}

// BinaryNAF is the classic non-adjacent form, equivalent to width-2 wNAF
// per spec.md §4.3.
func BinaryNAF(k *bigint.Int) (Digits, error) {
	return WidthNAF(k, 2)
}

func toInt64(x *bigint.Int) (int64, bool) {
	if x.Sign() < 0 {
		v, exact := x.Neg().ToUint64()
		return -int64(v), exact
	}
	v, exact := x.ToUint64()
	return int64(v), exact
}

func reverseDigits(d Digits) Digits {
	out := make(Digits, len(d))
	for i, v := range d {
		out[len(d)-1-i] = v
	}
	return out
}
