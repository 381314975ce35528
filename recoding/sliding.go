package recoding

import "github.com/J08nY/ecsca-engine/bigint"

// SlidingWindowRTL scans bits from the LSB: a zero bit emits a lone 0
// digit; a one bit starts a window of up to w bits (truncated to however
// many bits remain once fewer than w are left), whose value is odd by
// construction (its low bit, the bit that triggered the window, is 1),
// followed by (window length - 1) trailing zero digits, then the scan
// advances by the window's actual length. The whole LSB-first scan is
// reversed before being returned, matching spec.md §8 scenario 3:
// SlidingRTL(181, w=3) = [1,0,0,3,0,0,0,5].
func SlidingWindowRTL(k *bigint.Int, w int) Digits {
	bitlen := k.BitLen()
	var lsbFirst Digits
	p := 0
	for p < bitlen {
		if k.Bit(p) == 0 {
			lsbFirst = append(lsbFirst, 0)
			p++
			continue
		}
		length := w
		if remaining := bitlen - p; remaining < length {
			length = remaining
		}
		value := int64(0)
		for j := length - 1; j >= 0; j-- {
			value = value<<1 | int64(k.Bit(p+j))
		}
		lsbFirst = append(lsbFirst, value)
		for z := 0; z < length-1; z++ {
			lsbFirst = append(lsbFirst, 0)
		}
		p += length
	}
	return reverseDigits(lsbFirst)
}

// SlidingWindowLTR scans bits from the MSB: a zero bit emits a lone 0
// digit; a one bit starts the longest odd-terminated window of length <= w
// that fits in the remaining bits, emits (length-1) zero digits followed by
// the window's value, and the scan advances by the window's length. The
// zero digits of the very first window are not emitted, so the sequence
// starts with a nonzero digit: SlidingWindowLTR(181, 3) = [5,0,0,5,0,1].
//
// Each window's value sits at the slot of the window's lowest bit, so
// Reconstruct() recovers k; every nonzero digit is odd and < 2^w, and no
// window spans more than w digit slots.
func SlidingWindowLTR(k *bigint.Int, w int) Digits {
	bitlen := k.BitLen()
	var digits Digits
	p := bitlen - 1
	for p >= 0 {
		if k.Bit(p) == 0 {
			digits = append(digits, 0)
			p--
			continue
		}
		length := longestOddWindow(k, p, w)
		value := int64(0)
		for j := 0; j < length; j++ {
			value = value<<1 | int64(k.Bit(p-j))
		}
		if len(digits) > 0 {
			for z := 0; z < length-1; z++ {
				digits = append(digits, 0)
			}
		}
		digits = append(digits, value)
		p -= length
	}
	return digits
}

// longestOddWindow returns the largest L in [1,w] such that the L-bit
// window ending at bit position p-L+1 (inclusive) has an odd value, i.e.
// bit(p-L+1) == 1, and p-L+1 >= 0.
func longestOddWindow(k *bigint.Int, p, w int) int {
	maxLen := w
	if p+1 < maxLen {
		maxLen = p + 1
	}
	for length := maxLen; length >= 1; length-- {
		if k.Bit(p-length+1) == 1 {
			return length
		}
	}
	return 1
}
