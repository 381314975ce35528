package recoding

import (
	"github.com/J08nY/ecsca-engine/bigint"
	"github.com/J08nY/ecsca-engine/bserrors"
)

// BaseSmall recodes k in a fixed small base m by repeated division,
// digit[i] = floor(k / m^i) mod m, produced least-significant-digit
// first — unlike WidthNAF/Booth/the sliding-window recoders, base
// recoding is a plain positional number system, not a signed windowed
// form, so there is no MSB-first convention to match: spec.md §8
// scenario 4, Base-small(11, m=2) = [1,1,0,1], is exactly 11's binary
// digits in LSB-first order, with no reversal.
func BaseSmall(k *bigint.Int, m uint64) (Digits, error) {
	if m < 2 {
		return nil, bserrors.ErrInvalidInput
	}
	base := bigint.FromUint64(m)
	var digits Digits
	remaining := k.Clone()
	if remaining.IsZero() {
		return Digits{0}, nil
	}
	for !remaining.IsZero() {
		digit := remaining.Mod(base)
		v, _ := digit.ToUint64()
		digits = append(digits, int64(v))
		remaining = divFloor(remaining.Sub(digit), base)
	}
	return digits, nil
}

// BaseLarge is BaseSmall generalised to a modulus M too large for a
// machine word, as used by comb recoding's base 2^d digits: digit[i] =
// floor(k / M^i) mod M, LSB-first, each digit itself a *bigint.Int.
func BaseLarge(k *bigint.Int, M *bigint.Int) (BigDigits, error) {
	if M.Sign() <= 0 || M.IsOne() {
		return nil, bserrors.ErrInvalidInput
	}
	var digits BigDigits
	remaining := k.Clone()
	if remaining.IsZero() {
		return BigDigits{bigint.New()}, nil
	}
	for !remaining.IsZero() {
		digit := remaining.Mod(M)
		digits = append(digits, digit)
		remaining = divFloor(remaining.Sub(digit), M)
	}
	return digits, nil
}

// divFloor performs floor(a/b) by reaching into the underlying big.Int,
// the same narrow exception package reduction's Barrett precomputation
// makes: repeated-division recoding is exact division by construction
// (a is always a multiple of b at this point), not modular arithmetic,
// so bigint.Int's modular API has nothing to offer it.
func divFloor(a, b *bigint.Int) *bigint.Int {
	out := bigint.New()
	out.Big().Div(a.Big(), b.Big())
	return out
}

// Comb derives the base used by comb scalar multiplication from a scalar
// width w and the group order: d = ceil(bitlen(order)/w) digit-groups of
// w bits each, base M = 2^d, recoded LSB-first via BaseLarge. It returns
// the recoded digits together with d, since the comb multiplier needs d
// to split each digit back into its w-bit, d-digit-apart bit columns.
func Comb(k *bigint.Int, w int, order *bigint.Int) (BigDigits, int, error) {
	if w < 1 {
		return nil, 0, bserrors.ErrUnsupportedWidth
	}
	d := (order.BitLen() + w - 1) / w
	if d == 0 {
		d = 1
	}
	M := bigint.FromUint64(1).Lsh(uint(d))
	digits, err := BaseLarge(k, M)
	if err != nil {
		return nil, 0, err
	}
	return digits, d, nil
}
