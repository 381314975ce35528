// Package recoding implements spec.md §4.3: pure, total functions mapping a
// scalar (bigint.Int) to a signed or unsigned digit sequence consumed by
// package scalarmult.
//
// Every recoder here is grounded on original_source/pyecsca/codegen/bn/bn.c
// (bn_wnaf, bn_bnaf) and the inline recoding scans embedded in
// original_source/pyecsca/codegen/templates/mult_*.c. None of them allocate
// points or touch a curve; they operate purely on bigint.Int.
package recoding

import "github.com/J08nY/ecsca-engine/bigint"

// Digits is a signed or unsigned small-digit sequence, MSB-first (index 0
// is the most significant digit), per spec.md §3's "Recoded sequences".
// BaseSmall is the one recoder that returns its Digits LSB-first.
type Digits []int64

// BigDigits is a digit sequence whose individual digits do not fit a
// machine word (base-M large and comb recoding), LSB-first as produced by
// repeated division, per spec.md §4.3's base-M description.
type BigDigits []*bigint.Int

// Reconstruct folds an MSB-first Digits sequence back into the scalar it
// recodes, used by this package's own tests to verify the universal
// property of spec.md §8: "for every recoding R of scalar k,
// reconstruct(R) == k". It assumes one bit of positional weight per digit
// slot (Horner's rule), which holds for BinaryNAF, WidthNAF and both
// sliding-window recoders: a window of bit-length L occupies L consecutive
// slots, its value in the least significant of them and zeros in the
// others, so weighting by repeated doubling reconstructs the original value
// exactly. It does not apply to Booth, whose digits each carry w bits of
// weight, nor to BaseSmall, whose digits are LSB-first in base m.
func (d Digits) Reconstruct() *bigint.Int {
	result := bigint.New()
	two := bigint.FromUint64(2)
	for _, digit := range d {
		result = result.Mul(two)
		if digit >= 0 {
			result = result.Add(bigint.FromUint64(uint64(digit)))
		} else {
			result = result.Sub(bigint.FromUint64(uint64(-digit)))
		}
	}
	return result
}
