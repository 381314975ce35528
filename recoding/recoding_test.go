package recoding

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/J08nY/ecsca-engine/bigint"
)

func bi(v uint64) *bigint.Int { return bigint.FromUint64(v) }

func TestWidthNAFScenario(t *testing.T) {
	digits, err := WidthNAF(bi(45), 3)
	require.NoError(t, err)
	require.Equal(t, Digits{3, 0, 0, 0, -3}, digits)
	require.True(t, digits.Reconstruct().Equal(bi(45)))
}

func TestWidthNAFRejectsBadWidth(t *testing.T) {
	_, err := WidthNAF(bi(45), 1)
	require.Error(t, err)
	_, err = WidthNAF(bi(45), 9)
	require.Error(t, err)
}

func TestWidthNAFNoAdjacentNonzeroDigits(t *testing.T) {
	for k := uint64(1); k < 4000; k++ {
		digits, err := WidthNAF(bi(k), 4)
		require.NoError(t, err)
		require.True(t, digits.Reconstruct().Equal(bi(k)))
		for i := 0; i+3 < len(digits); i++ {
			nonzero := 0
			for j := i; j < i+4; j++ {
				if digits[j] != 0 {
					nonzero++
				}
			}
			require.LessOrEqualf(t, nonzero, 1, "window starting at %d for k=%d", i, k)
		}
	}
}

func TestSlidingWindowRTLScenario(t *testing.T) {
	digits := SlidingWindowRTL(bi(181), 3)
	require.Equal(t, Digits{1, 0, 0, 3, 0, 0, 0, 5}, digits)
	require.True(t, digits.Reconstruct().Equal(bi(181)))
}

func TestSlidingWindowLTRInvariants(t *testing.T) {
	for k := uint64(1); k < 2000; k++ {
		digits := SlidingWindowLTR(bi(k), 3)
		require.True(t, digits.Reconstruct().Equal(bi(k)), "k=%d", k)
		assertSlidingInvariants(t, digits, 3)
	}
}

func TestSlidingWindowRTLInvariants(t *testing.T) {
	for k := uint64(1); k < 2000; k++ {
		digits := SlidingWindowRTL(bi(k), 3)
		require.True(t, digits.Reconstruct().Equal(bi(k)), "k=%d", k)
		assertSlidingInvariants(t, digits, 3)
	}
}

func assertSlidingInvariants(t *testing.T, digits Digits, w int) {
	t.Helper()
	limit := int64(1) << uint(w)
	run := 0
	for _, d := range digits {
		if d == 0 {
			run++
			continue
		}
		require.LessOrEqualf(t, run, w-1, "zero run before digit %d too long", d)
		run = 0
		require.Truef(t, d%2 != 0, "nonzero digit %d must be odd", d)
		require.Lessf(t, d, limit, "digit %d exceeds 2^w", d)
		require.Greaterf(t, d, -limit, "digit %d below -2^w", d)
	}
}

func TestBoothRecoding(t *testing.T) {
	for k := uint64(0); k < 2000; k++ {
		digits, err := Booth(bi(k), 4)
		require.NoError(t, err)
		require.True(t, reconstructSignedMSBFirst(digits, 1<<4).Equal(bi(k)), "k=%d", k)
	}
}

func TestBoothRejectsBadWidth(t *testing.T) {
	_, err := Booth(bi(1), 0)
	require.Error(t, err)
}

func TestBaseSmallScenario(t *testing.T) {
	digits, err := BaseSmall(bi(11), 2)
	require.NoError(t, err)
	require.Equal(t, Digits{1, 1, 0, 1}, digits)
}

func TestBaseSmallRoundTrip(t *testing.T) {
	for k := uint64(0); k < 3000; k++ {
		digits, err := BaseSmall(bi(k), 7)
		require.NoError(t, err)
		got := reconstructLSBFirst(digits, 7)
		require.True(t, got.Equal(bi(k)), "k=%d", k)
	}
}

func TestBaseSmallRejectsBadBase(t *testing.T) {
	_, err := BaseSmall(bi(1), 1)
	require.Error(t, err)
}

func TestBaseLargeRoundTrip(t *testing.T) {
	M, err := bigint.FromDecimal("340282366920938463463374607431768211456") // 2^128
	require.NoError(t, err)
	k, err := bigint.FromDecimal("123456789012345678901234567890123456789012345")
	require.NoError(t, err)
	digits, err := BaseLarge(k, M)
	require.NoError(t, err)

	result := bigint.New()
	for i := len(digits) - 1; i >= 0; i-- {
		result = result.Mul(M).Add(digits[i])
	}
	require.True(t, result.Equal(k))
}

func TestCombDerivesWidthFromOrder(t *testing.T) {
	order := bi(1000000)
	digits, d, err := Comb(bi(12345), 8, order)
	require.NoError(t, err)
	require.Equal(t, (order.BitLen()+7)/8, d)

	M := bigint.FromUint64(1).Lsh(uint(d))
	result := bigint.New()
	for i := len(digits) - 1; i >= 0; i-- {
		result = result.Mul(M).Add(digits[i])
	}
	require.True(t, result.Equal(bi(12345)))
}

// reconstructSignedMSBFirst folds MSB-first signed digits in the given radix.
func reconstructSignedMSBFirst(digits Digits, radix uint64) *bigint.Int {
	result := bigint.New()
	r := bi(radix)
	for _, d := range digits {
		result = result.Mul(r)
		if d >= 0 {
			result = result.Add(bi(uint64(d)))
		} else {
			result = result.Sub(bi(uint64(-d)))
		}
	}
	return result
}

func reconstructLSBFirst(digits Digits, base uint64) *bigint.Int {
	result := bigint.New()
	b := bi(base)
	for i := len(digits) - 1; i >= 0; i-- {
		result = result.Mul(b).Add(bi(uint64(digits[i])))
	}
	return result
}
