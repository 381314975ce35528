package bigint

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBinaryRoundTrip(t *testing.T) {
	in := []byte{0x01, 0x02, 0x03, 0xff}
	x := FromBytes(in)
	require.Equal(t, in, x.ToBin())
}

func TestHexRoundTrip(t *testing.T) {
	x, err := FromHex("deadbeef")
	require.NoError(t, err)
	require.Equal(t, "deadbeef", x.ToHex())
}

func TestDecimalRoundTrip(t *testing.T) {
	x, err := FromDecimal("123456789123456789123456789")
	require.NoError(t, err)
	require.Equal(t, "123456789123456789123456789", x.ToDecimal())
}

func TestToBinPaddedTooSmall(t *testing.T) {
	x := FromUint64(0x0102)
	_, err := x.ToBinPadded(1)
	require.Error(t, err)
}

func TestModularLaws(t *testing.T) {
	mod, err := FromDecimal("115792089210356248762697446949407573530086143415290314195533631308867097853951")
	require.NoError(t, err)
	a := FromUint64(123456789)
	b := FromUint64(987654321)
	c := FromUint64(192837465)

	// associativity
	left := a.ModAdd(b, mod).ModAdd(c, mod)
	right := a.ModAdd(b.ModAdd(c, mod), mod)
	require.True(t, left.Equal(right))

	// commutativity
	require.True(t, a.ModMul(b, mod).Equal(b.ModMul(a, mod)))

	// distributivity
	lhs := a.ModMul(b.ModAdd(c, mod), mod)
	rhs := a.ModMul(b, mod).ModAdd(a.ModMul(c, mod), mod)
	require.True(t, lhs.Equal(rhs))
}

func TestModInverse(t *testing.T) {
	mod := FromUint64(97)
	x := FromUint64(13)
	inv, err := x.ModInv(mod)
	require.NoError(t, err)
	require.True(t, x.ModMul(inv, mod).IsOne())
}

func TestModPowMatchesRepeatedMul(t *testing.T) {
	mod := FromUint64(1000000007)
	base := FromUint64(12345)
	exp := FromUint64(17)

	got := base.ModPow(exp, mod)

	want := FromUint64(1).Mod(mod)
	for i := 0; i < 17; i++ {
		want = want.ModMul(base, mod)
	}
	require.True(t, got.Equal(want))
}

func TestBitAccess(t *testing.T) {
	x := FromUint64(0b1011)
	require.Equal(t, 1, x.Bit(0))
	require.Equal(t, 1, x.Bit(1))
	require.Equal(t, 0, x.Bit(2))
	require.Equal(t, 1, x.Bit(3))
	require.Equal(t, 4, x.BitLen())
}

func TestRandModSampleAndReduceStayBelowModulus(t *testing.T) {
	mod := FromUint64(1000003)
	for i := 0; i < 50; i++ {
		s, err := RandModSample(mod)
		require.NoError(t, err)
		require.True(t, s.Cmp(mod) < 0)

		r, err := RandModReduce(mod)
		require.NoError(t, err)
		require.True(t, r.Cmp(mod) < 0)
	}
}
