package reduction

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/J08nY/ecsca-engine/bigint"
)

func primeModulus(t *testing.T) *bigint.Int {
	t.Helper()
	m, err := bigint.FromDecimal("115792089210356248762697446949407573530086143415290314195533631308867097853951")
	require.NoError(t, err)
	return m
}

func TestReductionRoundTrip(t *testing.T) {
	mod := primeModulus(t)
	for _, kind := range []Kind{None, Barrett, Montgomery} {
		ctx := New(kind, mod)
		x := bigint.FromUint64(123456789).Mod(mod)
		encoded := ctx.Encode(x)
		decoded := ctx.Decode(encoded)
		require.Truef(t, decoded.Equal(x), "kind=%v", kind)
	}
}

func TestReductionMulMatchesPlainMul(t *testing.T) {
	mod := primeModulus(t)
	a := bigint.FromUint64(98765).Mod(mod)
	b := bigint.FromUint64(13579).Mod(mod)
	want := a.ModMul(b, mod)

	for _, kind := range []Kind{None, Barrett, Montgomery} {
		ctx := New(kind, mod)
		ea := ctx.Encode(a)
		eb := ctx.Encode(b)
		prod, err := ctx.Mul(ea, eb)
		require.NoError(t, err)
		got := ctx.Decode(prod)
		require.Truef(t, got.Equal(want), "kind=%v", kind)
	}
}

func TestReductionInverse(t *testing.T) {
	mod := primeModulus(t)
	x := bigint.FromUint64(42).Mod(mod)
	for _, kind := range []Kind{None, Barrett, Montgomery} {
		ctx := New(kind, mod)
		ex := ctx.Encode(x)
		inv, err := ctx.Inv(ex)
		require.NoError(t, err)
		prod, err := ctx.Mul(ex, inv)
		require.NoError(t, err)
		require.Truef(t, ctx.Decode(prod).IsOne(), "kind=%v", kind)
	}
}

func TestReductionPow(t *testing.T) {
	mod := primeModulus(t)
	x := bigint.FromUint64(7).Mod(mod)
	exp := bigint.FromUint64(13)
	want := x.ModPow(exp, mod)

	for _, kind := range []Kind{None, Barrett, Montgomery} {
		ctx := New(kind, mod)
		ex := ctx.Encode(x)
		res, err := ctx.Pow(ex, exp)
		require.NoError(t, err)
		require.Truef(t, ctx.Decode(res).Equal(want), "kind=%v", kind)
	}
}
