package point

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/J08nY/ecsca-engine/bigint"
	"github.com/J08nY/ecsca-engine/reduction"
)

type fakeCurve struct{ red reduction.Context }

func (c fakeCurve) Reduction() reduction.Context { return c.red }

func testCurve(t *testing.T) fakeCurve {
	t.Helper()
	mod, err := bigint.FromDecimal("115792089210356248762697446949407573530086143415290314195533631308867097853951")
	require.NoError(t, err)
	return fakeCurve{red: reduction.New(reduction.None, mod)}
}

func TestAffineRoundTrip(t *testing.T) {
	curve := testCurve(t)
	x, y := bigint.FromUint64(5), bigint.FromUint64(7)

	for _, sys := range []System{Jacobian, ExtendedEdwards, ProjectiveXYZ} {
		p := FromAffine(sys, x, y, curve)
		gotX, gotY := p.ToAffine(curve)
		require.Truef(t, gotX.Equal(x), "system=%s x", sys)
		require.Truef(t, gotY.Equal(y), "system=%s y", sys)
	}
}

func TestMontgomeryXZRoundTripsXOnly(t *testing.T) {
	curve := testCurve(t)
	x := bigint.FromUint64(11)
	p := FromAffine(MontgomeryXZ, x, bigint.FromUint64(0), curve)
	gotX, gotY := p.ToAffine(curve)
	require.True(t, gotX.Equal(x))
	require.Nil(t, gotY)
}

func TestCopySetIndependence(t *testing.T) {
	p := New(Jacobian)
	p.Coords["X"] = bigint.FromUint64(3)
	clone := p.Copy()
	clone.Coords["X"] = bigint.FromUint64(99)
	require.True(t, p.Coords["X"].Equal(bigint.FromUint64(3)))
}

func TestEqualsAndEqualsAffine(t *testing.T) {
	curve := testCurve(t)
	x, y := bigint.FromUint64(9), bigint.FromUint64(13)
	a := FromAffine(Jacobian, x, y, curve)
	b := FromAffine(Affine, x, y, curve)

	require.False(t, a.Equals(b))
	require.True(t, a.EqualsAffine(b, curve))
}

func TestEqualsAffineInfinity(t *testing.T) {
	a := New(Jacobian)
	a.Infinity = true
	b := New(Affine)
	b.Infinity = true
	require.True(t, a.EqualsAffine(b, testCurve(t)))
}

func TestRedEncodeDecodeRoundTrip(t *testing.T) {
	curve := testCurve(t)
	p := FromAffine(Jacobian, bigint.FromUint64(21), bigint.FromUint64(34), curve)
	encoded := p.RedEncode(curve)
	decoded := encoded.RedDecode(curve)
	require.True(t, decoded.Equals(p))
}
