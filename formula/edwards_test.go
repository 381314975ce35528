package formula

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/J08nY/ecsca-engine/bigint"
	"github.com/J08nY/ecsca-engine/point"
)

func extendedEdwardsPoint(x, y uint64) *point.Point {
	p := point.New(point.ExtendedEdwards)
	p.Coords["X"] = bigint.FromUint64(x)
	p.Coords["Y"] = bigint.FromUint64(y)
	p.Coords["Z"] = bigint.FromUint64(1)
	p.Coords["T"] = bigint.FromUint64(x * y)
	return p
}

func edwardsTestCurve(t *testing.T) fakeCurve {
	t.Helper()
	c := testCurve(t)
	neutral := point.New(point.ExtendedEdwards)
	neutral.Coords["X"] = bigint.FromUint64(0)
	neutral.Coords["Y"] = bigint.FromUint64(1)
	neutral.Coords["Z"] = bigint.FromUint64(1)
	neutral.Coords["T"] = bigint.FromUint64(0)
	c.neutral = neutral
	c.params["a"] = bigint.FromUint64(1)
	c.params["d"] = bigint.FromUint64(3)
	return c
}

func TestExtendedEdwardsNegRoundTrips(t *testing.T) {
	curve := edwardsTestCurve(t)
	p := extendedEdwardsPoint(5, 7)
	neg := ExtendedEdwardsNeg().Init()

	n, err := neg.Apply(curve, p, nil, nil)
	require.NoError(t, err)
	require.True(t, n.Coords["Y"].Equal(p.Coords["Y"]))
	require.True(t, n.Coords["Z"].Equal(p.Coords["Z"]))

	back, err := neg.Apply(curve, n, nil, nil)
	require.NoError(t, err)
	require.True(t, back.Equals(p))
}

func TestExtendedEdwardsAddShortCircuitReturnsOtherOperand(t *testing.T) {
	curve := edwardsTestCurve(t)
	p := extendedEdwardsPoint(3, 4)
	add := ExtendedEdwardsAdd().Init()

	result, err := add.Apply(curve, curve.neutral, p, nil)
	require.NoError(t, err)
	require.True(t, result.Equals(p))

	result, err = add.Apply(curve, p, curve.neutral, nil)
	require.NoError(t, err)
	require.True(t, result.Equals(p))
}

func TestExtendedEdwardsDblShortCircuitReturnsNeutral(t *testing.T) {
	curve := edwardsTestCurve(t)
	dbl := ExtendedEdwardsDbl().Init()

	result, err := dbl.Apply(curve, curve.neutral, nil, nil)
	require.NoError(t, err)
	require.True(t, result.Equals(curve.neutral))
}

func TestExtendedEdwardsDblProducesConsistentPoint(t *testing.T) {
	curve := edwardsTestCurve(t)
	p := extendedEdwardsPoint(5, 9)
	dbl := ExtendedEdwardsDbl().Init()

	out, err := dbl.Apply(curve, p, nil, nil)
	require.NoError(t, err)
	require.False(t, out.Coords["Z"].IsZero())
	require.NotNil(t, out.Coords["T"])
}
