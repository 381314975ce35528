package formula

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/J08nY/ecsca-engine/bigint"
	"github.com/J08nY/ecsca-engine/point"
	"github.com/J08nY/ecsca-engine/reduction"
)

type fakeCurve struct {
	red     reduction.Context
	neutral *point.Point
	params  map[string]*bigint.Int
}

func (c fakeCurve) Reduction() reduction.Context { return c.red }
func (c fakeCurve) Neutral() *point.Point        { return c.neutral }
func (c fakeCurve) Param(name string) (*bigint.Int, bool) {
	v, ok := c.params[name]
	return v, ok
}

func testCurve(t *testing.T) fakeCurve {
	t.Helper()
	mod, err := bigint.FromDecimal("115792089210356248762697446949407573530086143415290314195533631308867097853951")
	require.NoError(t, err)
	neutral := point.New(point.Jacobian)
	neutral.Infinity = true
	neutral.Coords["Z"] = bigint.FromUint64(0)
	return fakeCurve{red: reduction.New(reduction.None, mod), neutral: neutral, params: map[string]*bigint.Int{}}
}

func jacobianPoint(x, y uint64) *point.Point {
	p := point.New(point.Jacobian)
	p.Coords["X"] = bigint.FromUint64(x)
	p.Coords["Y"] = bigint.FromUint64(y)
	p.Coords["Z"] = bigint.FromUint64(1)
	return p
}

func TestNegRoundTrips(t *testing.T) {
	curve := testCurve(t)
	p := jacobianPoint(5, 7)
	neg := WeierstrassJacobianNeg().Init()
	n, err := neg.Apply(curve, p, nil, nil)
	require.NoError(t, err)
	require.True(t, n.Coords["X"].Equal(p.Coords["X"]))
	require.True(t, n.Coords["Z"].Equal(p.Coords["Z"]))

	back, err := neg.Apply(curve, n, nil, nil)
	require.NoError(t, err)
	require.True(t, back.Equals(p))
}

func TestAddShortCircuitReturnsOtherOperand(t *testing.T) {
	curve := testCurve(t)
	p := jacobianPoint(3, 4)
	add := WeierstrassJacobianAdd().Init()
	result, err := add.Apply(curve, curve.neutral, p, nil)
	require.NoError(t, err)
	require.True(t, result.Equals(p))

	result, err = add.Apply(curve, p, curve.neutral, nil)
	require.NoError(t, err)
	require.True(t, result.Equals(p))
}

func TestSclNormalisesZToOne(t *testing.T) {
	curve := testCurve(t)
	p := point.New(point.Jacobian)
	p.Coords["X"] = bigint.FromUint64(20)
	p.Coords["Y"] = bigint.FromUint64(56)
	p.Coords["Z"] = bigint.FromUint64(2)

	scl := WeierstrassJacobianScl().Init()
	out, err := scl.Apply(curve, p, nil, nil)
	require.NoError(t, err)
	require.True(t, out.Coords["Z"].Equal(bigint.FromUint64(1)))

	wantX, wantY := p.ToAffine(curve)
	gotX, gotY := out.ToAffine(curve)
	require.True(t, gotX.Equal(wantX))
	require.True(t, gotY.Equal(wantY))
}

func TestDoubleA3ProducesConsistentJacobianPoint(t *testing.T) {
	curve := testCurve(t)
	p := jacobianPoint(20, 56)
	dbl := WeierstrassJacobianDoubleA3().Init()
	out, err := dbl.Apply(curve, p, nil, nil)
	require.NoError(t, err)
	require.False(t, out.Coords["Z"].IsZero())
}

func TestMontgomeryLaddProducesTwoDistinctOutputs(t *testing.T) {
	curve := testCurve(t)
	curve.params["a24"] = bigint.FromUint64(1)

	p0 := point.New(point.MontgomeryXZ)
	p0.Coords["X"], p0.Coords["Z"] = bigint.FromUint64(9), bigint.FromUint64(1)
	p1 := point.New(point.MontgomeryXZ)
	p1.Coords["X"], p1.Coords["Z"] = bigint.FromUint64(9), bigint.FromUint64(1)
	diff := point.New(point.MontgomeryXZ)
	diff.Coords["X"], diff.Coords["Z"] = bigint.FromUint64(9), bigint.FromUint64(1)

	ladd := MontgomeryLadd().Init()
	outOne, outOther, err := ladd.ApplyLadd(curve, p0, p1, diff)
	require.NoError(t, err)
	require.NotNil(t, outOne.Coords["X"])
	require.NotNil(t, outOther.Coords["X"])
}
