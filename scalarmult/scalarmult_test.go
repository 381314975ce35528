package scalarmult

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/J08nY/ecsca-engine/bigint"
	"github.com/J08nY/ecsca-engine/formula"
	"github.com/J08nY/ecsca-engine/point"
	"github.com/J08nY/ecsca-engine/reduction"
)

type fakeCurve struct {
	red     reduction.Context
	neutral *point.Point
	order   *bigint.Int
}

func (c fakeCurve) Reduction() reduction.Context          { return c.red }
func (c fakeCurve) Neutral() *point.Point                 { return c.neutral }
func (c fakeCurve) Param(name string) (*bigint.Int, bool) { return nil, false }
func (c fakeCurve) Order() *bigint.Int                    { return c.order }

// secp256r1Curve returns a fakeCurve sized like NIST P-256, enough to
// exercise the "complete" bit-length knob and short-circuit paths without
// needing a full curve package.
func secp256r1Curve(t *testing.T) fakeCurve {
	t.Helper()
	mod, err := bigint.FromDecimal("115792089210356248762697446949407573530086143415290314195533631308867097853951")
	require.NoError(t, err)
	order, err := bigint.FromDecimal("115792089210356248762697446949407573529996955224135760342422259061068512044369")
	require.NoError(t, err)
	neutral := point.New(point.Jacobian)
	neutral.Infinity = true
	neutral.Coords["Z"] = bigint.FromUint64(0)
	return fakeCurve{red: reduction.New(reduction.None, mod), neutral: neutral, order: order}
}

func secp256r1Generator() *point.Point {
	p := point.New(point.Jacobian)
	gx, _ := bigint.FromDecimal("48439561293906451759052585252797914202762949526041747995844080717082404635286")
	gy, _ := bigint.FromDecimal("36134250956749795798585127919587881956611106672985015071877198253568414405109")
	p.Coords["X"], p.Coords["Y"], p.Coords["Z"] = gx, gy, bigint.FromUint64(1)
	return p
}

func weierstrassFormulas() FormulaSet {
	return FormulaSet{
		Add: formula.WeierstrassJacobianAdd().Init(),
		Dbl: formula.WeierstrassJacobianDoubleA3().Init(),
		Neg: formula.WeierstrassJacobianNeg().Init(),
		Scl: formula.WeierstrassJacobianScl().Init(),
	}
}

func TestLTRMultiplierIdentityScalarOne(t *testing.T) {
	curve := secp256r1Curve(t)
	g := secp256r1Generator()
	mult := NewLTRMultiplier(Config{}, weierstrassFormulas())

	out, err := mult.Multiply(curve, bigint.FromUint64(1), g)
	require.NoError(t, err)
	require.True(t, out.Coords["X"].Equal(g.Coords["X"]))
	require.True(t, out.Coords["Y"].Equal(g.Coords["Y"]))
}

func TestRTLMultiplierIdentityScalarOne(t *testing.T) {
	curve := secp256r1Curve(t)
	g := secp256r1Generator()
	mult := NewRTLMultiplier(Config{}, weierstrassFormulas())

	out, err := mult.Multiply(curve, bigint.FromUint64(1), g)
	require.NoError(t, err)
	gotX, gotY := out.ToAffine(curve)
	wantX, wantY := g.ToAffine(curve)
	require.True(t, gotX.Equal(wantX))
	require.True(t, gotY.Equal(wantY))
}

func TestBinaryNAFMultiplierIdentityScalarOne(t *testing.T) {
	curve := secp256r1Curve(t)
	g := secp256r1Generator()
	mult := NewBinaryNAFMultiplier(Config{}, weierstrassFormulas())

	out, err := mult.Multiply(curve, bigint.FromUint64(1), g)
	require.NoError(t, err)
	gotX, gotY := out.ToAffine(curve)
	wantX, wantY := g.ToAffine(curve)
	require.True(t, gotX.Equal(wantX))
	require.True(t, gotY.Equal(wantY))
}

func TestRTLMultiplierScalarZeroIsNeutral(t *testing.T) {
	curve := secp256r1Curve(t)
	g := secp256r1Generator()
	mult := NewRTLMultiplier(Config{}, weierstrassFormulas())

	out, err := mult.Multiply(curve, bigint.FromUint64(0), g)
	require.NoError(t, err)
	require.True(t, out.Infinity)
}

func TestFixedWindowMultiplierScalarZero(t *testing.T) {
	curve := secp256r1Curve(t)
	g := secp256r1Generator()
	mult := NewFixedWindowMultiplier(Config{Base: 4}, weierstrassFormulas())

	out, err := mult.Multiply(curve, bigint.FromUint64(0), g)
	require.NoError(t, err)
	require.NotNil(t, out)
}
