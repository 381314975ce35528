package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/J08nY/ecsca-engine/bigint"
	"github.com/J08nY/ecsca-engine/curve"
	"github.com/J08nY/ecsca-engine/formula"
	"github.com/J08nY/ecsca-engine/hashselect"
	"github.com/J08nY/ecsca-engine/point"
	"github.com/J08nY/ecsca-engine/reduction"
	"github.com/J08nY/ecsca-engine/scalarmult"
)

func secp256r1Config(t *testing.T) Config {
	t.Helper()
	formulas := scalarmult.FormulaSet{
		Add: formula.WeierstrassJacobianAdd().Init(),
		Dbl: formula.WeierstrassJacobianDoubleA3().Init(),
		Neg: formula.WeierstrassJacobianNeg().Init(),
		Scl: formula.WeierstrassJacobianScl().Init(),
	}
	return Config{
		Model:      curve.Weierstrass,
		System:     point.Jacobian,
		Reduction:  reduction.Barrett,
		Multiplier: scalarmult.NewLTRMultiplier(scalarmult.Config{Complete: true}, formulas),
		Add:        formula.WeierstrassJacobianAdd().Init(),
		Hash:       hashselect.SHA256,
		RandomMod:  Reduce,
	}
}

func setSecp256r1Curve(t *testing.T, s *State) {
	t.Helper()
	c, err := curve.NewSECP256R1()
	require.NoError(t, err)

	raw := map[string][]byte{
		"p":  c.Reduction().Modulus().ToBin(),
		"a":  bigint.FromUint64(0).Sub(bigint.FromUint64(3)).Mod(c.Reduction().Modulus()).ToBin(),
		"b":  c.Reduction().Decode(mustParam(t, c, "b")).ToBin(),
		"n":  c.Order().ToBin(),
		"h":  bigint.FromUint64(1).ToBin(),
		"gx": c.Reduction().Decode(c.Generator().Coords["X"]).ToBin(),
		"gy": c.Reduction().Decode(c.Generator().Coords["Y"]).ToBin(),
		"in": {1},
		"iZ": {0},
	}
	require.NoError(t, s.SetCurveParams(raw))
}

func mustParam(t *testing.T, c *curve.Curve, name string) *bigint.Int {
	t.Helper()
	v, ok := c.Param(name)
	require.True(t, ok)
	return v
}

func TestInitCurrentDeinitLifecycle(t *testing.T) {
	defer Deinit()
	s, err := Init(secp256r1Config(t))
	require.NoError(t, err)
	require.Same(t, s, Current())

	Deinit()
	require.Nil(t, Current())
}

func TestSetCurveParamsThenGenerateKeypairAndSign(t *testing.T) {
	defer Deinit()
	s, err := Init(secp256r1Config(t))
	require.NoError(t, err)

	s.SeedPRNG([]byte("deterministic-test-seed"))
	setSecp256r1Curve(t, s)

	priv, x, y, err := s.GenerateKeypair()
	require.NoError(t, err)
	require.False(t, priv.IsZero())
	require.NotNil(t, x)
	require.NotNil(t, y)

	r, sig, err := s.Sign([]byte("hello world"))
	require.NoError(t, err)

	ok, err := s.Verify([]byte("hello world"), r, sig)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.Verify([]byte("wrong message"), r, sig)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMultiplyWithoutCurveFails(t *testing.T) {
	defer Deinit()
	s, err := Init(secp256r1Config(t))
	require.NoError(t, err)

	_, _, err = s.Multiply(bigint.FromUint64(2), nil)
	require.Error(t, err)
}

func TestDebugReportsModelAndCoords(t *testing.T) {
	defer Deinit()
	s, err := Init(secp256r1Config(t))
	require.NoError(t, err)

	model, coords := s.Debug()
	require.Equal(t, "weierstrass", model)
	require.Equal(t, "jacobian", coords)
}
