package ecdsa

import (
	"crypto/elliptic"
	"crypto/sha256"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/J08nY/ecsca-engine/bigint"
	"github.com/J08nY/ecsca-engine/curve"
	"github.com/J08nY/ecsca-engine/formula"
	"github.com/J08nY/ecsca-engine/hashselect"
	"github.com/J08nY/ecsca-engine/scalarmult"
)

func weierstrassFormulas() scalarmult.FormulaSet {
	return scalarmult.FormulaSet{
		Add: formula.WeierstrassJacobianAdd().Init(),
		Dbl: formula.WeierstrassJacobianDoubleA3().Init(),
		Neg: formula.WeierstrassJacobianNeg().Init(),
		Scl: formula.WeierstrassJacobianScl().Init(),
	}
}

func TestSignThenVerifyRoundTrip(t *testing.T) {
	c, err := curve.NewSECP256R1()
	require.NoError(t, err)

	mult := scalarmult.NewLTRMultiplier(scalarmult.Config{Complete: true}, weierstrassFormulas())
	hash, err := hashselect.New(hashselect.SHA256)
	require.NoError(t, err)

	priv, err := bigint.FromHex("c9afa9d845ba75166b5c215767b1d6934e50c3db36e89b127b8a622b120f6721")
	require.NoError(t, err)
	priv = priv.Mod(c.Order())
	require.False(t, priv.IsZero())

	message := []byte("the quick brown fox jumps over the lazy dog")

	r, s, err := Sign(c, mult, hash, bigint.RandModReduce, priv, message)
	require.NoError(t, err)
	require.False(t, r.IsZero())
	require.False(t, s.IsZero())

	pub, err := mult.Multiply(c, priv, c.Generator())
	require.NoError(t, err)

	add := formula.WeierstrassJacobianAdd().Init()
	require.True(t, Verify(c, mult, add, hash, pub, message, r, s))
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	c, err := curve.NewSECP256R1()
	require.NoError(t, err)

	mult := scalarmult.NewLTRMultiplier(scalarmult.Config{Complete: true}, weierstrassFormulas())
	hash, err := hashselect.New(hashselect.SHA256)
	require.NoError(t, err)

	priv, err := bigint.FromHex("1a2b3c4d5e6f7081920a1b2c3d4e5f60718293a4b5c6d7e8f9001122334455")
	require.NoError(t, err)
	priv = priv.Mod(c.Order())

	r, s, err := Sign(c, mult, hash, bigint.RandModReduce, priv, []byte("original message"))
	require.NoError(t, err)

	pub, err := mult.Multiply(c, priv, c.Generator())
	require.NoError(t, err)

	add := formula.WeierstrassJacobianAdd().Init()
	require.False(t, Verify(c, mult, add, hash, pub, []byte("tampered message"), r, s))
}

// TestSignKnownAnswerVectorSECP256R1 pins d (the RFC 6979 Appendix
// A.2.5 NIST P-256 test key) and k to fixed values and checks the
// resulting (r,s) against values computed independently via the
// standard library's crypto/elliptic P-256 implementation and
// math/big, covering spec.md §8 scenario 7's "fixed d, k, m reproduces
// a known test-vector (r,s)" (the round-trip tests above only cover
// the sign-then-verify property under a random nonce, not a pinned
// (d,k,m) -> (r,s) triple).
func TestSignKnownAnswerVectorSECP256R1(t *testing.T) {
	c, err := curve.NewSECP256R1()
	require.NoError(t, err)

	mult := scalarmult.NewLTRMultiplier(scalarmult.Config{Complete: true}, weierstrassFormulas())
	hash, err := hashselect.New(hashselect.SHA256)
	require.NoError(t, err)

	priv, err := bigint.FromHex("c9afa9d845ba75166b5c215767b1d6934e50c3db36e89b127b8a622b120f6721")
	require.NoError(t, err)

	k, err := bigint.FromHex("a6e3c57dd01abe90086538398355dd4c3b17aa873382b0f24d6129493d8aad7")
	require.NoError(t, err)
	fixedK := func(*bigint.Int) (*bigint.Int, error) { return k, nil }

	message := []byte("sample")

	r, s, err := Sign(c, mult, hash, fixedK, priv, message)
	require.NoError(t, err)

	wantR, wantS := referenceSignP256SHA256(t, priv.Big(), k.Big(), message)
	require.Zerof(t, r.Big().Cmp(wantR), "r mismatch: got %s want %s", r.ToHex(), wantR.Text(16))
	require.Zerof(t, s.Big().Cmp(wantS), "s mismatch: got %s want %s", s.ToHex(), wantS.Text(16))

	add := formula.WeierstrassJacobianAdd().Init()
	pub, err := mult.Multiply(c, priv, c.Generator())
	require.NoError(t, err)
	require.True(t, Verify(c, mult, add, hash, pub, message, r, s))
}

// referenceSignP256SHA256 computes ECDSA (r,s) over P-256/SHA-256 from
// first principles using crypto/elliptic and math/big, independent of
// every package this module implements, as the known-answer oracle for
// TestSignKnownAnswerVectorSECP256R1.
func referenceSignP256SHA256(t *testing.T, d, k *big.Int, message []byte) (r, s *big.Int) {
	t.Helper()
	curveP256 := elliptic.P256()
	n := curveP256.Params().N

	x, _ := curveP256.ScalarBaseMult(k.Bytes())
	r = new(big.Int).Mod(x, n)
	require.NotZero(t, r.Sign(), "degenerate fixture: r must not be 0")

	digest := sha256.Sum256(message)
	e := new(big.Int).SetBytes(digest[:])

	kInv := new(big.Int).ModInverse(k, n)
	require.NotNil(t, kInv)
	s = new(big.Int).Mul(r, d)
	s.Add(s, e)
	s.Mul(s, kInv)
	s.Mod(s, n)
	require.NotZero(t, s.Sign(), "degenerate fixture: s must not be 0")
	return r, s
}

func TestVerifyRejectsOutOfRangeSignature(t *testing.T) {
	c, err := curve.NewSECP256R1()
	require.NoError(t, err)

	mult := scalarmult.NewLTRMultiplier(scalarmult.Config{Complete: true}, weierstrassFormulas())
	hash, err := hashselect.New(hashselect.SHA256)
	require.NoError(t, err)
	add := formula.WeierstrassJacobianAdd().Init()

	pub, err := mult.Multiply(c, bigint.FromUint64(7), c.Generator())
	require.NoError(t, err)

	require.False(t, Verify(c, mult, add, hash, pub, []byte("m"), bigint.FromUint64(0), bigint.FromUint64(1)))
	require.False(t, Verify(c, mult, add, hash, pub, []byte("m"), c.Order(), bigint.FromUint64(1)))
}
