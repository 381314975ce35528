package curve

import (
	"github.com/J08nY/ecsca-engine/bigint"
	"github.com/J08nY/ecsca-engine/point"
	"github.com/J08nY/ecsca-engine/reduction"
)

// NIST P-256 domain parameters (FIPS 186-4 D.1.2.3), used as the engine's
// built-in short-Weierstrass test curve — the one concrete instantiation
// SPEC_FULL.md's worked ECDSA scenario (spec.md §8 scenario 7) exercises.
const (
	secp256r1P  = "115792089210356248762697446949407573530086143415290314195533631308867097853951"
	secp256r1N  = "115792089210356248762697446949407573529996955224135760342422259061068512044369"
	secp256r1B  = "41058363725152142129326129780047268409114441015993725554835256314039467401291"
	secp256r1Gx = "48439561293906451759052585252797914202762949526041747995844080717082404635286"
	secp256r1Gy = "36134250956749795798585127919587881956611106672985015071877198253568414405109"
)

// NewSECP256R1 builds a Curve configured as NIST P-256 with the
// Barrett reduction backend. a = -3 is stored as parameter "a" (as p-3)
// and is also the value formula.WeierstrassJacobianDoubleA3 bakes into
// its op list.
func NewSECP256R1() (*Curve, error) {
	p, err := bigint.FromDecimal(secp256r1P)
	if err != nil {
		return nil, err
	}
	n, err := bigint.FromDecimal(secp256r1N)
	if err != nil {
		return nil, err
	}
	b, err := bigint.FromDecimal(secp256r1B)
	if err != nil {
		return nil, err
	}
	gx, err := bigint.FromDecimal(secp256r1Gx)
	if err != nil {
		return nil, err
	}
	gy, err := bigint.FromDecimal(secp256r1Gy)
	if err != nil {
		return nil, err
	}

	c := New(Weierstrass, p, reduction.Barrett)
	if err := c.SetParam("a", bigint.FromUint64(0).Sub(bigint.FromUint64(3)).Mod(p)); err != nil {
		return nil, err
	}
	if err := c.SetParam("b", b); err != nil {
		return nil, err
	}
	c.SetOrder(n)
	c.SetCofactor(bigint.FromUint64(1))

	neutral := point.New(point.Jacobian)
	neutral.Infinity = true
	neutral.Coords["Z"] = bigint.New()
	c.SetNeutral(neutral)

	c.SetGenerator(point.Jacobian, gx, gy)
	return c, nil
}
