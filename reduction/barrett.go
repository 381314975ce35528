package reduction

import "github.com/J08nY/ecsca-engine/bigint"

// barrettContext holds the Barrett mu quotient, per spec.md §3: "Barrett:
// holds the Barrett mu quotient." encode/decode are the identity (Barrett
// residues are just natural values); Reduce divides an unreduced product by
// mu's approximation of 1/mod rather than doing a full division.
//
// The reference implementation computes mu = floor(b^(2k)/mod) for word
// base b and k = number of words of mod; since our backing store is
// math/big rather than a fixed-radix limb array, we take b = 2 and k =
// bitlen(mod), i.e. mu = floor(2^(2*bitlen(mod))/mod), with no extra word
// of precision; Reduce's correction loops absorb the larger quotient error.
type barrettContext struct {
	mod *bigint.Int
	mu  *bigint.Int
	k   uint // mod's bit length
}

func newBarrett(m *bigint.Int) *barrettContext {
	k := uint(m.BitLen())
	// mu = floor(2^(2k) / mod)
	twoK := bigint.FromUint64(1).Lsh(2 * k)
	quotient := divFloor(twoK, m)
	return &barrettContext{mod: m, mu: quotient, k: k}
}

// divFloor performs floor(a/b) using the unreduced representation: since
// bigint.Int does not expose raw division (spec.md §4.1 only lists "div (=
// mul by modular inverse)" under mod arithmetic), Barrett precomputation is
// the one place the core needs genuine integer division; we reach for the
// underlying big.Int directly rather than adding a division primitive the
// rest of the engine has no other use for.
func divFloor(a, b *bigint.Int) *bigint.Int {
	out := bigint.New()
	q := out.Big()
	q.Div(a.Big(), b.Big())
	return out
}

func (c *barrettContext) Kind() Kind           { return Barrett }
func (c *barrettContext) Modulus() *bigint.Int { return c.mod }

func (c *barrettContext) Encode(x *bigint.Int) *bigint.Int { return x.Mod(c.mod) }
func (c *barrettContext) Decode(x *bigint.Int) *bigint.Int { return x.Mod(c.mod) }

func (c *barrettContext) Add(x, y *bigint.Int) *bigint.Int { return x.ModAdd(y, c.mod) }
func (c *barrettContext) Sub(x, y *bigint.Int) *bigint.Int { return x.ModSub(y, c.mod) }
func (c *barrettContext) Neg(x *bigint.Int) *bigint.Int    { return x.ModNeg(c.mod) }

func (c *barrettContext) Mul(x, y *bigint.Int) (*bigint.Int, error) {
	return c.Reduce(x.Mul(y)), nil
}

func (c *barrettContext) Sqr(x *bigint.Int) (*bigint.Int, error) {
	return c.Reduce(x.Sqr()), nil
}

func (c *barrettContext) Inv(x *bigint.Int) (*bigint.Int, error) { return x.ModInv(c.mod) }

func (c *barrettContext) Div(x, y *bigint.Int) (*bigint.Int, error) { return x.ModDiv(y, c.mod) }

func (c *barrettContext) Pow(x, exp *bigint.Int) (*bigint.Int, error) {
	return x.ModPow(exp, c.mod), nil
}

// Reduce folds an unreduced product using the Barrett quotient: q =
// floor(unreduced * mu / 2^(2k)), r = unreduced - q*mod, with up to two
// final conditional subtractions to land in [0, mod).
func (c *barrettContext) Reduce(unreduced *bigint.Int) *bigint.Int {
	t := unreduced.Mul(c.mu)
	t = t.Rsh(2 * c.k)
	r := unreduced.Sub(t.Mul(c.mod))
	for r.Sign() < 0 {
		r = r.Add(c.mod)
	}
	for r.Cmp(c.mod) >= 0 {
		r = r.Sub(c.mod)
	}
	return r
}

func (c *barrettContext) Clear() {}
