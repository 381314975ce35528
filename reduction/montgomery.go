package reduction

import "github.com/J08nY/ecsca-engine/bigint"

// montgomeryContext holds the inverse digit n', the renormalisation factor
// R mod n and its square, per spec.md §3. R is taken to be 2^bitlen(n),
// rounded up to a multiple of 64 so the reduction step is a whole number of
// 64-bit-word shifts (mirroring the original's mp_montgomery_setup, which
// picks R as a power of the MP_DIGIT_BIT radix).
type montgomeryContext struct {
	mod       *bigint.Int
	rBits     uint // bit length of R
	r         *bigint.Int // R mod n
	rSquared  *bigint.Int // R^2 mod n
	nInv      *bigint.Int // -n^-1 mod R, the "montgomery digit"
}

const montgomeryWordBits = 64

func newMontgomery(m *bigint.Int) *montgomeryContext {
	words := (uint(m.BitLen()) + montgomeryWordBits - 1) / montgomeryWordBits
	rBits := words * montgomeryWordBits
	rMod := bigint.FromUint64(1).Lsh(rBits).Mod(m)
	rSquared := rMod.ModMul(rMod, m)

	rFull := bigint.FromUint64(1).Lsh(rBits)
	// n' = -n^-1 mod R. R is a power of two so R's "modulus" for inversion
	// purposes is itself representable as a bigint.Int.
	nInvPos, err := m.ModInv(rFull)
	var nInv *bigint.Int
	if err != nil {
		// n is even (no inverse mod a power of two); Montgomery reduction
		// requires an odd modulus. Store a zero digit; Reduce will simply
		// be wrong for such moduli, which matches the original's silent
		// assumption that REDUCTION==RED_MONTGOMERY is only selected for
		// prime (hence odd) field moduli.
		nInv = bigint.FromUint64(0)
	} else {
		nInv = rFull.Sub(nInvPos).Mod(rFull)
	}

	return &montgomeryContext{
		mod:      m,
		rBits:    rBits,
		r:        rMod,
		rSquared: rSquared,
		nInv:     nInv,
	}
}

func (c *montgomeryContext) Kind() Kind           { return Montgomery }
func (c *montgomeryContext) Modulus() *bigint.Int { return c.mod }

// Encode computes x*R mod n, entering residue form.
func (c *montgomeryContext) Encode(x *bigint.Int) *bigint.Int {
	return x.ModMul(c.r, c.mod)
}

// Decode performs a Montgomery reduction of x (treated as if already
// accumulated, i.e. decode(y) = y * R^-1 mod n), leaving natural form.
func (c *montgomeryContext) Decode(x *bigint.Int) *bigint.Int {
	return c.Reduce(x)
}

// Add/Sub/Neg operate directly on residues: residues are linear, so
// add/sub/neg of residues is the residue of the add/sub/neg of the
// decoded values, per spec.md §4.2.
func (c *montgomeryContext) Add(x, y *bigint.Int) *bigint.Int { return x.ModAdd(y, c.mod) }
func (c *montgomeryContext) Sub(x, y *bigint.Int) *bigint.Int { return x.ModSub(y, c.mod) }
func (c *montgomeryContext) Neg(x *bigint.Int) *bigint.Int    { return x.ModNeg(c.mod) }

// Mul multiplies two residues and performs a fused reduce, yielding the
// residue of the natural product (x/R)*(y/R)*R = (x*y)/R, via Reduce.
func (c *montgomeryContext) Mul(x, y *bigint.Int) (*bigint.Int, error) {
	return c.Reduce(x.Mul(y)), nil
}

func (c *montgomeryContext) Sqr(x *bigint.Int) (*bigint.Int, error) {
	return c.Reduce(x.Sqr()), nil
}

// Inv inverts a residue and re-enters residue form by multiplying by R^2,
// per spec.md §4.2: "inv additionally multiplies by R² to remain in
// residue form."
func (c *montgomeryContext) Inv(x *bigint.Int) (*bigint.Int, error) {
	natural, err := x.ModInv(c.mod)
	if err != nil {
		return nil, err
	}
	return natural.ModMul(c.rSquared, c.mod), nil
}

func (c *montgomeryContext) Div(x, y *bigint.Int) (*bigint.Int, error) {
	yInv, err := c.Inv(y)
	if err != nil {
		return nil, err
	}
	return c.Mul(x, yInv)
}

// Pow is square-and-multiply over residues; multiplication itself performs
// the Montgomery reduction at each step.
func (c *montgomeryContext) Pow(x, exp *bigint.Int) (*bigint.Int, error) {
	if exp.IsZero() {
		return c.Encode(bigint.FromUint64(1)), nil
	}
	result := x.Clone()
	for i := exp.BitLen() - 2; i >= 0; i-- {
		var err error
		if result, err = c.Sqr(result); err != nil {
			return nil, err
		}
		if exp.Bit(i) == 1 {
			if result, err = c.Mul(result, x); err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

// Reduce performs Montgomery reduction: given an unreduced product t (up
// to 2*rBits bits), computes t*R^-1 mod n without division, per REDC:
//
//	m := (t mod R) * n' mod R
//	u := (t + m*n) / R
//	if u >= n { u -= n }
func (c *montgomeryContext) Reduce(t *bigint.Int) *bigint.Int {
	rMaskBits := c.rBits
	tLow := maskLow(t, rMaskBits)
	m := tLow.Mul(c.nInv)
	m = maskLow(m, rMaskBits)
	u := t.Add(m.Mul(c.mod))
	u = u.Rsh(rMaskBits)
	for u.Cmp(c.mod) >= 0 {
		u = u.Sub(c.mod)
	}
	return u
}

func maskLow(x *bigint.Int, bits uint) *bigint.Int {
	mask := bigint.FromUint64(1).Lsh(bits).Sub(bigint.FromUint64(1))
	return x.And(mask)
}

func (c *montgomeryContext) Clear() {}
