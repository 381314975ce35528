package point

import "github.com/J08nY/ecsca-engine/bigint"

// ToAffine normalises p to affine (x,y), per spec.md §4.4's to_affine.
// Coordinates are assumed to already be in natural (decoded) form; callers
// that keep points encoded in residue form must RedDecode first.
//
// Grounded on the per-system math every *_to_affine formula in
// original_source/pyecsca codegen templates performs: Jacobian divides by
// Z^2/Z^3, extended/projective coordinates by Z, Montgomery X-only by Z,
// affine is already in that form.
func (p *Point) ToAffine(curve Curve) (x, y *bigint.Int) {
	red := curve.Reduction()
	mod := red.Modulus()

	switch p.System.Name {
	case Affine.Name:
		return p.Coords["X"].Clone(), p.Coords["Y"].Clone()
	case Jacobian.Name:
		zInv, _ := p.Coords["Z"].ModInv(mod)
		zInv2 := zInv.ModSqr(mod)
		zInv3 := zInv2.ModMul(zInv, mod)
		return p.Coords["X"].ModMul(zInv2, mod), p.Coords["Y"].ModMul(zInv3, mod)
	case ExtendedEdwards.Name, ProjectiveXYZ.Name:
		zInv, _ := p.Coords["Z"].ModInv(mod)
		return p.Coords["X"].ModMul(zInv, mod), p.Coords["Y"].ModMul(zInv, mod)
	case MontgomeryXZ.Name:
		zInv, _ := p.Coords["Z"].ModInv(mod)
		return p.Coords["X"].ModMul(zInv, mod), nil
	default:
		return p.Coords["X"].Clone(), p.Coords["Y"].Clone()
	}
}

// FromAffine builds a point of system from affine coordinates (x,y), per
// spec.md §4.4's from_affine: "copy x→X, y→Y, set Z to the reduced
// representation of 1, set T=x·y (for extended coordinates). Other
// systems define their own mapping." x,y are in natural (not yet
// red-encoded) form.
func FromAffine(system System, x, y *bigint.Int, curve Curve) *Point {
	p := New(system)
	mod := curve.Reduction().Modulus()
	one := bigint.FromUint64(1)

	switch system.Name {
	case Affine.Name:
		p.Coords["X"], p.Coords["Y"] = x.Clone(), y.Clone()
	case Jacobian.Name, ProjectiveXYZ.Name:
		p.Coords["X"], p.Coords["Y"] = x.Clone(), y.Clone()
		p.Coords["Z"] = one.Mod(mod)
	case ExtendedEdwards.Name:
		p.Coords["X"], p.Coords["Y"] = x.Clone(), y.Clone()
		p.Coords["Z"] = one.Mod(mod)
		p.Coords["T"] = x.ModMul(y, mod)
	case MontgomeryXZ.Name:
		p.Coords["X"] = x.Clone()
		p.Coords["Z"] = one.Mod(mod)
	default:
		p.Coords["X"], p.Coords["Y"] = x.Clone(), y.Clone()
	}
	return p
}
