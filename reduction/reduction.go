// Package reduction implements spec.md §4.2: the three reduction backends
// (None, Barrett, Montgomery) behind a single Context interface, each bound
// to a modulus when New constructs it.
//
// Each Context is an opaque per-modulus precomputation, as spec.md §3
// requires: reusing one with a different modulus than it was set up with is
// undefined and not defended against here, matching the original's
// bn_red_setup contract.
package reduction

import "github.com/J08nY/ecsca-engine/bigint"

// Kind names the reduction backend, used by curve construction to pick an
// implementation from configuration (spec.md §9's "Reduction" knob).
type Kind int

const (
	None Kind = iota
	Barrett
	Montgomery
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Barrett:
		return "barrett"
	case Montgomery:
		return "montgomery"
	default:
		return "unknown"
	}
}

// Context is the uniform operation interface every reduction backend
// exposes, per spec.md §4.2: init/setup/encode/decode/add/sub/neg/mul/sqr/
// inv/div/pow/reduce/clear. "clear" has no meaningful effect for a
// math/big-backed implementation (there is no sensitive limb buffer to
// scrub) and is kept as a no-op method so call sites that mirror the
// original's init/commands/deinit lifecycle do not need a special case.
type Context interface {
	Kind() Kind
	Modulus() *bigint.Int

	// Encode/Decode move a natural-representation value into/out of this
	// backend's residue form. For None and Barrett this is the identity;
	// for Montgomery it multiplies/divides by R mod n.
	Encode(x *bigint.Int) *bigint.Int
	Decode(x *bigint.Int) *bigint.Int

	// Add/Sub/Neg/Mul/Sqr/Div/Inv/Pow operate entirely on residues: for two
	// residue inputs they return a residue output representing the natural
	// result of the corresponding operation.
	Add(x, y *bigint.Int) *bigint.Int
	Sub(x, y *bigint.Int) *bigint.Int
	Neg(x *bigint.Int) *bigint.Int
	Mul(x, y *bigint.Int) (*bigint.Int, error)
	Sqr(x *bigint.Int) (*bigint.Int, error)
	Inv(x *bigint.Int) (*bigint.Int, error)
	Div(x, y *bigint.Int) (*bigint.Int, error)
	Pow(x, exp *bigint.Int) (*bigint.Int, error)

	// Reduce takes an unreduced product (as produced by bigint.Int.Mul/Sqr)
	// and folds it back into residue form, i.e. the fused reduce-after-mul
	// step spec.md §4.2 calls out.
	Reduce(unreduced *bigint.Int) *bigint.Int

	Clear()
}

// New constructs and sets up a Context of the given kind for modulus m, per
// spec.md §4.2/§4.7 (curve.New calls this with the curve's modulus).
func New(kind Kind, m *bigint.Int) Context {
	switch kind {
	case Montgomery:
		return newMontgomery(m)
	case Barrett:
		return newBarrett(m)
	default:
		return newNone(m)
	}
}
