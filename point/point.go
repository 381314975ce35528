// Package point implements spec.md §4.4: a coordinate-system-agnostic
// point representation over package reduction's residue BigInts, plus
// affine conversion.
//
// original_source/pyecsca/codegen/templates/point.c templates point_t's
// field list from the coordinate system's own variable list ("point_t
// definition is variable", per defs.h): a Bandersnatch-style fixed Go
// struct per system would need one hand-written type per coordinate
// system the curve package might select, so Point instead carries its
// coordinates in a name-indexed map the way package formula's working
// set does, and dispatches the handful of operations that are
// coordinate-system-specific (ToAffine, FromAffine) on the System value.
package point

import (
	"github.com/J08nY/ecsca-engine/bigint"
	"github.com/J08nY/ecsca-engine/reduction"
)

// System names a coordinate system and the BigInt-valued fields a point
// in it carries, e.g. {X,Y,Z} for Jacobian or {X,Y,Z,T} for extended
// Edwards, per spec.md §3's "Point" glossary entry.
type System struct {
	Name      string
	Variables []string
}

func (s System) String() string { return s.Name }

var (
	Affine           = System{"affine", []string{"X", "Y"}}
	Jacobian         = System{"jacobian", []string{"X", "Y", "Z"}}
	ExtendedEdwards  = System{"extended-edwards", []string{"X", "Y", "Z", "T"}}
	MontgomeryXZ     = System{"montgomery-xz", []string{"X", "Z"}}
	ProjectiveXYZ    = System{"projective", []string{"X", "Y", "Z"}}
)

// Curve is the narrow view point needs of a curve to convert to/from
// affine form: its reduction context. It exists so this package need not
// import package curve (which itself holds *Point generator/neutral
// fields) — see DESIGN.md for the dependency-direction note.
type Curve interface {
	Reduction() reduction.Context
}

// Point is a record of named BigInts plus an infinity flag, per
// spec.md §4.4. Ownership is exclusive: New/Copy/Set/Free mirror
// point_new/point_copy/point_set/point_free's exclusive-ownership
// contract, though Go's GC makes Free a no-op kept only for symmetry
// with the scoped-acquisition discipline spec.md §5 calls for.
type Point struct {
	System   System
	Coords   map[string]*bigint.Int
	Infinity bool
}

// New allocates a point in the given coordinate system with all
// coordinates zero and infinity unset, mirroring point_new's bn_init
// loop over the templated variable list.
func New(system System) *Point {
	p := &Point{System: system, Coords: make(map[string]*bigint.Int, len(system.Variables))}
	for _, v := range system.Variables {
		p.Coords[v] = bigint.New()
	}
	return p
}

// Copy returns an independent deep copy, per point_copy.
func (p *Point) Copy() *Point {
	out := New(p.System)
	out.Set(p)
	return out
}

// Set makes p equal to from, per point_set's per-variable bn_copy loop.
func (p *Point) Set(from *Point) *Point {
	p.System = from.System
	p.Coords = make(map[string]*bigint.Int, len(from.Coords))
	for name, v := range from.Coords {
		p.Coords[name] = v.Clone()
	}
	p.Infinity = from.Infinity
	return p
}

// Free releases the point's state. Go's garbage collector reclaims the
// backing storage; Free exists only so callers that scope-acquire points
// per spec.md §5 have a symmetric release call to pair with New.
func (p *Point) Free() { p.Coords = nil }

// Equals compares p and other coordinate-wise plus the infinity flag,
// per point_equals's per-variable bn_eq loop with no affine
// normalisation.
func (p *Point) Equals(other *Point) bool {
	if p.System.Name != other.System.Name || p.Infinity != other.Infinity {
		return false
	}
	for _, name := range p.System.Variables {
		if !p.Coords[name].Equal(other.Coords[name]) {
			return false
		}
	}
	return true
}

// EqualsAffine normalises both points to affine over curve before
// comparing, per spec.md §4.4's equals_affine.
func (p *Point) EqualsAffine(other *Point, curve Curve) bool {
	if p.Infinity != other.Infinity {
		return false
	}
	if p.Infinity {
		return true
	}
	px, py := p.ToAffine(curve)
	ox, oy := other.ToAffine(curve)
	return px.Equal(ox) && py.Equal(oy)
}

// RedEncode applies the curve's reduction transform to every coordinate,
// entering residue form.
func (p *Point) RedEncode(curve Curve) *Point {
	return p.mapCoords(curve.Reduction().Encode)
}

// RedDecode removes the curve's reduction transform from every
// coordinate, leaving natural form.
func (p *Point) RedDecode(curve Curve) *Point {
	return p.mapCoords(curve.Reduction().Decode)
}

func (p *Point) mapCoords(f func(*bigint.Int) *bigint.Int) *Point {
	out := New(p.System)
	out.Infinity = p.Infinity
	for name, v := range p.Coords {
		out.Coords[name] = f(v)
	}
	return out
}
