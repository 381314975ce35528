// Package formula implements spec.md §4.5: a formula as a straight-line
// program of modular operations over a named working set, realising
// add/dbl/tpl/neg/scl/dadd/ladd.
//
// Grounded on original_source/pyecsca/codegen/templates/formula_add.c,
// formula_neg.c, formula_dadd.c and the shared templates/ops.c they all
// include: ops.c renders, per formula, a fixed allocation block
// (`bn_t {{alloc}}; bn_init(...)`), constant initializations
// (`bn_from_int(value, &name)`), an ordered operation list rendered via
// render_op, and a final set of frees — exactly the "allocations /
// initializations / op list / returns" shape spec.md §4.5 describes,
// generated once per formula rather than per scalar-mult call.
package formula

import (
	"github.com/J08nY/ecsca-engine/bigint"
	"github.com/J08nY/ecsca-engine/bserrors"
	"github.com/J08nY/ecsca-engine/point"
	"github.com/J08nY/ecsca-engine/reduction"
)

// Op is one of the modular operations spec.md §4.5 allows in a formula's
// op list.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpNeg
	OpMul
	OpSqr
	OpInv
	OpDiv
)

// Instruction is one op-list entry (op, dst, src1, src2), per spec.md
// §4.5. Src2 is ignored for the unary ops (Neg, Sqr, Inv).
type Instruction struct {
	Op         Op
	Dst        string
	Src1, Src2 string
}

// Init is a constant initialisation: name -> (small integer, whether to
// encode it into residue form), per spec.md §4.5's initializations map.
type Init struct {
	Name   string
	Value  uint64
	Encode bool
}

// Curve is the view formula needs of a curve: reduction, the neutral
// element for short-circuit checks, and named curve-model parameters
// (e.g. a Weierstrass "a", a Montgomery "a24") in residue form, already
// reduced the way every other working-set value is. It is narrower than
// the eventual package curve's Curve type so formula does not import
// curve.
type Curve interface {
	Reduction() reduction.Context
	Neutral() *point.Point
	Param(name string) (*bigint.Int, bool)
}

// Formula is a straight-line program realising one of
// add/dbl/tpl/neg/scl/dadd/ladd over a point coordinate system.
//
// Inputs are seeded into the working set under the coordinate's name
// suffixed by operand index — "X1"/"Y1"/"Z1" for the first point operand,
// "X2"/.../ for the second, "Xd"/.../ for the differential third operand
// — matching how EFD-style formulas (and this source's formula_dadd.c,
// which takes one/other/diff) name their inputs.
type Formula struct {
	Name            string
	System          point.System
	Allocations     []string
	Initializations []Init
	// Params names curve-model parameters this formula's op list
	// references directly (by the same name), fetched from Curve.Param
	// and seeded into the working set before Initializations run.
	Params          []string
	Operations      []Instruction
	Returns         map[string]string // working-set name -> output coordinate name
	// ReturnsOther is set only on "ladd" formulas (spec.md §4.6's
	// "Ladder (combined): one call ladd(P0,P1,P) returning both
	// outputs"), naming the second output point's coordinates.
	ReturnsOther map[string]string
	ShortCircuit bool
	// ZeroBetweenInvocations mirrors formula_dadd.c's requirement that
	// dadd additionally zeroes shared state between otherwise-shared
	// invocations, since a differential-addition working set can carry
	// state across ladder steps that plain add/dbl do not.
	ZeroBetweenInvocations bool
}

// Working is a formula's allocated scratch BigInts, held across
// invocations per spec.md §4.5's lifecycle: "init (once, allocates the
// working set); each invocation runs initialisations ... ; clear
// releases the working set."
type Working struct {
	formula *Formula
	slots   map[string]*bigint.Int
}

// Init allocates the working set once, per point_*_init in the
// generated sources.
func (f *Formula) Init() *Working {
	w := &Working{formula: f, slots: make(map[string]*bigint.Int, len(f.Allocations))}
	for _, name := range f.Allocations {
		w.slots[name] = bigint.New()
	}
	return w
}

// Clear releases the working set, per point_*_clear.
func (w *Working) Clear() { w.slots = nil }

// seedOperand copies p's coordinates into the working set under names
// suffixed by suffix (e.g. X1, Y1, Z1 for suffix "1").
func seedOperand(slots map[string]*bigint.Int, suffix string, p *point.Point) {
	if p == nil {
		return
	}
	for name, v := range p.Coords {
		slots[name+suffix] = v
	}
}

// Apply runs one formula invocation against operand points one (and,
// where the formula needs them, other/diff), returning the resulting
// point in the formula's coordinate system.
//
// Short-circuit handling, when ShortCircuit is set, mirrors
// formula_add.c / formula_neg.c: add returns the other operand unchanged
// when one is the curve's neutral element (and vice versa); neg of the
// neutral element returns the neutral element.
func (w *Working) Apply(curve Curve, one, other, diff *point.Point) (*point.Point, error) {
	if w.formula.ShortCircuit {
		neutral := curve.Neutral()
		if neutral != nil {
			if other == nil && one.Equals(neutral) {
				return one.Copy(), nil
			}
			if other != nil {
				if one.Equals(neutral) {
					return other.Copy(), nil
				}
				if other.Equals(neutral) {
					return one.Copy(), nil
				}
			}
		}
	}

	if w.formula.ZeroBetweenInvocations {
		for name := range w.slots {
			w.slots[name] = bigint.New()
		}
	}

	inputs := make(map[string]*bigint.Int)
	seedOperand(inputs, "1", one)
	seedOperand(inputs, "2", other)
	seedOperand(inputs, "d", diff)

	if err := w.run(curve, inputs); err != nil {
		return nil, err
	}
	return w.toPoint(w.formula.Returns), nil
}

// ApplyLadd runs a "ladd" formula (spec.md §4.6's combined Montgomery
// ladder step) against P0=one, P1=other, and the fixed difference diff,
// returning both output points in a single invocation.
func (w *Working) ApplyLadd(curve Curve, one, other, diff *point.Point) (outOne, outOther *point.Point, err error) {
	inputs := make(map[string]*bigint.Int)
	seedOperand(inputs, "1", one)
	seedOperand(inputs, "2", other)
	seedOperand(inputs, "d", diff)

	if err := w.run(curve, inputs); err != nil {
		return nil, nil, err
	}
	return w.toPoint(w.formula.Returns), w.toPoint(w.formula.ReturnsOther), nil
}

func (w *Working) toPoint(returns map[string]string) *point.Point {
	result := point.New(w.formula.System)
	for name, v := range w.publish(returns) {
		result.Coords[name] = v
	}
	return result
}

func (w *Working) publish(returns map[string]string) map[string]*bigint.Int {
	out := make(map[string]*bigint.Int, len(returns))
	for working, coord := range returns {
		out[coord] = w.slots[working]
	}
	return out
}

// Run executes the op list once against an explicit input set,
// returning every named output coordinate the formula declares (both
// Returns and, for ladd formulas, ReturnsOther). Most callers should use
// Apply/ApplyLadd instead; Run is exposed for tests and for scalarmult
// variants that need to inspect intermediate working-set state.
func (w *Working) Run(curve Curve, inputs map[string]*bigint.Int) (map[string]*bigint.Int, error) {
	if err := w.run(curve, inputs); err != nil {
		return nil, err
	}
	out := w.publish(w.formula.Returns)
	for coord, v := range w.publish(w.formula.ReturnsOther) {
		out[coord] = v
	}
	return out, nil
}

func (w *Working) run(curve Curve, inputs map[string]*bigint.Int) error {
	red := curve.Reduction()
	mod := red.Modulus()

	for name, v := range inputs {
		w.slots[name] = v
	}
	for _, name := range w.formula.Params {
		v, ok := curve.Param(name)
		if !ok {
			return bserrors.Wrapf(bserrors.ErrInvalidInput, "curve has no parameter %q required by formula %q", name, w.formula.Name)
		}
		w.slots[name] = v
	}
	for _, init := range w.formula.Initializations {
		v := bigint.FromUint64(init.Value).Mod(mod)
		if init.Encode {
			v = red.Encode(v)
		}
		w.slots[init.Name] = v
	}

	for _, instr := range w.formula.Operations {
		incrementOpCounter(instr.Op)
		result, err := apply(red, instr, w.slots)
		if err != nil {
			return err
		}
		w.slots[instr.Dst] = result
	}
	return nil
}

func apply(red reduction.Context, instr Instruction, slots map[string]*bigint.Int) (*bigint.Int, error) {
	left, ok := slots[instr.Src1]
	if !ok {
		return nil, bserrors.Wrapf(bserrors.ErrInvalidInput, "formula op references unknown slot %q", instr.Src1)
	}
	switch instr.Op {
	case OpAdd:
		right, ok := slots[instr.Src2]
		if !ok {
			return nil, bserrors.Wrapf(bserrors.ErrInvalidInput, "formula op references unknown slot %q", instr.Src2)
		}
		return red.Add(left, right), nil
	case OpSub:
		right, ok := slots[instr.Src2]
		if !ok {
			return nil, bserrors.Wrapf(bserrors.ErrInvalidInput, "formula op references unknown slot %q", instr.Src2)
		}
		return red.Sub(left, right), nil
	case OpNeg:
		return red.Neg(left), nil
	case OpMul:
		right, ok := slots[instr.Src2]
		if !ok {
			return nil, bserrors.Wrapf(bserrors.ErrInvalidInput, "formula op references unknown slot %q", instr.Src2)
		}
		return red.Mul(left, right)
	case OpSqr:
		return red.Sqr(left)
	case OpInv:
		return red.Inv(left)
	case OpDiv:
		right, ok := slots[instr.Src2]
		if !ok {
			return nil, bserrors.Wrapf(bserrors.ErrInvalidInput, "formula op references unknown slot %q", instr.Src2)
		}
		return red.Div(left, right)
	default:
		return nil, bserrors.Wrapf(bserrors.ErrInvalidInput, "unknown formula op %d", instr.Op)
	}
}
