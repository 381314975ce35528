package formula

import "github.com/J08nY/ecsca-engine/point"

// ExtendedEdwardsAdd is the unified addition law for twisted Edwards
// curves a*x^2+y^2 = 1+d*x^2*y^2 in extended coordinates (X:Y:Z:T), valid
// for both operands and their sum regardless of point equality — the
// same "no special-cased doubling branch" property formula_add.c's
// short-circuit wrapping assumes of whatever op list it templates.
// Curve.Param supplies "a": ExtendedEdwardsAdd/Dbl read it directly off a
// curve configured with model TwistedEdwards, while a curve configured
// with model Edwards (params {c,d}) derives it as the constant 1, per
// package curve's Param doc comment.
func ExtendedEdwardsAdd() *Formula {
	return &Formula{
		Name:         "edwards-extended-add",
		System:       point.ExtendedEdwards,
		Allocations:  []string{"A", "B", "C", "D", "E", "F", "G", "H", "t0", "t1", "X3", "Y3", "Z3", "T3"},
		Params:       []string{"a", "d"},
		ShortCircuit: true,
		Operations: []Instruction{
			{Op: OpMul, Dst: "A", Src1: "X1", Src2: "X2"},
			{Op: OpMul, Dst: "B", Src1: "Y1", Src2: "Y2"},
			{Op: OpMul, Dst: "t0", Src1: "T1", Src2: "T2"},
			{Op: OpMul, Dst: "C", Src1: "d", Src2: "t0"},
			{Op: OpMul, Dst: "D", Src1: "Z1", Src2: "Z2"},
			{Op: OpAdd, Dst: "t0", Src1: "X1", Src2: "Y1"},
			{Op: OpAdd, Dst: "t1", Src1: "X2", Src2: "Y2"},
			{Op: OpMul, Dst: "E", Src1: "t0", Src2: "t1"},
			{Op: OpSub, Dst: "E", Src1: "E", Src2: "A"},
			{Op: OpSub, Dst: "E", Src1: "E", Src2: "B"},
			{Op: OpSub, Dst: "F", Src1: "D", Src2: "C"},
			{Op: OpAdd, Dst: "G", Src1: "D", Src2: "C"},
			{Op: OpMul, Dst: "t0", Src1: "a", Src2: "A"},
			{Op: OpSub, Dst: "H", Src1: "B", Src2: "t0"},
			{Op: OpMul, Dst: "X3", Src1: "E", Src2: "F"},
			{Op: OpMul, Dst: "Y3", Src1: "G", Src2: "H"},
			{Op: OpMul, Dst: "T3", Src1: "E", Src2: "H"},
			{Op: OpMul, Dst: "Z3", Src1: "F", Src2: "G"},
		},
		Returns: map[string]string{"X3": "X", "Y3": "Y", "Z3": "Z", "T3": "T"},
	}
}

// ExtendedEdwardsDbl is the general-a doubling law for extended
// twisted-Edwards coordinates, used wherever package scalarmult calls a
// FormulaSet's Dbl independent of Add (every variant but the Montgomery
// ladder's fused ladd). Doubling the neutral element returns the neutral
// element, per ShortCircuit's "other == nil" branch in formula.go's
// Apply.
func ExtendedEdwardsDbl() *Formula {
	return &Formula{
		Name:        "edwards-extended-dbl",
		System:      point.ExtendedEdwards,
		Allocations: []string{"A", "B", "C", "D", "E", "F", "G", "H", "t0", "t1", "X3", "Y3", "Z3", "T3"},
		Initializations: []Init{
			{Name: "c2", Value: 2, Encode: true},
		},
		Params:       []string{"a"},
		ShortCircuit: true,
		Operations: []Instruction{
			{Op: OpSqr, Dst: "A", Src1: "X1"},
			{Op: OpSqr, Dst: "B", Src1: "Y1"},
			{Op: OpSqr, Dst: "t0", Src1: "Z1"},
			{Op: OpMul, Dst: "C", Src1: "c2", Src2: "t0"},
			{Op: OpMul, Dst: "D", Src1: "a", Src2: "A"},
			{Op: OpAdd, Dst: "t0", Src1: "X1", Src2: "Y1"},
			{Op: OpSqr, Dst: "t1", Src1: "t0"},
			{Op: OpSub, Dst: "t1", Src1: "t1", Src2: "A"},
			{Op: OpSub, Dst: "E", Src1: "t1", Src2: "B"},
			{Op: OpAdd, Dst: "G", Src1: "D", Src2: "B"},
			{Op: OpSub, Dst: "F", Src1: "G", Src2: "C"},
			{Op: OpSub, Dst: "H", Src1: "D", Src2: "B"},
			{Op: OpMul, Dst: "X3", Src1: "E", Src2: "F"},
			{Op: OpMul, Dst: "Y3", Src1: "G", Src2: "H"},
			{Op: OpMul, Dst: "T3", Src1: "E", Src2: "H"},
			{Op: OpMul, Dst: "Z3", Src1: "F", Src2: "G"},
		},
		Returns: map[string]string{"X3": "X", "Y3": "Y", "Z3": "Z", "T3": "T"},
	}
}

// ExtendedEdwardsNeg negates an extended-coordinates point:
// (X,Y,Z,T) -> (-X,Y,Z,-T), per spec.md §4.5's "neg of neutral is
// neutral" short-circuit.
func ExtendedEdwardsNeg() *Formula {
	return &Formula{
		Name:         "edwards-extended-neg",
		System:       point.ExtendedEdwards,
		Allocations:  []string{"X3", "T3"},
		ShortCircuit: true,
		Operations: []Instruction{
			{Op: OpNeg, Dst: "X3", Src1: "X1"},
			{Op: OpNeg, Dst: "T3", Src1: "T1"},
		},
		Returns: map[string]string{"X3": "X", "Y1": "Y", "Z1": "Z", "T3": "T"},
	}
}
