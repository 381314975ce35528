package formula

import "github.com/J08nY/ecsca-engine/point"

// WeierstrassJacobianAdd is "add-2007-bl" from the Explicit-Formulas
// Database: general Jacobian addition, valid for any short-Weierstrass
// curve regardless of the "a" parameter, at the cost of not assuming
// either input is affine (Z=1).
func WeierstrassJacobianAdd() *Formula {
	return &Formula{
		Name:        "weierstrass-jacobian-add",
		System:      point.Jacobian,
		Allocations: []string{"Z1Z1", "Z2Z2", "U1", "U2", "S1", "S2", "H", "I", "J", "r", "V", "X3", "Y3", "Z3", "t0", "t1", "t2"},
		Initializations: []Init{
			{Name: "c2", Value: 2, Encode: true},
		},
		ShortCircuit: true,
		Operations: []Instruction{
			{Op: OpSqr, Dst: "Z1Z1", Src1: "Z1"},
			{Op: OpSqr, Dst: "Z2Z2", Src1: "Z2"},
			{Op: OpMul, Dst: "U1", Src1: "X1", Src2: "Z2Z2"},
			{Op: OpMul, Dst: "U2", Src1: "X2", Src2: "Z1Z1"},
			{Op: OpMul, Dst: "t0", Src1: "Z2", Src2: "Z2Z2"},
			{Op: OpMul, Dst: "S1", Src1: "Y1", Src2: "t0"},
			{Op: OpMul, Dst: "t1", Src1: "Z1", Src2: "Z1Z1"},
			{Op: OpMul, Dst: "S2", Src1: "Y2", Src2: "t1"},
			{Op: OpSub, Dst: "H", Src1: "U2", Src2: "U1"},
			{Op: OpMul, Dst: "t2", Src1: "c2", Src2: "H"},
			{Op: OpSqr, Dst: "I", Src1: "t2"},
			{Op: OpMul, Dst: "J", Src1: "H", Src2: "I"},
			{Op: OpSub, Dst: "t0", Src1: "S2", Src2: "S1"},
			{Op: OpMul, Dst: "r", Src1: "c2", Src2: "t0"},
			{Op: OpMul, Dst: "V", Src1: "U1", Src2: "I"},
			{Op: OpSqr, Dst: "t0", Src1: "r"},
			{Op: OpSub, Dst: "t1", Src1: "t0", Src2: "J"},
			{Op: OpMul, Dst: "t2", Src1: "c2", Src2: "V"},
			{Op: OpSub, Dst: "X3", Src1: "t1", Src2: "t2"},
			{Op: OpSub, Dst: "t0", Src1: "V", Src2: "X3"},
			{Op: OpMul, Dst: "t1", Src1: "r", Src2: "t0"},
			{Op: OpMul, Dst: "t2", Src1: "c2", Src2: "S1"},
			{Op: OpMul, Dst: "t0", Src1: "t2", Src2: "J"},
			{Op: OpSub, Dst: "Y3", Src1: "t1", Src2: "t0"},
			{Op: OpAdd, Dst: "t0", Src1: "Z1", Src2: "Z2"},
			{Op: OpSqr, Dst: "t1", Src1: "t0"},
			{Op: OpSub, Dst: "t2", Src1: "t1", Src2: "Z1Z1"},
			{Op: OpSub, Dst: "t0", Src1: "t2", Src2: "Z2Z2"},
			{Op: OpMul, Dst: "Z3", Src1: "t0", Src2: "H"},
		},
		Returns: map[string]string{"X3": "X", "Y3": "Y", "Z3": "Z"},
	}
}

// WeierstrassJacobianDoubleA3 is "dbl-2001-b": Jacobian point doubling
// specialised to a = -3, the family every NIST prime curve (including
// secp256r1) is parameterised with. Baking a=-3 in rather than taking it
// as a Params entry saves two field multiplications a generic-a
// doubling formula would need, exactly the kind of curve-specific
// formula choice package curve's concrete constructors make.
func WeierstrassJacobianDoubleA3() *Formula {
	return &Formula{
		Name:        "weierstrass-jacobian-dbl-a3",
		System:      point.Jacobian,
		Allocations: []string{"delta", "gamma", "beta", "alpha", "t0", "t1", "t2", "X3", "Y3", "Z3"},
		Initializations: []Init{
			{Name: "c3", Value: 3, Encode: true},
			{Name: "c4", Value: 4, Encode: true},
			{Name: "c8", Value: 8, Encode: true},
		},
		ShortCircuit: true,
		Operations: []Instruction{
			{Op: OpSqr, Dst: "delta", Src1: "Z1"},
			{Op: OpSqr, Dst: "gamma", Src1: "Y1"},
			{Op: OpMul, Dst: "beta", Src1: "X1", Src2: "gamma"},
			{Op: OpSub, Dst: "t0", Src1: "X1", Src2: "delta"},
			{Op: OpAdd, Dst: "t1", Src1: "X1", Src2: "delta"},
			{Op: OpMul, Dst: "t2", Src1: "t0", Src2: "t1"},
			{Op: OpMul, Dst: "alpha", Src1: "c3", Src2: "t2"},
			{Op: OpSqr, Dst: "t0", Src1: "alpha"},
			{Op: OpMul, Dst: "t1", Src1: "c8", Src2: "beta"},
			{Op: OpSub, Dst: "X3", Src1: "t0", Src2: "t1"},
			{Op: OpAdd, Dst: "t0", Src1: "Y1", Src2: "Z1"},
			{Op: OpSqr, Dst: "t1", Src1: "t0"},
			{Op: OpSub, Dst: "t2", Src1: "t1", Src2: "gamma"},
			{Op: OpSub, Dst: "Z3", Src1: "t2", Src2: "delta"},
			{Op: OpMul, Dst: "t0", Src1: "c4", Src2: "beta"},
			{Op: OpSub, Dst: "t1", Src1: "t0", Src2: "X3"},
			{Op: OpMul, Dst: "t2", Src1: "alpha", Src2: "t1"},
			{Op: OpSqr, Dst: "t0", Src1: "gamma"},
			{Op: OpMul, Dst: "t1", Src1: "c8", Src2: "t0"},
			{Op: OpSub, Dst: "Y3", Src1: "t2", Src2: "t1"},
		},
		Returns: map[string]string{"X3": "X", "Y3": "Y", "Z3": "Z"},
	}
}

// WeierstrassJacobianNeg negates a Jacobian point: (X,Y,Z) -> (X,-Y,Z),
// per spec.md §4.5's "neg of neutral is neutral" short-circuit.
func WeierstrassJacobianNeg() *Formula {
	return &Formula{
		Name:         "weierstrass-jacobian-neg",
		System:       point.Jacobian,
		Allocations:  []string{"X3", "Y3", "Z3"},
		ShortCircuit: true,
		Operations: []Instruction{
			{Op: OpNeg, Dst: "Y3", Src1: "Y1"},
		},
		Returns: map[string]string{"X1": "X", "Y3": "Y", "Z1": "Z"},
	}
}

// WeierstrassJacobianScl renormalises a Jacobian point's projective
// factor back to Z=1, per spec.md §4.5's "scl (rescale)" for coordinate
// systems that drift: running several dbl/add steps leaves Z with
// accumulated magnitude, and scl pays the one inversion to flatten it
// back down, the way to_affine does, but staying in Jacobian form.
func WeierstrassJacobianScl() *Formula {
	return &Formula{
		Name:        "weierstrass-jacobian-scl",
		System:      point.Jacobian,
		Allocations: []string{"zInv", "zInv2", "zInv3", "X3", "Y3", "Z3"},
		Initializations: []Init{
			{Name: "Z3", Value: 1, Encode: true},
		},
		Operations: []Instruction{
			{Op: OpInv, Dst: "zInv", Src1: "Z1"},
			{Op: OpSqr, Dst: "zInv2", Src1: "zInv"},
			{Op: OpMul, Dst: "zInv3", Src1: "zInv2", Src2: "zInv"},
			{Op: OpMul, Dst: "X3", Src1: "X1", Src2: "zInv2"},
			{Op: OpMul, Dst: "Y3", Src1: "Y1", Src2: "zInv3"},
		},
		Returns: map[string]string{"X3": "X", "Y3": "Y", "Z3": "Z"},
	}
}
