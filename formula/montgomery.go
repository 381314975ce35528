package formula

import "github.com/J08nY/ecsca-engine/point"

// MontgomeryLadd is the classic x-only combined differential-add-and-
// double step ("xDBLADD") used by every Montgomery-ladder scalarmult
// variant in spec.md §4.6: given the ladder registers P0=(X1,Z1),
// P1=(X2,Z2), and the fixed difference diff=(Xd,Zd) = P0-P1 (the base
// point, since the ladder preserves that invariant), it produces 2*P0
// and P0+P1 in one call — spec.md's "ladd(P0,P1,P) returning both
// outputs" — using only the curve parameter a24 = (A+2)/4.
func MontgomeryLadd() *Formula {
	return &Formula{
		Name:        "montgomery-xz-ladd",
		System:      point.MontgomeryXZ,
		Allocations: []string{"t1", "t2", "t3", "t4", "t5", "t6", "t7", "t8", "t9", "X1o", "Z1o", "X2o", "Z2o"},
		Params:      []string{"a24"},
		Operations: []Instruction{
			{Op: OpAdd, Dst: "t1", Src1: "X1", Src2: "Z1"},
			{Op: OpSub, Dst: "t2", Src1: "X1", Src2: "Z1"},
			{Op: OpAdd, Dst: "t3", Src1: "X2", Src2: "Z2"},
			{Op: OpSub, Dst: "t4", Src1: "X2", Src2: "Z2"},
			{Op: OpSqr, Dst: "t5", Src1: "t1"},
			{Op: OpSqr, Dst: "t6", Src1: "t2"},
			{Op: OpSub, Dst: "t7", Src1: "t5", Src2: "t6"},
			{Op: OpMul, Dst: "X1o", Src1: "t5", Src2: "t6"},
			{Op: OpMul, Dst: "t8", Src1: "t3", Src2: "t2"},
			{Op: OpMul, Dst: "t9", Src1: "t4", Src2: "t1"},
			{Op: OpAdd, Dst: "t1", Src1: "t8", Src2: "t9"},
			{Op: OpSqr, Dst: "t2", Src1: "t1"},
			{Op: OpMul, Dst: "X2o", Src1: "Zd", Src2: "t2"},
			{Op: OpSub, Dst: "t3", Src1: "t8", Src2: "t9"},
			{Op: OpSqr, Dst: "t4", Src1: "t3"},
			{Op: OpMul, Dst: "Z2o", Src1: "Xd", Src2: "t4"},
			{Op: OpMul, Dst: "t5", Src1: "a24", Src2: "t7"},
			{Op: OpAdd, Dst: "t6", Src1: "t6", Src2: "t5"},
			{Op: OpMul, Dst: "Z1o", Src1: "t7", Src2: "t6"},
		},
		Returns:      map[string]string{"X1o": "X", "Z1o": "Z"},
		ReturnsOther: map[string]string{"X2o": "X", "Z2o": "Z"},
	}
}

// MontgomeryDadd is MontgomeryLadd's "dadd" half alone: differential
// addition of P0 and P1 given their fixed difference diff, without the
// doubling of P0 — used by ladder variants whose control flow needs add
// and double as separate steps rather than the fused xDBLADD.
func MontgomeryDadd() *Formula {
	return &Formula{
		Name:        "montgomery-xz-dadd",
		System:      point.MontgomeryXZ,
		Allocations: []string{"t1", "t2", "t3", "t4", "X3", "Z3"},
		Operations: []Instruction{
			{Op: OpAdd, Dst: "t1", Src1: "X1", Src2: "Z1"},
			{Op: OpSub, Dst: "t2", Src1: "X1", Src2: "Z1"},
			{Op: OpAdd, Dst: "t3", Src1: "X2", Src2: "Z2"},
			{Op: OpSub, Dst: "t4", Src1: "X2", Src2: "Z2"},
			{Op: OpMul, Dst: "t3", Src1: "t3", Src2: "t2"},
			{Op: OpMul, Dst: "t4", Src1: "t4", Src2: "t1"},
			{Op: OpAdd, Dst: "t1", Src1: "t3", Src2: "t4"},
			{Op: OpSub, Dst: "t2", Src1: "t3", Src2: "t4"},
			{Op: OpSqr, Dst: "t1", Src1: "t1"},
			{Op: OpSqr, Dst: "t2", Src1: "t2"},
			{Op: OpMul, Dst: "X3", Src1: "Zd", Src2: "t1"},
			{Op: OpMul, Dst: "Z3", Src1: "Xd", Src2: "t2"},
		},
		ZeroBetweenInvocations: true,
		Returns:                map[string]string{"X3": "X", "Z3": "Z"},
	}
}

// MontgomeryDbl doubles a Montgomery X-only point using a24 = (A+2)/4.
func MontgomeryDbl() *Formula {
	return &Formula{
		Name:        "montgomery-xz-dbl",
		System:      point.MontgomeryXZ,
		Allocations: []string{"t1", "t2", "t3", "t4", "X3", "Z3"},
		Params:      []string{"a24"},
		Operations: []Instruction{
			{Op: OpAdd, Dst: "t1", Src1: "X1", Src2: "Z1"},
			{Op: OpSqr, Dst: "t1", Src1: "t1"},
			{Op: OpSub, Dst: "t2", Src1: "X1", Src2: "Z1"},
			{Op: OpSqr, Dst: "t2", Src1: "t2"},
			{Op: OpMul, Dst: "X3", Src1: "t1", Src2: "t2"},
			{Op: OpSub, Dst: "t3", Src1: "t1", Src2: "t2"},
			{Op: OpMul, Dst: "t4", Src1: "a24", Src2: "t3"},
			{Op: OpAdd, Dst: "t4", Src1: "t4", Src2: "t2"},
			{Op: OpMul, Dst: "Z3", Src1: "t3", Src2: "t4"},
		},
		Returns: map[string]string{"X3": "X", "Z3": "Z"},
	}
}
