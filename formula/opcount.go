package formula

import "github.com/J08nY/ecsca-engine/internal/callcounters"

// Op counters, per side-channel research's usual interest in how many
// modular multiplications/squarings/inversions a formula's op list costs:
// on hardware without constant-time field arithmetic, the mix of these
// operations is itself a leakage channel, so counting them alongside
// running a formula is worth more than counting formula invocations
// alone. Grounded on Bandersnatch's bandersnatch/callcounters_active.go +
// callcounters_inactive.go build-tag pair, which gates call counting
// behind a `callcounters` build tag so the instrumentation costs nothing
// in the default build; incrementOpCounter here is that same no-op/active
// split, generalized from Bandersnatch's one global op to formula's seven
// Op kinds.
const (
	opCounterRoot callcounters.Id = "FormulaOps"
	opCounterAdd  callcounters.Id = "FormulaOps.Add"
	opCounterSub  callcounters.Id = "FormulaOps.Sub"
	opCounterNeg  callcounters.Id = "FormulaOps.Neg"
	opCounterMul  callcounters.Id = "FormulaOps.Mul"
	opCounterSqr  callcounters.Id = "FormulaOps.Sqr"
	opCounterInv  callcounters.Id = "FormulaOps.Inv"
	opCounterDiv  callcounters.Id = "FormulaOps.Div"
)

func init() {
	callcounters.CreateHierarchicalCallCounter(opCounterRoot, "Formula operations", "")
	callcounters.CreateHierarchicalCallCounter(opCounterAdd, "Add", opCounterRoot)
	callcounters.CreateHierarchicalCallCounter(opCounterSub, "Sub", opCounterRoot)
	callcounters.CreateHierarchicalCallCounter(opCounterNeg, "Neg", opCounterRoot)
	callcounters.CreateHierarchicalCallCounter(opCounterMul, "Mul", opCounterRoot)
	callcounters.CreateHierarchicalCallCounter(opCounterSqr, "Sqr", opCounterRoot)
	callcounters.CreateHierarchicalCallCounter(opCounterInv, "Inv", opCounterRoot)
	callcounters.CreateHierarchicalCallCounter(opCounterDiv, "Div", opCounterRoot)
}

func counterFor(op Op) callcounters.Id {
	switch op {
	case OpAdd:
		return opCounterAdd
	case OpSub:
		return opCounterSub
	case OpNeg:
		return opCounterNeg
	case OpMul:
		return opCounterMul
	case OpSqr:
		return opCounterSqr
	case OpInv:
		return opCounterInv
	case OpDiv:
		return opCounterDiv
	default:
		return opCounterRoot
	}
}
