package scalarmult

import (
	"github.com/J08nY/ecsca-engine/bigint"
	"github.com/J08nY/ecsca-engine/point"
)

// FullPrecomputationMultiplier precomputes 2^i*P for every bit position up
// to the order's bit length and accumulates directly from the table
// instead of doubling at scan time, grounded on
// original_source/pyecsca/codegen/templates/mult_precomp.c: the table
// trades all doubling work for storage, leaving one accumulate per set bit
// and, with Always set, a dummy accumulate into a throwaway register on
// each unset bit, scanned in either direction per Config.Direction.
type FullPrecomputationMultiplier struct {
	Config   Config
	Formulas FormulaSet
}

func NewFullPrecomputationMultiplier(cfg Config, formulas FormulaSet) *FullPrecomputationMultiplier {
	return &FullPrecomputationMultiplier{Config: cfg, Formulas: formulas}
}

func (m *FullPrecomputationMultiplier) Multiply(curve Curve, scalar *bigint.Int, p *point.Point) (*point.Point, error) {
	orderBits := curve.Order().BitLen()
	points := make([]*point.Point, orderBits+1)

	current := p.Copy()
	var err error
	for i := 0; i < orderBits+1; i++ {
		points[i] = current.Copy()
		if i != orderBits {
			current, err = m.Formulas.Dbl.Apply(curve, current, nil, nil)
			if err != nil {
				return nil, err
			}
		}
	}

	q, err := neutralOf(curve)
	if err != nil {
		return nil, err
	}
	var dummy *point.Point
	if m.Config.Always {
		dummy = point.New(p.System)
	}

	if m.Config.Direction == LTR {
		nbits := orderBits
		if !m.Config.Complete {
			nbits = scalar.BitLen()
		}
		for i := nbits - 1; i >= 0; i-- {
			if scalar.Bit(i) == 1 {
				q, err = m.Formulas.Add.Apply(curve, q, points[i], nil)
			} else if m.Config.Always {
				dummy, err = m.Formulas.Add.Apply(curve, q, points[i], nil)
			}
			if err != nil {
				return nil, err
			}
		}
	} else {
		nbits := orderBits
		if !m.Config.Complete {
			nbits = scalar.BitLen()
		}
		for i := 0; i < nbits; i++ {
			if scalar.Bit(i) == 1 {
				q, err = m.Formulas.Add.Apply(curve, q, points[i], nil)
			} else if m.Config.Always {
				dummy, err = m.Formulas.Add.Apply(curve, q, points[i], nil)
			}
			if err != nil {
				return nil, err
			}
		}
	}
	_ = dummy
	return scl(m.Formulas, curve, q)
}
