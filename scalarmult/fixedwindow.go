package scalarmult

import (
	"math/bits"

	"github.com/J08nY/ecsca-engine/bigint"
	"github.com/J08nY/ecsca-engine/point"
	"github.com/J08nY/ecsca-engine/recoding"
)

// FixedWindowMultiplier recodes the scalar to base-m digits (m =
// Config.Base, not necessarily a power of two) and walks them MSB-first,
// grounded on original_source/pyecsca/codegen/templates/mult_fixed_w.c:
// each iteration multiplies the accumulator by m (a chain of doublings
// when m is a power of two, else a chain of adds) then accumulates the
// precomputed 1P,...,(m-1)P table entry the digit selects.
type FixedWindowMultiplier struct {
	Config   Config
	Formulas FormulaSet
}

func NewFixedWindowMultiplier(cfg Config, formulas FormulaSet) *FixedWindowMultiplier {
	return &FixedWindowMultiplier{Config: cfg, Formulas: formulas}
}

func (m *FixedWindowMultiplier) Multiply(curve Curve, scalar *bigint.Int, p *point.Point) (*point.Point, error) {
	base := m.Config.Base
	points := make([]*point.Point, base)

	current := p.Copy()
	dbl, err := m.Formulas.Dbl.Apply(curve, current, nil, nil)
	if err != nil {
		return nil, err
	}
	points[0] = current.Copy()
	points[1] = dbl.Copy()
	current = dbl
	for i := 2; i < base; i++ {
		current, err = m.Formulas.Add.Apply(curve, current, p, nil)
		if err != nil {
			return nil, err
		}
		points[i] = current.Copy()
	}

	digits, err := recoding.BaseSmall(scalar, uint64(base))
	if err != nil {
		return nil, err
	}

	q, err := neutralOf(curve)
	if err != nil {
		return nil, err
	}

	isPow2 := base&(base-1) == 0
	shift := bits.TrailingZeros(uint(base))

	for i := len(digits) - 1; i >= 0; i-- {
		if isPow2 {
			for j := 0; j < shift; j++ {
				q, err = m.Formulas.Dbl.Apply(curve, q, nil, nil)
				if err != nil {
					return nil, err
				}
			}
		} else {
			orig := q
			q, err = m.Formulas.Dbl.Apply(curve, orig, nil, nil)
			if err != nil {
				return nil, err
			}
			for j := 0; j < base-2; j++ {
				q, err = m.Formulas.Add.Apply(curve, q, orig, nil)
				if err != nil {
					return nil, err
				}
			}
		}
		val := uint64(digits[i])
		if val != 0 {
			q, err = m.Formulas.Add.Apply(curve, q, points[val-1], nil)
			if err != nil {
				return nil, err
			}
		}
	}
	return scl(m.Formulas, curve, q)
}
