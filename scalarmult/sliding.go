package scalarmult

import (
	"github.com/J08nY/ecsca-engine/bigint"
	"github.com/J08nY/ecsca-engine/point"
	"github.com/J08nY/ecsca-engine/recoding"
)

// SlidingWindowMultiplier recodes the scalar via sliding-window digits
// (LTR or RTL per Config.Direction) and walks them MSB-first, grounded on
// original_source/pyecsca/codegen/templates/mult_sliding_w.c: odd digits
// index directly into the precomputed table of odd multiples of the base
// point, 1P,3P,...,(2^w-1)P.
type SlidingWindowMultiplier struct {
	Config   Config
	Formulas FormulaSet
}

func NewSlidingWindowMultiplier(cfg Config, formulas FormulaSet) *SlidingWindowMultiplier {
	return &SlidingWindowMultiplier{Config: cfg, Formulas: formulas}
}

func (m *SlidingWindowMultiplier) Multiply(curve Curve, scalar *bigint.Int, p *point.Point) (*point.Point, error) {
	count := 1 << uint(m.Config.Width-1)
	points := make([]*point.Point, count)

	current := p.Copy()
	dbl, err := m.Formulas.Dbl.Apply(curve, current, nil, nil)
	if err != nil {
		return nil, err
	}
	for i := 0; i < count; i++ {
		points[i] = current.Copy()
		current, err = m.Formulas.Add.Apply(curve, current, dbl, nil)
		if err != nil {
			return nil, err
		}
	}

	var digits recoding.Digits
	if m.Config.Direction == LTR {
		digits = recoding.SlidingWindowLTR(scalar, m.Config.Width)
	} else {
		digits = recoding.SlidingWindowRTL(scalar, m.Config.Width)
	}

	q, err := neutralOf(curve)
	if err != nil {
		return nil, err
	}
	for _, val := range digits {
		q, err = m.Formulas.Dbl.Apply(curve, q, nil, nil)
		if err != nil {
			return nil, err
		}
		if val != 0 {
			q, err = m.Formulas.Add.Apply(curve, q, points[(val-1)/2], nil)
			if err != nil {
				return nil, err
			}
		}
	}
	return scl(m.Formulas, curve, q)
}
