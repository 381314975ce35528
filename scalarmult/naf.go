package scalarmult

import (
	"github.com/J08nY/ecsca-engine/bigint"
	"github.com/J08nY/ecsca-engine/point"
	"github.com/J08nY/ecsca-engine/recoding"
)

// BinaryNAFMultiplier recodes the scalar to non-adjacent form and walks
// its MSB-first digits, grounded on
// original_source/pyecsca/codegen/templates/mult_bnaf.c: a zero digit only
// doubles, a +1/-1 digit doubles then adds the base point or its negation.
type BinaryNAFMultiplier struct {
	Config   Config
	Formulas FormulaSet
}

func NewBinaryNAFMultiplier(cfg Config, formulas FormulaSet) *BinaryNAFMultiplier {
	return &BinaryNAFMultiplier{Config: cfg, Formulas: formulas}
}

func (m *BinaryNAFMultiplier) Multiply(curve Curve, scalar *bigint.Int, p *point.Point) (*point.Point, error) {
	neg, err := m.Formulas.Neg.Apply(curve, p, nil, nil)
	if err != nil {
		return nil, err
	}
	q, err := neutralOf(curve)
	if err != nil {
		return nil, err
	}

	digits, err := recoding.BinaryNAF(scalar)
	if err != nil {
		return nil, err
	}
	for _, d := range digits {
		q, err = m.Formulas.Dbl.Apply(curve, q, nil, nil)
		if err != nil {
			return nil, err
		}
		switch {
		case d == 1:
			q, err = m.Formulas.Add.Apply(curve, q, p, nil)
		case d == -1:
			q, err = m.Formulas.Add.Apply(curve, q, neg, nil)
		}
		if err != nil {
			return nil, err
		}
	}
	return scl(m.Formulas, curve, q)
}

// WidthNAFMultiplier recodes the scalar to width-w NAF and precomputes
// odd multiples 1P,3P,...,(2^(w-1)-1)P (and, with PrecomputeNegation,
// their negations) before the digit scan, grounded on
// original_source/pyecsca/codegen/templates/mult_wnaf.c.
type WidthNAFMultiplier struct {
	Config   Config
	Formulas FormulaSet
}

func NewWidthNAFMultiplier(cfg Config, formulas FormulaSet) *WidthNAFMultiplier {
	return &WidthNAFMultiplier{Config: cfg, Formulas: formulas}
}

func (m *WidthNAFMultiplier) Multiply(curve Curve, scalar *bigint.Int, p *point.Point) (*point.Point, error) {
	count := 1 << uint(m.Config.Width-2)
	points := make([]*point.Point, count)
	pointsNeg := make([]*point.Point, count)

	current := p.Copy()
	dbl, err := m.Formulas.Dbl.Apply(curve, current, nil, nil)
	if err != nil {
		return nil, err
	}
	for i := 0; i < count; i++ {
		points[i] = current.Copy()
		if m.Config.PrecomputeNegation {
			pointsNeg[i], err = m.Formulas.Neg.Apply(curve, points[i], nil, nil)
			if err != nil {
				return nil, err
			}
		}
		current, err = m.Formulas.Add.Apply(curve, current, dbl, nil)
		if err != nil {
			return nil, err
		}
	}

	q, err := neutralOf(curve)
	if err != nil {
		return nil, err
	}

	digits, err := recoding.WidthNAF(scalar, m.Config.Width)
	if err != nil {
		return nil, err
	}
	for _, val := range digits {
		q, err = m.Formulas.Dbl.Apply(curve, q, nil, nil)
		if err != nil {
			return nil, err
		}
		if val > 0 {
			q, err = m.Formulas.Add.Apply(curve, q, points[(val-1)/2], nil)
		} else if val < 0 {
			var term *point.Point
			if m.Config.PrecomputeNegation {
				term = pointsNeg[(-val-1)/2]
			} else {
				term, err = m.Formulas.Neg.Apply(curve, points[(-val-1)/2], nil, nil)
				if err != nil {
					return nil, err
				}
			}
			q, err = m.Formulas.Add.Apply(curve, q, term, nil)
		}
		if err != nil {
			return nil, err
		}
	}
	return scl(m.Formulas, curve, q)
}
