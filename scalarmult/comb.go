package scalarmult

import (
	"github.com/J08nY/ecsca-engine/bigint"
	"github.com/J08nY/ecsca-engine/point"
	"github.com/J08nY/ecsca-engine/recoding"
)

// CombMultiplier is the (fixed-base) comb method, grounded on
// original_source/pyecsca/codegen/templates/mult_comb.c: split the scalar
// into w interleaved columns of d = ceil(orderBits/w) bits each (via
// recoding.Comb), precompute every 2^w combination of the w base points
// 2^(0*d)*P, 2^(1*d)*P, ..., 2^((w-1)*d)*P, then scan the d bit-columns
// MSB-first, doubling once and accumulating the table entry the column's
// w-bit word selects.
type CombMultiplier struct {
	Config   Config
	Formulas FormulaSet
}

func NewCombMultiplier(cfg Config, formulas FormulaSet) *CombMultiplier {
	return &CombMultiplier{Config: cfg, Formulas: formulas}
}

func (m *CombMultiplier) Multiply(curve Curve, scalar *bigint.Int, p *point.Point) (*point.Point, error) {
	w := m.Config.Width
	order := curve.Order()
	digits, d, err := recoding.Comb(scalar, w, order)
	if err != nil {
		return nil, err
	}

	basePoints := make([]*point.Point, w)
	current := p.Copy()
	for i := 0; i < w; i++ {
		basePoints[i] = current.Copy()
		for j := 0; j < d; j++ {
			current, err = m.Formulas.Dbl.Apply(curve, current, nil, nil)
			if err != nil {
				return nil, err
			}
		}
	}

	count := 1 << uint(w)
	points := make([]*point.Point, count)
	for j := 0; j < count; j++ {
		var acc *point.Point
		for i := 0; i < w; i++ {
			if j&(1<<uint(i)) == 0 {
				continue
			}
			if acc == nil {
				acc = basePoints[i].Copy()
			} else {
				acc, err = m.Formulas.Add.Apply(curve, acc, basePoints[i], nil)
				if err != nil {
					return nil, err
				}
			}
		}
		points[j] = acc
	}

	q, err := neutralOf(curve)
	if err != nil {
		return nil, err
	}

	for col := d - 1; col >= 0; col-- {
		q, err = m.Formulas.Dbl.Apply(curve, q, nil, nil)
		if err != nil {
			return nil, err
		}
		word := 0
		for i := 0; i < w && i < len(digits); i++ {
			word |= digits[i].Bit(col) << uint(i)
		}
		if word != 0 && points[word] != nil {
			q, err = m.Formulas.Add.Apply(curve, q, points[word], nil)
			if err != nil {
				return nil, err
			}
		}
	}
	return scl(m.Formulas, curve, q)
}
