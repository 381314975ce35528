package scalarmult

import (
	"github.com/J08nY/ecsca-engine/bigint"
	"github.com/J08nY/ecsca-engine/point"
	"github.com/J08nY/ecsca-engine/recoding"
)

// BGMWMultiplier is Brickell-Gordon-McCurley-Wilson's method (Yao's
// windowed trick), grounded on
// original_source/pyecsca/codegen/templates/mult_bgmw.c: recode the
// scalar into base-2^w digits over d = ceil(orderBits/w) positions, then
// for j from 2^w down to 1 accumulate every digit-position table entry
// whose digit equals j into a running b, folding b into the total a after
// each j — the classic "doubling trick" that turns a weighted sum into a
// single linear scan.
type BGMWMultiplier struct {
	Config   Config
	Formulas FormulaSet
}

func NewBGMWMultiplier(cfg Config, formulas FormulaSet) *BGMWMultiplier {
	return &BGMWMultiplier{Config: cfg, Formulas: formulas}
}

func (m *BGMWMultiplier) Multiply(curve Curve, scalar *bigint.Int, p *point.Point) (*point.Point, error) {
	orderBits := curve.Order().BitLen()
	w := m.Config.Width
	d := (orderBits + w - 1) / w

	points := make([]*point.Point, d)
	current := p.Copy()
	var err error
	for i := 0; i < d; i++ {
		points[i] = current.Copy()
		if i != d-1 {
			for j := 0; j < w; j++ {
				current, err = m.Formulas.Dbl.Apply(curve, current, nil, nil)
				if err != nil {
					return nil, err
				}
			}
		}
	}

	digits, err := recoding.BaseSmall(scalar, uint64(uint(1)<<uint(w)))
	if err != nil {
		return nil, err
	}

	a, err := neutralOf(curve)
	if err != nil {
		return nil, err
	}
	b, err := neutralOf(curve)
	if err != nil {
		return nil, err
	}

	maxDigit := 1 << uint(w)
	for j := maxDigit; j > 0; j-- {
		if m.Config.Direction == RTL {
			for i := 0; i < len(digits); i++ {
				if digits[i] == int64(j) {
					b, err = m.Formulas.Add.Apply(curve, b, points[i], nil)
					if err != nil {
						return nil, err
					}
				}
			}
		} else {
			for i := len(digits) - 1; i >= 0; i-- {
				if digits[i] == int64(j) {
					b, err = m.Formulas.Add.Apply(curve, b, points[i], nil)
					if err != nil {
						return nil, err
					}
				}
			}
		}
		if m.Config.ShortCircuit && a.Equals(b) {
			a, err = m.Formulas.Dbl.Apply(curve, b, nil, nil)
			if err != nil {
				return nil, err
			}
			continue
		}
		a, err = m.Formulas.Add.Apply(curve, a, b, nil)
		if err != nil {
			return nil, err
		}
	}
	return scl(m.Formulas, curve, a)
}
