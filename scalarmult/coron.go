package scalarmult

import (
	"github.com/J08nY/ecsca-engine/bigint"
	"github.com/J08nY/ecsca-engine/point"
)

// CoronMultiplier is Coron's double-and-add-always ladder, grounded on
// original_source/pyecsca/codegen/templates/mult_coron.c: two registers
// p0 (the running result) and p1 (always point + current p0) are kept in
// lockstep every iteration regardless of the scalar bit, and only the bit
// value decides which register survives into the next round — giving the
// same dbl-then-add operation sequence on every bit without a dedicated
// dummy branch.
type CoronMultiplier struct {
	Config   Config
	Formulas FormulaSet
}

func NewCoronMultiplier(cfg Config, formulas FormulaSet) *CoronMultiplier {
	return &CoronMultiplier{Config: cfg, Formulas: formulas}
}

func (m *CoronMultiplier) Multiply(curve Curve, scalar *bigint.Int, p *point.Point) (*point.Point, error) {
	p0 := p.Copy()
	p1 := point.New(p.System)

	nbits := scalar.BitLen()
	var err error
	for i := nbits - 2; i >= 0; i-- {
		p0, err = m.Formulas.Dbl.Apply(curve, p0, nil, nil)
		if err != nil {
			return nil, err
		}
		p1, err = m.Formulas.Add.Apply(curve, p0, p, nil)
		if err != nil {
			return nil, err
		}
		if scalar.Bit(i) != 0 {
			p0 = p1.Copy()
		}
	}
	return scl(m.Formulas, curve, p0)
}
