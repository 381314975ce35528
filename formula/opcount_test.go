//go:build callcounters

package formula

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyIncrementsOpCounters(t *testing.T) {
	opCounterMul.Reset()
	opCounterAdd.Reset()

	curve := testCurve(t)
	w := WeierstrassJacobianAdd().Init()
	p1 := jacobianPoint(5, 8)
	p2 := jacobianPoint(6, 9)

	_, err := w.Apply(curve, p1, p2, nil)
	require.NoError(t, err)

	mulCount, ok := opCounterMul.Get()
	require.True(t, ok)
	require.Positive(t, mulCount)
}
