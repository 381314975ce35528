package hashselect

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewResolvesEachAlgorithm(t *testing.T) {
	for _, alg := range []Algorithm{None, SHA1, SHA224, SHA256, SHA384, SHA512} {
		factory, err := New(alg)
		require.NoError(t, err)
		h := factory()
		_, err = h.Write([]byte("message"))
		require.NoError(t, err)
		require.NotEmpty(t, h.Sum(nil))
	}
}

func TestNoneHashIsIdentity(t *testing.T) {
	factory, err := New(None)
	require.NoError(t, err)
	h := factory()
	_, _ = h.Write([]byte("abc"))
	require.Equal(t, []byte("abc"), h.Sum(nil))
}

func TestNewRejectsUnknownAlgorithm(t *testing.T) {
	_, err := New(Algorithm(99))
	require.Error(t, err)
}
