package motif

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddInstanceFixesLength(t *testing.T) {
	m := New()
	require.NoError(t, m.AddInstance("ACGTA"))
	require.NoError(t, m.AddInstance("ACGTT"))
	assert.Equal(t, 5, m.Length)
	assert.Len(t, m.Instances, 2)
	assert.Equal(t, []string{"ACGTA", "ACGTT"}, m.Sites())

	err := m.AddInstance("ACG")
	require.ErrorIs(t, err, ErrLength)
	assert.Len(t, m.Instances, 2)
}

func TestSetMask(t *testing.T) {
	m := New()
	require.NoError(t, m.AddInstance("ACGT"))
	require.NoError(t, m.SetMask("** *"))
	assert.Equal(t, []bool{true, true, false, true}, m.Mask)

	require.ErrorIs(t, m.SetMask("**"), ErrLength)
	require.ErrorIs(t, m.SetMask("*x**"), ErrMask)
}

func TestMaskBeforeInstances(t *testing.T) {
	m := New()
	require.NoError(t, m.SetMask("***"))
	assert.Equal(t, 3, m.Length)
	require.ErrorIs(t, m.AddInstance("AC"), ErrLength)
}

func TestConsensus(t *testing.T) {
	m := New()
	for _, s := range []string{"ACGT", "ACGA", "tCCA"} {
		require.NoError(t, m.AddInstance(s))
	}
	counts := m.Counts()
	assert.Equal(t, 2, counts[0]['A'])
	assert.Equal(t, 1, counts[0]['T'])
	assert.Equal(t, "ACGA", m.Consensus())
}

func TestSetScore(t *testing.T) {
	m := New()
	assert.False(t, m.HasScore)
	m.SetScore(12.5)
	assert.True(t, m.HasScore)
	assert.InDelta(t, 12.5, m.Score, 1e-9)
}
