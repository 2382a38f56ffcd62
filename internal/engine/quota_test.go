package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotaEnforcer_WithinLimit(t *testing.T) {
	q := NewQuotaEnforcer(3)
	for i := 0; i < 3; i++ {
		require.NoError(t, q.Check("s-1"), "attempt %d", i+1)
	}
	assert.Equal(t, 3, q.Current())
	assert.Equal(t, 3, q.MaxSteps())
}

func TestQuotaEnforcer_ExceedsLimit(t *testing.T) {
	q := NewQuotaEnforcer(2)
	require.NoError(t, q.Check("s-1"))
	require.NoError(t, q.Check("s-1"))

	err := q.Check("s-1")
	require.Error(t, err)
	assert.True(t, IsQuotaError(err))
	assert.Contains(t, err.Error(), "3 steps > 2 limit")
	assert.Contains(t, err.Error(), "session=s-1")
}

func TestQuotaEnforcer_Unlimited(t *testing.T) {
	q := NewQuotaEnforcer(0)
	for i := 0; i < 100; i++ {
		require.NoError(t, q.Check("s-1"))
	}
}

func TestRevisitTracker(t *testing.T) {
	r := NewRevisitTracker()

	_, seen := r.Observe("a", 0)
	assert.False(t, seen)
	_, seen = r.Observe("b", 1)
	assert.False(t, seen)

	first, seen := r.Observe("a", 2)
	assert.True(t, seen)
	assert.Equal(t, int64(0), first)
	assert.Equal(t, 2, r.Distinct())
}

func TestFixedGenerator(t *testing.T) {
	g := NewFixedGenerator("s-1", "s-2")
	assert.Equal(t, "s-1", g.Generate())
	assert.Equal(t, "s-2", g.Generate())
	assert.Panics(t, func() { g.Generate() })
}

func TestUUIDv7Generator(t *testing.T) {
	g := UUIDv7Generator{}
	a, b := g.Generate(), g.Generate()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestSessionError(t *testing.T) {
	err := &SessionError{Code: ErrCodeRecordFailed, Message: "record step 3", Token: "s-1", Err: assert.AnError}
	assert.Equal(t, "RECORD_FAILED: record step 3 (session=s-1): "+assert.AnError.Error(), err.Error())
	assert.ErrorIs(t, err, assert.AnError)
	assert.True(t, IsRecordError(err))
	assert.False(t, IsQuotaError(err))
	assert.False(t, IsSizeLimitError(nil))
}
