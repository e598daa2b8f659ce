package id

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SortableWithinSameMillisecond(t *testing.T) {
	t.Parallel()

	now := time.Now()
	prev := New(now)
	for i := 0; i < 100; i++ {
		next := New(now)
		assert.Less(t, prev, next, "ids must be strictly increasing")
		prev = next
	}
}

func TestNew_EncodesTimestamp(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 3, 14, 9, 26, 53, 589_000_000, time.UTC)
	s := New(at)

	require.Len(t, s, 26)
	v, err := ulid.ParseStrict(s)
	require.NoError(t, err)
	assert.True(t, at.Equal(ulid.Time(v.Time()).UTC()))
	assert.Less(t, s, New(at.Add(time.Millisecond)))
}
