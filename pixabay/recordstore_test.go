package pixabay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRecordStore(t *testing.T) {
	s := NewMemoryRecordStore(0, 0)

	_, ok, err := s.Get("1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("1", ImageRecord{ID: "1", User: "first"}))
	require.NoError(t, s.Set("1", ImageRecord{ID: "1", User: "second"}))

	rec, ok, err := s.Get("1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", rec.User, "last write wins")
}

func TestMemoryRecordStoreExpiresAfterWrite(t *testing.T) {
	s := NewMemoryRecordStore(4, 100*time.Millisecond)
	require.NoError(t, s.Set("1", ImageRecord{ID: "1"}))

	time.Sleep(60 * time.Millisecond)
	_, ok, err := s.Get("1")
	require.NoError(t, err)
	assert.True(t, ok)

	time.Sleep(60 * time.Millisecond)
	_, ok, err = s.Get("1")
	require.NoError(t, err)
	assert.False(t, ok, "reads do not extend the ttl")
}
