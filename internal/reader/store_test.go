package reader

import (
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st := NewStore(Options{Budget: 100, Clock: clockwork.NewFakeClock()}, time.Hour, discardLogger())
	t.Cleanup(st.CloseAll)
	return st
}

func TestStore_OpenGetClose(t *testing.T) {
	st := newTestStore(t)

	s, err := st.Open("Doc", strings.Repeat("x", 250), 0)
	require.NoError(t, err)
	assert.Equal(t, 3, s.PageCount(), "store default budget applies")
	assert.Len(t, s.ID(), 26)

	got, err := st.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, st.Close(s.ID()))
	_, err = st.Get(s.ID())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, st.Close(s.ID()), ErrNotFound)

	_, err = s.View()
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestStore_BudgetOverride(t *testing.T) {
	st := newTestStore(t)
	s, err := st.Open("Doc", strings.Repeat("x", 250), 50)
	require.NoError(t, err)
	assert.Equal(t, 5, s.PageCount())

	_, err = st.Open("Bad", "text", -5)
	assert.Error(t, err)
	assert.Equal(t, 1, st.Len())
}

func TestStore_CleanupClosesIdleSessions(t *testing.T) {
	st := newTestStore(t)
	now := time.Now()
	st.now = func() time.Time { return now }

	idle, err := st.Open("idle", "a", 0)
	require.NoError(t, err)
	busy, err := st.Open("busy", "b", 0)
	require.NoError(t, err)

	now = now.Add(90 * time.Minute)
	_, err = st.Get(busy.ID())
	require.NoError(t, err)

	now = now.Add(45 * time.Minute)
	assert.Equal(t, 1, st.Cleanup())
	assert.Equal(t, 1, st.Len())

	_, err = st.Get(idle.ID())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = idle.View()
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestNewID_UniqueAndOrdered(t *testing.T) {
	seen := make(map[string]bool)
	prev := ""
	for range 1000 {
		id := NewID()
		require.Len(t, id, 26)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
		assert.True(t, id[:10] >= prev[:min(10, len(prev))], "timestamp prefix must not go backwards")
		prev = id
	}
}
