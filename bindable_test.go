package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBindable(t *testing.T) {
	t.Run("forwards reads and rebinds", func(t *testing.T) {
		a := NewSource(1)
		other := NewSource(100)
		b := NewBindable[int](a, false)

		v, err := b.Read()
		assert.NoError(t, err)
		assert.Equal(t, 1, v)

		err = b.BindTo(other, false)
		assert.NoError(t, err)

		v, err = b.Read()
		assert.NoError(t, err)
		assert.Equal(t, 100, v)
	})

	t.Run("unbound read fails", func(t *testing.T) {
		b := NewBindable[int](nil, false)
		_, err := b.Read()
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("mutable variant forwards writes to the current binding", func(t *testing.T) {
		a := NewSource(1)
		m := NewMutableBindable[int](a, false)

		err := m.Write(42)
		assert.NoError(t, err)
		assert.Equal(t, 42, a.Read())
	})

	t.Run("binding through a cycle is rejected", func(t *testing.T) {
		b1 := NewBindable[int](nil, false)
		b2 := NewBindable[int](b1, false)

		err := b1.BindTo(b2, false)
		assert.ErrorIs(t, err, ErrCycleDetected)
	})

	t.Run("WouldCreateCycle answers without mutating the binding", func(t *testing.T) {
		b1 := NewBindable[int](nil, false)
		b2 := NewBindable[int](b1, false)

		assert.True(t, WouldCreateCycle[int](b1, b2))
		assert.False(t, b1.IsBound())

		err := b1.BindTo(b2, false)
		assert.ErrorIs(t, err, ErrCycleDetected)
	})

	t.Run("CurrentBinding reports the live upstream", func(t *testing.T) {
		a := NewSource(1)
		other := NewSource(2)
		b := NewBindable[int](a, false)

		cur, ok := b.CurrentBinding()
		assert.True(t, ok)
		assert.Equal(t, a.rawUpstream(), cur.rawUpstream())

		assert.NoError(t, b.BindTo(other, false))
		cur, ok = b.CurrentBinding()
		assert.True(t, ok)
		assert.Equal(t, other.rawUpstream(), cur.rawUpstream())
	})
}
