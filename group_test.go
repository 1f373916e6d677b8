package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroup(t *testing.T) {
	t.Run("closes members in reverse order", func(t *testing.T) {
		var order []int
		g := NewGroup()
		g.Add(func() { order = append(order, 1) })
		g.Add(func() { order = append(order, 2) })
		g.Add(func() { order = append(order, 3) })

		g.CloseAll()
		assert.Equal(t, []int{3, 2, 1}, order)
	})

	t.Run("CloseAll is idempotent", func(t *testing.T) {
		calls := 0
		g := NewGroup()
		g.Add(func() { calls++ })

		g.CloseAll()
		g.CloseAll()
		assert.Equal(t, 1, calls)
	})

	t.Run("adding after close runs the closer immediately", func(t *testing.T) {
		g := NewGroup()
		g.CloseAll()

		ran := false
		g.Add(func() { ran = true })
		assert.True(t, ran)
	})
}
