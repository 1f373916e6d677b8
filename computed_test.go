package reactive

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputed(t *testing.T) {
	t.Run("derives from two upstreams", func(t *testing.T) {
		a := NewSource(1)
		b := NewSource(2)
		sum := NewComputed2(a, b, func(a, b int) (int, error) { return a + b, nil })

		v, err := sum.Read()
		assert.NoError(t, err)
		assert.Equal(t, 3, v)

		a.Write(10)
		v, err = sum.Read()
		assert.NoError(t, err)
		assert.Equal(t, 12, v)
	})

	t.Run("diamond dependency settles to one value per batch", func(t *testing.T) {
		root := NewSource(1)
		left := NewComputed1[int](root, func(v int) (int, error) { return v + 1, nil })
		right := NewComputed1[int](root, func(v int) (int, error) { return v * 10, nil })
		bottom := NewComputed2(left, right, func(l, r int) (int, error) { return l + r, nil })

		var notifications []int
		unsub := bottom.Subscribe(func(r Result[int]) { notifications = append(notifications, r.Value) })
		defer unsub()

		Batch(func() {
			root.Write(2)
		})

		assert.Equal(t, []int{12, 23}, notifications)
	})

	t.Run("stored compute error is re-raised without recomputing", func(t *testing.T) {
		a := NewSource(1)
		evals := 0
		c := NewComputed1[int](a, func(v int) (string, error) {
			evals++
			return "", fmt.Errorf("bad value %d", v)
		})

		_, err1 := c.Read()
		_, err2 := c.Read()
		assert.Error(t, err1)
		assert.Error(t, err2)
		assert.Equal(t, 1, evals)
	})
}
