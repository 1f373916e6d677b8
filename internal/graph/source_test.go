package graph

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func equalInt(a, b any) bool { return a.(int) == b.(int) }

func TestSource(t *testing.T) {
	t.Run("read and write", func(t *testing.T) {
		s := NewSource(0, equalInt)
		assert.Equal(t, 0, s.Read())

		s.Write(10)
		assert.Equal(t, 10, s.Read())
	})

	t.Run("no-op write does not bump version", func(t *testing.T) {
		s := NewSource(5, equalInt)
		v := s.Version()

		s.Write(5)
		assert.Equal(t, v, s.Version())

		s.Write(6)
		assert.Equal(t, v+1, s.Version())
	})

	t.Run("update retries under concurrent writers", func(t *testing.T) {
		s := NewSource(0, equalInt)
		var wg sync.WaitGroup

		for i := 0; i < 50; i++ {
			wg.Go(func() {
				s.Update(func(v any) any { return v.(int) + 1 })
			})
		}
		wg.Wait()

		assert.Equal(t, 50, s.Read())
	})

	t.Run("subscribe delivers current value synchronously then on change", func(t *testing.T) {
		s := NewSource(1, equalInt)
		var got []int

		unsub := s.Subscribe(func(r Result) {
			got = append(got, r.Value.(int))
		})
		s.Write(2)
		s.Write(2) // no-op, must not notify again
		s.Write(3)
		unsub()
		s.Write(4) // must not notify after unsubscribe

		assert.Equal(t, []int{1, 2, 3}, got)
	})

	t.Run("closed source ignores further writes", func(t *testing.T) {
		s := NewSource(1, equalInt)
		s.Close()
		s.Write(99)
		assert.Equal(t, 1, s.Read())
	})
}
