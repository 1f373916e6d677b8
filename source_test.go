package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSource(t *testing.T) {
	t.Run("read and write", func(t *testing.T) {
		count := NewSource(0)
		assert.Equal(t, 0, count.Read())

		count.Write(10)
		assert.Equal(t, 10, count.Read())
	})

	t.Run("zero values", func(t *testing.T) {
		e := NewSource[error](nil)
		assert.Nil(t, e.Read())
	})

	t.Run("subscribe delivers current value then changes", func(t *testing.T) {
		s := NewSource("a")
		var got []string
		unsub := s.Subscribe(func(r Result[string]) {
			got = append(got, r.Value)
		})
		s.Write("b")
		unsub()
		s.Write("c")

		assert.Equal(t, []string{"a", "b"}, got)
	})
}
