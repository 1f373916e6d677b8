package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sumCompute(vals []any) (any, error) {
	total := 0
	for _, v := range vals {
		total += v.(int)
	}
	return total, nil
}

func TestComputed(t *testing.T) {
	t.Run("derives from a single upstream", func(t *testing.T) {
		a := NewSource(2, equalInt)
		doubled := NewComputed([]Upstream{a}, func(vals []any) (any, error) {
			return vals[0].(int) * 2, nil
		}, equalInt)

		v, err := doubled.Read()
		assert.NoError(t, err)
		assert.Equal(t, 4, v)

		a.Write(5)
		v, err = doubled.Read()
		assert.NoError(t, err)
		assert.Equal(t, 10, v)
	})

	t.Run("diamond dependency recomputes once per change, not once per path", func(t *testing.T) {
		root := NewSource(1, equalInt)
		left := NewComputed([]Upstream{root}, func(vals []any) (any, error) {
			return vals[0].(int) + 1, nil
		}, equalInt)
		right := NewComputed([]Upstream{root}, func(vals []any) (any, error) {
			return vals[0].(int) * 10, nil
		}, equalInt)

		evals := 0
		bottom := NewComputed([]Upstream{left, right}, func(vals []any) (any, error) {
			evals++
			return vals[0].(int) + vals[1].(int), nil
		}, equalInt)

		v, err := bottom.Read()
		assert.NoError(t, err)
		assert.Equal(t, 12, v) // (1+1) + (1*10)
		assert.Equal(t, 1, evals)

		root.Write(2)
		v, err = bottom.Read()
		assert.NoError(t, err)
		assert.Equal(t, 23, v) // (2+1) + (2*10)
		assert.Equal(t, 2, evals)
	})

	t.Run("clean read does not recompute", func(t *testing.T) {
		a := NewSource(1, equalInt)
		evals := 0
		c := NewComputed([]Upstream{a}, func(vals []any) (any, error) {
			evals++
			return vals[0], nil
		}, equalInt)

		_, _ = c.Read()
		_, _ = c.Read()
		_, _ = c.Read()

		assert.Equal(t, 1, evals)
	})

	t.Run("compute error is stored and re-raised until upstream changes", func(t *testing.T) {
		a := NewSource(1, equalInt)
		boom := errors.New("boom")
		evals := 0
		c := NewComputed([]Upstream{a}, func(vals []any) (any, error) {
			evals++
			return nil, boom
		}, equalInt)

		_, err1 := c.Read()
		_, err2 := c.Read()
		assert.Error(t, err1)
		assert.Error(t, err2)
		assert.Equal(t, 1, evals, "stored error must be re-raised without recomputing")

		a.Write(2)
		_, err3 := c.Read()
		assert.Error(t, err3)
		assert.Equal(t, 2, evals, "an upstream change clears the stored error and recomputes")
	})

	t.Run("upstream failure is wrapped as UpstreamFailure", func(t *testing.T) {
		a := NewSource(1, equalInt)
		failing := NewComputed([]Upstream{a}, func(vals []any) (any, error) {
			return nil, errors.New("inner failure")
		}, equalInt)
		outer := NewComputed([]Upstream{failing}, func(vals []any) (any, error) {
			return vals[0], nil
		}, equalInt)

		_, err := outer.Read()
		assert.Error(t, err)
		var uf *UpstreamFailure
		assert.ErrorAs(t, err, &uf)
	})

	t.Run("subscribe fires once per batch even with multiple upstream writes", func(t *testing.T) {
		a := NewSource(1, equalInt)
		b := NewSource(2, equalInt)
		sum := NewComputed([]Upstream{a, b}, sumCompute, equalInt)

		var notifications []int
		unsub := sum.Subscribe(func(r Result) {
			notifications = append(notifications, r.Value.(int))
		})
		defer unsub()

		Default.Batch(func() {
			a.Write(10)
			b.Write(20)
		})

		assert.Equal(t, []int{3, 30}, notifications)
	})

	t.Run("deregisters from upstreams once the last observer unsubscribes", func(t *testing.T) {
		a := NewSource(1, equalInt)
		c := NewComputed([]Upstream{a}, func(vals []any) (any, error) {
			return vals[0], nil
		}, equalInt)

		unsub := c.Subscribe(func(Result) {})
		assert.Equal(t, 1, a.targets.Len())

		unsub()
		assert.Equal(t, 0, a.targets.Len())
	})
}
