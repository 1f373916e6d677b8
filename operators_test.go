package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	a := NewSource(2)
	doubled := Map[int](a, func(v int) (int, error) { return v * 2, nil })

	v, err := doubled.Read()
	assert.NoError(t, err)
	assert.Equal(t, 4, v)

	a.Write(5)
	v, err = doubled.Read()
	assert.NoError(t, err)
	assert.Equal(t, 10, v)
}

func TestFilter(t *testing.T) {
	a := NewSource(1)
	evens := Filter[int](a, func(v int) bool { return v%2 == 0 })

	_, err := evens.Read()
	assert.ErrorIs(t, err, ErrInvalidState)

	a.Write(2)
	v, err := evens.Read()
	assert.NoError(t, err)
	assert.Equal(t, 2, v)

	a.Write(3) // odd, so the last passing value (2) is held
	v, err = evens.Read()
	assert.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestCombine(t *testing.T) {
	a := NewSource(1)
	b := NewSource(2)
	c := NewSource(3)

	total := Combine[int](
		[]Upstream{a, b, c},
		func(vs []int) (int, error) {
			sum := 0
			for _, v := range vs {
				sum += v
			}
			return sum, nil
		},
	)

	v, err := total.Read()
	assert.NoError(t, err)
	assert.Equal(t, 6, v)
}

func TestScan(t *testing.T) {
	a := NewSource(0)
	running := Scan[int](a, 0, func(acc, v int) (int, error) { return acc + v, nil })

	a.Write(1)
	v, _ := running.Read()
	assert.Equal(t, 1, v)

	a.Write(2)
	v, _ = running.Read()
	assert.Equal(t, 3, v)

	a.Write(3)
	v, _ = running.Read()
	assert.Equal(t, 6, v)
}

func TestPairwise(t *testing.T) {
	a := NewSource(1)
	pairs := Pairwise[int](a)

	v, _ := pairs.Read()
	assert.Equal(t, Pair[int]{Prev: 0, Current: 1}, v)

	a.Write(2)
	v, _ = pairs.Read()
	assert.Equal(t, Pair[int]{Prev: 1, Current: 2}, v)
}

func TestDistinctBy(t *testing.T) {
	a := NewSource("apple")
	byLength := DistinctBy[string](a, func(s string) int { return len(s) })

	var notifications []string
	unsub := byLength.Subscribe(func(r Result[string]) {
		notifications = append(notifications, r.Value)
	})
	defer unsub()

	a.Write("mango") // same length (5), must not notify again
	a.Write("kiwi")  // different length (4)

	assert.Equal(t, []string{"apple", "kiwi"}, notifications)
}

func TestWithLatestFrom(t *testing.T) {
	source := NewSource(1)
	other := NewSource(100)

	combined := WithLatestFrom[int, int](source, other, func(s, o int) (int, error) { return s + o, nil })

	v, _ := combined.Read()
	assert.Equal(t, 101, v)

	other.Write(200) // other alone must not change combined's value
	v, _ = combined.Read()
	assert.Equal(t, 101, v)

	source.Write(2) // source firing samples other's latest (200)
	v, _ = combined.Read()
	assert.Equal(t, 202, v)
}

func TestSwitch(t *testing.T) {
	innerA := NewSource("a")
	innerB := NewSource("b")
	selector := NewSource(0)

	switched := Switch[string](selector, func(outerValue any) Upstream {
		if outerValue.(int) == 0 {
			return innerA
		}
		return innerB
	})

	v, err := switched.Read()
	assert.NoError(t, err)
	assert.Equal(t, "a", v)

	innerA.Write("a2")
	v, _ = switched.Read()
	assert.Equal(t, "a2", v)

	selector.Write(1)
	v, _ = switched.Read()
	assert.Equal(t, "b", v)

	innerA.Write("a3") // no longer the selected inner, must not affect switched
	v, _ = switched.Read()
	assert.Equal(t, "b", v)
}

func TestBiMap(t *testing.T) {
	celsius := NewSource(0)
	fahrenheit := BiMap[int, float64](celsius,
		func(c int) (float64, error) { return float64(c)*9/5 + 32, nil },
		func(f float64) (int, error) { return int((f - 32) * 5 / 9), nil },
	)

	v, err := fahrenheit.Read()
	assert.NoError(t, err)
	assert.Equal(t, 32.0, v)

	err = fahrenheit.Write(212)
	assert.NoError(t, err)
	assert.Equal(t, 100, celsius.Read())
}
