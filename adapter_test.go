package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testProducer struct {
	push func(onValue func(int))
}

func (p *testProducer) Collect(onValue func(int)) (cancel func()) {
	p.push = onValue
	return func() {}
}

type testSink struct {
	pushed []int
}

func (s *testSink) Push(v int) { s.pushed = append(s.pushed, v) }

func TestAdapter(t *testing.T) {
	t.Run("external values arrive once subscribed", func(t *testing.T) {
		p := &testProducer{}
		a := NewAdapter(0, p)

		unsub := a.Subscribe(func(Result[int]) {})
		defer unsub()

		p.push(7)
		assert.Equal(t, 7, a.Read())
	})

	t.Run("local writes forward to the sink", func(t *testing.T) {
		p := &testProducer{}
		sink := &testSink{}
		a := NewBidirectionalAdapter(0, p, sink)

		unsub := a.Subscribe(func(Result[int]) {})
		defer unsub()

		a.Write(3)
		assert.Equal(t, []int{3}, sink.pushed)
	})
}
