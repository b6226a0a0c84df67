package event

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitOrder(t *testing.T) {
	var e Emitter[int]
	var got []string
	e.On(func(v int) { got = append(got, "a") })
	e.On(func(v int) { got = append(got, "b") })
	e.On(func(v int) { got = append(got, "c") })

	e.Emit(1)
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestOffIsIdempotent(t *testing.T) {
	var e Emitter[string]
	calls := 0
	tok := e.On(func(string) { calls++ })
	require.NotZero(t, tok)

	e.Off(tok)
	e.Off(tok)
	e.Off(0)
	e.Emit("x")

	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, e.Len())
}

func TestOffDuringEmit(t *testing.T) {
	var e Emitter[int]
	var second Token
	var got []int
	e.On(func(v int) {
		got = append(got, v)
		e.Off(second)
	})
	second = e.On(func(v int) { got = append(got, -v) })

	// The snapshot taken by the first Emit still includes the second handler.
	e.Emit(1)
	e.Emit(2)
	assert.Equal(t, []int{1, -1, 2}, got)
}

func TestNilHandler(t *testing.T) {
	var e Emitter[int]
	assert.Zero(t, e.On(nil))
	assert.Equal(t, 0, e.Len())
}

func TestClear(t *testing.T) {
	var e Emitter[int]
	e.On(func(int) { t.Fatal("handler called after Clear") })
	e.Clear()
	e.Emit(3)
}
