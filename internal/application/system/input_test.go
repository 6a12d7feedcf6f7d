package system

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_FIFO(t *testing.T) {
	var q Queue[int]
	assert.True(t, q.Empty())
	_, ok := q.Remove()
	assert.False(t, ok)

	q.Add(1)
	q.Add(2)
	q.Add(3)
	assert.Equal(t, 3, q.Len())

	head, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, 1, head)

	v, ok := q.Remove()
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, q.Len())
}

func TestQueue_Drain(t *testing.T) {
	var q Queue[string]
	q.Add("a")
	q.Add("b")

	var got []string
	n := q.Drain(func(s string) {
		got = append(got, s)
		if s == "a" {
			q.Add("c")
		}
	})
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.True(t, q.Empty())
}

func TestTranslate(t *testing.T) {
	events := translate(
		[]ebiten.Key{ebiten.KeyA, ebiten.KeySpace},
		[]ebiten.Key{ebiten.KeyD},
		[]ebiten.MouseButton{ebiten.MouseButtonLeft},
		nil,
		12, 34,
	)

	require.Len(t, events, 4)
	assert.Equal(t, Event{Type: KeyDown, Key: ebiten.KeyA, X: 12, Y: 34}, events[0])
	assert.Equal(t, KeyDown, events[1].Type)
	assert.Equal(t, ebiten.KeySpace, events[1].Key)
	assert.Equal(t, KeyUp, events[2].Type)
	assert.Equal(t, MouseDown, events[3].Type)
	assert.Equal(t, ebiten.MouseButtonLeft, events[3].Button)
}

func TestEventType_String(t *testing.T) {
	assert.Equal(t, "keydown", KeyDown.String())
	assert.Equal(t, "mouseup", MouseUp.String())
	assert.Equal(t, "unknown", EventType(99).String())
}
