package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector_Delta(t *testing.T) {
	tests := []struct {
		name   string
		vector Vector
		dt     float64
		wantDX float64
		wantDY float64
	}{
		{"up and right", Vector{5, 3, 0, 0}, 2, 6, 10},
		{"opposing forces cancel", Vector{4, 2, 4, 2}, 1, 0, 0},
		{"down and left", Vector{0, 0, 10, 5}, 0.5, -2.5, -5},
		{"zero dt", Vector{1, 1, 1, 1}, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dx, dy := tt.vector.Delta(tt.dt)
			assert.InDelta(t, tt.wantDX, dx, 1e-9)
			assert.InDelta(t, tt.wantDY, dy, 1e-9)
		})
	}
}

func TestVector_IndicesAreIndependent(t *testing.T) {
	var v Vector
	v[Up] = 100  // gravity
	v[Down] = 40 // jump
	v[Right] = 10

	assert.Equal(t, 100.0, v[Up])
	assert.Equal(t, 40.0, v[Down])

	dx, dy := v.Delta(1)
	assert.Equal(t, 10.0, dx)
	assert.Equal(t, 60.0, dy)

	v.Clear()
	assert.Equal(t, Vector{}, v)
}
