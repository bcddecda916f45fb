package coord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoint_Distance(t *testing.T) {
	a := Point{X: 1, Y: 2, Z: 3}
	b := Point{X: 4, Y: 6, Z: 3}
	assert.Equal(t, 5.0, a.Distance(b))
	assert.Equal(t, 5.0, b.Distance(a))
	assert.Equal(t, 0.0, a.Distance(a))
}

func TestPoint_AddSub(t *testing.T) {
	a := Point{X: 1, Y: 2, Z: 3}
	b := Point{X: 10, Y: -2, Z: 0.5}

	assert.Equal(t, Point{X: 11, Y: 0, Z: 3.5}, a.Add(b))
	assert.Equal(t, Point{X: -9, Y: 4, Z: 2.5}, a.Sub(b))
	assert.True(t, a.Add(b).Sub(b).Equal(a))
}
