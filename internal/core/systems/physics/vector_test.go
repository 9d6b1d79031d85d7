package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapAngle(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{5 * math.Pi, math.Pi},
		{math.NaN(), 0},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, WrapAngle(c.in), 1e-9, "wrap(%v)", c.in)
	}
}

func TestNormalizedZeroVector(t *testing.T) {
	assert.Equal(t, Zero, Zero.Normalized())
	assert.InDelta(t, 1.0, Vec2{3, 4}.Normalized().Len(), 1e-12)
}

func TestRotatedAndFromAngle(t *testing.T) {
	v := Right.Rotated(math.Pi / 2)
	assert.InDelta(t, 0, v.X, 1e-12)
	assert.InDelta(t, 1, v.Y, 1e-12)

	u := FromAngle(-math.Pi / 4)
	assert.InDelta(t, -math.Pi/4, u.Angle(), 1e-12)
}

func TestLerpClampsWeight(t *testing.T) {
	from, to := Vec2{0, 0}, Vec2{10, -10}
	assert.Equal(t, Vec2{5, -5}, from.Lerp(to, 0.5))
	assert.Equal(t, to, from.Lerp(to, 3))
	assert.Equal(t, from, from.Lerp(to, -1))
}

func TestRectIntersectsCircle(t *testing.T) {
	r := Rect{Min: Vec2{0, 0}, Size: Vec2{100, 50}}
	assert.True(t, r.IntersectsCircle(Vec2{50, 25}, 1))
	assert.True(t, r.IntersectsCircle(Vec2{-5, 25}, 6))
	assert.False(t, r.IntersectsCircle(Vec2{-5, 25}, 4))
	assert.False(t, r.IntersectsCircle(Vec2{200, 200}, 10))
}
