package physics

import "math"

// Vec2 is a 2D vector in world units. Y grows downwards, matching screen space,
// so angle 0 points right and positive angles turn clockwise on screen.
type Vec2 struct {
	X, Y float64
}

var (
	Zero  = Vec2{}
	Right = Vec2{X: 1}
)

// FromAngle returns the unit vector pointing along angle (radians).
func FromAngle(angle float64) Vec2 {
	return Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
}

func (v Vec2) Add(o Vec2) Vec2           { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2           { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2      { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64        { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Len() float64              { return math.Hypot(v.X, v.Y) }
func (v Vec2) IsZero() bool              { return v.X == 0 && v.Y == 0 }
func (v Vec2) DistanceTo(o Vec2) float64 { return o.Sub(v).Len() }

// Angle returns the direction of v in (-π, π]. The zero vector has angle 0.
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// AngleTo returns the direction from v towards o.
func (v Vec2) AngleTo(o Vec2) float64 {
	return o.Sub(v).Angle()
}

// Normalized returns the unit vector along v, or the zero vector when v has no length.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Zero
	}
	return Vec2{v.X / l, v.Y / l}
}

// Rotated returns v rotated by angle radians.
func (v Vec2) Rotated(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

// Lerp interpolates from v to o by weight t. t is clamped to [0, 1].
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	t = Clamp(t, 0, 1)
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// WrapAngle wraps a into (-π, π].
func WrapAngle(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	Min  Vec2
	Size Vec2
}

func (r Rect) Max() Vec2 { return r.Min.Add(r.Size) }

// IntersectsCircle reports whether a circle touches the rectangle.
func (r Rect) IntersectsCircle(center Vec2, radius float64) bool {
	maxP := r.Max()
	nearest := Vec2{Clamp(center.X, r.Min.X, maxP.X), Clamp(center.Y, r.Min.Y, maxP.Y)}
	return nearest.DistanceTo(center) <= radius
}
