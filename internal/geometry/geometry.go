// Package geometry maps sound directions onto the viewer sphere.
package geometry

import "math"

// DefaultRadius is the radius of the reference sphere in scene units.
const DefaultRadius = 3.0

// Vec3 is a point or direction in scene space (+X east, +Y up, +Z north).
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Origin is the sphere center.
var Origin = Vec3{}

// ToCartesian converts azimuth/elevation in degrees to a point on a sphere of
// the given radius. Azimuth 0 lies on +X and increases toward +Z. Any finite
// input yields a point on the sphere; elevations outside [-90, 90] wrap over
// the pole.
func ToCartesian(azimuthDeg, elevationDeg, radius float64) Vec3 {
	azRad := azimuthDeg * math.Pi / 180
	elRad := elevationDeg * math.Pi / 180

	return Vec3{
		X: radius * math.Cos(elRad) * math.Cos(azRad),
		Y: radius * math.Sin(elRad),
		Z: radius * math.Cos(elRad) * math.Sin(azRad),
	}
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Normalize returns the unit vector of v, or the zero vector when v has no length.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// EulerOrder is the axis order every Euler in the scene is applied in.
const EulerOrder = "YXZ"

// Euler holds rotations in radians. Order names the application order so
// renderers need not assume their own default.
type Euler struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Order string  `json:"order"`
}

// Identity returns the zero rotation in EulerOrder.
func Identity() Euler {
	return Euler{Order: EulerOrder}
}

// FacingRotation returns the rotation that turns an object's +Z axis at from
// toward target. Coincident points yield the zero rotation.
func FacingRotation(from, target Vec3) Euler {
	d := target.Sub(from)
	if d.Length() == 0 {
		return Identity()
	}
	horizontal := math.Hypot(d.X, d.Z)
	return Euler{
		X:     math.Atan2(-d.Y, horizontal),
		Y:     math.Atan2(d.X, d.Z),
		Order: EulerOrder,
	}
}

// Forward returns the +Z axis of an object rotated by e.
func (e Euler) Forward() Vec3 {
	return Vec3{
		X: math.Sin(e.Y) * math.Cos(e.X),
		Y: -math.Sin(e.X),
		Z: math.Cos(e.Y) * math.Cos(e.X),
	}
}
