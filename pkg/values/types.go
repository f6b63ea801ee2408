package values

import "math"

// Point3 is a location in 3-D space.
type Point3 struct {
	X, Y, Z float64
}

// Vector3 is a direction/displacement in 3-D space.
type Vector3 struct {
	X, Y, Z float64
}

// IsZero reports whether all components are zero.
func (v Vector3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Length returns the euclidean length of v.
func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// unitTolerance is how far from 1 a length may be and still count as unit.
const unitTolerance = 1e-9

// Unitize returns v scaled to unit length. Vectors already within
// unitTolerance of unit length are returned unchanged. It returns false for
// the zero vector.
func (v Vector3) Unitize() (Vector3, bool) {
	l := v.Length()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return v, false
	}
	if math.Abs(l-1) <= unitTolerance {
		return v, true
	}
	return Vector3{X: v.X / l, Y: v.Y / l, Z: v.Z / l}, true
}

// Cross returns the cross product v x o.
func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Line is a straight segment between two points.
type Line struct {
	From Point3
	To   Point3
}

// Plane is an oriented plane. The Z axis is derived and never stored.
type Plane struct {
	Origin Point3
	XAxis  Vector3
	YAxis  Vector3
}

// ZAxis returns the plane normal (XAxis x YAxis).
func (p Plane) ZAxis() Vector3 {
	return p.XAxis.Cross(p.YAxis)
}

// Circle is defined by center, normal and radius, plus a point on the circle
// that fixes its parameterization start.
type Circle struct {
	Center Point3
	Normal Vector3
	Radius float64
	Start  Point3
}

// Arc is defined by three points it passes through.
type Arc struct {
	Start Point3
	Mid   Point3
	End   Point3
}

// Interval is a closed numeric domain. Min may equal Max.
type Interval struct {
	Min float64
	Max float64
}

// Length returns Max - Min.
func (i Interval) Length() float64 {
	return i.Max - i.Min
}

// Box is an oriented box: a base plane and one interval per axis.
type Box struct {
	Plane Plane
	X     Interval
	Y     Interval
	Z     Interval
}

// Rectangle is an oriented rectangle centered on its plane origin.
type Rectangle struct {
	Plane  Plane
	Width  float64
	Height float64
}

// Color is an 8-bit-per-channel ARGB color.
type Color struct {
	A, R, G, B uint8
}

// Size is a 2-D width/height pair, used for UI bounds.
type Size struct {
	Width  float64
	Height float64
}
