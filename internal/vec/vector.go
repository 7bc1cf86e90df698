package vec

import (
	"fmt"
	"math"

	"github.com/quasilyte/gmath"
)

// Epsilon is the tolerance used by Equal. It matches single precision
// machine epsilon so points that were rounded through float32 still compare equal.
const Epsilon = 1.1920929e-07

// Vector2 is a 2D point or displacement in screen space (y grows downward).
type Vector2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// New returns the vector (x, y).
func New(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

func (v Vector2) gmath() gmath.Vec {
	return gmath.Vec{X: v.X, Y: v.Y}
}

func fromGmath(g gmath.Vec) Vector2 {
	return Vector2{X: g.X, Y: g.Y}
}

// Add returns v + other.
func (v Vector2) Add(other Vector2) Vector2 {
	return Vector2{X: v.X + other.X, Y: v.Y + other.Y}
}

// AddScalar adds s to both components.
func (v Vector2) AddScalar(s float64) Vector2 {
	return Vector2{X: v.X + s, Y: v.Y + s}
}

// Sub returns v - other.
func (v Vector2) Sub(other Vector2) Vector2 {
	return Vector2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Neg returns -v.
func (v Vector2) Neg() Vector2 {
	return Vector2{X: -v.X, Y: -v.Y}
}

// Scale multiplies both components by k.
func (v Vector2) Scale(k float64) Vector2 {
	return Vector2{X: v.X * k, Y: v.Y * k}
}

// Mul multiplies component-wise.
func (v Vector2) Mul(other Vector2) Vector2 {
	return Vector2{X: v.X * other.X, Y: v.Y * other.Y}
}

// Abs makes both components non-negative.
func (v Vector2) Abs() Vector2 {
	return Vector2{X: math.Abs(v.X), Y: math.Abs(v.Y)}
}

// Magnitude returns the Euclidean distance between v and other.
func (v Vector2) Magnitude(other Vector2) float64 {
	return v.gmath().DistanceTo(other.gmath())
}

// MagnitudeTo is Magnitude against the point (x, y).
func (v Vector2) MagnitudeTo(x, y float64) float64 {
	return v.Magnitude(Vector2{X: x, Y: y})
}

// Rotate rotates v about the origin by the given angle in degrees.
func (v Vector2) Rotate(degrees float64) Vector2 {
	return fromGmath(v.gmath().Rotated(gmath.DegToRad(degrees)))
}

// Equal reports whether both components differ by at most Epsilon.
func (v Vector2) Equal(other Vector2) bool {
	return math.Abs(other.X-v.X) <= Epsilon && math.Abs(other.Y-v.Y) <= Epsilon
}

// LessEq reports whether v is componentwise <= other.
func (v Vector2) LessEq(other Vector2) bool {
	return v.X <= other.X && v.Y <= other.Y
}

// IsFinite is false when either component is infinite or NaN.
func (v Vector2) IsFinite() bool {
	return !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0) && !math.IsNaN(v.X) && !math.IsNaN(v.Y)
}

func (v Vector2) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}

// ToRadians converts degrees to radians.
func ToRadians(degrees float64) float64 {
	return float64(gmath.DegToRad(degrees))
}
