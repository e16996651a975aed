package vector

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/openracer/racetrack/common/utils/number"
)

type Vector2 struct {
	x float64
	y float64
}

func MakeVector2(x float64, y float64) Vector2 {
	return Vector2{x, y}
}

// Returns a null vector2
func MakeNullVector2() Vector2 {
	return MakeVector2(0, 0)
}

// MakeVector2FromAngle returns the unit vector pointing at the given
// heading; heading 0 points along +x, counterclockwise positive.
func MakeVector2FromAngle(radians float64) Vector2 {
	return MakeVector2(math.Cos(radians), math.Sin(radians))
}

func (v Vector2) Get() (float64, float64) {
	return v.x, v.y
}

func (v Vector2) GetX() float64 {
	return v.x
}

func (v Vector2) GetY() float64 {
	return v.y
}

var floatformat = byte('f')

func (v Vector2) MarshalJSON() ([]byte, error) {
	b := []byte{'['}
	b = strconv.AppendFloat(b, v.x, floatformat, 4, 64)
	b = append(b, byte(','))
	b = strconv.AppendFloat(b, v.y, floatformat, 4, 64)
	return append(b, byte(']')), nil
}

func (v *Vector2) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}

	v.x = pair[0]
	v.y = pair[1]

	return nil
}

func (a Vector2) Clone() Vector2 {
	return Vector2{
		x: a.x,
		y: a.y,
	}
}

func (a Vector2) Add(b Vector2) Vector2 {
	a.x += b.x
	a.y += b.y
	return a
}

func (a Vector2) Sub(b Vector2) Vector2 {
	a.x -= b.x
	a.y -= b.y
	return a
}

func (a Vector2) MultScalar(f float64) Vector2 {
	a.x *= f
	a.y *= f
	return a
}

func (a Vector2) DivScalar(f float64) Vector2 {
	a.x /= f
	a.y /= f
	return a
}

func (a Vector2) Mag() float64 {
	return math.Sqrt(a.MagSq())
}

func (a Vector2) MagSq() float64 {
	return (a.x*a.x + a.y*a.y)
}

func (a Vector2) SetMag(mag float64) Vector2 {
	return a.Normalize().MultScalar(mag)
}

func (a Vector2) Normalize() Vector2 {
	mag := a.Mag()
	if mag > 0 {
		return a.DivScalar(mag)
	}
	return a
}

func (a Vector2) OrthogonalClockwise() Vector2 {
	return MakeVector2(a.y, -a.x)
}

func (a Vector2) OrthogonalCounterClockwise() Vector2 {
	return MakeVector2(-a.y, a.x)
}

// Rotate rotates the vector counterclockwise by the given angle.
func (a Vector2) Rotate(radians float64) Vector2 {
	cos := math.Cos(radians)
	sin := math.Sin(radians)
	return MakeVector2(
		a.x*cos-a.y*sin,
		a.x*sin+a.y*cos,
	)
}

func (a Vector2) Limit(max float64) Vector2 {

	mSq := a.MagSq()

	if mSq > max*max {
		return a.Normalize().MultScalar(max)
	}

	return a
}

// Angle returns the heading of the vector; 0 along +x, counterclockwise
// positive, wrapped into [0, 2π).
func (a Vector2) Angle() float64 {
	if a.x == 0 && a.y == 0 {
		return 0
	}

	angle := math.Atan2(a.y, a.x)

	if angle < 0 {
		angle += 2 * math.Pi
	}

	return angle
}

func (a Vector2) Cross(v Vector2) float64 {
	return a.x*v.y - a.y*v.x
}

func (a Vector2) Dot(v Vector2) float64 {
	return a.x*v.x + a.y*v.y
}

func (a Vector2) DistanceTo(v Vector2) float64 {
	return v.Sub(a).Mag()
}

func (a Vector2) IsNull() bool {
	return number.IsZero(a.x) && number.IsZero(a.y)
}

func (a Vector2) Equals(b Vector2) bool {
	return b.Sub(a).IsNull()
}

func (a Vector2) String() string {
	return "<Vector2(" + number.FloatToStr(a.x, 5) + ", " + number.FloatToStr(a.y, 5) + ")>"
}

func (a Vector2) ToFloatArray() [2]float64 {
	return [2]float64{a.GetX(), a.GetY()}
}
