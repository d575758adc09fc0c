package lockon

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// smallNumber is the squared distance below which interpolation snaps.
const smallNumber = 1e-8

var worldUp = mgl64.Vec3{0, 0, 1}

// Rotator is an orientation in degrees. Z is up; yaw turns counter-clockwise
// from +X and positive pitch looks up.
type Rotator struct {
	Pitch float64
	Yaw   float64
	Roll  float64
}

// RotationOf returns the rotator that faces along dir. Roll is always zero.
func RotationOf(dir mgl64.Vec3) Rotator {
	if dir.LenSqr() < smallNumber {
		return Rotator{}
	}
	return Rotator{
		Pitch: mgl64.RadToDeg(math.Atan2(dir.Z(), math.Hypot(dir.X(), dir.Y()))),
		Yaw:   mgl64.RadToDeg(math.Atan2(dir.Y(), dir.X())),
	}
}

// Vector returns the unit forward vector of r.
func (r Rotator) Vector() mgl64.Vec3 {
	p := mgl64.DegToRad(r.Pitch)
	y := mgl64.DegToRad(r.Yaw)
	cp := math.Cos(p)
	return mgl64.Vec3{cp * math.Cos(y), cp * math.Sin(y), math.Sin(p)}
}

func (r Rotator) Add(o Rotator) Rotator {
	return Rotator{Pitch: r.Pitch + o.Pitch, Yaw: r.Yaw + o.Yaw, Roll: r.Roll + o.Roll}
}

func (r Rotator) Sub(o Rotator) Rotator {
	return Rotator{Pitch: r.Pitch - o.Pitch, Yaw: r.Yaw - o.Yaw, Roll: r.Roll - o.Roll}
}

func (r Rotator) Scale(f float64) Rotator {
	return Rotator{Pitch: r.Pitch * f, Yaw: r.Yaw * f, Roll: r.Roll * f}
}

// Normalized wraps every axis into (-180, 180].
func (r Rotator) Normalized() Rotator {
	return Rotator{Pitch: normalizeAxis(r.Pitch), Yaw: normalizeAxis(r.Yaw), Roll: normalizeAxis(r.Roll)}
}

func (r Rotator) nearlyZero() bool {
	return r.Pitch*r.Pitch+r.Yaw*r.Yaw+r.Roll*r.Roll < smallNumber
}

func normalizeAxis(a float64) float64 {
	a = math.Mod(a, 360)
	if a > 180 {
		a -= 360
	} else if a <= -180 {
		a += 360
	}
	return a
}

// InterpTo moves current toward target by a fraction of the remaining
// distance proportional to dt*speed, so it eases out and never overshoots.
// A non-positive speed jumps straight to target.
func InterpTo(current, target, dt, speed float64) float64 {
	if speed <= 0 {
		return target
	}
	dist := target - current
	if dist*dist < smallNumber {
		return target
	}
	return current + dist*mgl64.Clamp(dt*speed, 0, 1)
}

// RInterpTo is InterpTo for rotators, taking the short way around on each axis.
func RInterpTo(current, target Rotator, dt, speed float64) Rotator {
	if dt == 0 || current == target {
		return current
	}
	if speed <= 0 {
		return target
	}
	delta := target.Sub(current).Normalized()
	if delta.nearlyZero() {
		return target
	}
	return current.Add(delta.Scale(mgl64.Clamp(dt*speed, 0, 1))).Normalized()
}

// VInterpTo is InterpTo applied to a vector.
func VInterpTo(current, target mgl64.Vec3, dt, speed float64) mgl64.Vec3 {
	if speed <= 0 {
		return target
	}
	dist := target.Sub(current)
	if dist.LenSqr() < smallNumber {
		return target
	}
	return current.Add(dist.Mul(mgl64.Clamp(dt*speed, 0, 1)))
}

func safeNormal(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l*l < smallNumber {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// angleBetween returns the angle in degrees between a and b. A zero-length
// input behaves like a perpendicular one.
func angleBetween(a, b mgl64.Vec3) float64 {
	dot := mgl64.Clamp(safeNormal(a).Dot(safeNormal(b)), -1, 1)
	return mgl64.RadToDeg(math.Acos(dot))
}

// rotateYaw turns v around the world up axis by deg degrees.
func rotateYaw(v mgl64.Vec3, deg float64) mgl64.Vec3 {
	return mgl64.HomogRotate3DZ(mgl64.DegToRad(deg)).Mul4x1(v.Vec4(0)).Vec3()
}
