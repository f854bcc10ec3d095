package game

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl64"
)

const twoPi = math.Pi * 2

// DeltaYaw returns the signed shortest rotation from yaw2 to yaw1 in radians. The result is always
// within (-π, π].
func DeltaYaw(yaw1, yaw2 float64) float64 {
	delta := math.Mod(yaw1-yaw2, twoPi)
	if delta <= -math.Pi {
		delta += twoPi
	} else if delta > math.Pi {
		delta -= twoPi
	}
	return delta
}

// ClampFloat clamps the given value to the given range.
func ClampFloat(num, min, max float64) float64 {
	if num < min {
		return min
	}
	return math.Min(num, max)
}

// Quantize rounds v to the nearest multiple of step.
func Quantize(v, step float64) float64 {
	return math.Round(v/step) * step
}

// ToWireYaw converts a yaw in radians, counter-clockwise from north, to the degrees the server
// expects within (-180, 180], rounded to single precision as it is transmitted.
func ToWireYaw(yaw float64) float32 {
	return WrapDegrees32(float32(WireYawDegrees(yaw)))
}

// ToWirePitch converts a pitch in radians, positive upwards, to the degrees the server expects,
// rounded to single precision as it is transmitted.
func ToWirePitch(pitch float64) float32 {
	return float32(WirePitchDegrees(pitch))
}

// WireYawDegrees is ToWireYaw at full precision.
func WireYawDegrees(yaw float64) float64 {
	return mgl64.RadToDeg(math.Pi - yaw)
}

// WirePitchDegrees is ToWirePitch at full precision.
func WirePitchDegrees(pitch float64) float64 {
	return mgl64.RadToDeg(-pitch)
}

// FromWireYaw converts a yaw in server degrees back to radians within [0, 2π).
func FromWireYaw(yaw float64) float64 {
	return euclideanMod(math.Pi-mgl64.DegToRad(yaw), twoPi)
}

// FromWirePitch converts a pitch in server degrees back to radians within [-π, π).
func FromWirePitch(pitch float64) float64 {
	return euclideanMod(mgl64.DegToRad(-pitch)+math.Pi, twoPi) - math.Pi
}

// WrapDegrees32 wraps an angle in degrees to (-180, 180].
func WrapDegrees32(deg float32) float32 {
	deg = math32.Mod(deg, 360)
	if deg <= -180 {
		deg += 360
	} else if deg > 180 {
		deg -= 360
	}
	return deg
}

// YawPitchTowards returns the yaw and pitch in radians needed to look along delta.
func YawPitchTowards(delta mgl64.Vec3) (yaw, pitch float64) {
	yaw = math.Atan2(-delta.X(), -delta.Z())
	groundDistance := math.Sqrt(delta.X()*delta.X() + delta.Z()*delta.Z())
	pitch = math.Atan2(delta.Y(), groundDistance)
	return yaw, pitch
}

func euclideanMod(num, mod float64) float64 {
	m := math.Mod(num, mod)
	if m < 0 {
		m += mod
	}
	return m
}
