package game

import "math"

// TrapezoidArea is the area under the trapezoid velocity profile, which is also its average speed
// multiplier.
const TrapezoidArea = 0.8

// Trapezoid returns the fraction of the total distance covered at normalised time t for a velocity
// profile that ramps up over the first 20%, holds full speed for the middle 60% and ramps down over
// the last 20%. Trapezoid(0) is 0 and Trapezoid(1) is exactly 1.
func Trapezoid(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	case t < 0.2:
		return (2.5 * t * t) / TrapezoidArea
	case t < 0.8:
		return (t - 0.1) / TrapezoidArea
	default:
		return (5*t - 2.5*t*t - 1.7) / TrapezoidArea
	}
}

// TrapezoidTween is Trapezoid as a gween ease.TweenFunc: t is the elapsed time, b the beginning
// value, c the total change and d the duration.
func TrapezoidTween(t, b, c, d float32) float32 {
	return b + c*float32(Trapezoid(float64(t/d)))
}

// EasedDurationTicks returns the amount of ticks needed to rotate by delta radians along the
// trapezoid profile whose peak speed is speed radians per second.
func EasedDurationTicks(delta, speed float64) int {
	if delta == 0 || speed <= 0 {
		return 0
	}
	return int(math.Ceil(math.Abs(delta) / (speed * TrapezoidArea) * TicksPerSecond))
}
