package system

import (
	"math"

	"github.com/jakecoffman/cp"
)

const interceptEpsilon = 1e-9

// Intercept finds where a projectile fired from shooter at speed meets a
// target moving at constant targetVel. It solves
// |target + targetVel*t - shooter|² = (speed*t)² for the smallest t >= 0
// and returns the meeting point and t.
func Intercept(shooter, target, targetVel cp.Vector, speed float64) (cp.Vector, float64, bool) {
	d := target.Sub(shooter)
	a := targetVel.Dot(targetVel) - speed*speed
	b := 2 * d.Dot(targetVel)
	c := d.Dot(d)

	var t float64
	if math.Abs(a) < interceptEpsilon {
		// Equal speeds: the equation is linear.
		if math.Abs(b) < interceptEpsilon {
			if c > interceptEpsilon {
				return cp.Vector{}, 0, false
			}
			return target, 0, true
		}
		t = -c / b
		if t < 0 {
			return cp.Vector{}, 0, false
		}
	} else {
		disc := b*b - 4*a*c
		if disc < 0 {
			return cp.Vector{}, 0, false
		}
		sq := math.Sqrt(disc)
		t1 := (-b - sq) / (2 * a)
		t2 := (-b + sq) / (2 * a)
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		t = t1
		if t < 0 {
			t = t2
		}
		if t < 0 {
			return cp.Vector{}, 0, false
		}
	}

	return target.Add(targetVel.Mult(t)), t, true
}
