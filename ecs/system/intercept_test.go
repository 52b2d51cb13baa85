package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestIntercept(t *testing.T) {
	tests := []struct {
		name      string
		shooter   cp.Vector
		target    cp.Vector
		targetVel cp.Vector
		speed     float64
		wantOK    bool
		wantT     float64
	}{
		{name: "stationary", target: cp.Vector{X: 300}, speed: 150, wantOK: true, wantT: 2},
		{name: "stationary_diagonal", shooter: cp.Vector{X: 10, Y: 10}, target: cp.Vector{X: 40, Y: 50}, speed: 25, wantOK: true, wantT: 2},
		{name: "approaching", target: cp.Vector{X: 300}, targetVel: cp.Vector{X: -150}, speed: 150, wantOK: true, wantT: 1},
		{name: "crossing", target: cp.Vector{X: 100}, targetVel: cp.Vector{Y: 30}, speed: 150, wantOK: true},
		{name: "faster_moving_away", target: cp.Vector{X: 100}, targetVel: cp.Vector{X: 200}, speed: 150},
		{name: "faster_perpendicular", target: cp.Vector{X: 100}, targetVel: cp.Vector{Y: 200}, speed: 150},
		{name: "same_speed_fleeing", target: cp.Vector{X: 100}, targetVel: cp.Vector{X: 150}, speed: 150},
		{name: "on_top", target: cp.Vector{}, speed: 150, wantOK: true, wantT: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			point, tm, ok := Intercept(tt.shooter, tt.target, tt.targetVel, tt.speed)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v (t=%v)", tt.wantOK, ok, tm)
			}
			if !ok {
				return
			}
			if tt.wantT != 0 && math.Abs(tm-tt.wantT) > 1e-9 {
				t.Fatalf("expected t=%v, got %v", tt.wantT, tm)
			}
			if tm < 0 {
				t.Fatalf("negative intercept time %v", tm)
			}
			// The projectile covers exactly speed*t to reach the meeting point.
			if got, want := point.Distance(tt.shooter), tt.speed*tm; math.Abs(got-want) > 1e-6 {
				t.Fatalf("meeting point %v is %v away, expected %v", point, got, want)
			}
		})
	}
}
