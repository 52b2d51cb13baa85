package component

import "time"

// DayCycle is the world-wide phase flag. Only the day cycle driver writes it.
type DayCycle struct {
	IsNight       bool
	IsTranslating bool
	// Daylight is 1 at full day and 0 at full night, blending during transitions.
	Daylight float64
	Elapsed  time.Duration
}

var DayCycleComponent = NewComponent[DayCycle]()
