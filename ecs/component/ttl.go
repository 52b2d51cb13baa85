package component

import "time"

// TTL destroys its entity once Timer finishes. Projectiles, remains and
// emotes use it.
type TTL struct {
	Timer Timer
}

func NewTTL(d time.Duration) *TTL {
	return &TTL{Timer: NewOnceTimer(d)}
}

var TTLComponent = NewComponent[TTL]()
