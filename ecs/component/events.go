package component

// Event type names carried on the world event queue.
const (
	EventCollision = "collision"
	EventHitPlayer = "hit_player"
	EventKillNPC   = "kill_npc"
	EventSound     = "sound"
	EventWin       = "win"
)

// DamageType identifies who hurt the player.
type DamageType int

const (
	DamageProjectile DamageType = iota
	DamageCivilian
	DamageHunter
)

type HitPlayerEvent struct {
	Type DamageType
}

type KillNPCEvent struct {
	Kind NPCKind
}

type Sound string

const (
	SoundHit   Sound = "hit"
	SoundThrow Sound = "throw"
	SoundKill  Sound = "kill"
)

type SoundEvent struct {
	Sound Sound
}

// Win is pushed once every rose has been collected.
type WinEvent struct{}
