package component

// Mover marks entities whose cell counts as occupied for path costs.
type Mover struct{}

// Structure marks level geometry that blocks movement and sight.
type Structure struct{}

// Projectile marks a thrown hunter weapon.
type Projectile struct {
	Variant int
}

// Collectible marks a rose the player can pick up.
type Collectible struct{}

// Remains is the body left behind by a dead NPC.
type Remains struct {
	Kind NPCKind
}

// Emote is a short-lived reaction bubble above an NPC.
type Emote struct {
	Kind EmoteKind
}

type EmoteKind int

const (
	EmoteWarn EmoteKind = iota
	EmoteQuestion
	EmoteAngry
)

func (k EmoteKind) String() string {
	switch k {
	case EmoteWarn:
		return "warn"
	case EmoteQuestion:
		return "question"
	case EmoteAngry:
		return "angry"
	default:
		return "unknown"
	}
}

var MoverComponent = NewComponent[Mover]()
var StructureComponent = NewComponent[Structure]()
var ProjectileComponent = NewComponent[Projectile]()
var CollectibleComponent = NewComponent[Collectible]()
var RemainsComponent = NewComponent[Remains]()
var EmoteComponent = NewComponent[Emote]()

// RoseTally counts collected roses against the number placed in the level.
type RoseTally struct {
	Collected int
	Total     int
}

var RoseTallyComponent = NewComponent[RoseTally]()
