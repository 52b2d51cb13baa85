package component

// Collision categories. Structures block movement and sight; raycast
// helpers block sight only.
const (
	CategoryPlayer uint = 1 << iota
	CategoryNPC
	CategoryStructure
	CategoryProjectile
	CategoryRaycastHelp
	CategoryCollectible
)

// CollisionLayer declares a collision category and mask so the physics
// system can selectively enable collisions between groups of objects.
type CollisionLayer struct {
	// Category is a bitmask of this entity's collision category.
	Category uint
	// Mask is a bitmask of categories this entity should collide with. If
	// zero, the physics system treats it as all bits set.
	Mask uint
}

var CollisionLayerComponent = NewComponent[CollisionLayer]()
