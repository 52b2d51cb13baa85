package component

// Spawner periodically tries to create an NPC of Kind at its transform.
type Spawner struct {
	Kind  NPCKind
	Timer Timer
}

var SpawnerComponent = NewComponent[Spawner]()
