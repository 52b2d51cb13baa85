package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/nocturne/ecs"
	"github.com/milk9111/nocturne/ecs/component"
	"github.com/milk9111/nocturne/prefabs"
)

func TestDamage(t *testing.T) {
	tuning := prefabs.DefaultTuning().Player
	p := component.DefaultPlayer()
	tests := []struct {
		dmg  component.DamageType
		want float64
	}{
		{component.DamageProjectile, 6.4},
		{component.DamageCivilian, 3.2},
		{component.DamageHunter, 12},
	}
	for _, tt := range tests {
		if got := Damage(p, tt.dmg, tuning); math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("damage %v = %v, want %v", tt.dmg, got, tt.want)
		}
	}
}

func playerOf(t *testing.T, w *ecs.World, e ecs.Entity) *component.Player {
	t.Helper()
	p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok {
		t.Fatalf("no player component")
	}
	return p
}

func TestPlayerSystemVitals(t *testing.T) {
	w := newTestWorld(t, true)
	e := addPlayer(t, w, playerSpot)
	p := playerOf(t, w, e)
	sys := NewPlayerSystem(prefabs.DefaultTuning())

	w.Events().Push(ecs.Event{Type: component.EventHitPlayer, Data: component.HitPlayerEvent{Type: component.DamageHunter}})
	sys.Update(w)
	if math.Abs(p.HP-(80-0.2-12)) > 1e-9 {
		t.Fatalf("hp after hunger and a hunter hit = %v", p.HP)
	}

	w.Events().Drain()
	w.Events().Push(ecs.Event{Type: component.EventKillNPC, Data: component.KillNPCEvent{Kind: component.Civilian}})
	w.Events().Push(ecs.Event{Type: component.EventKillNPC, Data: component.KillNPCEvent{Kind: component.Hunter}})
	w.Events().Push(ecs.Event{Type: component.EventKillNPC, Data: component.KillNPCEvent{Kind: component.Hunter}})
	sys.Update(w)
	if p.HP != p.MaxHP {
		t.Fatalf("hp = %v, want clamped to %v", p.HP, p.MaxHP)
	}
	if p.Score != 1100 {
		t.Fatalf("score = %v, want 1100", p.Score)
	}
}

func TestPlayerSystemDies(t *testing.T) {
	w := newTestWorld(t, true)
	e := addPlayer(t, w, playerSpot)
	p := playerOf(t, w, e)
	p.HP = 0.1
	sys := NewPlayerSystem(nil)

	sys.Update(w)
	if !p.Dead {
		t.Fatalf("hp %v but alive", p.HP)
	}
	p.Velocity = cp.Vector{X: 10}
	sys.Update(w)
	if p.Velocity != (cp.Vector{}) {
		t.Fatalf("dead player still moving")
	}
}

func TestPlayerSystemMovement(t *testing.T) {
	w := newTestWorld(t, false)
	e := addPlayer(t, w, playerSpot)
	input, _ := ecs.Get(w, e, component.PlayerInputComponent.Kind())
	input.Move = cp.Vector{X: 3}
	input.Dash = true

	NewPlayerSystem(nil).Update(w)

	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if body.Velocity.Distance(cp.Vector{X: 50}) > 1e-9 {
		t.Fatalf("velocity = %v, want (50, 0)", body.Velocity)
	}
	if !playerOf(t, w, e).Ghost || !body.Sensor {
		t.Fatalf("dash did not make the player a ghost")
	}
}

func TestPlayerSystemWins(t *testing.T) {
	w := newTestWorld(t, false)
	e := addPlayer(t, w, playerSpot)
	w.Events().Push(ecs.Event{Type: component.EventWin, Data: component.WinEvent{}})

	NewPlayerSystem(nil).Update(w)

	if !playerOf(t, w, e).Won {
		t.Fatalf("win event ignored")
	}
}
