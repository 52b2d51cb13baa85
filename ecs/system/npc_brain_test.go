package system

import (
	"fmt"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/nocturne/ecs/component"
	"github.com/milk9111/nocturne/prefabs"
)

const tick = 100 * time.Millisecond

type fakePaths struct {
	grid    *component.GridTransform
	path    []component.Cell
	ok      bool
	calls   int
	states  []component.NPCState
	blocked map[component.Cell]bool
}

func newFakePaths() *fakePaths {
	return &fakePaths{grid: component.NewGridTransform(cp.Vector{}, 16, 20, 20)}
}

func (f *fakePaths) FindPath(start, goal component.Cell, kind component.NPCKind, state component.NPCState) ([]component.Cell, bool) {
	f.calls++
	f.states = append(f.states, state)
	if !f.ok {
		return nil, false
	}
	return append([]component.Cell(nil), f.path...), true
}

func (f *fakePaths) IsTrespassable(c component.Cell) bool {
	return !f.blocked[c]
}

func (f *fakePaths) CellCenter(c component.Cell) cp.Vector {
	return f.grid.CellToWorld(c)
}

func sense(grid *component.GridTransform, kind component.NPCKind, pos, player cp.Vector, sight, night bool) Senses {
	return Senses{
		Kind:       kind,
		Pos:        pos,
		Cell:       grid.WorldToCell(pos),
		PlayerPos:  player,
		PlayerCell: grid.WorldToCell(player),
		InSight:    sight,
		Night:      night,
		Dt:         tick,
	}
}

func newMind(kind component.NPCKind) component.NPCMind {
	tune := prefabs.DefaultTuning().Civilian
	if kind == component.Hunter {
		tune = prefabs.DefaultTuning().Hunter
	}
	return component.NewNPCMind(tune.ChillPeriod, tune.AttackCooldown, tune.EmotePeriod, tune.DeathDuration)
}

func envWith(paths PathQuerier) BrainEnv {
	return BrainEnv{Paths: paths, Rand: rand.New(rand.NewSource(1)), Tuning: prefabs.DefaultTuning()}
}

func findCmd(cmds []Command, kind CommandKind) (Command, bool) {
	for _, c := range cmds {
		if c.Kind == kind {
			return c, true
		}
	}
	return Command{}, false
}

func countCmd(cmds []Command, kind CommandKind) int {
	n := 0
	for _, c := range cmds {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

func hasAnim(cmds []Command, anim component.AnimTrigger) bool {
	for _, c := range cmds {
		if (c.Kind == CmdAnimate || c.Kind == CmdTurn) && c.Anim == anim {
			return true
		}
	}
	return false
}

func lastVelocity(cmds []Command) (cp.Vector, bool) {
	var v cp.Vector
	found := false
	for _, c := range cmds {
		if c.Kind == CmdSetVelocity {
			v = c.Velocity
			found = true
		}
	}
	return v, found
}

func TestCivilianChillFarPlayerWandersOncePerPeriod(t *testing.T) {
	paths := newFakePaths()
	env := envWith(paths)
	pos := paths.grid.CellToWorld(component.Cell{X: 5, Y: 5})
	player := pos.Add(cp.Vector{X: 150})
	mind := newMind(component.Civilian)

	for i := 1; i <= 20; i++ {
		var cmds []Command
		mind, cmds = Think(mind, sense(paths.grid, component.Civilian, pos, player, false, false), env)
		if mind.State != component.Chill {
			t.Fatalf("tick %d: expected Chill, got %v", i, mind.State)
		}
		if _, ok := findCmd(cmds, CmdStateChanged); ok {
			t.Fatalf("tick %d: unexpected state change", i)
		}
		if i == 10 && paths.calls > 1 {
			t.Fatalf("expected at most one wander request in the first second, got %d", paths.calls)
		}
	}
	if paths.calls > 2 {
		t.Fatalf("expected at most two wander requests in two seconds, got %d", paths.calls)
	}
	for _, s := range paths.states {
		if s != component.Chill {
			t.Fatalf("wander requests must be planned as Chill, got %v", s)
		}
	}
}

func TestCivilianWanderSkipsBlockedTarget(t *testing.T) {
	paths := newFakePaths()
	paths.blocked = make(map[component.Cell]bool)
	for x := 0; x < 20; x++ {
		for y := 0; y < 20; y++ {
			paths.blocked[component.Cell{X: x, Y: y}] = true
		}
	}
	env := envWith(paths)
	pos := paths.grid.CellToWorld(component.Cell{X: 5, Y: 5})
	mind := newMind(component.Civilian)
	for i := 0; i < 30; i++ {
		mind, _ = Think(mind, sense(paths.grid, component.Civilian, pos, pos.Add(cp.Vector{X: 500}), false, false), env)
	}
	if paths.calls != 0 {
		t.Fatalf("expected no path requests towards blocked cells, got %d", paths.calls)
	}
}

func TestCivilianSpotsPlayer(t *testing.T) {
	tests := []struct {
		name  string
		night bool
		want  component.NPCState
	}{
		{name: "day_chase", night: false, want: component.Chase},
		{name: "night_escape", night: true, want: component.Escape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths := newFakePaths()
			paths.ok = true
			paths.path = []component.Cell{{X: 4, Y: 5}}
			pos := paths.grid.CellToWorld(component.Cell{X: 5, Y: 5})
			mind, cmds := Think(newMind(component.Civilian), sense(paths.grid, component.Civilian, pos, pos.Add(cp.Vector{X: 60}), true, tt.night), envWith(paths))
			if mind.State != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, mind.State)
			}
			emote, ok := findCmd(cmds, CmdEmote)
			if !ok || emote.Emote != component.EmoteWarn {
				t.Fatalf("expected a warn emote, got %+v", cmds)
			}
			change, ok := findCmd(cmds, CmdStateChanged)
			if !ok || change.From != component.Chill || change.To != tt.want {
				t.Fatalf("expected Chill -> %v, got %+v", tt.want, change)
			}
		})
	}
}

func TestCivilianChaseLosesSight(t *testing.T) {
	paths := newFakePaths()
	paths.ok = true
	paths.path = []component.Cell{{X: 6, Y: 5}}
	pos := paths.grid.CellToWorld(component.Cell{X: 5, Y: 5})
	mind := newMind(component.Civilian)
	mind.State = component.Chase

	mind, cmds := Think(mind, sense(paths.grid, component.Civilian, pos, pos.Add(cp.Vector{X: 60}), false, false), envWith(paths))
	if mind.State != component.Chill {
		t.Fatalf("expected Chill, got %v", mind.State)
	}
	if mind.Path.Active() {
		t.Fatalf("expected the route to be dropped")
	}
	emote, ok := findCmd(cmds, CmdEmote)
	if !ok || emote.Emote != component.EmoteQuestion {
		t.Fatalf("expected a question emote")
	}
	if v, _ := lastVelocity(cmds); v != (cp.Vector{}) {
		t.Fatalf("expected the civilian to stop, got %v", v)
	}
}

func TestCivilianChaseEntersAttack(t *testing.T) {
	paths := newFakePaths()
	paths.ok = true
	paths.path = []component.Cell{{X: 6, Y: 5}}
	pos := paths.grid.CellToWorld(component.Cell{X: 5, Y: 5})
	mind := newMind(component.Civilian)
	mind.State = component.Chase
	mind.VelAccum = cp.Vector{X: 30}

	mind, cmds := Think(mind, sense(paths.grid, component.Civilian, pos, pos.Add(cp.Vector{X: 10}), true, false), envWith(paths))
	if mind.State != component.Attack {
		t.Fatalf("expected Attack, got %v", mind.State)
	}
	if v, _ := lastVelocity(cmds); v != (cp.Vector{}) {
		t.Fatalf("expected the civilian to stop when attacking, got %v", v)
	}
	if !hasAnim(cmds, component.AnimArm) {
		t.Fatalf("expected the civilian to arm while chasing")
	}
}

func TestCivilianAttackCycle(t *testing.T) {
	paths := newFakePaths()
	env := envWith(paths)
	pos := paths.grid.CellToWorld(component.Cell{X: 5, Y: 5})
	mind := newMind(component.Civilian)
	mind.State = component.Attack

	tests := []struct {
		name    string
		offset  float64
		wantHit bool
	}{
		{name: "player_in_reach", offset: 10, wantHit: true},
		{name: "player_stepped_away", offset: 30, wantHit: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mind
			s := sense(paths.grid, component.Civilian, pos, pos.Add(cp.Vector{X: tt.offset}), true, false)
			hits := 0
			for i := 1; i <= 5; i++ {
				var cmds []Command
				m, cmds = Think(m, s, env)
				if i == 1 && (!hasAnim(cmds, component.AnimCivilianAttack) || countCmd(cmds, CmdSound) != 1) {
					t.Fatalf("expected the swing to start on the first tick")
				}
				if i > 1 && countCmd(cmds, CmdSound) != 0 {
					t.Fatalf("tick %d: swing sound repeated", i)
				}
				hits += countCmd(cmds, CmdHitPlayer)
				if i < 5 && m.State != component.Attack {
					t.Fatalf("tick %d: left Attack before the cooldown", i)
				}
			}
			if m.State != component.Chase {
				t.Fatalf("expected Chase after the cooldown, got %v", m.State)
			}
			if tt.wantHit != (hits == 1) {
				t.Fatalf("expected hit=%v, got %d hits", tt.wantHit, hits)
			}
			if m.AttackTimer.Elapsed != 0 {
				t.Fatalf("expected the attack timer to rewind")
			}
		})
	}
}

func TestMovementAccelerationAndWaypoints(t *testing.T) {
	paths := newFakePaths()
	paths.ok = true
	paths.path = []component.Cell{{X: 6, Y: 5}, {X: 7, Y: 5}}
	pos := paths.grid.CellToWorld(component.Cell{X: 5, Y: 5})
	player := pos.Add(cp.Vector{X: 80})
	mind := newMind(component.Civilian)
	mind.State = component.Chase
	env := envWith(paths)

	mind, cmds := Think(mind, sense(paths.grid, component.Civilian, pos, player, true, false), env)
	v, ok := lastVelocity(cmds)
	if !ok || math.Abs(v.X-35) > 1e-9 || v.Y != 0 {
		t.Fatalf("expected velocity limited to accel*dt (35,0), got %v", v)
	}
	if !hasAnim(cmds, component.AnimTurnRight) || !hasAnim(cmds, component.AnimIdle) {
		t.Fatalf("expected turn_right and idle on the first step, got %+v", cmds)
	}

	mind, cmds = Think(mind, sense(paths.grid, component.Civilian, pos, player, true, false), env)
	v, _ = lastVelocity(cmds)
	if math.Abs(v.Length()-40) > 1e-9 {
		t.Fatalf("expected velocity clamped to 40, got %v", v.Length())
	}
	if !hasAnim(cmds, component.AnimWalk) {
		t.Fatalf("expected walk animation once moving")
	}

	// Standing on the first waypoint consumes it.
	onWaypoint := paths.grid.CellToWorld(component.Cell{X: 6, Y: 5})
	mind, _ = Think(mind, sense(paths.grid, component.Civilian, onWaypoint, player, true, false), env)
	if len(mind.Path.Waypoints) != 1 || mind.Path.Waypoints[0] != (component.Cell{X: 7, Y: 5}) {
		t.Fatalf("expected the reached waypoint to be popped, got %v", mind.Path.Waypoints)
	}
}

func TestFacingPrefersVerticalOnlyWhenAligned(t *testing.T) {
	paths := newFakePaths()
	paths.ok = true
	pos := paths.grid.CellToWorld(component.Cell{X: 5, Y: 5})
	tests := []struct {
		name string
		next component.Cell
		want component.AnimTrigger
	}{
		{name: "up", next: component.Cell{X: 5, Y: 4}, want: component.AnimTurnUp},
		{name: "down", next: component.Cell{X: 5, Y: 6}, want: component.AnimTurnDown},
		{name: "diagonal_left", next: component.Cell{X: 4, Y: 4}, want: component.AnimTurnLeft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths.path = []component.Cell{tt.next}
			mind := newMind(component.Hunter)
			mind.State = component.Look
			mind.LastPlayerCell = tt.next
			_, cmds := Think(mind, sense(paths.grid, component.Hunter, pos, pos.Add(cp.Vector{X: 500}), false, true), envWith(paths))
			if !hasAnim(cmds, tt.want) {
				t.Fatalf("expected %s, got %+v", tt.want, cmds)
			}
		})
	}
}

func TestHunterChaseCloseEntersAttack(t *testing.T) {
	pf := newTestPathfinder(t, 20, 20)
	pos := pf.CellCenter(component.Cell{X: 5, Y: 5})
	mind := newMind(component.Hunter)
	mind.State = component.Chase

	s := sense(pf.Grid, component.Hunter, pos, pos.Add(cp.Vector{X: 10}), true, true)
	mind, cmds := Think(mind, s, envWith(pf))
	if mind.State != component.Attack {
		t.Fatalf("expected Attack within one tick, got %v", mind.State)
	}
	if cmds[0].Kind != CmdSetVelocity || cmds[0].Velocity != (cp.Vector{}) {
		t.Fatalf("expected the hunter velocity to reset first, got %+v", cmds[0])
	}
}

func TestHunterChaseFollowsTrimmedPath(t *testing.T) {
	pf := newTestPathfinder(t, 30, 20)
	pos := pf.CellCenter(component.Cell{X: 2, Y: 10})
	player := pf.CellCenter(component.Cell{X: 14, Y: 10})
	mind := newMind(component.Hunter)
	mind.State = component.Chase

	mind, cmds := Think(mind, sense(pf.Grid, component.Hunter, pos, player, true, true), envWith(pf))
	if mind.State != component.Chase {
		t.Fatalf("expected to keep chasing, got %v", mind.State)
	}
	if !mind.Path.Active() {
		t.Fatalf("expected a committed route")
	}
	if v, _ := lastVelocity(cmds); v.X <= 0 {
		t.Fatalf("expected to move towards the player, got %v", v)
	}
}

func TestHunterAttackThrows(t *testing.T) {
	paths := newFakePaths()
	pos := paths.grid.CellToWorld(component.Cell{X: 5, Y: 5})
	mind := newMind(component.Hunter)
	mind.State = component.Attack
	mind.AttackTimer.Elapsed = 400 * time.Millisecond

	mind, cmds := Think(mind, sense(paths.grid, component.Hunter, pos, pos.Add(cp.Vector{X: 150}), true, true), envWith(paths))
	throw, ok := findCmd(cmds, CmdThrow)
	if !ok {
		t.Fatalf("expected a throw, got %+v", cmds)
	}
	if math.Abs(throw.Velocity.X-150) > 1e-9 || math.Abs(throw.Velocity.Y) > 1e-9 {
		t.Fatalf("expected projectile velocity (150,0), got %v", throw.Velocity)
	}
	if throw.Variant < 0 || throw.Variant >= prefabs.DefaultTuning().Projectile.Variants {
		t.Fatalf("variant out of range: %d", throw.Variant)
	}
	if !hasAnim(cmds, component.AnimHunterThrow) || !hasAnim(cmds, component.AnimTurnRight) {
		t.Fatalf("expected throw animation facing right")
	}
	if mind.State != component.Chase {
		t.Fatalf("expected Chase at medium range, got %v", mind.State)
	}
}

func TestHunterAttackBands(t *testing.T) {
	paths := newFakePaths()
	pos := paths.grid.CellToWorld(component.Cell{X: 5, Y: 5})
	tests := []struct {
		name   string
		offset cp.Vector
		sight  bool
		want   component.NPCState
		facing component.AnimTrigger
	}{
		{name: "close_escape", offset: cp.Vector{Y: 50}, sight: true, want: component.Escape, facing: component.AnimTurnUp},
		{name: "medium_chase", offset: cp.Vector{X: -150}, sight: true, want: component.Chase, facing: component.AnimTurnLeft},
		{name: "lost_sight_look", offset: cp.Vector{Y: -40}, sight: false, want: component.Look, facing: component.AnimTurnDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mind := newMind(component.Hunter)
			mind.State = component.Attack
			player := pos.Add(tt.offset)
			s := sense(paths.grid, component.Hunter, pos, player, tt.sight, true)
			mind, cmds := Think(mind, s, envWith(paths))
			if mind.State != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, mind.State)
			}
			if !hasAnim(cmds, tt.facing) {
				t.Fatalf("expected %s", tt.facing)
			}
			if _, ok := findCmd(cmds, CmdThrow); ok {
				t.Fatalf("must not throw before the cooldown")
			}
			if tt.want == component.Look && mind.LastPlayerCell != s.PlayerCell {
				t.Fatalf("expected last player cell %v, got %v", s.PlayerCell, mind.LastPlayerCell)
			}
		})
	}
}

func TestHunterLook(t *testing.T) {
	pos := newFakePaths().grid.CellToWorld(component.Cell{X: 5, Y: 5})
	tests := []struct {
		name      string
		sight     bool
		pathOK    bool
		want      component.NPCState
		wantEmote component.EmoteKind
		emotes    int
	}{
		{name: "reacquire", sight: true, want: component.Chase, wantEmote: component.EmoteWarn, emotes: 1},
		{name: "walk_to_last_seen", pathOK: true, want: component.Look},
		{name: "give_up", want: component.Chill, wantEmote: component.EmoteQuestion, emotes: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths := newFakePaths()
			paths.ok = tt.pathOK
			paths.path = []component.Cell{{X: 6, Y: 5}, {X: 7, Y: 5}}
			mind := newMind(component.Hunter)
			mind.State = component.Look
			mind.LastPlayerCell = component.Cell{X: 7, Y: 5}

			mind, cmds := Think(mind, sense(paths.grid, component.Hunter, pos, pos.Add(cp.Vector{X: 300}), tt.sight, true), envWith(paths))
			if mind.State != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, mind.State)
			}
			if got := countCmd(cmds, CmdEmote); got != tt.emotes {
				t.Fatalf("expected %d emotes, got %d", tt.emotes, got)
			}
			if tt.emotes > 0 {
				if e, _ := findCmd(cmds, CmdEmote); e.Emote != tt.wantEmote {
					t.Fatalf("expected %v emote, got %v", tt.wantEmote, e.Emote)
				}
			}
			if tt.pathOK && paths.states[0] != component.Look {
				t.Fatalf("expected the route planned as Look")
			}
		})
	}
}

func TestHunterChaseLostSightRemembersPlayer(t *testing.T) {
	paths := newFakePaths()
	pos := paths.grid.CellToWorld(component.Cell{X: 5, Y: 5})
	mind := newMind(component.Hunter)
	mind.State = component.Escape
	s := sense(paths.grid, component.Hunter, pos, pos.Add(cp.Vector{X: 64, Y: 32}), false, true)

	mind, _ = Think(mind, s, envWith(paths))
	if mind.State != component.Look || mind.LastPlayerCell != s.PlayerCell {
		t.Fatalf("expected Look towards %v, got %v towards %v", s.PlayerCell, mind.State, mind.LastPlayerCell)
	}
	if paths.calls != 0 {
		t.Fatalf("expected no path request without sight")
	}
}

func TestDeadDespawnsAtDeathDuration(t *testing.T) {
	for _, kind := range []component.NPCKind{component.Civilian, component.Hunter} {
		for _, tps := range []int{10, 60} {
			t.Run(fmt.Sprintf("%s/%dtps", kind, tps), func(t *testing.T) {
				paths := newFakePaths()
				pos := paths.grid.CellToWorld(component.Cell{X: 5, Y: 5})
				mind := newMind(kind)
				mind.DeathTimer.Elapsed = 300 * time.Millisecond
				mind.Kill()

				death := prefabs.DefaultTuning().Civilian.DeathDuration
				ticks := int(death * time.Duration(tps) / time.Second)
				var clock component.Clock
				disabled := 0
				for i := 1; i <= ticks; i++ {
					clock.Advance(tps)
					s := sense(paths.grid, kind, pos, pos.Add(cp.Vector{X: 5}), true, false)
					s.Dt = clock.Dt

					var cmds []Command
					mind, cmds = Think(mind, s, envWith(paths))
					disabled += countCmd(cmds, CmdDisableCollider)
					if !hasAnim(cmds, component.AnimHurt) {
						t.Fatalf("tick %d: expected hurt animation", i)
					}
					_, despawn := findCmd(cmds, CmdDespawn)
					_, remains := findCmd(cmds, CmdSpawnRemains)
					if i < ticks && (despawn || remains) {
						t.Fatalf("despawned early at tick %d", i)
					}
					if i == ticks && !(despawn && remains) {
						t.Fatalf("expected despawn and remains at %v, clock at %v", death, clock.Elapsed)
					}
					if mind.State != component.Dead {
						t.Fatalf("Dead must be absorbing, got %v", mind.State)
					}
				}
				if disabled != 1 {
					t.Fatalf("expected the collider disabled exactly once, got %d", disabled)
				}
			})
		}
	}
}

func TestCivilianLookIsInert(t *testing.T) {
	paths := newFakePaths()
	pos := paths.grid.CellToWorld(component.Cell{X: 5, Y: 5})
	mind := newMind(component.Civilian)
	mind.State = component.Look
	next, cmds := Think(mind, sense(paths.grid, component.Civilian, pos, pos.Add(cp.Vector{X: 10}), true, true), envWith(paths))
	if next.State != component.Look || len(cmds) != 0 {
		t.Fatalf("expected no effect, got %v and %+v", next.State, cmds)
	}
}
