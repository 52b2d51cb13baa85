package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/nocturne/ecs"
	"github.com/milk9111/nocturne/ecs/component"
	"github.com/milk9111/nocturne/ecs/entity"
	"github.com/milk9111/nocturne/ecs/render"
	"github.com/milk9111/nocturne/ecs/system"
	"github.com/milk9111/nocturne/levels"
	"github.com/milk9111/nocturne/logger"
	"github.com/milk9111/nocturne/prefabs"
	"github.com/milk9111/nocturne/rules"
)

const (
	baseWidth      = 640
	baseHeight     = 480
	ticksPerSecond = 60
)

type Options struct {
	Level string
	Debug bool
	Seed  int64
	Rules string
	Watch bool
}

type Game struct {
	opts   Options
	level  *levels.Level
	tuning *prefabs.TuningSpec
	world  *ecs.World

	physics   *system.PhysicsSystem
	dayCycle  *system.DayCycleSystem
	occupancy *system.OccupancySystem
	npc       *system.NPCSystem
	ttl       *system.TTLSystem
	spawn     *system.SpawnSystem
	collision *system.CollisionSystem
	player    *system.PlayerSystem
	audio     *system.AudioSystem

	watcher *prefabs.Watcher
	sounds  *soundBank
	pauseUI *ebitenui.UI
	paused  bool
	debug   bool
}

func NewGame(opts Options) (*Game, error) {
	lvl, err := levels.Load(opts.Level)
	if err != nil {
		return nil, err
	}
	tuning, err := prefabs.LoadTuning()
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	g := &Game{
		opts:      opts,
		level:     lvl,
		tuning:    tuning,
		physics:   system.NewPhysicsSystem(),
		dayCycle:  system.NewDayCycleSystem(tuning),
		occupancy: system.NewOccupancySystem(),
		ttl:       system.NewTTLSystem(),
		spawn:     system.NewSpawnSystem(tuning, rand.New(rand.NewSource(rng.Int63()))),
		collision: system.NewCollisionSystem(tuning, nil),
		player:    system.NewPlayerSystem(tuning),
		sounds:    newSoundBank(),
		debug:     opts.Debug,
	}
	g.npc = system.NewNPCSystem(tuning, rand.New(rand.NewSource(rng.Int63())), g.physics)
	g.audio = system.NewAudioSystem(g.sounds)

	if opts.Rules != "" {
		if err := g.loadRules(); err != nil {
			return nil, err
		}
	}
	if opts.Watch {
		if err := g.startWatcher(); err != nil {
			logger.Log.WithError(err).Warn("hot reload disabled")
		}
	}
	g.pauseUI = NewPauseUI(g)

	if err := g.restart(); err != nil {
		return nil, err
	}
	logger.Log.WithFields(logrus.Fields{
		"level": opts.Level,
		"seed":  opts.Seed,
		"rules": opts.Rules,
	}).Info("game started")
	return g, nil
}

// restart rebuilds the world from the level with fresh entities.
func (g *Game) restart() error {
	w := ecs.NewWorld()
	g.physics.Reset()
	if err := entity.LoadLevelToWorld(w, g.level, g.tuning); err != nil {
		return fmt.Errorf("game: load level: %w", err)
	}
	w.AddSystem(g.dayCycle)
	w.AddSystem(g.occupancy)
	w.AddSystem(g.npc)
	w.AddSystem(g.ttl)
	w.AddSystem(g.spawn)
	w.AddSystem(g.physics)
	w.AddSystem(g.collision)
	w.AddSystem(g.player)
	w.AddSystem(g.audio)
	g.world = w
	g.paused = false
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.drainWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if player, ok := ecs.Single(g.world, component.PlayerComponent.Kind()); ok && (player.Dead || player.Won) {
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			return g.restart()
		}
	}

	readInput(g.world)
	if clock, ok := ecs.Single(g.world, component.ClockComponent.Kind()); ok {
		clock.Advance(ticksPerSecond)
	}
	g.world.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	view := render.ViewFor(g.world, 1)
	render.DrawWorld(screen, g.world, view)
	if g.debug {
		render.DrawNavDebug(screen, g.world, view)
		render.DrawPhysicsDebug(g.physics.Space(), screen, view)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.1f  active %d", ebiten.ActualTPS(), len(g.npc.Active())), 4, baseHeight-16)
	}
	render.DrawHUD(screen, g.world)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) setTuning(t *prefabs.TuningSpec) {
	g.tuning = t
	g.dayCycle.SetTuning(t)
	g.npc.SetTuning(t)
	g.spawn.SetTuning(t)
	g.collision.SetTuning(t)
	g.player.SetTuning(t)
}

func (g *Game) loadRules() error {
	script, err := rules.LoadKillRule(g.opts.Rules)
	if err != nil {
		return err
	}
	g.collision.SetRule(script)
	logger.Log.WithField("rule", script.Name()).Info("kill rule loaded")
	return nil
}

func (g *Game) startWatcher() error {
	dirs := []string{}
	for _, dir := range []string{prefabs.Dir, filepath.Join(prefabs.Dir, "scripts")} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if g.opts.Rules != "" {
		dirs = append(dirs, filepath.Dir(g.opts.Rules))
	}
	if len(dirs) == 0 {
		return fmt.Errorf("game: nothing to watch under %s", prefabs.Dir)
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		return err
	}
	g.watcher = w
	logger.Log.WithField("dirs", dirs).Info("watching prefabs")
	return nil
}

// drainWatcher applies every pending prefab edit without blocking.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change := <-g.watcher.Events:
			g.applyChange(change)
		case err := <-g.watcher.Errors:
			logger.Log.WithError(err).Warn("prefab watcher")
		default:
			return
		}
	}
}

func (g *Game) applyChange(change prefabs.Change) {
	log := logger.Log.WithField("path", change.Path)
	switch change.Kind {
	case prefabs.ChangeTuning:
		if filepath.Base(change.Path) != prefabs.TuningFile {
			return
		}
		t, err := prefabs.LoadTuning()
		if err != nil {
			log.WithError(err).Warn("tuning reload rejected")
			return
		}
		g.setTuning(t)
		log.Info("tuning reloaded")
	case prefabs.ChangeScript:
		if g.opts.Rules == "" {
			if filepath.Base(change.Path) != rules.DefaultKillRule {
				return
			}
		} else if filepath.Clean(change.Path) != filepath.Clean(g.opts.Rules) {
			return
		}
		script, err := rules.LoadKillRule(g.opts.Rules)
		if err != nil {
			log.WithError(err).Warn("kill rule reload rejected")
			return
		}
		g.collision.SetRule(script)
		log.Info("kill rule reloaded")
	}
}
