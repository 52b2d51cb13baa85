package prefabs

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTuning = errors.New("prefabs: invalid tuning")

const TuningFile = "tuning.yaml"

type TuningSpec struct {
	CullRadius float64          `yaml:"cull_radius"`
	Civilian   NPCTuning        `yaml:"civilian"`
	Hunter     NPCTuning        `yaml:"hunter"`
	Projectile ProjectileTuning `yaml:"projectile"`
	Spawner    SpawnerTuning    `yaml:"spawner"`
	DayCycle   DayCycleTuning   `yaml:"day_cycle"`
	Player     PlayerTuning     `yaml:"player"`
	Kill       KillTuning       `yaml:"kill"`
	Remains    RemainsTuning    `yaml:"remains"`
}

type NPCTuning struct {
	Radius         float64       `yaml:"radius"`
	SpotRadius     float64       `yaml:"spot_radius"`
	MaxSpeed       float64       `yaml:"max_speed"`
	Accel          float64       `yaml:"accel"`
	AttackRange    float64       `yaml:"attack_range"`
	Threshold      float64       `yaml:"threshold"`
	UpperThreshold float64       `yaml:"upper_threshold"`
	ChillPeriod    time.Duration `yaml:"chill_period"`
	AttackCooldown time.Duration `yaml:"attack_cooldown"`
	EmotePeriod    time.Duration `yaml:"emote_period"`
	DeathDuration  time.Duration `yaml:"death_duration"`
}

type ProjectileTuning struct {
	Speed    float64       `yaml:"speed"`
	HalfSize float64       `yaml:"half_size"`
	Lifetime time.Duration `yaml:"lifetime"`
	Variants int           `yaml:"variants"`
}

type SpawnerTuning struct {
	Period time.Duration `yaml:"period"`
	Chance float64       `yaml:"chance"`
	Cap    int           `yaml:"cap"`
}

type DayCycleTuning struct {
	Day        time.Duration `yaml:"day"`
	Transition time.Duration `yaml:"transition"`
}

type PlayerTuning struct {
	Radius     float64 `yaml:"radius"`
	MaxHP      float64 `yaml:"max_hp"`
	PhysRes    float64 `yaml:"phys_res"`
	HPGain     float64 `yaml:"hp_gain"`
	HungerRate float64 `yaml:"hunger_rate"`
	MaxSpeed   float64 `yaml:"max_speed"`
	Accel      float64 `yaml:"accel"`
	// Damage taken per hit, as a fraction of max HP except Hunter which is flat.
	ProjectileDamage float64 `yaml:"projectile_damage"`
	CivilianDamage   float64 `yaml:"civilian_damage"`
	HunterDamage     float64 `yaml:"hunter_damage"`
	CivilianScore    float64 `yaml:"civilian_score"`
	HunterScore      float64 `yaml:"hunter_score"`
}

// KillTuning names the phase ("day" or "night") in which the player can
// kill each NPC kind on contact.
type KillTuning struct {
	Civilian string `yaml:"civilian"`
	Hunter   string `yaml:"hunter"`
}

type RemainsTuning struct {
	Lifetime time.Duration `yaml:"lifetime"`
}

func DefaultTuning() *TuningSpec {
	return &TuningSpec{
		CullRadius: 1000,
		Civilian: NPCTuning{
			Radius:         4.5,
			SpotRadius:     100,
			MaxSpeed:       40,
			Accel:          350,
			AttackRange:    16,
			Threshold:      100,
			UpperThreshold: 200,
			ChillPeriod:    time.Second,
			AttackCooldown: 500 * time.Millisecond,
			EmotePeriod:    time.Second,
			DeathDuration:  500 * time.Millisecond,
		},
		Hunter: NPCTuning{
			Radius:         4.5,
			SpotRadius:     200,
			MaxSpeed:       50,
			Accel:          450,
			AttackRange:    16,
			Threshold:      100,
			UpperThreshold: 200,
			ChillPeriod:    time.Second,
			AttackCooldown: 500 * time.Millisecond,
			EmotePeriod:    time.Second,
			DeathDuration:  500 * time.Millisecond,
		},
		Projectile: ProjectileTuning{
			Speed:    150,
			HalfSize: 3,
			Lifetime: 6 * time.Second,
			Variants: 4,
		},
		Spawner: SpawnerTuning{
			Period: 500 * time.Millisecond,
			Chance: 0.15,
			Cap:    200,
		},
		DayCycle: DayCycleTuning{
			Day:        15 * time.Second,
			Transition: time.Second,
		},
		Player: PlayerTuning{
			Radius:           4.5,
			MaxHP:            80,
			PhysRes:          0.2,
			HPGain:           5,
			HungerRate:       2,
			MaxSpeed:         60,
			Accel:            500,
			ProjectileDamage: 0.10,
			CivilianDamage:   0.05,
			HunterDamage:     15,
			CivilianScore:    100,
			HunterScore:      500,
		},
		Kill: KillTuning{
			Civilian: "night",
			Hunter:   "day",
		},
		Remains: RemainsTuning{
			Lifetime: 10 * time.Second,
		},
	}
}

// LoadTuning reads tuning.yaml over the defaults and validates the result.
func LoadTuning() (*TuningSpec, error) {
	spec := DefaultTuning()
	if err := decodeInto(TuningFile, spec); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

func (t *TuningSpec) Validate() error {
	if t.CullRadius <= 0 {
		return fmt.Errorf("%w: cull_radius must be positive", ErrInvalidTuning)
	}
	for name, npc := range map[string]NPCTuning{"civilian": t.Civilian, "hunter": t.Hunter} {
		if err := npc.validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidTuning, name, err)
		}
	}
	if t.Projectile.Speed <= 0 || t.Projectile.Lifetime <= 0 {
		return fmt.Errorf("%w: projectile speed and lifetime must be positive", ErrInvalidTuning)
	}
	if t.Spawner.Period <= 0 {
		return fmt.Errorf("%w: spawner period must be positive", ErrInvalidTuning)
	}
	if t.Spawner.Chance < 0 || t.Spawner.Chance > 1 {
		return fmt.Errorf("%w: spawner chance %v outside [0,1]", ErrInvalidTuning, t.Spawner.Chance)
	}
	if t.Spawner.Cap < 0 {
		return fmt.Errorf("%w: spawner cap must not be negative", ErrInvalidTuning)
	}
	if t.DayCycle.Day <= 0 || t.DayCycle.Transition < 0 || t.DayCycle.Transition >= t.DayCycle.Day {
		return fmt.Errorf("%w: day cycle needs 0 <= transition < day", ErrInvalidTuning)
	}
	if t.Player.MaxHP <= 0 {
		return fmt.Errorf("%w: player max_hp must be positive", ErrInvalidTuning)
	}
	if t.Player.PhysRes < 0 || t.Player.PhysRes > 1 {
		return fmt.Errorf("%w: player phys_res %v outside [0,1]", ErrInvalidTuning, t.Player.PhysRes)
	}
	for name, phase := range map[string]string{"civilian": t.Kill.Civilian, "hunter": t.Kill.Hunter} {
		if phase != "day" && phase != "night" {
			return fmt.Errorf("%w: kill.%s must be day or night, got %q", ErrInvalidTuning, name, phase)
		}
	}
	return nil
}

func (n NPCTuning) validate() error {
	switch {
	case n.Radius <= 0:
		return errors.New("radius must be positive")
	case n.SpotRadius <= 0:
		return errors.New("spot_radius must be positive")
	case n.MaxSpeed <= 0 || n.Accel <= 0:
		return errors.New("max_speed and accel must be positive")
	case n.AttackRange <= 0:
		return errors.New("attack_range must be positive")
	case n.Threshold <= 0 || n.UpperThreshold < n.Threshold:
		return errors.New("thresholds must satisfy 0 < threshold <= upper_threshold")
	case n.ChillPeriod <= 0 || n.AttackCooldown <= 0 || n.EmotePeriod <= 0 || n.DeathDuration <= 0:
		return errors.New("timer periods must be positive")
	}
	return nil
}

// KillsAtNight reports whether the player kills kind on contact at night
// (true) or by day (false).
func (k KillTuning) KillsAtNight(hunter bool) bool {
	if hunter {
		return k.Hunter == "night"
	}
	return k.Civilian == "night"
}
