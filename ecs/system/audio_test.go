package system

import (
	"testing"

	"github.com/milk9111/nocturne/ecs"
	"github.com/milk9111/nocturne/ecs/component"
)

type recordingPlayer struct {
	played []component.Sound
}

func (r *recordingPlayer) Play(s component.Sound) {
	r.played = append(r.played, s)
}

func TestAudioSystemPlaysEachCueOncePerTick(t *testing.T) {
	w := ecs.NewWorld()
	out := &recordingPlayer{}
	w.AddSystem(NewAudioSystem(out))

	push := func(s component.Sound) {
		w.Events().Push(ecs.Event{Type: component.EventSound, Data: component.SoundEvent{Sound: s}})
	}
	push(component.SoundThrow)
	push(component.SoundThrow)
	push(component.SoundKill)
	w.Update()

	if len(out.played) != 2 || out.played[0] != component.SoundThrow || out.played[1] != component.SoundKill {
		t.Fatalf("played = %v", out.played)
	}

	w.Update()
	if len(out.played) != 2 {
		t.Fatalf("events survived the tick: %v", out.played)
	}
}
