package system

import (
	"github.com/milk9111/nocturne/ecs"
	"github.com/milk9111/nocturne/ecs/component"
)

// SoundPlayer plays one named cue.
type SoundPlayer interface {
	Play(s component.Sound)
}

// AudioSystem forwards the tick's sound events to the host's player. It
// runs last so every producer has pushed its cues.
type AudioSystem struct {
	out SoundPlayer
}

func NewAudioSystem(out SoundPlayer) *AudioSystem {
	return &AudioSystem{out: out}
}

func (a *AudioSystem) Update(w *ecs.World) {
	if a == nil || a.out == nil || w == nil {
		return
	}
	played := map[component.Sound]bool{}
	for _, evt := range w.Events().Of(component.EventSound) {
		snd, ok := evt.Data.(component.SoundEvent)
		if !ok || played[snd.Sound] {
			continue
		}
		played[snd.Sound] = true
		a.out.Play(snd.Sound)
	}
}
