package main

import (
	"encoding/binary"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/milk9111/nocturne/ecs/component"
	"github.com/milk9111/nocturne/logger"
)

const sampleRate = 44100

type tone struct {
	freq    float64
	seconds float64
	volume  float64
	falloff float64
}

var tones = map[component.Sound]tone{
	component.SoundHit:   {freq: 220, seconds: 0.08, volume: 0.35, falloff: 30},
	component.SoundThrow: {freq: 660, seconds: 0.05, volume: 0.25, falloff: 50},
	component.SoundKill:  {freq: 110, seconds: 0.2, volume: 0.4, falloff: 12},
}

// soundBank synthesises a short blip per cue and replays it on demand.
type soundBank struct {
	players map[component.Sound]*audio.Player
}

func newSoundBank() *soundBank {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	bank := &soundBank{players: make(map[component.Sound]*audio.Player, len(tones))}
	for snd, t := range tones {
		bank.players[snd] = ctx.NewPlayerFromBytes(t.pcm())
	}
	return bank
}

func (b *soundBank) Play(s component.Sound) {
	p, ok := b.players[s]
	if !ok {
		return
	}
	if err := p.Rewind(); err != nil {
		logger.For("audio").WithError(err).Debug("rewind")
		return
	}
	p.Play()
}

// pcm renders the tone as 16-bit little-endian stereo.
func (t tone) pcm() []byte {
	n := int(t.seconds * sampleRate)
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		at := float64(i) / sampleRate
		v := math.Sin(2*math.Pi*t.freq*at) * t.volume * math.Exp(-t.falloff*at)
		s := uint16(int16(v * math.MaxInt16))
		binary.LittleEndian.PutUint16(out[i*4:], s)
		binary.LittleEndian.PutUint16(out[i*4+2:], s)
	}
	return out
}
