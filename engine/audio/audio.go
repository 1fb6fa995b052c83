package audio

import (
	"encoding/binary"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleRate is the output rate of the audio context
const SampleRate = 44100

// SoundID identifies a sound effect
type SoundID string

const (
	SndPlant  SoundID = "plant"
	SndDenied SoundID = "denied"
	SndFact   SoundID = "fact"
)

// Note is one sine tone of a chime
type Note struct {
	Freq  float64 // Hz
	Start float64 // seconds
	Dur   float64 // seconds
}

var chimes = map[SoundID][]Note{
	// rising major third
	SndPlant: {{Freq: 659.25, Dur: 0.12}, {Freq: 830.61, Start: 0.08, Dur: 0.22}},
	SndDenied: {{Freq: 196, Dur: 0.09}},
	// arpeggio for a new fact
	SndFact: {
		{Freq: 523.25, Dur: 0.2},
		{Freq: 659.25, Start: 0.1, Dur: 0.2},
		{Freq: 783.99, Start: 0.2, Dur: 0.35},
	},
}

// AudioManager plays the synthesized sound effects through Ebitengine's
// audio package
type AudioManager struct {
	MasterVolume float64
	Enabled      bool

	ctx     *audio.Context
	clips   map[SoundID][]byte
	players map[SoundID]*audio.Player
}

// NewAudioManager renders every chime up front. A nil context makes
// PlaySFX a no-op, which is how tests and muted runs use it.
func NewAudioManager(ctx *audio.Context, volume float64) *AudioManager {
	am := &AudioManager{
		MasterVolume: 1.0,
		Enabled:      ctx != nil,
		ctx:          ctx,
		clips:        make(map[SoundID][]byte, len(chimes)),
		players:      make(map[SoundID]*audio.Player, len(chimes)),
	}
	am.SetVolume(volume)
	for id, notes := range chimes {
		am.clips[id] = EncodePCM(Synthesize(notes, SampleRate))
	}
	return am
}

// Clip returns the encoded PCM of a sound
func (am *AudioManager) Clip(id SoundID) []byte { return am.clips[id] }

// PlaySFX plays a sound effect from the start
func (am *AudioManager) PlaySFX(id SoundID) {
	if !am.Enabled || am.ctx == nil || am.MasterVolume == 0 {
		return
	}
	p, ok := am.players[id]
	if !ok {
		clip := am.Clip(id)
		if len(clip) == 0 {
			return
		}
		p = am.ctx.NewPlayerFromBytes(clip)
		am.players[id] = p
	}
	p.SetVolume(am.MasterVolume)
	if err := p.Rewind(); err != nil {
		return
	}
	p.Play()
}

// SetVolume sets master volume (0-1)
func (am *AudioManager) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	am.MasterVolume = v
}

// Synthesize mixes the notes into mono samples in [-1, 1]. Each note has
// a short attack and an exponential decay.
func Synthesize(notes []Note, rate int) []float64 {
	end := 0.0
	for _, n := range notes {
		end = math.Max(end, n.Start+n.Dur)
	}
	out := make([]float64, int(end*float64(rate)))
	if len(notes) == 0 {
		return out
	}
	gain := 0.8 / float64(len(notes))

	const attack = 0.005
	for _, n := range notes {
		first := int(n.Start * float64(rate))
		count := int(n.Dur * float64(rate))
		for i := 0; i < count && first+i < len(out); i++ {
			t := float64(i) / float64(rate)
			env := math.Exp(-5 * t / n.Dur)
			if t < attack {
				env *= t / attack
			}
			out[first+i] += gain * env * math.Sin(2*math.Pi*n.Freq*t)
		}
	}
	return out
}

// EncodePCM converts mono samples to 16-bit little-endian stereo, the
// format audio.Context players expect
func EncodePCM(samples []float64) []byte {
	buf := make([]byte, len(samples)*4)
	for i, s := range samples {
		s = math.Max(-1, math.Min(1, s))
		v := uint16(int16(s * math.MaxInt16))
		binary.LittleEndian.PutUint16(buf[i*4:], v)
		binary.LittleEndian.PutUint16(buf[i*4+2:], v)
	}
	return buf
}
