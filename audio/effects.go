package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope wraps s with a linear attack and release
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume maps to silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateCompleteSound is a rising two-note chime
func CreateCompleteSound(rate beep.SampleRate, volume float64) beep.Streamer {
	// E5 then A5
	n1 := NewEnvelope(NewOscillator(659.25, completeNoteDuration, WaveSine, rate),
		completeNoteDuration, completeAttack, completeRelease, rate)
	n2 := NewEnvelope(NewOscillator(880.0, completeNoteDuration, WaveSine, rate),
		completeNoteDuration, completeAttack, completeRelease, rate)
	return newVolume(beep.Seq(n1, n2), volume)
}

// CreateTrappedSound is a low falling buzz
func CreateTrappedSound(rate beep.SampleRate, volume float64) beep.Streamer {
	osc := NewOscillator(110.0, trappedDuration, WaveSaw, rate)
	return newVolume(NewEnvelope(osc, trappedDuration, trappedAttack, trappedRelease, rate), volume)
}

// CreateMazeSound is a short noise sweep
func CreateMazeSound(rate beep.SampleRate, volume float64) beep.Streamer {
	noise := NewOscillator(0, mazeDuration, WaveNoise, rate)
	return newVolume(NewEnvelope(noise, mazeDuration, mazeAttack, mazeRelease, rate), volume*0.5)
}

// CreateRejectedSound is a short square blip
func CreateRejectedSound(rate beep.SampleRate, volume float64) beep.Streamer {
	osc := NewOscillator(220.0, rejectedDuration, WaveSquare, rate)
	return newVolume(NewEnvelope(osc, rejectedDuration, rejectedAttack, rejectedRelease, rate), volume*0.6)
}

// GetCueSound returns the streamer for cue, nil for unknown cues
func GetCueSound(cue Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	switch cue {
	case CueComplete:
		return CreateCompleteSound(rate, volume)
	case CueTrapped:
		return CreateTrappedSound(rate, volume)
	case CueMaze:
		return CreateMazeSound(rate, volume)
	case CueRejected:
		return CreateRejectedSound(rate, volume)
	default:
		return nil
	}
}
