package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/opd-ai/go-arena/pkg/entity"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length raw wave, optionally sweeping its
// frequency linearly from freq to endFreq
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a constant-frequency oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding from freq to endFreq
func NewSweep(freq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		endFreq:  endFreq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewPCG(uint64(freq), uint64(endFreq))),
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
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*t
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack and exponential decay shaping to a stream
type envelope struct {
	streamer      beep.Streamer
	position      int
	attackSamples int
	decay         float64 // per second
	rate          beep.SampleRate
}

// NewEnvelope wraps s with a linear attack followed by exponential decay
func NewEnvelope(s beep.Streamer, attack time.Duration, decay float64, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:      s,
		attackSamples: rate.N(attack),
		decay:         decay,
		rate:          rate,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		var vol float64
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		} else {
			t := float64(e.position-e.attackSamples) / float64(e.rate)
			vol = math.Exp(-t * e.decay)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume becomes silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateHitSound is a short square blip
func CreateHitSound(rate beep.SampleRate) beep.Streamer {
	osc := NewSweep(440, 220, 60*time.Millisecond, WaveSquare, rate)
	return newVolume(NewEnvelope(osc, 2*time.Millisecond, 30, rate), 0.3)
}

// CreateExplosionSound is decaying noise over a low rumble
func CreateExplosionSound(rate beep.SampleRate) beep.Streamer {
	d := 400 * time.Millisecond
	mixed := beep.Mix(
		newVolume(NewOscillator(0, d, WaveNoise, rate), 0.6),
		newVolume(NewSweep(90, 40, d, WaveSine, rate), 0.8),
	)
	return newVolume(NewEnvelope(mixed, 5*time.Millisecond, 8, rate), 0.5)
}

// CreateShootSound is a quick downward saw chirp
func CreateShootSound(rate beep.SampleRate) beep.Streamer {
	osc := NewSweep(1200, 400, 80*time.Millisecond, WaveSaw, rate)
	return newVolume(NewEnvelope(osc, time.Millisecond, 25, rate), 0.2)
}

// CreateBlastSound is a deep rising sweep with noise
func CreateBlastSound(rate beep.SampleRate) beep.Streamer {
	d := 500 * time.Millisecond
	mixed := beep.Mix(
		newVolume(NewSweep(60, 180, d, WaveSine, rate), 0.9),
		newVolume(NewOscillator(0, d, WaveNoise, rate), 0.3),
	)
	return newVolume(NewEnvelope(mixed, 20*time.Millisecond, 5, rate), 0.6)
}

// CreatePickupSound is a two-note sine chime
func CreatePickupSound(rate beep.SampleRate) beep.Streamer {
	first, err := generators.SineTone(rate, 987.77)
	if err != nil {
		return nil
	}
	second, err := generators.SineTone(rate, 1318.51)
	if err != nil {
		return nil
	}
	seq := beep.Seq(
		beep.Take(rate.N(70*time.Millisecond), first),
		beep.Take(rate.N(140*time.Millisecond), second),
	)
	return newVolume(NewEnvelope(seq, 2*time.Millisecond, 6, rate), 0.3)
}

// GetSoundEffect returns a fresh streamer for a named sound, or nil for an
// unknown name
func GetSoundEffect(name string, rate beep.SampleRate) beep.Streamer {
	switch name {
	case entity.SoundHit:
		return CreateHitSound(rate)
	case entity.SoundExplosion:
		return CreateExplosionSound(rate)
	case entity.SoundShoot:
		return CreateShootSound(rate)
	case entity.SoundBlast:
		return CreateBlastSound(rate)
	case entity.SoundPickup:
		return CreatePickupSound(rate)
	default:
		return nil
	}
}
