package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/voidglitch/constants"
)

// Wave selects the oscillator shape of a Tone
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Tone describes one enveloped oscillator voice
// Glide, when non-zero, sweeps the frequency linearly from Freq to Glide
type Tone struct {
	Wave    Wave
	Freq    float64
	Glide   float64
	Length  time.Duration
	Attack  time.Duration
	Release time.Duration
	Gain    float64
}

// Streamer renders the tone at rate; rng feeds WaveNoise and may be nil otherwise
func (t Tone) Streamer(rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	if t.Wave == WaveNoise && rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	gain := t.Gain
	if gain == 0 {
		gain = 1
	}
	end := t.Glide
	if end == 0 {
		end = t.Freq
	}
	return &voice{
		wave:    t.Wave,
		from:    t.Freq,
		to:      end,
		gain:    gain,
		total:   rate.N(t.Length),
		attack:  rate.N(t.Attack),
		release: rate.N(t.Release),
		rate:    float64(rate),
		rng:     rng,
	}
}

type voice struct {
	wave     Wave
	from, to float64
	gain     float64

	total, attack, release int
	pos                    int
	phase                  float64
	rate                   float64
	rng                    *rand.Rand
}

func (v *voice) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if v.pos >= v.total {
			return i, i > 0
		}
		s := v.sample() * v.envelope() * v.gain
		samples[i][0] = s
		samples[i][1] = s

		progress := float64(v.pos) / float64(v.total)
		freq := v.from + (v.to-v.from)*progress
		v.phase += freq / v.rate
		v.phase -= math.Floor(v.phase)
		v.pos++
	}
	return len(samples), true
}

func (v *voice) Err() error { return nil }

func (v *voice) sample() float64 {
	switch v.wave {
	case WaveSquare:
		if v.phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2 * (v.phase - 0.5)
	case WaveNoise:
		return v.rng.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * v.phase)
	}
}

// envelope is a linear attack, flat sustain and linear release
func (v *voice) envelope() float64 {
	if v.attack > 0 && v.pos < v.attack {
		return float64(v.pos) / float64(v.attack)
	}
	if left := v.total - v.pos; v.release > 0 && left < v.release {
		return float64(left) / float64(v.release)
	}
	return 1
}

// gainStage scales s linearly; beep volumes are logarithmic so zero maps to Silent
func gainStage(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// patch is how one sound is built from tones: played in sequence or layered
type patch struct {
	tones   []Tone
	layered bool
}

var patches = [soundTypeCount]patch{
	SoundGlitch: {tones: []Tone{
		{Wave: WaveNoise, Length: constants.GlitchSoundDuration / 3, Attack: constants.GlitchSoundAttack, Release: constants.GlitchSoundDuration / 6},
		{Wave: WaveSquare, Freq: 180, Glide: 90, Length: constants.GlitchSoundDuration * 2 / 3, Attack: constants.GlitchSoundAttack, Release: constants.GlitchSoundRelease, Gain: 0.6},
	}},
	SoundPulse: {layered: true, tones: []Tone{
		{Wave: WaveSine, Freq: 660, Length: constants.PulseSoundDuration, Attack: constants.PulseSoundAttack, Release: constants.PulseSoundRelease, Gain: 0.7},
		{Wave: WaveSine, Freq: 1320, Length: constants.PulseSoundDuration, Attack: constants.PulseSoundAttack, Release: constants.PulseSoundRelease / 2, Gain: 0.3},
	}},
	SoundError: {layered: true, tones: []Tone{
		{Wave: WaveSaw, Freq: 110, Length: constants.ErrorSoundDuration, Attack: constants.ErrorSoundAttack, Release: constants.ErrorSoundRelease, Gain: 0.6},
		{Wave: WaveSquare, Freq: 116, Length: constants.ErrorSoundDuration, Attack: constants.ErrorSoundAttack, Release: constants.ErrorSoundRelease, Gain: 0.25},
	}},
}

// Synthesize builds the streamer for s at its configured volume, nil for unknown sounds
func Synthesize(s SoundType, cfg *AudioConfig, rng *rand.Rand) beep.Streamer {
	if s < 0 || s >= soundTypeCount {
		return nil
	}
	p := patches[s]
	rate := beep.SampleRate(cfg.SampleRate)

	voices := make([]beep.Streamer, len(p.tones))
	for i, t := range p.tones {
		voices[i] = t.Streamer(rate, rng)
	}
	if p.layered {
		return gainStage(beep.Mix(voices...), cfg.Volume(s))
	}
	return gainStage(beep.Seq(voices...), cfg.Volume(s))
}
