package audio

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/lixenwraith/voidglitch/constants"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

// TestDefaultAudioConfig verifies default configuration
func TestDefaultAudioConfig(t *testing.T) {
	cfg := DefaultAudioConfig()
	if !cfg.Enabled {
		t.Error("Expected default config to have Enabled=true")
	}
	if cfg.MasterVolume != 0.5 {
		t.Errorf("Expected default master volume 0.5, got %f", cfg.MasterVolume)
	}
	if cfg.SampleRate != 44100 {
		t.Errorf("Expected default sample rate 44100, got %d", cfg.SampleRate)
	}

	expected := map[SoundType]float64{
		SoundGlitch: 0.25,
		SoundPulse:  0.15,
		SoundError:  0.2,
	}
	for s, want := range expected {
		if got := cfg.Volume(s); math.Abs(got-want) > 1e-9 {
			t.Errorf("Expected %s volume %f, got %f", s, want, got)
		}
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"VOIDGLITCH_AUDIO_ENABLED": "false",
		"VOIDGLITCH_MASTER_VOLUME": "150",
		"VOIDGLITCH_SFX_VOLUMES":   `{"glitch": 0.9, "bogus": 1}`,
		"VOIDGLITCH_SAMPLE_RATE":   "48000",
		"VOIDGLITCH_CAPTURE":       "/tmp/in.wav",
	}
	cfg := DefaultAudioConfig()
	ApplyEnv(cfg, func(k string) string { return env[k] })

	if cfg.Enabled {
		t.Error("Expected audio disabled")
	}
	if cfg.MasterVolume != 1 {
		t.Errorf("Expected master volume clamped to 1, got %f", cfg.MasterVolume)
	}
	if cfg.EffectVolumes["glitch"] != 0.9 {
		t.Errorf("Expected glitch volume 0.9, got %f", cfg.EffectVolumes["glitch"])
	}
	if _, ok := cfg.EffectVolumes["bogus"]; ok {
		t.Error("Expected unknown sound names ignored")
	}
	if cfg.SampleRate != 48000 {
		t.Errorf("Expected sample rate 48000, got %d", cfg.SampleRate)
	}
	if cfg.CapturePath != "/tmp/in.wav" {
		t.Errorf("Expected capture path, got %q", cfg.CapturePath)
	}
}

func TestApplyEnvIgnoresMalformed(t *testing.T) {
	env := map[string]string{
		"VOIDGLITCH_AUDIO_ENABLED": "maybe",
		"VOIDGLITCH_MASTER_VOLUME": "loud",
		"VOIDGLITCH_SFX_VOLUMES":   `{not json`,
		"VOIDGLITCH_SAMPLE_RATE":   "-5",
	}
	cfg := DefaultAudioConfig()
	ApplyEnv(cfg, func(k string) string { return env[k] })
	def := DefaultAudioConfig()

	if cfg.Enabled != def.Enabled || cfg.MasterVolume != def.MasterVolume || cfg.SampleRate != def.SampleRate {
		t.Errorf("Expected defaults kept, got %+v", cfg)
	}
	if cfg.EffectVolumes["pulse"] != def.EffectVolumes["pulse"] {
		t.Error("Expected effect volumes kept")
	}
}

// drain streams s until it ends or limit samples pass, returning count and peak
func drain(s beep.Streamer, limit int) (int, float64) {
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		total += n
		if !ok {
			break
		}
	}
	return total, peak
}

func TestSoundEffects(t *testing.T) {
	cfg := DefaultAudioConfig()
	rate := beep.SampleRate(cfg.SampleRate)
	limit := rate.N(2 * time.Second)

	for s := SoundGlitch; s < soundTypeCount; s++ {
		streamer := Synthesize(s, cfg, testRand())
		if streamer == nil {
			t.Fatalf("Expected streamer for %s", s)
		}
		_, peak := drain(streamer, limit)
		if peak == 0 {
			t.Errorf("%s: expected audible output", s)
		}
		if peak > 1 {
			t.Errorf("%s: expected peak <= 1, got %f", s, peak)
		}
	}

	if Synthesize(soundTypeCount, cfg, nil) != nil {
		t.Error("Expected nil streamer for unknown sound")
	}
}

func TestSoundEffectSilentAtZeroVolume(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.MasterVolume = 0
	_, peak := drain(Synthesize(SoundError, cfg, nil), beep.SampleRate(cfg.SampleRate).N(time.Second))
	if peak != 0 {
		t.Errorf("Expected silence, got peak %f", peak)
	}
}

func TestToneLength(t *testing.T) {
	rate := beep.SampleRate(1000)
	tone := Tone{Wave: WaveSquare, Freq: 100, Length: 250 * time.Millisecond}
	n, peak := drain(tone.Streamer(rate, nil), 10000)
	if n != 250 {
		t.Errorf("Expected 250 samples, got %d", n)
	}
	if peak != 1 {
		t.Errorf("Expected unshaped square peak 1, got %f", peak)
	}
}

func TestToneEnvelope(t *testing.T) {
	rate := beep.SampleRate(1000)
	tone := Tone{Wave: WaveSquare, Freq: 100, Length: 100 * time.Millisecond, Attack: 10 * time.Millisecond, Release: 10 * time.Millisecond, Gain: 0.5}
	s := tone.Streamer(rate, nil)
	buf := make([][2]float64, 100)
	n, _ := s.Stream(buf)
	if n != 100 {
		t.Fatalf("Expected 100 samples, got %d", n)
	}
	if buf[0][0] != 0 {
		t.Errorf("Expected silent first sample, got %f", buf[0][0])
	}
	if math.Abs(buf[50][0]) != 0.5 {
		t.Errorf("Expected sustain at gain 0.5, got %f", buf[50][0])
	}
	if math.Abs(buf[99][0]) > 0.1 {
		t.Errorf("Expected release near zero, got %f", buf[99][0])
	}
}

type fakeOutput struct {
	inits  int
	closes int
	locks  int
	mixer  beep.Streamer
	err    error
}

func (f *fakeOutput) Init(_ beep.SampleRate, mixer beep.Streamer) error {
	f.inits++
	f.mixer = mixer
	return f.err
}
func (f *fakeOutput) Lock()   { f.locks++ }
func (f *fakeOutput) Unlock() {}
func (f *fakeOutput) Close()  { f.closes++ }

func TestSoundManagerPlay(t *testing.T) {
	out := &fakeOutput{}
	sm := NewSoundManager(nil, out)

	// Safe before Initialize
	sm.Play(SoundGlitch)
	if sm.Played() != 0 {
		t.Error("Expected no sound before initialize")
	}

	if err := sm.Initialize(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := sm.Initialize(); err != nil || out.inits != 1 {
		t.Errorf("Expected second Initialize to be a no-op, got %d inits", out.inits)
	}

	sm.Play(SoundGlitch)
	sm.Play(SoundError)
	if sm.Played() != 2 {
		t.Errorf("Expected 2 sounds, got %d", sm.Played())
	}
	if sm.Active() != 2 {
		t.Errorf("Expected 2 active streamers, got %d", sm.Active())
	}

	_, peak := drain(out.mixer, 4096)
	if peak == 0 {
		t.Error("Expected mixer output")
	}

	sm.SetMuted(true)
	sm.Play(SoundPulse)
	if sm.Played() != 2 {
		t.Error("Expected muted play ignored")
	}
	if sm.ToggleMute() {
		t.Error("Expected toggle to unmute")
	}

	sm.Cleanup()
	if out.closes != 1 || sm.Initialized() {
		t.Error("Expected cleanup to close output")
	}
	sm.Play(SoundPulse)
	if sm.Played() != 2 {
		t.Error("Expected play after cleanup ignored")
	}
}

func TestSoundManagerDisabledAndFailing(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.Enabled = false
	out := &fakeOutput{}
	sm := NewSoundManager(cfg, out)
	if err := sm.Initialize(); err != nil || out.inits != 0 {
		t.Errorf("Expected disabled audio to skip output init, got %v %d", err, out.inits)
	}

	failing := &fakeOutput{err: errors.New("no device")}
	sm = NewSoundManager(nil, failing)
	if err := sm.Initialize(); err == nil {
		t.Error("Expected output error")
	}
	sm.Play(SoundError)
	if sm.Played() != 0 {
		t.Error("Expected silent manager after failed init")
	}
}

func sineFrame(size int, cycles float64) []float64 {
	out := make([]float64, size)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * cycles * float64(i) / float64(size))
	}
	return out
}

func TestAnalyserPeak(t *testing.T) {
	a := NewAnalyser(512)
	a.SetSmoothing(0)
	if a.Bins() != 256 {
		t.Fatalf("Expected 256 bins, got %d", a.Bins())
	}

	// Low amplitude keeps the peak below the 255 ceiling so neighbours stay distinct
	frame := sineFrame(512, 32)
	for i := range frame {
		frame[i] *= 0.01
	}
	bins := a.Process(frame)
	peak := 0
	for i := range bins {
		if bins[i] > bins[peak] {
			peak = i
		}
	}
	if peak != 32 {
		t.Errorf("Expected peak at bin 32, got %d", peak)
	}
	if bins[31] >= bins[32] || bins[33] >= bins[32] {
		t.Errorf("Expected bin 32 above its neighbours, got %d %d %d", bins[31], bins[32], bins[33])
	}
	if bins[200] >= bins[32] {
		t.Errorf("Expected distant bins below the peak, got %d", bins[200])
	}
}

func TestAnalyserFullScaleSaturates(t *testing.T) {
	a := NewAnalyser(512)
	a.SetSmoothing(0)
	bins := a.Process(sineFrame(512, 32))
	if bins[32] != 255 {
		t.Errorf("Expected full-scale peak, got %d", bins[32])
	}
}

func TestAnalyserSilenceAndSmoothing(t *testing.T) {
	a := NewAnalyser(512)
	for _, v := range a.Process(make([]float64, 512)) {
		if v != 0 {
			t.Fatalf("Expected silence to map to 0, got %d", v)
		}
	}

	// Smoothed response decays instead of dropping to zero
	a.SetSmoothing(0.8)
	a.Process(sineFrame(512, 32))
	first := a.Process(sineFrame(512, 32))[32]
	after := a.Process(make([]float64, 512))[32]
	if after == 0 || after > first {
		t.Errorf("Expected decaying peak, got %d then %d", first, after)
	}

	a.Reset()
	if a.Process(make([]float64, 512))[32] != 0 {
		t.Error("Expected reset to clear history")
	}
}

func TestSyntheticSource(t *testing.T) {
	s := NewSyntheticSource(testRand())
	if s.Live() {
		t.Error("Expected synthetic source not live")
	}

	bins := s.Spectrum(time.UnixMilli(0), 0)
	if len(bins) != constants.SpectrumBins {
		t.Fatalf("Expected %d bins, got %d", constants.SpectrumBins, len(bins))
	}
	// At intensity 0 only the sine term remains, negatives clamp to 0
	if bins[0] != 0 || bins[15] != 127 || bins[40] != 0 {
		t.Errorf("Unexpected sine profile: %d %d %d", bins[0], bins[15], bins[40])
	}

	for i := 0; i < 100; i++ {
		s.Spectrum(time.Now(), 1)
	}
}

func TestAcquireFallback(t *testing.T) {
	src, err := Acquire(context.Background(), "", 0, testRand())
	if !errors.Is(err, ErrNoCapture) {
		t.Errorf("Expected ErrNoCapture, got %v", err)
	}
	if src == nil || src.Live() {
		t.Error("Expected synthetic fallback")
	}

	src, err = Acquire(context.Background(), filepath.Join(t.TempDir(), "missing.wav"), time.Second, testRand())
	if err == nil || src.Live() {
		t.Errorf("Expected fallback on missing file, got %v", err)
	}

	junk := filepath.Join(t.TempDir(), "junk.wav")
	if err := os.WriteFile(junk, []byte("not a wav file at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	src, err = Acquire(context.Background(), junk, time.Second, testRand())
	if err == nil || src.Live() {
		t.Errorf("Expected fallback on decode failure, got %v", err)
	}
	if _, ok := src.(*SyntheticSource); !ok {
		t.Errorf("Expected synthetic source, got %T", src)
	}
}

func writeSineWAV(t *testing.T, path string, rate beep.SampleRate) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	sine := Tone{Wave: WaveSine, Freq: 1000, Length: 500 * time.Millisecond}
	if err := wav.Encode(f, sine.Streamer(rate, nil), format); err != nil {
		t.Fatal(err)
	}
}

func TestCaptureSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sine.wav")
	writeSineWAV(t, path, 44100)

	src, err := Acquire(context.Background(), path, time.Second, testRand())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	capture, ok := src.(*CaptureSource)
	if !ok {
		t.Fatalf("Expected capture source, got %T", src)
	}
	if !capture.Live() {
		t.Error("Expected live capture")
	}

	// 1kHz lands near bin 11.6 of a 512-point frame at 44.1kHz
	deadline := time.Now().Add(3 * time.Second)
	peak := -1
	for time.Now().Before(deadline) {
		bins := capture.Spectrum(time.Now(), 0)
		best := 0
		for i := range bins {
			if bins[i] > bins[best] {
				best = i
			}
		}
		if bins[best] > 0 {
			peak = best
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if peak < 10 || peak > 13 {
		t.Errorf("Expected peak near bin 11, got %d", peak)
	}

	if err := capture.Close(); err != nil {
		t.Errorf("Unexpected close error: %v", err)
	}
	if capture.Live() {
		t.Error("Expected closed capture not live")
	}
	if err := capture.Close(); err != nil {
		t.Error("Expected second close to be a no-op")
	}
}

// pipeStream ends after its samples and cannot rewind, like a FIFO
type pipeStream struct {
	*constStreamer
}

func (pipeStream) Len() int       { return 0 }
func (pipeStream) Position() int  { return 0 }
func (pipeStream) Seek(int) error { return errors.New("not seekable") }
func (pipeStream) Close() error   { return nil }

func TestCaptureEndedUsesSyntheticSpectrum(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "pipe"))
	if err != nil {
		t.Fatal(err)
	}
	format := beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}
	stream := pipeStream{&constStreamer{v: 0.5, left: 64}}
	capture := newCaptureSource(f, stream, format, rand.New(rand.NewPCG(3, 4)))
	defer capture.Close()

	deadline := time.Now().Add(2 * time.Second)
	for capture.Live() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if capture.Live() {
		t.Fatal("Expected capture to stop being live after the stream ended")
	}

	now := time.UnixMilli(1_700_000_000_000)
	want := NewSyntheticSource(rand.New(rand.NewPCG(3, 4))).Spectrum(now, 1)
	got := capture.Spectrum(now, 1)
	if len(got) != len(want) {
		t.Fatalf("Expected %d bins, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Bin %d: expected synthetic %d, got %d", i, want[i], got[i])
		}
	}
}

type constStreamer struct {
	v    float64
	left int
}

func (c *constStreamer) Stream(samples [][2]float64) (int, bool) {
	if c.left == 0 {
		return 0, false
	}
	n := min(len(samples), c.left)
	for i := 0; i < n; i++ {
		samples[i] = [2]float64{c.v, -c.v}
	}
	c.left -= n
	return n, true
}

func (c *constStreamer) Err() error { return nil }

func TestPCMReader(t *testing.T) {
	r := NewPCMReader(&constStreamer{v: 0.5, left: 2}, nil)
	p := make([]byte, 17)
	n, err := r.Read(p)
	if err != nil || n != 16 {
		t.Fatalf("Expected 16 bytes, got %d %v", n, err)
	}

	left := int16(binary.LittleEndian.Uint16(p[0:]))
	right := int16(binary.LittleEndian.Uint16(p[2:]))
	if left != 16383 || right != -16383 {
		t.Errorf("Expected +-16383, got %d %d", left, right)
	}
	// Frames past the end of the stream are silence
	if binary.LittleEndian.Uint16(p[8:]) != 0 || binary.LittleEndian.Uint16(p[12:]) != 0 {
		t.Error("Expected silence padding")
	}
}

func TestPullOutput(t *testing.T) {
	out := &PullOutput{}
	p := make([]byte, 8)
	if n, err := out.Reader().Read(p); err != nil || n != 8 {
		t.Errorf("Expected silence before init, got %d %v", n, err)
	}

	sm := NewSoundManager(nil, out)
	if err := sm.Initialize(); err != nil {
		t.Fatal(err)
	}
	sm.Play(SoundError)

	buf := make([]byte, 4096)
	nonzero := false
	for i := 0; i < 4 && !nonzero; i++ {
		if _, err := out.Reader().Read(buf); err != nil {
			t.Fatal(err)
		}
		for _, b := range buf {
			if b != 0 {
				nonzero = true
				break
			}
		}
	}
	if !nonzero {
		t.Error("Expected audio through the pull output")
	}
	if out.SampleRate() != 44100 {
		t.Errorf("Expected 44100, got %d", out.SampleRate())
	}

	sm.Cleanup()
	if _, err := out.Reader().Read(buf); err != io.EOF {
		t.Errorf("Expected EOF after close, got %v", err)
	}
}
