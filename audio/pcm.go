package audio

import (
	"encoding/binary"
	"io"
	"math"
	"sync"

	"github.com/gopxl/beep"
)

// PCMReader pulls a streamer as signed 16-bit little-endian stereo frames.
// Short or finished streams are padded with silence so a player never starves.
type PCMReader struct {
	s    beep.Streamer
	lock sync.Locker
	buf  [][2]float64
}

// NewPCMReader wraps s; lock guards s while streaming and may be nil
func NewPCMReader(s beep.Streamer, lock sync.Locker) *PCMReader {
	return &PCMReader{s: s, lock: lock}
}

func (r *PCMReader) Read(p []byte) (int, error) {
	frames := len(p) / 4
	if frames == 0 {
		return 0, nil
	}
	if cap(r.buf) < frames {
		r.buf = make([][2]float64, frames)
	}
	buf := r.buf[:frames]

	if r.lock != nil {
		r.lock.Lock()
	}
	n, _ := r.s.Stream(buf)
	if r.lock != nil {
		r.lock.Unlock()
	}
	for i := max(n, 0); i < frames; i++ {
		buf[i] = [2]float64{}
	}

	for i, f := range buf {
		binary.LittleEndian.PutUint16(p[i*4:], uint16(toInt16(f[0])))
		binary.LittleEndian.PutUint16(p[i*4+2:], uint16(toInt16(f[1])))
	}
	return frames * 4, nil
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(v * math.MaxInt16)
}

// PullOutput is an Output for frontends that pull audio themselves
// through Reader, such as a game engine audio player
type PullOutput struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	reader *PCMReader
	closed bool
}

func (o *PullOutput) Init(rate beep.SampleRate, mixer beep.Streamer) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rate = rate
	o.reader = NewPCMReader(mixer, &o.mu)
	o.closed = false
	return nil
}

func (o *PullOutput) Lock()   { o.mu.Lock() }
func (o *PullOutput) Unlock() { o.mu.Unlock() }

func (o *PullOutput) Close() {
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()
}

// SampleRate returns the rate given to Init
func (o *PullOutput) SampleRate() beep.SampleRate {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.rate
}

// Reader returns the PCM stream; it reports EOF after Close
func (o *PullOutput) Reader() io.Reader {
	return pullReader{o}
}

type pullReader struct {
	o *PullOutput
}

func (r pullReader) Read(p []byte) (int, error) {
	r.o.mu.Lock()
	closed, reader := r.o.closed, r.o.reader
	r.o.mu.Unlock()
	if closed {
		return 0, io.EOF
	}
	if reader == nil {
		clear(p)
		return len(p) - len(p)%4, nil
	}
	return reader.Read(p)
}
