package audio

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/lixenwraith/voidglitch/constants"
	"github.com/lixenwraith/voidglitch/core"
	"github.com/lixenwraith/voidglitch/loop"
)

// Source supplies spectrum bins to the visualizer
type Source interface {
	Spectrum(now time.Time, intensity float64) []uint8
	Live() bool
	Close() error
}

// CaptureSource analyses a WAV stream read from a file or FIFO.
// Files loop at end of stream; a stream that cannot seek stops being live
// and its spectrum comes from the synthetic fallback from then on.
type CaptureSource struct {
	file   *os.File
	stream beep.StreamSeekCloser
	format beep.Format

	mu       sync.Mutex
	ring     []float64
	pos      int
	scratch  []float64
	analyser *Analyser

	chunk    [][2]float64
	ended    atomic.Bool
	handle   *loop.Handle
	closed   atomic.Bool
	fallback *SyntheticSource
}

func newCaptureSource(file *os.File, stream beep.StreamSeekCloser, format beep.Format, rng *rand.Rand) *CaptureSource {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	size := constants.CaptureFFTSize
	c := &CaptureSource{
		file:     file,
		stream:   stream,
		format:   format,
		ring:     make([]float64, size),
		scratch:  make([]float64, size),
		analyser: NewAnalyser(size),
		chunk:    make([][2]float64, max(format.SampleRate.N(constants.CaptureInterval), 1)),
		fallback: NewSyntheticSource(rng),
	}
	c.handle = loop.Every(constants.CaptureInterval, c.pull)
	return c
}

// pull reads one interval of audio; only the loop goroutine touches the stream
func (c *CaptureSource) pull(time.Time) {
	if c.ended.Load() {
		return
	}
	n, ok := c.stream.Stream(c.chunk)

	c.mu.Lock()
	for i := 0; i < n; i++ {
		c.ring[c.pos] = (c.chunk[i][0] + c.chunk[i][1]) / 2
		c.pos = (c.pos + 1) % len(c.ring)
	}
	c.mu.Unlock()

	if ok {
		return
	}
	if c.closed.Load() {
		c.ended.Store(true)
		return
	}
	if err := c.stream.Seek(0); err != nil {
		log.Printf("audio capture ended: %v", err)
		c.ended.Store(true)
	}
}

// Spectrum analyses the newest samples; intensity only drives the fallback
func (c *CaptureSource) Spectrum(now time.Time, intensity float64) []uint8 {
	if !c.Live() {
		return c.fallback.Spectrum(now, intensity)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	n := copy(c.scratch, c.ring[c.pos:])
	copy(c.scratch[n:], c.ring[:c.pos])
	return c.analyser.Process(c.scratch)
}

// Live reports whether samples are still arriving
func (c *CaptureSource) Live() bool {
	return !c.ended.Load() && !c.closed.Load()
}

// Format returns the decoded stream format
func (c *CaptureSource) Format() beep.Format {
	return c.format
}

// Close unblocks any pending read, then waits for the pull loop to exit
func (c *CaptureSource) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := c.file.Close()
	c.handle.Stop()
	return err
}

type openResult struct {
	file   *os.File
	stream beep.StreamSeekCloser
	format beep.Format
	err    error
}

// OpenCapture opens and decodes a WAV stream, giving up after the context ends.
// Opening a FIFO blocks until a writer appears, so the open runs in its own goroutine.
// rng seeds the synthetic fallback and may be nil.
func OpenCapture(ctx context.Context, path string, rng *rand.Rand) (*CaptureSource, error) {
	if path == "" {
		return nil, ErrNoCapture
	}

	done := make(chan openResult, 1)
	core.Go(func() {
		f, err := os.Open(path)
		if err != nil {
			done <- openResult{err: fmt.Errorf("open capture: %w", err)}
			return
		}
		stream, format, err := wav.Decode(f)
		if err != nil {
			f.Close()
			done <- openResult{err: fmt.Errorf("decode capture %s: %w", path, err)}
			return
		}
		done <- openResult{file: f, stream: stream, format: format}
	})

	select {
	case res := <-done:
		if res.err != nil {
			return nil, res.err
		}
		return newCaptureSource(res.file, res.stream, res.format, rng), nil
	case <-ctx.Done():
		// Release the file once the open completes
		core.Go(func() {
			if res := <-done; res.file != nil {
				res.file.Close()
			}
		})
		return nil, fmt.Errorf("%w: %s: %w", ErrCaptureOpen, path, ctx.Err())
	}
}

// Acquire returns a live capture source for path, or a synthetic source and the
// reason capture was not used. The error is informational; the source is always usable.
func Acquire(ctx context.Context, path string, timeout time.Duration, rng *rand.Rand) (Source, error) {
	if path == "" {
		return NewSyntheticSource(rng), ErrNoCapture
	}
	if timeout <= 0 {
		timeout = constants.CaptureTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	src, err := OpenCapture(ctx, path, rng)
	if err != nil {
		return NewSyntheticSource(rng), err
	}
	return src, nil
}
