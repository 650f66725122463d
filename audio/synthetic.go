package audio

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/lixenwraith/voidglitch/constants"
)

// SyntheticSource generates spectrum data when no capture is available:
// random energy scaled by intensity plus a slow travelling sine
type SyntheticSource struct {
	mu   sync.Mutex
	rng  *rand.Rand
	bins []uint8
}

// NewSyntheticSource creates a generator with the default bin count
func NewSyntheticSource(rng *rand.Rand) *SyntheticSource {
	return &SyntheticSource{
		rng:  rng,
		bins: make([]uint8, constants.SpectrumBins),
	}
}

// Spectrum fills the bins for the given time; values are clamped to [0,255]
func (s *SyntheticSource) Spectrum(now time.Time, intensity float64) []uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms := float64(now.UnixMilli())
	for i := range s.bins {
		v := s.rng.Float64()*255*intensity + math.Sin(ms*0.001+float64(i)*0.1)*128
		s.bins[i] = uint8(min(max(v, 0), 255))
	}
	return s.bins
}

func (s *SyntheticSource) Live() bool { return false }

func (s *SyntheticSource) Close() error { return nil }
