package window

import (
	"errors"
	"fmt"
	"time"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/lixenwraith/voidglitch/audio"
)

const playerBuffer = 50 * time.Millisecond

// StartAudio plays the sound manager mix through an ebiten audio player.
// out must already be initialized by the sound manager.
func StartAudio(out *audio.PullOutput) (*eaudio.Player, error) {
	rate := int(out.SampleRate())
	if rate <= 0 {
		return nil, errors.New("audio output not initialized")
	}
	ctx := eaudio.CurrentContext()
	if ctx == nil {
		ctx = eaudio.NewContext(rate)
	}
	p, err := ctx.NewPlayer(out.Reader())
	if err != nil {
		return nil, fmt.Errorf("audio player: %w", err)
	}
	p.SetBufferSize(playerBuffer)
	p.Play()
	return p, nil
}
