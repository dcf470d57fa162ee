package viewer

import (
	"bytes"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/lukaszgryglicki/wisdom3d/internal/wisdom3d"
	"go.uber.org/zap"
)

const sampleRate = 44100

// musicPlayer loops the background track through ebiten's audio context.
type musicPlayer struct {
	player *audio.Player
}

var _ wisdom3d.AudioPlayer = (*musicPlayer)(nil)

// newMusicPlayer decodes an mp3 file into an endless loop. It does not start playback.
func newMusicPlayer(path string) (*musicPlayer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read music %s: %w", path, err)
	}
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	stream, err := mp3.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode music %s: %w", path, err)
	}
	p, err := ctx.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
	if err != nil {
		return nil, err
	}
	return &musicPlayer{player: p}, nil
}

func (m *musicPlayer) Play() {
	if !m.player.IsPlaying() {
		m.player.Play()
	}
}

func (m *musicPlayer) Pause() { m.player.Pause() }

func (m *musicPlayer) Close() error { return m.player.Close() }

// loadMusic is best-effort: without music the visualization still runs.
func loadMusic(path string) wisdom3d.AudioPlayer {
	if !wisdom3d.Audio || path == "" {
		return nil
	}
	p, err := newMusicPlayer(path)
	if err != nil {
		wisdom3d.Log("audio").Warn("background music disabled", zap.Error(err))
		return nil
	}
	return p
}
