package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// musicLoop plays one WAV file on repeat.
type musicLoop struct {
	player *audio.Player
}

// startMusicLoop decodes the WAV at path and starts playing it in a loop.
func startMusicLoop(path string) (*musicLoop, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	stream, err := wav.DecodeWithSampleRate(musicSampleRate, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", path, err)
	}
	if stream.Length() == 0 {
		return nil, fmt.Errorf("wav %q has no audio data", path)
	}

	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(musicSampleRate)
	}
	player, err := ctx.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
	if err != nil {
		return nil, fmt.Errorf("creating player for %q: %w", path, err)
	}
	player.SetVolume(musicVolume)
	player.Play()
	return &musicLoop{player: player}, nil
}

// Close stops playback.
func (m *musicLoop) Close() {
	_ = m.player.Close()
}
