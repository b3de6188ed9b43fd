package host

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/oto/v2"
)

// Play streams h to the default sound card as float32 until ctx is done.
func Play(ctx context.Context, h *Host) error {
	cfg := h.Config()

	otoCtx, ready, err := oto.NewContext(int(cfg.SampleRate), cfg.ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return fmt.Errorf("host: open audio device: %w", err)
	}

	select {
	case <-ready:
	case <-ctx.Done():
		return ctx.Err()
	}

	player := otoCtx.NewPlayer(h)
	player.Play()

	<-ctx.Done()

	if err := player.Close(); err != nil {
		return fmt.Errorf("host: close player: %w", err)
	}

	return nil
}
