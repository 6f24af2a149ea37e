package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync/atomic"
)

var (
	// ErrBusy is returned by Play while another playback is running.
	ErrBusy = errors.New("audio is already playing")

	// ErrNoPlayer means no playback command is configured or installed.
	ErrNoPlayer = errors.New("no audio player found")
)

// candidates are tried in order when no command is configured. The WAV
// path is appended to each.
var candidates = [][]string{
	{"aplay", "-q"},
	{"paplay"},
	{"afplay"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
}

// Player plays PCM through an external command. One playback at a time;
// requests made while playing are rejected, not queued.
type Player struct {
	argv    []string
	playing atomic.Bool
}

// NewPlayer returns a Player running command (split on whitespace, with the
// WAV path appended). An empty command selects the first installed
// candidate.
func NewPlayer(command string) (*Player, error) {
	if argv := strings.Fields(command); len(argv) > 0 {
		return &Player{argv: argv}, nil
	}
	for _, c := range candidates {
		if _, err := exec.LookPath(c[0]); err == nil {
			return &Player{argv: c}, nil
		}
	}
	return nil, ErrNoPlayer
}

// Command returns the player's argv prefix.
func (p *Player) Command() []string {
	return append([]string(nil), p.argv...)
}

// Playing reports whether a playback is in progress.
func (p *Player) Playing() bool {
	return p.playing.Load()
}

// Play writes pcm to a temporary WAV file and blocks until the player
// command exits. The file is removed afterwards.
func (p *Player) Play(ctx context.Context, pcm []byte, sampleRate int) error {
	if len(pcm) == 0 {
		return errors.New("no audio to play")
	}
	if !p.playing.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer p.playing.Store(false)

	f, err := os.CreateTemp("", "linguaflow-*.wav")
	if err != nil {
		return fmt.Errorf("create temp wav: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(EncodeWAV(pcm, sampleRate)); err != nil {
		f.Close()
		return fmt.Errorf("write temp wav: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp wav: %w", err)
	}

	cmd := exec.CommandContext(ctx, p.argv[0], append(p.argv[1:], path)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", p.argv[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}
