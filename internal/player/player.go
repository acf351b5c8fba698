// Package player launches media players on resolved streams.
// All player invocations use exec.Command with explicit argument slices;
// nothing is passed through a shell.
package player

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"showflix/internal/media"
)

// ErrNoLink is returned when asked to play a stream without a URL.
var ErrNoLink = errors.New("no link available")

// Player is the interface for media player implementations.
type Player interface {
	// Play blocks until the player exits.
	Play(stream *media.Stream) error

	// Args returns the command-line arguments Play would use.
	Args(stream *media.Stream) []string

	// Name returns the player name.
	Name() string

	// Available checks if the player binary exists in PATH.
	Available() bool
}

// New creates a player by name.
func New(name string) Player {
	switch strings.ToLower(name) {
	case "vlc":
		return &VLC{}
	case "iina", "celluloid":
		return &Generic{name: strings.ToLower(name)}
	default:
		return &MPV{}
	}
}

// run starts the player attached to the terminal. Non-zero exits are how
// players report a user quit, so they are not errors.
func run(p Player, stream *media.Stream) error {
	if !stream.Available() {
		return ErrNoLink
	}
	if !p.Available() {
		return fmt.Errorf("%s not found in PATH", p.Name())
	}

	cmd := exec.Command(p.Name(), p.Args(stream)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil
		}
		return fmt.Errorf("running %s: %w", p.Name(), err)
	}
	return nil
}

func lookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
