package player

import "showflix/internal/media"

// Generic implements the Player interface for players like iina and celluloid
// that accept mpv-compatible arguments.
type Generic struct {
	name string
}

func (g *Generic) Name() string { return g.name }

func (g *Generic) Available() bool { return lookPath(g.name) }

func (g *Generic) Args(stream *media.Stream) []string {
	return mpvStyleArgs(stream)
}

func (g *Generic) Play(stream *media.Stream) error {
	return run(g, stream)
}
