package player

import "showflix/internal/media"

// VLC implements the Player interface for VLC media player.
type VLC struct{}

func (v *VLC) Name() string { return "vlc" }

func (v *VLC) Available() bool { return lookPath("vlc") }

func (v *VLC) Args(stream *media.Stream) []string {
	args := []string{stream.URL}
	if stream.Title != "" {
		args = append(args, "--meta-title", stream.Title)
	}
	if stream.Referer != "" {
		args = append(args, "--http-referrer="+stream.Referer)
	}
	return append(args, "--play-and-exit")
}

// Play launches VLC on the stream.
func (v *VLC) Play(stream *media.Stream) error {
	return run(v, stream)
}
