package player

import "showflix/internal/media"

// MPV implements the Player interface for mpv.
type MPV struct{}

func (m *MPV) Name() string { return "mpv" }

func (m *MPV) Available() bool { return lookPath("mpv") }

func (m *MPV) Args(stream *media.Stream) []string {
	return mpvStyleArgs(stream, "--really-quiet")
}

// Play launches mpv on the stream.
func (m *MPV) Play(stream *media.Stream) error {
	return run(m, stream)
}

// mpvStyleArgs builds arguments for mpv and players that accept its flags.
func mpvStyleArgs(stream *media.Stream, extra ...string) []string {
	args := []string{stream.URL}
	if stream.Title != "" {
		args = append(args, "--force-media-title="+stream.Title)
	}
	if stream.Referer != "" {
		args = append(args, "--referrer="+stream.Referer)
	}
	return append(args, extra...)
}
