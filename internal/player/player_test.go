package player

import (
	"testing"

	"github.com/stretchr/testify/require"

	"showflix/internal/media"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"mpv", "mpv"},
		{"VLC", "vlc"},
		{"iina", "iina"},
		{"celluloid", "celluloid"},
		{"unknown", "mpv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, New(tt.name).Name())
		})
	}
}

func TestArgs(t *testing.T) {
	stream := &media.Stream{URL: "https://cdn.example/v.m3u8", Referer: "https://showflix.xyz/", Title: "Suzhal S01E02"}

	tests := []struct {
		player string
		want   []string
	}{
		{"mpv", []string{"https://cdn.example/v.m3u8", "--force-media-title=Suzhal S01E02", "--referrer=https://showflix.xyz/", "--really-quiet"}},
		{"vlc", []string{"https://cdn.example/v.m3u8", "--meta-title", "Suzhal S01E02", "--http-referrer=https://showflix.xyz/", "--play-and-exit"}},
		{"iina", []string{"https://cdn.example/v.m3u8", "--force-media-title=Suzhal S01E02", "--referrer=https://showflix.xyz/"}},
	}

	for _, tt := range tests {
		t.Run(tt.player, func(t *testing.T) {
			require.Equal(t, tt.want, New(tt.player).Args(stream))
		})
	}
}

func TestArgsWithoutReferer(t *testing.T) {
	got := New("mpv").Args(&media.Stream{URL: "https://cdn.example/v.mp4"})
	require.Equal(t, []string{"https://cdn.example/v.mp4", "--really-quiet"}, got)
}

func TestPlayWithoutLink(t *testing.T) {
	for _, name := range []string{"mpv", "vlc", "celluloid"} {
		err := New(name).Play(&media.Stream{Title: "Jailer"})
		require.ErrorIs(t, err, ErrNoLink)
	}
	require.ErrorIs(t, New("mpv").Play(nil), ErrNoLink)
}
