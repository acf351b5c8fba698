package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

func TestNewConsoleLevels(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		wantDebug bool
	}{
		{"quiet by default", false, false},
		{"debug mode", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := New(Options{Debug: tt.debug, Console: &buf})
			require.NoError(t, err)

			logger.Debug("debug line")
			logger.Warn("warn line", zap.String("kind", "movie"))
			require.NoError(t, logger.Sync())

			out := buf.String()
			require.Contains(t, out, "warn line")
			require.Contains(t, out, "movie")
			require.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("debug line")))
		})
	}
}

func TestNewFileCore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "showflix.log")

	var console bytes.Buffer
	logger, err := New(Options{Console: &console, File: path, MaxSize: 1})
	require.NoError(t, err)

	logger.Info("Listed category", zap.String("category", "Tamil"))
	require.NoError(t, logger.Sync())

	require.NotContains(t, console.String(), "Listed category", "info stays off the console")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := bytes.TrimSpace(data)
	require.True(t, gjson.ValidBytes(line))
	require.Equal(t, "Listed category", gjson.GetBytes(line, "msg").String())
	require.Equal(t, "Tamil", gjson.GetBytes(line, "category").String())
	require.Equal(t, "showflix", gjson.GetBytes(line, "logger").String())
}
