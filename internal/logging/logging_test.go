package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	require.Equal(t, slog.LevelWarn, ParseLevel(" WARN "))
	require.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel("info"))
	require.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNew_Discard(t *testing.T) {
	logger, closer, err := New("debug", "")
	require.NoError(t, err)
	require.NotNil(t, closer)
	logger.Info("dropped")
	require.NoError(t, closer.Close())
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "beatmap.log")

	logger, closer, err := New("warn", path)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("search failed", "query", "camellia")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	out := string(data)
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, `msg="search failed"`)
	require.Contains(t, out, "query=camellia")
	require.Contains(t, out, "session=")
}

func TestFileWriter_Truncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.log")
	w, err := newFileWriter(path)
	require.NoError(t, err)
	defer w.Close()

	line := []byte(strings.Repeat("x", 1023) + "\n")
	for range maxLogSize/len(line) + 16 {
		_, err := w.Write(line)
		require.NoError(t, err)
	}

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.LessOrEqual(t, info.Size(), int64(maxLogSize))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasSuffix(data, line))
}
