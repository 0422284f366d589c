package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/joltage/logging"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logging.Level
	}{
		{"debug", logging.LevelDebug},
		{"INFO", logging.LevelInfo},
		{"", logging.LevelInfo},
		{" warning ", logging.LevelWarn},
		{"error", logging.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := logging.ParseLevel(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := logging.ParseLevel("loud")
	require.ErrorIs(t, err, logging.ErrUnknownLevel)
	require.Equal(t, "unknown", logging.Level(42).String())
	require.Equal(t, logging.LevelInfo, logging.Level(0))
}

func TestParseFormat(t *testing.T) {
	f, err := logging.ParseFormat("JSON")
	require.NoError(t, err)
	require.Equal(t, logging.FormatJSON, f)
	require.Equal(t, "json", f.String())

	f, err = logging.ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, logging.FormatText, f)

	_, err = logging.ParseFormat("xml")
	require.ErrorIs(t, err, logging.ErrUnknownFormat)
}

func TestNew_TextFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelWarn, Output: &buf})
	logger.Info("hidden")
	logger.Warn("shown", "machine", 3)

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "msg=shown")
	require.Contains(t, out, "machine=3")
}

func TestNew_JSONWithService(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{
		Level:   logging.LevelDebug,
		Format:  logging.FormatJSON,
		Output:  &buf,
		Service: "joltage",
	})
	logger.Debug("machine solved", "total", 10)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	require.Equal(t, "machine solved", rec["msg"])
	require.Equal(t, "joltage", rec["service"])
	require.Equal(t, float64(10), rec["total"])
	require.Equal(t, "DEBUG", rec["level"])
}

func TestNop(t *testing.T) {
	logger := logging.Nop()
	logger.Error("dropped")
	require.False(t, logger.Enabled(t.Context(), slog.LevelError))
}
