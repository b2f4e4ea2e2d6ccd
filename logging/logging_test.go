// SPDX-License-Identifier: MIT
package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/katalvlaran/percolate/logging"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"Error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := logging.ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	_, err := logging.ParseLevel("verbose")
	require.Error(t, err)
}

func TestNew_JSONFiltersByLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := logging.New(logging.Config{Level: "warn", JSON: true, Writer: &buf})
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("kept", "key", "clusters_hypercube_N4_NR1_p0.5000")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "kept", rec["msg"])
	require.Equal(t, "clusters_hypercube_N4_NR1_p0.5000", rec["key"])

	_, err = logging.New(logging.Config{Level: "loud"})
	require.Error(t, err)
}

func TestNop(t *testing.T) {
	t.Parallel()

	log := logging.Nop()
	require.False(t, log.Enabled(t.Context(), slog.LevelError))
}
