package logger_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pracor/pracor/internal/setup/telemetry/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestLogRotator(t *testing.T) {
	t.Parallel()

	t.Run("appends until twice the limit", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "main.log")
		rotator, err := logger.OpenLogRotator(path, 3)
		require.NoError(t, err)
		defer rotator.Close()

		for i := range 5 {
			_, err := fmt.Fprintf(rotator, "line %d\n", i)
			require.NoError(t, err)
		}
		assert.Len(t, readLines(t, path), 5)
	})

	t.Run("compacts to the last lines", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "main.log")
		rotator, err := logger.OpenLogRotator(path, 3)
		require.NoError(t, err)
		defer rotator.Close()

		for i := range 6 {
			_, err := fmt.Fprintf(rotator, "line %d\n", i)
			require.NoError(t, err)
		}
		assert.Equal(t, []string{"line 3", "line 4", "line 5"}, readLines(t, path))

		_, err = rotator.Write([]byte("line 6\nline 7\n"))
		require.NoError(t, err)
		require.NoError(t, rotator.Sync())
		assert.Equal(t, []string{"line 3", "line 4", "line 5", "line 6", "line 7"}, readLines(t, path))
	})
}
