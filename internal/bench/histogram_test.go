package bench

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHistogram(t *testing.T) {
	result := &Result{Name: "deck shuffle"}
	for i := 1; i <= 50; i++ {
		result.Durations = append(result.Durations, time.Duration(i)*time.Microsecond)
	}

	dir := t.TempDir()
	path, err := RenderHistogram(result, dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "deck_shuffle.png"), path)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRenderHistogram_NoDurations(t *testing.T) {
	_, err := RenderHistogram(&Result{Name: "empty"}, t.TempDir())
	assert.Error(t, err)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "full_game_random", sanitizeFilename("Full Game/Random"))
	assert.Equal(t, "a_b", sanitizeFilename("A:B"))
}
