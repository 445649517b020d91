package style_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kindred/internal/ui/style"
)

func TestProfile(t *testing.T) {
	t.Run("NO_COLOR", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.Equal(t, termenv.Ascii, style.Profile(new(bytes.Buffer)))
	})

	t.Run("redirected file", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
		require.NoError(t, err)
		defer f.Close()

		assert.Equal(t, termenv.Ascii, style.Profile(f))
	})
}

func TestRenderer_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	r := style.Renderer(new(bytes.Buffer))
	assert.Equal(t, "ok", r.NewStyle().Foreground(style.Green).Render("ok"))
}
