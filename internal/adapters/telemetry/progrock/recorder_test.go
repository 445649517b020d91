package progrock_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kindred/internal/adapters/telemetry/progrock"
	"go.trai.ch/kindred/internal/core/domain"
	"go.trai.ch/kindred/internal/core/ports"
)

func TestRecorder_Lifecycle(t *testing.T) {
	var recorder ports.Recorder = progrock.New()

	vertex := recorder.Record("span-1", "resolve example.com/a")
	require.NotNil(t, vertex)

	n, err := vertex.Stdout().Write([]byte("12 packages\n"))
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	vertex.Log(domain.LogLevelInfo, "closure walked")
	vertex.Log(domain.LogLevelWarn, "no go.sum entry")
	vertex.Complete(nil)

	failed := recorder.Record("span-2", "fingerprint example.com/b")
	failed.Complete(errors.New("no tracked source files"))

	assert.NoError(t, recorder.Close())
}
