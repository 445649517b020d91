package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/kindred/internal/app"
	"go.trai.ch/kindred/internal/core/domain"
	"go.trai.ch/kindred/internal/core/ports/mocks"
	"go.trai.ch/kindred/internal/engine/statetag"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	loader *mocks.MockConfigLoader
	logger *mocks.MockLogger
	app    *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	resolver := mocks.NewMockGraphResolver(ctrl)
	tracer := mocks.NewMockTracer(ctrl)
	f := &fixture{
		loader: mocks.NewMockConfigLoader(ctrl),
		logger: mocks.NewMockLogger(ctrl),
	}
	f.app = app.New(
		f.loader,
		resolver,
		mocks.NewMockToolchainProbe(ctrl),
		statetag.NewBuilder(resolver, mocks.NewMockSourceFingerprinter(ctrl), tracer),
		mocks.NewMockExportStore(ctrl),
		mocks.NewMockCodeGenerator(ctrl),
		tracer,
		f.logger,
	)
	return f
}

func (f *fixture) provider(cleaned *bool) ComponentProvider {
	return func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: f.app, Logger: f.logger}, func() { *cleaned = true }, nil
	}
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	f := newFixture(t)
	cleaned := false

	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), f.provider(&cleaned))
	assert.Equal(t, 0, exitCode)
	assert.True(t, cleaned)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run returns 1 and logs when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	f := newFixture(t)
	cleaned := false

	f.loader.EXPECT().Load(".").Return(nil, domain.ErrGoModNotFound)
	f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrGoModNotFound)
	})

	exitCode := run(context.Background(), []string{"show"}, new(bytes.Buffer), f.provider(&cleaned))
	assert.Equal(t, 1, exitCode)
	assert.True(t, cleaned)
}

// TestRun_Options verifies that options are applied to the App before execution.
func TestRun_Options(t *testing.T) {
	f := newFixture(t)
	cleaned := false
	applied := false

	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), f.provider(&cleaned),
		func(a *app.App) { applied = a != nil })
	assert.Equal(t, 0, exitCode)
	assert.True(t, applied)
}
