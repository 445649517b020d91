package gomod_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kindred/internal/adapters/gomod"
	"go.trai.ch/kindred/internal/core/domain"
	"go.trai.ch/kindred/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestProbe(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		expected domain.Toolchain
	}{
		{
			name: "amd64 with level",
			env: `{"GOOS":"linux","GOARCH":"amd64","GOAMD64":"v3","GOHOSTOS":"linux","GOHOSTARCH":"amd64",
				"GOVERSION":"go1.25.3","GOFLAGS":"-trimpath -mod=readonly","CGO_ENABLED":"0"}`,
			expected: domain.Toolchain{
				Target:    "linux/amd64/v3",
				Host:      "linux/amd64",
				Flags:     []string{"-trimpath", "-mod=readonly", "CGO_ENABLED=0"},
				GoVersion: "go1.25.3",
			},
		},
		{
			name: "cross compile without level",
			env: `{"GOOS":"js","GOARCH":"wasm","GOHOSTOS":"darwin","GOHOSTARCH":"arm64",
				"GOVERSION":"go1.25.3","GOFLAGS":"","CGO_ENABLED":""}`,
			expected: domain.Toolchain{
				Target:    "js/wasm",
				Host:      "darwin/arm64",
				Flags:     []string{},
				GoVersion: "go1.25.3",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			runner := mocks.NewMockCommandRunner(ctrl)
			runner.EXPECT().Output(gomock.Any(), "/work", "go", gomock.Any()).Return([]byte(tt.env), nil)

			tc, err := gomod.NewProbe(runner).Probe(context.Background(), "/work")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tc)
		})
	}
}

func TestProbe_Errors(t *testing.T) {
	tests := []struct {
		name string
		out  []byte
		err  error
	}{
		{name: "command fails", err: errors.New("go: not found")},
		{name: "invalid json", out: []byte("GOOS=linux")},
		{name: "missing target", out: []byte(`{"GOHOSTOS":"linux"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			runner := mocks.NewMockCommandRunner(ctrl)
			runner.EXPECT().Output(gomock.Any(), gomock.Any(), "go", gomock.Any()).Return(tt.out, tt.err)

			_, err := gomod.NewProbe(runner).Probe(context.Background(), "/work")
			require.Error(t, err)
			assert.Contains(t, err.Error(), domain.ErrToolchainProbeFailed.Error())
		})
	}
}
