package ports

import "context"

// CommandRunner defines the interface for running package manager and toolchain commands.
//
//go:generate mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type CommandRunner interface {
	// Output runs name with args in dir and returns its standard output.
	// A non-zero exit status is reported as an error carrying the captured standard error.
	Output(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}
