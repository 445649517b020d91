// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/kindred/internal/adapters/cas"
	_ "go.trai.ch/kindred/internal/adapters/codegen"
	_ "go.trai.ch/kindred/internal/adapters/config"
	_ "go.trai.ch/kindred/internal/adapters/fs"
	_ "go.trai.ch/kindred/internal/adapters/gomod"
	_ "go.trai.ch/kindred/internal/adapters/logger"
	_ "go.trai.ch/kindred/internal/adapters/shell"
	_ "go.trai.ch/kindred/internal/adapters/telemetry"
	_ "go.trai.ch/kindred/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/kindred/internal/app"
	_ "go.trai.ch/kindred/internal/engine/statetag"
)
