// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/slicer/internal/adapters/config"
	_ "go.trai.ch/slicer/internal/adapters/fs"
	_ "go.trai.ch/slicer/internal/adapters/logger"
	_ "go.trai.ch/slicer/internal/adapters/segments"
	_ "go.trai.ch/slicer/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/slicer/internal/app"
	_ "go.trai.ch/slicer/internal/engine/allocator"
)
