package ports

import "go.trai.ch/slicer/internal/core/domain"

// ConfigLoader defines the interface for loading the application configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load returns the effective configuration: defaults, then the config
	// file, then environment overrides.
	Load() (*domain.Config, error)
}
