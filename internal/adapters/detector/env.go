// Package detector provides environment detection for log format selection.
package detector

import (
	"os"

	"go.trai.ch/slicer/internal/core/domain"
	"golang.org/x/term"
)

// DetectFormat returns the log format suited to the environment.
// It checks if stderr is a TTY and if CI environment variables are set.
func DetectFormat() domain.LogFormat {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))
	return formatFor(isTTY, os.Getenv("CI"))
}

func formatFor(isTTY bool, ci string) domain.LogFormat {
	isCI := ci == "true" || ci == "1"
	if !isTTY || isCI {
		return domain.LogFormatJSON
	}
	return domain.LogFormatPretty
}

// ResolveFormat applies the configured format to auto-detection.
// Anything other than pretty or json defers to the detected format.
func ResolveFormat(detected, configured domain.LogFormat) domain.LogFormat {
	switch configured {
	case domain.LogFormatPretty, domain.LogFormatJSON:
		return configured
	default:
		return detected
	}
}
