package config

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const fallbackVersion = "0.1.0"

// GetVersion returns the version from APP_VERSION, the module build info or
// a VERSION file, in that order.
func GetVersion() string {
	// set by CI/CD
	if envVersion := strings.TrimSpace(os.Getenv("APP_VERSION")); envVersion != "" {
		return envVersion
	}

	if v := buildVersion(); v != "" {
		return v
	}

	return getBaseVersion()
}

// buildVersion reads the main module version stamped by `go install`
func buildVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	v := strings.TrimPrefix(info.Main.Version, "v")
	if v == "" || v == "(devel)" {
		return ""
	}
	return v
}

// getBaseVersion reads the base version from a VERSION file near the working directory
func getBaseVersion() string {
	for _, dir := range []string{".", "..", filepath.Join("..", "..")} {
		if content, err := os.ReadFile(filepath.Join(dir, "VERSION")); err == nil {
			if v := strings.TrimSpace(string(content)); v != "" {
				return v
			}
		}
	}
	return fallbackVersion
}
