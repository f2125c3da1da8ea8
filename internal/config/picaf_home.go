package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnvVar overrides the picaf home directory
const HomeEnvVar = "PICAF_HOME"

// GetPicafHome returns the picaf home directory
// Priority order:
//  1. PICAF_HOME environment variable (if set)
//  2. ~/.picaf
//
// The directory is not created; writers create it on demand.
func GetPicafHome() (string, error) {
	if home := os.Getenv(HomeEnvVar); home != "" {
		return home, nil
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get user home directory: %w", err)
	}

	return filepath.Join(userHome, ".picaf"), nil
}

// DefaultConfigPath returns $PICAF_HOME/config.yaml
func DefaultConfigPath() (string, error) {
	home, err := GetPicafHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "config.yaml"), nil
}

// DefaultHistoryDBPath returns $PICAF_HOME/history.db
func DefaultHistoryDBPath() (string, error) {
	home, err := GetPicafHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "history.db"), nil
}
