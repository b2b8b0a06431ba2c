// Package config loads okverify.yaml and the OkHi credentials for a project.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/okhi/okverify/pkg/okverify"
)

// FileName is the optional project configuration file.
const FileName = "okverify.yaml"

// Environment variables that override the credentials in okverify.yaml.
const (
	EnvBranchID  = "OKHI_BRANCH_ID"
	EnvClientKey = "OKHI_CLIENT_KEY"
	EnvMode      = "OKHI_MODE"
)

// Config represents the optional okverify.yaml configuration.
type Config struct {
	Notification *okverify.Notification `yaml:"notification,omitempty"`
	Auth         okverify.Auth          `yaml:"auth"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root         string
	Notification *okverify.Notification
	Auth         okverify.Auth
}

// HasCredentials reports whether both the branch id and client key are set.
func (r *Resolved) HasCredentials() bool {
	return r.Auth.BranchID != "" && r.Auth.ClientKey != ""
}

// LoadOptional reads okverify.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads okverify.yaml and .env (both optional), applies environment
// overrides and defaults, and validates the result.
//
// Variables already set in the process environment win over .env.
func Resolve(dir string) (*Resolved, error) {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	auth := okverify.Auth{
		BranchID:  envOr(EnvBranchID, cfg.Auth.BranchID),
		ClientKey: envOr(EnvClientKey, cfg.Auth.ClientKey),
		Mode:      envOr(EnvMode, cfg.Auth.Mode),
	}
	if auth.Mode == "" {
		auth.Mode = okverify.DefaultMode
	}

	if cfg.Notification != nil && !okverify.ValidateNotification(*cfg.Notification) {
		return nil, fmt.Errorf("invalid notification in %s: title, text, channelId, channelName and channelDescription are required", FileName)
	}

	return &Resolved{
		Root:         dir,
		Notification: cfg.Notification,
		Auth:         auth,
	}, nil
}

// FindProjectRoot walks up from the current directory to the nearest
// directory holding okverify.yaml or go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		for _, marker := range []string{FileName, "go.mod"} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a project (no %s or go.mod found)", FileName)
		}
		dir = parent
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return strings.TrimSpace(fallback)
}
