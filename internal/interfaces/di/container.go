package di

import (
	"log/slog"
	"os"
	"path/filepath"

	configdomain "actionsperf.ai/cli/internal/core/domain/config"
	configinfra "actionsperf.ai/cli/internal/infrastructure/config"
)

const (
	configFileName   = "apf.conf"
	profilesFileName = "profiles.yaml"
	configDirName    = "actionsperf"
)

// Container holds the application dependencies handed to the CLI.
type Container struct {
	Registry  *configdomain.Registry
	Validator *configinfra.Validator
	Logger    *slog.Logger

	logLevel *slog.LevelVar
}

// NewContainer assembles the dependency container: the process-wide
// setting registry, the validator with its dependency rules, and the
// stderr logger.
func NewContainer() *Container {
	level := &slog.LevelVar{}
	level.Set(slog.LevelInfo)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return &Container{
		Registry:  configdomain.DefaultRegistry(),
		Validator: configinfra.NewValidator(configdomain.DefaultRules()),
		Logger:    logger,
		logLevel:  level,
	}
}

// SetDebug raises the log level to debug for the rest of the process.
func (c *Container) SetDebug(debug bool) {
	if debug {
		c.logLevel.Set(slog.LevelDebug)
	}
}

// ConfigSearchPaths returns the default config file locations, least
// specific first: the user config directory, then the working
// directory, so a project-local file overrides the global one.
func (c *Container) ConfigSearchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", configDirName, configFileName))
	}
	if wd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(wd, configFileName))
	}
	return paths
}

// ProfileTablePath returns the first existing profile table location,
// or the working-directory default when none exists yet.
func (c *Container) ProfileTablePath() string {
	var candidates []string
	if wd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(wd, profilesFileName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", configDirName, profilesFileName))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	if len(candidates) > 0 {
		return candidates[0]
	}
	return profilesFileName
}
