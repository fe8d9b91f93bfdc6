package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const (
	// ProjectDir is the per-project data directory
	ProjectDir = ".srebuddy"
	// ProjectConfigFile is the name of the project-level config file inside ProjectDir
	ProjectConfigFile = "config.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/srebuddy"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger *zap.Logger

	// HomeDir and WorkDir override os.UserHomeDir and os.Getwd.
	HomeDir string
	WorkDir string
}

// NewLoader creates a new configuration loader
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/srebuddy/config.yaml)
// 3. Project config (.srebuddy/config.yaml in current or parent directories),
// or explicitPath when it is set
//
// Command-line flags are applied by the caller on top of the result. A
// missing explicitPath is an error; missing user or project files are not.
func (l *Loader) Load(explicitPath string) (*Config, error) {
	config := DefaultConfig()

	userConfigPath := l.userConfigPath()
	if userConfigPath != "" {
		if userConfig, err := LoadFromFile(userConfigPath); err == nil {
			l.logger.Debug("Loaded user config", zap.String("path", userConfigPath))
			config.Merge(userConfig)
		} else if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("Failed to load user config", zap.String("path", userConfigPath), zap.Error(err))
		}
	}

	root := l.FindProjectRoot()

	if explicitPath != "" {
		explicitConfig, err := LoadFromFile(explicitPath)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("Loaded explicit config", zap.String("path", explicitPath))
		config.Merge(explicitConfig)
	} else if root != "" {
		projectConfigPath := filepath.Join(root, ProjectDir, ProjectConfigFile)
		if projectConfig, err := LoadFromFile(projectConfigPath); err == nil {
			l.logger.Debug("Loaded project config", zap.String("path", projectConfigPath))
			config.Merge(projectConfig)
		} else if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("Failed to load project config", zap.String("path", projectConfigPath), zap.Error(err))
		}
	} else {
		l.logger.Debug("No project config found")
	}

	if root == "" {
		root = l.workDir()
	}
	config.Root = root

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// EnsureProjectConfig writes the default project config under dir if it
// does not exist yet, and returns its path.
func EnsureProjectConfig(dir string) (string, error) {
	path := filepath.Join(dir, ProjectDir, ProjectConfigFile)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := DefaultConfig().SaveToFile(path); err != nil {
		return "", err
	}
	return path, nil
}

// FindProjectRoot returns the nearest directory, starting at the working
// directory and moving up, that contains a ProjectDir folder. It returns ""
// when there is none.
func (l *Loader) FindProjectRoot() string {
	dir := l.workDir()
	if dir == "" {
		return ""
	}

	for {
		if info, err := os.Stat(filepath.Join(dir, ProjectDir)); err == nil && info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func (l *Loader) userConfigPath() string {
	home := l.HomeDir
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return ""
		}
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

func (l *Loader) workDir() string {
	if l.WorkDir != "" {
		return l.WorkDir
	}
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return cwd
}
