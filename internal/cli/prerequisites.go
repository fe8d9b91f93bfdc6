package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sardesh/srebuddy/internal/config"
)

// PrerequisiteError represents a failed prerequisite check with helpful remediation info.
type PrerequisiteError struct {
	Check   string
	Message string
	Help    string
}

func (e *PrerequisiteError) Error() string {
	return fmt.Sprintf("%s: %s\n\n%s", e.Check, e.Message, e.Help)
}

// checkPrerequisites validates the working directory before init.
func checkPrerequisites(dir string) error {
	if err := checkWritable(dir); err != nil {
		return err
	}

	if err := checkProjectPath(dir); err != nil {
		return err
	}

	return nil
}

// checkWritable verifies files can be created in dir.
func checkWritable(dir string) error {
	probe, err := os.CreateTemp(dir, ".srebuddy-probe-*")
	if err != nil {
		return &PrerequisiteError{
			Check:   "Writable directory",
			Message: fmt.Sprintf("Cannot create files in %s", dir),
			Help:    "Run srebuddy init from a directory you can write to.",
		}
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)
	return nil
}

// checkProjectPath verifies nothing but a directory occupies the project path.
func checkProjectPath(dir string) error {
	info, err := os.Stat(filepath.Join(dir, config.ProjectDir))
	if err == nil && !info.IsDir() {
		return &PrerequisiteError{
			Check:   "Project directory",
			Message: fmt.Sprintf("%s exists and is not a directory", config.ProjectDir),
			Help:    fmt.Sprintf("Move or remove the %s file, then run srebuddy init again.", config.ProjectDir),
		}
	}
	return nil
}

// IsInitialized checks if srebuddy is initialized in dir.
func IsInitialized(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, config.ProjectDir))
	return err == nil && info.IsDir()
}

// RequireInitialized returns an error if srebuddy is not initialized in dir.
func RequireInitialized(dir string) error {
	if !IsInitialized(dir) {
		return fmt.Errorf("srebuddy is not initialized. Run 'srebuddy init' first")
	}
	return nil
}
