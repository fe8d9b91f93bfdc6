package plan

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sardesh/srebuddy/internal/task"
	"github.com/sardesh/srebuddy/internal/util"
)

const (
	planFile     = "plan.json"
	documentFile = "plan.md"
)

// SavedPlan is the on-disk record of a generated plan together with the
// request it was generated from.
type SavedPlan struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	CreatedAt  time.Time           `json:"createdAt"`
	Descriptor task.Descriptor     `json:"descriptor"`
	Plan       *ImplementationPlan `json:"plan"`
}

// Store persists plans under a plans directory, one folder per plan named
// <id>-<name>.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir. The directory is created on the
// first save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the plans directory.
func (s *Store) Dir() string {
	return s.dir
}

// NewSavedPlan assigns an ID and a collision-free name derived from the
// descriptor summary.
func (s *Store) NewSavedPlan(d task.Descriptor, p *ImplementationPlan) (*SavedPlan, error) {
	id, err := util.GenerateShortID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate plan ID: %w", err)
	}

	baseName := util.ToKebabCase(p.Summary)
	if baseName == "" {
		baseName = "plan"
	}
	name, err := s.ResolveName(baseName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve plan name: %w", err)
	}

	return &SavedPlan{
		ID:         id,
		Name:       name,
		CreatedAt:  time.Now(),
		Descriptor: d,
		Plan:       p,
	}, nil
}

// ResolveName checks for name collisions in the plans directory and returns
// a unique name. If baseName is not taken, it is returned as-is; otherwise
// -2, -3, etc. is appended until a unique name is found.
func (s *Store) ResolveName(baseName string) (string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return baseName, nil
		}
		return "", fmt.Errorf("failed to read plans directory: %w", err)
	}

	// Folder format is <id>-<name>, so we split on first hyphen
	existingNames := make(map[string]bool)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		parts := strings.SplitN(entry.Name(), "-", 2)
		if len(parts) == 2 {
			existingNames[parts[1]] = true
		}
	}

	if !existingNames[baseName] {
		return baseName, nil
	}

	for suffix := 2; ; suffix++ {
		candidate := fmt.Sprintf("%s-%d", baseName, suffix)
		if !existingNames[candidate] {
			return candidate, nil
		}
	}
}

// Save writes plan.json and the rendered results document into the plan's
// folder and returns the folder path.
func (s *Store) Save(sp *SavedPlan, document string) (string, error) {
	folderPath := filepath.Join(s.dir, fmt.Sprintf("%s-%s", sp.ID, sp.Name))

	if err := os.MkdirAll(folderPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create plan folder: %w", err)
	}

	data, err := json.MarshalIndent(sp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal plan: %w", err)
	}

	if err := os.WriteFile(filepath.Join(folderPath, planFile), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", planFile, err)
	}

	if err := os.WriteFile(filepath.Join(folderPath, documentFile), []byte(document), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", documentFile, err)
	}

	return folderPath, nil
}
