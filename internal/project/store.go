package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wajenzi/fundicut/internal/model"
)

// DefaultProjectsDir returns the default directory for saved projects.
// On all platforms this is ~/.fundicut/projects/
func DefaultProjectsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".fundicut", "projects")
}

// SaveProject persists a project to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveProject(path string, p model.Project) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadProject reads a project from the given path. Unlike config files
// a missing project file is an error; there is nothing sensible to
// fall back to.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project file: %w", err)
	}
	var p model.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project file: %w", err)
	}
	// Ensure Items is never nil
	if p.Items == nil {
		p.Items = []model.ProjectItem{}
	}
	return p, nil
}
