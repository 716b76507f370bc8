package style

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const backupVersion = "1.0.0"

// BackupData is the bundle written by a catalog backup: every custom
// definition plus the metadata a restore checks before applying it.
type BackupData struct {
	Version   string       `json:"version"`
	CreatedAt string       `json:"created_at"`
	Styles    []Definition `json:"styles"`
}

// ExportBackup writes the given custom definitions to a single
// versioned JSON file, the format a workshop moves between machines.
func ExportBackup(path string, styles []Definition) error {
	backup := BackupData{
		Version:   backupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Styles:    styles,
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportBackup reads a backup file, checks its version marker and
// validates every definition it carries. The caller decides how to
// apply the styles.
func ImportBackup(path string) (BackupData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Styles == nil {
		backup.Styles = []Definition{}
	}
	for i := range backup.Styles {
		if err := backup.Styles[i].Validate(); err != nil {
			return BackupData{}, fmt.Errorf("backup file %s: %w", path, err)
		}
	}
	return backup, nil
}
