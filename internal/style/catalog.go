package style

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Catalog is a style registry: workshop-specific definitions layered
// over the built-in styles. Custom definitions shadow built-ins with
// the same id.
type Catalog struct {
	Custom []Definition
}

// NewCatalog returns a catalog with no custom styles.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Lookup implements Registry: custom definitions first, then built-ins.
func (c *Catalog) Lookup(styleID string) (Definition, bool) {
	for _, d := range c.Custom {
		if d.StyleID == styleID {
			return d, true
		}
	}
	return GetBuiltin(styleID)
}

// Add validates a definition and adds it to the custom set, replacing
// any existing custom definition with the same id.
func (c *Catalog) Add(d Definition) error {
	if err := d.Validate(); err != nil {
		return err
	}
	for i := range c.Custom {
		if c.Custom[i].StyleID == d.StyleID {
			c.Custom[i] = d
			return nil
		}
	}
	c.Custom = append(c.Custom, d)
	return nil
}

// IDs returns every resolvable style id, custom styles first.
func (c *Catalog) IDs() []string {
	var ids []string
	seen := map[string]bool{}
	for _, d := range c.Custom {
		ids = append(ids, d.StyleID)
		seen[d.StyleID] = true
	}
	for _, d := range BuiltinStyles {
		if !seen[d.StyleID] {
			ids = append(ids, d.StyleID)
		}
	}
	return ids
}

// DefaultCatalogDir returns the default directory for the custom
// style catalog. On all platforms this is ~/.fundicut/
func DefaultCatalogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".fundicut")
}

// DefaultCatalogPath returns the default file path for the custom
// style catalog.
func DefaultCatalogPath() string {
	return filepath.Join(DefaultCatalogDir(), "styles.json")
}

// SaveCatalog saves custom style definitions to a JSON file.
func SaveCatalog(path string, styles []Definition) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(styles, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCatalog loads a catalog from a JSON file of custom definitions.
// A missing file yields an empty catalog. Every loaded definition is
// validated; a single bad definition fails the whole load.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewCatalog(), nil
		}
		return nil, err
	}

	var styles []Definition
	if err := json.Unmarshal(data, &styles); err != nil {
		return nil, fmt.Errorf("failed to parse style catalog %s: %w", path, err)
	}
	for i := range styles {
		if err := styles[i].Validate(); err != nil {
			return nil, fmt.Errorf("style catalog %s: %w", path, err)
		}
	}
	return &Catalog{Custom: styles}, nil
}

// ExportStyle exports a single definition to a JSON file for sharing.
func ExportStyle(path string, d Definition) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportStyle imports a single definition from a JSON file.
func ImportStyle(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, err
	}

	var d Definition
	if err := json.Unmarshal(data, &d); err != nil {
		return Definition{}, err
	}
	if err := d.Validate(); err != nil {
		return Definition{}, err
	}
	return d, nil
}
