// Package config loads the workshop configuration: stock sizes, pricing
// defaults and file locations. Settings come from workshop.yaml with
// FUNDICUT_* environment overrides layered on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/wajenzi/fundicut/internal/model"
)

// SheetSize configures the raw sheet one area material is cut from.
type SheetSize struct {
	WidthMM     int  `mapstructure:"width_mm"`
	HeightMM    int  `mapstructure:"height_mm"`
	KerfMM      int  `mapstructure:"kerf_mm"`
	AllowRotate bool `mapstructure:"allow_rotate"`
}

// Workshop is the top-level workshop configuration.
type Workshop struct {
	DefaultBarLengthMM int                  `mapstructure:"default_bar_length_mm"`
	BarLengthsMM       map[string]int       `mapstructure:"bar_lengths_mm"`
	Sheets             map[string]SheetSize `mapstructure:"sheets"`
	ChargeMethod       string               `mapstructure:"charge_method"`
	StyleRates         map[string]int64     `mapstructure:"style_rates"`
	MaterialRates      map[string]int64     `mapstructure:"material_rates"`
	LaborCost          int64                `mapstructure:"labor_cost"`
	CatalogPath        string               `mapstructure:"catalog_path"`
}

// Default returns the configuration used when no workshop file exists:
// 6m bars, standard 2440x1830 glass sheets with a 3mm kerf, and
// rate-based charging.
func Default() Workshop {
	return Workshop{
		DefaultBarLengthMM: 6000,
		BarLengthsMM:       map[string]int{},
		Sheets: map[string]SheetSize{
			"GLASS-4":     {WidthMM: 2440, HeightMM: 1830, KerfMM: 3, AllowRotate: true},
			"GLASS-6":     {WidthMM: 2440, HeightMM: 1830, KerfMM: 3, AllowRotate: true},
			"STEEL-SHEET": {WidthMM: 2440, HeightMM: 1220, KerfMM: 2, AllowRotate: true},
		},
		ChargeMethod: string(model.ChargeRateBased),
	}
}

// DefaultDir returns the default directory for workshop configuration.
// On all platforms this is ~/.fundicut/
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".fundicut")
}

// Load reads the workshop configuration. When path is empty the usual
// locations are searched (the working directory, then ~/.fundicut/) and
// a missing file yields the defaults; an explicit path must exist.
// Scalar keys can be overridden with FUNDICUT_* environment variables,
// e.g. FUNDICUT_DEFAULT_BAR_LENGTH_MM=5800.
func Load(path string) (Workshop, error) {
	v := viper.New()
	v.SetConfigName("workshop")
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(DefaultDir())
	}

	def := Default()
	v.SetDefault("default_bar_length_mm", def.DefaultBarLengthMM)
	v.SetDefault("charge_method", def.ChargeMethod)
	v.SetDefault("labor_cost", def.LaborCost)
	v.SetDefault("catalog_path", def.CatalogPath)

	v.SetEnvPrefix("FUNDICUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !(path == "" && errors.As(err, &notFound)) {
			return Workshop{}, fmt.Errorf("failed to read workshop config: %w", err)
		}
	}

	w := def
	if err := v.Unmarshal(&w); err != nil {
		return Workshop{}, fmt.Errorf("failed to parse workshop config: %w", err)
	}
	if err := w.Validate(); err != nil {
		return Workshop{}, err
	}
	return w, nil
}

// Validate checks for values the engine cannot work with.
func (w Workshop) Validate() error {
	if w.DefaultBarLengthMM <= 0 {
		return fmt.Errorf("default_bar_length_mm must be positive, got %d", w.DefaultBarLengthMM)
	}
	switch model.ChargeMethod(w.ChargeMethod) {
	case model.ChargeRateBased, model.ChargeCostBased:
	default:
		return fmt.Errorf("charge_method must be RATE_BASED or COST_BASED, got %q", w.ChargeMethod)
	}
	for id, l := range w.BarLengthsMM {
		if l <= 0 {
			return fmt.Errorf("bar length for %s must be positive, got %d", id, l)
		}
	}
	for id, s := range w.Sheets {
		if s.WidthMM <= 0 || s.HeightMM <= 0 {
			return fmt.Errorf("sheet size for %s must be positive, got %dx%d", id, s.WidthMM, s.HeightMM)
		}
		if s.KerfMM < 0 {
			return fmt.Errorf("kerf for %s must not be negative, got %d", id, s.KerfMM)
		}
	}
	if w.LaborCost < 0 {
		return fmt.Errorf("labor_cost must not be negative, got %d", w.LaborCost)
	}
	return nil
}

// StockConfig converts the stock settings into the engine's stock
// configuration.
func (w Workshop) StockConfig() model.StockConfig {
	cfg := model.StockConfig{
		DefaultBarLengthMM: w.DefaultBarLengthMM,
		BarLengthsMM:       map[string]int{},
		Sheets:             map[string]model.SheetStock{},
	}
	for id, l := range w.BarLengthsMM {
		cfg.BarLengthsMM[id] = l
	}
	for id, s := range w.Sheets {
		cfg.Sheets[id] = model.SheetStock{
			WidthMM:     s.WidthMM,
			HeightMM:    s.HeightMM,
			KerfMM:      s.KerfMM,
			AllowRotate: s.AllowRotate,
		}
	}
	return cfg
}

// Rates converts the pricing settings into engine rates.
func (w Workshop) Rates() model.Rates {
	return model.Rates{
		StyleRates:    w.StyleRates,
		MaterialRates: w.MaterialRates,
		LaborCost:     w.LaborCost,
	}
}

// Method returns the configured charge method.
func (w Workshop) Method() model.ChargeMethod {
	return model.ChargeMethod(w.ChargeMethod)
}

// ResolveCatalogPath returns the style catalog location, falling back
// to the default when unconfigured.
func (w Workshop) ResolveCatalogPath(fallback string) string {
	if w.CatalogPath != "" {
		return w.CatalogPath
	}
	return fallback
}
