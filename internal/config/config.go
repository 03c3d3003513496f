// Package config provides configuration management for the patty planner.
// Configurations are loaded from TOML files with XDG-compliant paths.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/pattyplanner/pattyplanner/internal/models"
)

// Config holds the complete application configuration.
type Config struct {
	Branch  BranchConfig  `toml:"branch"`
	Form    FormConfig    `toml:"form"`
	Display DisplayConfig `toml:"display"`
	Logging LoggingConfig `toml:"logging"`
}

// BranchConfig contains the operator-configured settings of one branch.
type BranchConfig struct {
	Name             string                  `toml:"name"`
	WastePerKgGrams  int                     `toml:"waste_per_kg_grams"`
	ConversionPolicy models.ConversionPolicy `toml:"conversion_policy"`
	Regular          PattyConfig             `toml:"regular"`
	Mini             PattyConfig             `toml:"mini"`
}

// PattyConfig describes how one patty type is packed, priced and weighed.
type PattyConfig struct {
	PackSize         int     `toml:"pack_size"`
	PackRevenue      float64 `toml:"pack_revenue"`
	PieceWeightGrams int     `toml:"piece_weight_grams"`
}

// FormConfig holds the values the sales form starts with.
type FormConfig struct {
	TodayTarget         float64          `toml:"today_target"`
	TomorrowTarget      float64          `toml:"tomorrow_target"`
	CutoffHour          int              `toml:"cutoff_hour"`
	SplitMode           models.SplitMode `toml:"split_mode"`
	RegularSharePercent int              `toml:"regular_share_percent"`
	RegularInStock      int              `toml:"regular_in_stock"`
	MiniInStock         int              `toml:"mini_in_stock"`
}

// DisplayConfig controls TUI appearance.
type DisplayConfig struct {
	ColorScheme ColorScheme `toml:"color_scheme"`
	Currency    string      `toml:"currency"`
	DateFormat  string      `toml:"date_format"`
}

// ColorScheme defines the terminal color palette.
type ColorScheme string

const (
	ColorSchemeGreenPhosphor ColorScheme = "green_phosphor"
	ColorSchemeAmber         ColorScheme = "amber"
	ColorSchemeWhite         ColorScheme = "white"
)

// LoggingConfig controls application logging.
type LoggingConfig struct {
	Level LogLevel `toml:"level"`
	File  string   `toml:"file"`
}

// LogLevel defines logging verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Branch.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("branch: %w", err))
	}

	if err := c.Form.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("form: %w", err))
	}

	if err := c.Display.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("display: %w", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks the branch settings against the planner's constraints.
func (b *BranchConfig) Validate() error {
	return b.Settings().Validate()
}

// Settings converts the branch section into planner settings.
func (b *BranchConfig) Settings() models.BranchSettings {
	return models.BranchSettings{
		RegularPackSize:         b.Regular.PackSize,
		RegularPackRevenue:      b.Regular.PackRevenue,
		MiniPackSize:            b.Mini.PackSize,
		MiniPackRevenue:         b.Mini.PackRevenue,
		RegularPieceWeightGrams: b.Regular.PieceWeightGrams,
		MiniPieceWeightGrams:    b.Mini.PieceWeightGrams,
		WastePerKgGrams:         b.WastePerKgGrams,
		Policy:                  b.ConversionPolicy,
	}
}

// SetSettings stores planner settings back into the branch section.
func (b *BranchConfig) SetSettings(s models.BranchSettings) {
	b.Regular = PattyConfig{
		PackSize:         s.RegularPackSize,
		PackRevenue:      s.RegularPackRevenue,
		PieceWeightGrams: s.RegularPieceWeightGrams,
	}
	b.Mini = PattyConfig{
		PackSize:         s.MiniPackSize,
		PackRevenue:      s.MiniPackRevenue,
		PieceWeightGrams: s.MiniPieceWeightGrams,
	}
	b.WastePerKgGrams = s.WastePerKgGrams
	b.ConversionPolicy = s.Policy
}

// Validate checks that the form defaults are usable.
func (f *FormConfig) Validate() error {
	var errs []error

	if !nonNegative(f.TodayTarget) {
		errs = append(errs, errors.New("today_target must be non-negative"))
	}

	if !nonNegative(f.TomorrowTarget) {
		errs = append(errs, errors.New("tomorrow_target must be non-negative"))
	}

	if f.CutoffHour < models.MinCutoffHour || f.CutoffHour > models.MaxCutoffHour {
		errs = append(errs, fmt.Errorf("cutoff_hour must be between %d and %d", models.MinCutoffHour, models.MaxCutoffHour))
	}

	if f.SplitMode != "" && !f.SplitMode.IsValid() {
		errs = append(errs, fmt.Errorf("invalid split_mode: %s", f.SplitMode))
	}

	if f.RegularSharePercent < 0 || f.RegularSharePercent > 100 {
		errs = append(errs, errors.New("regular_share_percent must be between 0 and 100"))
	} else if f.RegularSharePercent%models.ShareStepPercent != 0 {
		errs = append(errs, fmt.Errorf("regular_share_percent must be a multiple of %d", models.ShareStepPercent))
	}

	if f.RegularInStock < 0 {
		errs = append(errs, errors.New("regular_in_stock must be non-negative"))
	}

	if f.MiniInStock < 0 {
		errs = append(errs, errors.New("mini_in_stock must be non-negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// nonNegative reports whether v is a finite number of zero or more.
func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}

// Request builds the initial sales request shown on the form.
func (f *FormConfig) Request() models.SalesRequest {
	mode := f.SplitMode
	if mode == "" {
		mode = models.SplitByShare
	}

	total := f.TodayTarget + f.TomorrowTarget
	return models.SalesRequest{
		TodayRevenueTarget:    f.TodayTarget,
		TomorrowRevenueTarget: f.TomorrowTarget,
		CutoffHour:            f.CutoffHour,
		SplitMode:             mode,
		RegularRevenueShare:   models.ShareFromPercent(f.RegularSharePercent),
		RegularTargetRevenue:  total / 2,
		MiniTargetRevenue:     total / 2,
		RegularInStock:        f.RegularInStock,
		MiniInStock:           f.MiniInStock,
	}
}

// Validate checks that the display configuration is valid.
func (d *DisplayConfig) Validate() error {
	var errs []error

	validSchemes := map[ColorScheme]bool{
		ColorSchemeGreenPhosphor: true,
		ColorSchemeAmber:         true,
		ColorSchemeWhite:         true,
	}

	if !validSchemes[d.ColorScheme] && d.ColorScheme != "" {
		errs = append(errs, fmt.Errorf("invalid color_scheme: %s", d.ColorScheme))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	validLevels := map[LogLevel]bool{
		LogLevelDebug: true,
		LogLevelInfo:  true,
		LogLevelWarn:  true,
		LogLevelError: true,
	}

	if !validLevels[l.Level] && l.Level != "" {
		return fmt.Errorf("invalid log level: %s", l.Level)
	}

	return nil
}

// Default returns a configuration with sensible default values.
func Default() *Config {
	cfg := &Config{
		Branch: BranchConfig{
			Name: "Main Branch",
		},
		Form: FormConfig{
			TodayTarget:         16000,
			TomorrowTarget:      0,
			CutoffHour:          16,
			SplitMode:           models.SplitByShare,
			RegularSharePercent: 50,
			RegularInStock:      16,
			MiniInStock:         20,
		},
		Display: DisplayConfig{
			ColorScheme: ColorSchemeGreenPhosphor,
			Currency:    "",
			DateFormat:  "2006-01-02",
		},
		Logging: LoggingConfig{
			Level: LogLevelInfo,
			File:  "logs/pattyplanner.log",
		},
	}
	cfg.Branch.SetSettings(models.DefaultBranchSettings())

	return cfg
}
