// Package config loads optional YAML defaults for the planbook commands.
package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries tool-wide defaults. Every field has a working zero-config
// fallback applied by Normalize, so a missing config file is not an error.
type Config struct {
	// CalendarSheet is the default worksheet name for calendar commands.
	CalendarSheet string `yaml:"calendar_sheet"`

	// ScheduleSheet is the default worksheet name for the gantt command.
	ScheduleSheet string `yaml:"schedule_sheet"`

	// ScheduleStartRow is the first data row of a project schedule sheet.
	// Vertex42-style templates put the first task on row 6.
	ScheduleStartRow int `yaml:"schedule_start_row"`

	// LogFile, if set, receives a copy of all log output.
	LogFile string `yaml:"log_file"`

	// ChartWidth and ChartHeight are the Chromium viewport used when
	// rendering chart images.
	ChartWidth  int `yaml:"chart_width"`
	ChartHeight int `yaml:"chart_height"`

	// SofficeBin is the LibreOffice binary used for best-effort PDF export.
	SofficeBin string `yaml:"soffice_bin"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		CalendarSheet:    "Calendar",
		ScheduleSheet:    "Project schedule",
		ScheduleStartRow: 6,
		LogFile:          "planbook.log",
		ChartWidth:       1200,
		ChartHeight:      800,
		SofficeBin:       "soffice",
	}
}

// Normalize fills missing or invalid fields with defaults so that partial
// config files behave correctly.
func (c *Config) Normalize() {
	d := Default()
	if c.CalendarSheet == "" {
		c.CalendarSheet = d.CalendarSheet
	}
	if c.ScheduleSheet == "" {
		c.ScheduleSheet = d.ScheduleSheet
	}
	if c.ScheduleStartRow <= 0 {
		c.ScheduleStartRow = d.ScheduleStartRow
	}
	if c.ChartWidth <= 0 {
		c.ChartWidth = d.ChartWidth
	}
	if c.ChartHeight <= 0 {
		c.ChartHeight = d.ChartHeight
	}
	if c.SofficeBin == "" {
		c.SofficeBin = d.SofficeBin
	}
}

// Load reads the YAML config at path. A missing file yields the defaults;
// an empty path skips the read entirely.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}
