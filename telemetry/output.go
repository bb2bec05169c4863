package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/fruitmerge/config"
)

// OutputManager writes session records to sessions.csv in an output directory.
// A nil *OutputManager is valid and discards everything.
type OutputManager struct {
	dir         string
	sessionFile *os.File

	// Track if the header has been written
	sessionHeaderWritten bool
}

// NewOutputManager creates the output directory and sessions.csv.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "sessions.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating sessions.csv: %w", err)
	}

	return &OutputManager{dir: dir, sessionFile: f}, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteSession appends a session record to sessions.csv.
func (om *OutputManager) WriteSession(stats SessionStats) error {
	if om == nil {
		return nil
	}

	records := []SessionStats{stats}

	if !om.sessionHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.sessionFile); err != nil {
			return fmt.Errorf("writing session: %w", err)
		}
		om.sessionHeaderWritten = true
		return nil
	}

	if err := gocsv.MarshalWithoutHeaders(records, om.sessionFile); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes the output files.
func (om *OutputManager) Close() error {
	if om == nil || om.sessionFile == nil {
		return nil
	}
	return om.sessionFile.Close()
}
