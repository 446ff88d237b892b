package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"roadsense/internal/types"
)

// LoadRaw reads a raw-record CSV produced by the ingest stage.
func LoadRaw(path string) ([]types.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var records []types.RawRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

// SaveRaw writes raw records, creating parent directories as needed.
func SaveRaw(path string, records []types.RawRecord) error {
	return writeCSV(path, &records)
}

// LoadEnriched reads a classified CSV produced by the classify stage.
func LoadEnriched(path string) ([]types.EnrichedRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var records []types.EnrichedRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

// SaveEnriched writes classified records, creating parent directories as needed.
func SaveEnriched(path string, records []types.EnrichedRecord) error {
	return writeCSV(path, &records)
}

func writeCSV(path string, records interface{}) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(records, f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
