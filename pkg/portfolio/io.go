package portfolio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SaveComparison writes a comparison to disk as JSON.
func SaveComparison(path string, cmp *Comparison) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for comparison: %w", err)
	}

	data, err := json.MarshalIndent(cmp, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling comparison: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing comparison: %w", err)
	}

	return nil
}

// LoadComparison reads a comparison from disk.
func LoadComparison(path string) (*Comparison, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading comparison: %w", err)
	}

	var cmp Comparison
	if err := json.Unmarshal(data, &cmp); err != nil {
		return nil, fmt.Errorf("unmarshaling comparison: %w", err)
	}

	return &cmp, nil
}
