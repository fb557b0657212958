package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rohitvarshney-web/schengen-slots/internal/model"
)

// JSON-backed fixture file. Single file, human-readable, portable.
// Written by `schengen export`, read back as the demo data set.

func Load(p string) (*model.Fixture, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	var f model.Fixture
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	slots := make(map[string]model.Summary, len(f.Slots))
	for code, sum := range f.Slots {
		code = model.NormalizeCode(code)
		sum.CountryCode = code
		slots[code] = sum
	}
	f.Slots = slots
	for i := range f.Countries {
		f.Countries[i].Code = model.NormalizeCode(f.Countries[i].Code)
	}
	return &f, nil
}

func Save(p string, f *model.Fixture) error {
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if dir := filepath.Dir(p); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	if err := os.WriteFile(p, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
