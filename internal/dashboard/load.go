package dashboard

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/jonathan/cover-letter-dashboard/internal/schemas"
)

//go:embed mockdata.json
var mockData []byte

//go:embed mockdata.schema.json
var dataSchema []byte

var (
	defaultOnce sync.Once
	defaultData *Data
	defaultErr  error
)

// Load returns the built-in mock data. The embedded file is parsed once;
// every call returns a fresh copy.
func Load() (*Data, error) {
	defaultOnce.Do(func() {
		defaultData, defaultErr = Parse("mockdata.json", mockData)
	})
	if defaultErr != nil {
		return nil, defaultErr
	}
	return defaultData.Clone(), nil
}

// MustLoad is Load for package initialisation, panicking on failure.
func MustLoad() *Data {
	d, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load dashboard data: %v", err))
	}
	return d
}

// LoadFile reads dashboard data from a JSON file on disk.
// The file must satisfy the same schema as the built-in data.
func LoadFile(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dashboard data %s: %w", path, err)
	}
	return Parse(path, raw)
}

// Parse validates raw JSON against the dashboard schema and decodes it.
func Parse(name string, raw []byte) (*Data, error) {
	if err := schemas.ValidateJSONBytes("dashboard data", dataSchema, raw); err != nil {
		return nil, fmt.Errorf("invalid dashboard data %s: %w", name, err)
	}

	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to parse dashboard data %s: %w", name, err)
	}

	seen := make(map[string]bool, len(d.History))
	for _, row := range d.History {
		if seen[row.Key] {
			return nil, fmt.Errorf("invalid dashboard data %s: duplicate history key %q", name, row.Key)
		}
		seen[row.Key] = true
	}

	return &d, nil
}
