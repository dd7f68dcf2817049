// Package content loads the game catalog: challenges, quests, roles and scenarios.
package content

import (
	_ "embed"
	"os"

	"github.com/DaanHessen/predquest/internal/engine"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

//go:embed predtest.yaml
var predtest []byte

// Default returns the built-in PredTest catalog.
func Default() (*engine.Catalog, error) {
	cat, err := Parse(predtest)
	if err != nil {
		return nil, errors.Wrap(err, "built-in catalog")
	}
	return cat, nil
}

// Load reads a catalog file; an empty path means the built-in one.
func Load(path string) (*engine.Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read catalog")
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "catalog %s", path)
	}
	return cat, nil
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*engine.Catalog, error) {
	var cat engine.Catalog
	if err := yaml.UnmarshalStrict(data, &cat); err != nil {
		return nil, errors.Wrap(err, "parse catalog")
	}
	if err := cat.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid catalog")
	}
	return &cat, nil
}
