package prep

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadOverrides reads a classification override file. An empty path
// returns the reviewed defaults for the track schema.
func LoadOverrides(path string) (Overrides, error) {
	if path == "" {
		return DefaultOverrides(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Overrides{}, fmt.Errorf("failed to read overrides file: %w", err)
	}

	var o Overrides
	if err := yaml.Unmarshal(raw, &o); err != nil {
		return Overrides{}, fmt.Errorf("failed to parse overrides file: %w", err)
	}

	if len(o.Categorical) == 0 {
		return Overrides{}, fmt.Errorf("overrides file %s lists no categorical columns", path)
	}
	return o, nil
}
