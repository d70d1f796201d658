package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultPath is where the policy file lives, relative to the repo root.
var DefaultPath = filepath.Join(".monorelease", "config.json")

// WrittenConfig is the raw, author-supplied policy object as found on disk.
// Every field is kept as raw JSON so that validation can check each field's
// shape independently and report all problems in one pass. Nothing outside
// Validate consumes a WrittenConfig.
type WrittenConfig struct {
	Changelog                             json.RawMessage `json:"changelog,omitempty"`
	Access                                json.RawMessage `json:"access,omitempty"`
	Commit                                json.RawMessage `json:"commit,omitempty"`
	BaseBranch                            json.RawMessage `json:"baseBranch,omitempty"`
	Linked                                json.RawMessage `json:"linked,omitempty"`
	UpdateInternalDependencies            json.RawMessage `json:"updateInternalDependencies,omitempty"`
	Ignore                                json.RawMessage `json:"ignore,omitempty"`
	BumpVersionsWithWorkspaceProtocolOnly json.RawMessage `json:"bumpVersionsWithWorkspaceProtocolOnly,omitempty"`
	Experimental                          json.RawMessage `json:"experimental,omitempty"`
}

// Read loads a WrittenConfig from a JSON file. A missing file is not an
// error: the zero WrittenConfig validates to the default policy.
func Read(path string) (WrittenConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return WrittenConfig{}, nil
	}
	if err != nil {
		return WrittenConfig{}, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var raw WrittenConfig
	if unmarshalErr := json.Unmarshal(data, &raw); unmarshalErr != nil {
		return WrittenConfig{}, fmt.Errorf("failed to parse config file %q: %w", path, unmarshalErr)
	}
	return raw, nil
}

// present reports whether a raw field was actually written. An explicit
// `null` counts as unset.
func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
