package application

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rios0rios0/monorelease/domain"
)

// ReadPlan loads a release plan file: a JSON array of {name, version} pairs
// produced by the planning stage. The plan is taken as-is; checkPlan decides
// later whether it is consistent with the workspace and the policy.
func ReadPlan(path string) ([]domain.VersionUpdate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read release plan %q: %w", path, err)
	}

	var plan []domain.VersionUpdate
	if unmarshalErr := json.Unmarshal(data, &plan); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse release plan %q: %w", path, unmarshalErr)
	}
	if len(plan) == 0 {
		return nil, fmt.Errorf("release plan %q is empty", path)
	}
	return plan, nil
}
