package cmd

import (
	"errors"
	"path/filepath"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/monorelease/config"
	"github.com/rios0rios0/monorelease/domain"
	"github.com/rios0rios0/monorelease/infrastructure/discovery"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the release configuration against the workspace",
	Long: `Discovers the workspace packages, loads the release configuration, and
reports every violation at once: malformed fields, glob expressions matching
no package, packages in more than one linked group, and ignored packages
whose dependents are not ignored.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		_, _, err := loadWorkspace()
		if err != nil {
			var validationErr *config.ValidationError
			if errors.As(err, &validationErr) {
				for _, violation := range validationErr.Violations {
					logger.Error(violation)
				}
			}
			return err
		}

		logger.Info("Release configuration is valid")
		return nil
	},
}

// loadWorkspace discovers the package graph and validates the configuration
// against it, surfacing advisories as warnings.
func loadWorkspace() (domain.PackageGraph, *config.Config, error) {
	graph, err := discovery.Find(repoRoot)
	if err != nil {
		return domain.PackageGraph{}, nil, err
	}
	logger.Debugf("Discovered %d package(s) using %q tooling", len(graph.Packages), graph.Tool)

	raw, err := config.Read(filepath.Join(repoRoot, configPath))
	if err != nil {
		return domain.PackageGraph{}, nil, err
	}

	cfg, advisories, err := config.Validate(raw, graph)
	for _, advisory := range advisories {
		logger.Warn(advisory)
	}
	if err != nil {
		return domain.PackageGraph{}, nil, err
	}

	return graph, cfg, nil
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
