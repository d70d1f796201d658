package cmd

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/monorelease/config"
)

var (
	// Global flags
	repoRoot   string
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "monorelease",
	Short: "Monorepo release versioning for JavaScript workspaces",
	Long: `A release-versioning tool for npm/yarn/pnpm workspaces.

Given a release plan (which packages get which new versions), monorelease
rewrites every dependent package's dependency ranges so they reference the
new versions while keeping the shape of each declaration (exact pin, caret,
tilde, workspace: linkage), bumps the released packages' own versions,
updates changelogs, and optionally commits the result.

The release policy (.monorelease/config.json) groups packages into linked
sets that are versioned in lockstep and ignore sets that are excluded from
versioning.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetLevel(logger.DebugLevel)
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&repoRoot, "root", "r", ".",
		"Path to the monorepo root")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath,
		"Path to the release configuration, relative to the root")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")
}
