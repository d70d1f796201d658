package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rios0rios0/monorelease/application"
)

var (
	planPath string
	dryRun   bool
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply a computed release plan to the workspace",
	Long: `Reads a release plan (a JSON array of {"name", "version"} pairs), rewrites
every manifest that declares a dependency on a planned package so the range
shape is preserved around the new version, bumps the planned packages' own
versions, updates their changelogs, and commits when the policy asks for it.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		graph, cfg, err := loadWorkspace()
		if err != nil {
			return err
		}

		plan, err := application.ReadPlan(planPath)
		if err != nil {
			return err
		}

		service, err := injectReleaseService(repoRoot)
		if err != nil {
			return err
		}

		return service.Run(graph, cfg, plan, application.RunOptions{
			RepoRoot: repoRoot,
			DryRun:   dryRun,
		})
	},
}

func init() {
	applyCmd.Flags().StringVarP(&planPath, "plan", "p", "", "Path to the release plan JSON file")
	applyCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be written without making changes")
	_ = applyCmd.MarkFlagRequired("plan")

	rootCmd.AddCommand(applyCmd)
}
