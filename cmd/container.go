package cmd

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/monorelease/application"
	"github.com/rios0rios0/monorelease/domain"
	"github.com/rios0rios0/monorelease/infrastructure/changelog"
	"github.com/rios0rios0/monorelease/infrastructure/discovery"
	"github.com/rios0rios0/monorelease/infrastructure/gitops"
)

// buildContainer wires the persistence collaborators and the release service
// for a repository root.
func buildContainer(root string) (*dig.Container, error) {
	container := dig.New()

	providers := []any{
		changelog.NewRegistry,
		func() domain.ManifestWriter { return discovery.NewWriter(root) },
		func() domain.Committer { return gitops.NewCommitter() },
		func(registry *changelog.Registry) domain.ChangelogWriter {
			return changelog.NewWriter(root, registry)
		},
		application.NewReleaseService,
	}
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return nil, err
		}
	}

	return container, nil
}

// injectReleaseService resolves the fully wired release service.
func injectReleaseService(root string) (*application.ReleaseService, error) {
	container, err := buildContainer(root)
	if err != nil {
		return nil, err
	}

	var service *application.ReleaseService
	if err := container.Invoke(func(s *application.ReleaseService) {
		service = s
	}); err != nil {
		return nil, err
	}
	return service, nil
}
