package domain

// BuildDependentsGraph maps every workspace package to the set of in-repo
// packages that declare a direct dependency on it, under any of the four
// dependency blocks. Only one hop is computed; callers that need transitive
// reachability must walk the map themselves.
func BuildDependentsGraph(graph PackageGraph) map[string][]string {
	dependents := make(map[string][]string, len(graph.Packages))
	for _, pkg := range graph.Packages {
		dependents[pkg.Name] = []string{}
	}

	for _, pkg := range graph.Packages {
		seen := make(map[string]bool)
		for _, depType := range DependencyTypes() {
			for depName := range pkg.Manifest.Deps[depType] {
				if _, inRepo := dependents[depName]; !inRepo {
					continue // external dependency
				}
				if depName == pkg.Name || seen[depName] {
					continue
				}
				seen[depName] = true
				dependents[depName] = append(dependents[depName], pkg.Name)
			}
		}
	}

	return dependents
}
