package changelog

// Registry manages the available changelog generators, keyed by the
// generator reference used in the release configuration.
type Registry struct {
	generators map[string]Generator
}

// NewRegistry creates a registry with the built-in generator registered.
func NewRegistry() *Registry {
	r := &Registry{generators: make(map[string]Generator)}
	r.Register(New())
	return r
}

// Register adds a generator under its name.
func (r *Registry) Register(g Generator) {
	r.generators[g.Name()] = g
}

// Get returns the generator with the given reference, or nil if none is
// registered under it.
func (r *Registry) Get(name string) Generator {
	return r.generators[name]
}

// Names returns the list of registered generator references.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	return names
}
