package registry

import "fmt"

// Build creates a registry and runs setups against it in order.
// The first failing setup aborts the build.
func Build(setups ...SetupFunc) (*Registry, error) {
	r := New()
	if err := r.Apply(setups...); err != nil {
		return nil, err
	}
	return r, nil
}

// Apply runs setups against an existing registry in order.
// Registrations made before a failing setup are kept.
func (r *Registry) Apply(setups ...SetupFunc) error {
	for i, setup := range setups {
		if setup == nil {
			return fmt.Errorf("setup %d is nil", i)
		}
		if err := setup(r); err != nil {
			return fmt.Errorf("setup %d failed: %w", i, err)
		}
	}
	return nil
}
