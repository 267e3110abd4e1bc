// Package registry decides which renderer handles an event for a given
// rendering category.
//
// Components no longer register themselves when imported. The host builds a
// registry by running each component's SetupFunc in a known order:
//
//	reg, err := registry.Build(
//		catalog.Notes,
//		catalog.Media,
//		cfg.Setup(),
//	)
//
//	h, ok := reg.Resolve(ev, registry.CategoryFullCard)
//	if !ok {
//		// no handler; the UI shows its own generic view
//	}
//
// Ranking rule, applied per (kind, category) and again among fallbacks:
// highest priority wins, and on equal priority the most recent registration wins.
package registry
