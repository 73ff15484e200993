package cache

import (
	"log/slog"

	"git.home.luguber.info/inful/mdpress/internal/logfields"
)

// Decision is the result of the cache gate for one build pass.
type Decision struct {
	Enabled bool
	Reason  string
}

// Decide determines whether incremental caching applies to this pass.
//
// Disabled wins in order: the force flag (marker not consulted), a marker
// whose URL differs from the resolved one (absolute links in prior output
// are stale). The decision is made exactly once per pass; watch-triggered
// rebuilds call Decide again since the marker may have been rewritten.
func Decide(root, resolvedURL string, force bool, logger *slog.Logger) Decision {
	if logger == nil {
		logger = slog.Default()
	}
	if force {
		return Decision{Enabled: false, Reason: "caching disabled"}
	}

	marker, err := LoadMarker(root)
	if err != nil {
		// An unreadable marker is treated as absent; the pass proceeds
		// with caching enabled as for a first-ever build.
		logger.Warn("Failed to read cache marker", logfields.Error(err))
		return Decision{Enabled: true, Reason: "cache marker unreadable"}
	}
	if marker != nil && marker.URL != resolvedURL {
		logger.Info("Site URL changed since last build, caching disabled for this pass",
			slog.String("previous_url", marker.URL), logfields.URL(resolvedURL))
		return Decision{Enabled: false, Reason: "site URL changed"}
	}
	return Decision{Enabled: true, Reason: "cache marker matches"}
}
