package arcgallery

import "time"

// frameStats holds per-frame timing and wrap metrics.
// Only populated when Config.Debug is true.
type frameStats struct {
	frame     uint64
	placeTime time.Duration
	wraps     int
	current   float64
	target    float64
	forward   bool
}

// debugLog writes frame stats at debug level.
func (g *Gallery) debugLog(stats frameStats) {
	g.cfg.Logger.Debug("frame",
		"n", stats.frame,
		"place", stats.placeTime,
		"wraps", stats.wraps,
		"current", stats.current,
		"target", stats.target,
		"forward", stats.forward)
}
