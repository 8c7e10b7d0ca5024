package tracker

// Tuning presets for common activities. Slow activities tolerate a longer
// debounce window and a steadier average; fast ones need the pipeline to
// react sooner.
var profiles = map[string]Options{
	"walking": {MinIntervalMs: 500, SmoothFactor: 0.25, AvgWarmupSeconds: 2},
	"running": {MinIntervalMs: 300, SmoothFactor: 0.3, AvgWarmupSeconds: 1},
	"driving": {MinIntervalMs: 100, SmoothFactor: 0.3, AvgWarmupSeconds: 0.5},
}

// ProfileOptions returns the tuning preset for the named activity profile,
// falling back to defaults for unknown names and for any field a preset
// leaves unset.
func ProfileOptions(name string) Options {
	o, ok := profiles[name]
	if !ok {
		return Options{}.withDefaults()
	}
	return o.withDefaults()
}
