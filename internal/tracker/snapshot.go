package tracker

// MpsToKmh converts meters per second to kilometers per hour.
const MpsToKmh = 3.6

// Snapshot is the published view of a session, written on the tick cadence
// so displays refresh at a steady rate regardless of fix arrival jitter.
// Speeds are nil until the pipeline has observed one, and the average stays
// nil until the active clock clears its warm-up threshold.
type Snapshot struct {
	Active        bool     `json:"active"`
	DistanceM     float64  `json:"distance_m"`
	SpeedMps      *float64 `json:"speed_mps,omitempty"`
	SpeedKmh      *float64 `json:"speed_kmh,omitempty"`
	AvgSpeedMps   *float64 `json:"avg_speed_mps,omitempty"`
	AvgSpeedKmh   *float64 `json:"avg_speed_kmh,omitempty"`
	ActiveSeconds float64  `json:"active_seconds"`
	LastKnownFix  *Fix     `json:"last_known_fix,omitempty"`
	Error         string   `json:"error,omitempty"`
}
