package history

import "time"

// Record is one archived session summary.
type Record struct {
	SessionID     string    `json:"session_id"`
	DeviceID      string    `json:"device_id"`
	DistanceM     float64   `json:"distance_m"`
	AvgSpeedMps   float64   `json:"avg_speed_mps"`
	ActiveSeconds float64   `json:"active_seconds"`
	StartedAt     time.Time `json:"started_at"`
	EndedAt       time.Time `json:"ended_at"`
}
