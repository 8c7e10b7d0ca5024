package tracking

import "time"

// Session is one live tracking session bound to a device. The pipeline
// state itself lives in the session's tracker; this is the bookkeeping
// around it.
type Session struct {
	ID        string    `json:"id"`
	DeviceID  string    `json:"device_id"`
	StartedAt time.Time `json:"started_at"`
}

// Summary is the archived result of an ended session.
type Summary struct {
	SessionID     string    `json:"session_id"`
	DeviceID      string    `json:"device_id"`
	DistanceM     float64   `json:"distance_m"`
	AvgSpeedMps   float64   `json:"avg_speed_mps"`
	ActiveSeconds float64   `json:"active_seconds"`
	StartedAt     time.Time `json:"started_at"`
	EndedAt       time.Time `json:"ended_at"`
}

type CreateSessionRequest struct {
	DeviceID string `json:"device_id"`
}

// SensorErrorRequest reports a sensor-level failure from the device.
// Recognized codes: unsupported, permission_denied, position_unavailable,
// timeout.
type SensorErrorRequest struct {
	Code string `json:"code"`
}
