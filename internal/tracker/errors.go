package tracker

import (
	"errors"
	"fmt"
)

// Sensor failures reported by the device. They are surfaced to callers
// as-is; the pipeline never retries on their behalf.
var (
	ErrSensorUnsupported   = errors.New("positioning sensor unsupported")
	ErrPermissionDenied    = errors.New("position permission denied")
	ErrPositionUnavailable = errors.New("position unavailable")
	ErrSensorTimeout       = errors.New("position request timed out")
)

// SensorError maps a wire-level error code from the device to its sentinel.
func SensorError(code string) error {
	switch code {
	case "unsupported":
		return ErrSensorUnsupported
	case "permission_denied":
		return ErrPermissionDenied
	case "position_unavailable":
		return ErrPositionUnavailable
	case "timeout":
		return ErrSensorTimeout
	default:
		return fmt.Errorf("unknown sensor error %q", code)
	}
}
