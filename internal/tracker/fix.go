package tracker

// Fix is one raw reading from a device's positioning sensor. The timestamp
// is the sensor's own clock in milliseconds, not receipt time. Speed and
// accuracy are optional: a sensor cannot always derive a speed, and a fix
// without an accuracy estimate cannot be trusted at all.
type Fix struct {
	TimestampMs int64    `json:"timestamp_ms"`
	Lat         float64  `json:"lat"`
	Lon         float64  `json:"lon"`
	SpeedMps    *float64 `json:"speed_mps,omitempty"`
	AccuracyM   *float64 `json:"accuracy_m,omitempty"`
}

func (f Fix) nativeSpeed() (float64, bool) {
	if f.SpeedMps == nil || *f.SpeedMps < 0 {
		return 0, false
	}
	return *f.SpeedMps, true
}
