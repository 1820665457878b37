package types

// ---- Link state (retained) ----

// Level is the coarse state reported by a supervised service.
type Level string

const (
	LevelIdle     Level = "idle"
	LevelUp       Level = "up"
	LevelDegraded Level = "degraded"
	LevelError    Level = "error"
	LevelStopped  Level = "stopped"
)

// LinkState is published retained on "<service>/state".
type LinkState struct {
	Level  Level  `json:"level"`
	Status string `json:"status"` // short machine string, e.g. "link_established"
	Error  string `json:"error,omitempty"`
	TSms   int64  `json:"ts_ms"`
}

// SimEnabled is published retained on "sim/enabled" whenever the simulator
// reports that it is (or is no longer) running.
type SimEnabled struct {
	Enabled bool `json:"enabled"`
}

// Heartbeat is published on "heartbeat" once per configured interval.
type Heartbeat struct {
	UptimeMs   int64 `json:"uptime_ms"`
	Link       Level `json:"link"`
	SimEnabled bool  `json:"sim_enabled"`
}
