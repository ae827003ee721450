package models

// StartSimulationRequest is the body of POST /v1/simulation/start.
// A missing or zero interval keeps the configured one.
type StartSimulationRequest struct {
	IntervalSeconds int `json:"intervalSeconds"`
}

// SimulationStatus is the body of GET /v1/simulation.
type SimulationStatus struct {
	State           string         `json:"state"`
	IntervalSeconds int            `json:"intervalSeconds"`
	Stations        int            `json:"stations"`
	LastUpdate      *Timestamp     `json:"lastUpdate,omitempty"`
	Metrics         TickStatistics `json:"metrics"`
}

// TickStatistics summarizes ticks since startup.
type TickStatistics struct {
	TotalTicks           int64      `json:"totalTicks"`
	ManualTicks          int64      `json:"manualTicks"`
	TotalStationsUpdated int64      `json:"totalStationsUpdated"`
	TotalFailures        int64      `json:"totalFailures"`
	TotalSkipped         int64      `json:"totalSkipped"`
	LastTickAt           *Timestamp `json:"lastTickAt,omitempty"`
	LastTickDurationMs   int64      `json:"lastTickDurationMs"`
	AverageTickMs        int64      `json:"averageTickMs"`
}

// RefreshResponse is returned by start and refresh.
type RefreshResponse struct {
	Message         string    `json:"message"`
	Timestamp       Timestamp `json:"timestamp"`
	StationsUpdated int       `json:"stationsUpdated"`
	Failed          int       `json:"failed"`
	Skipped         int       `json:"skipped"`
	PollutionEvents int       `json:"pollutionEvents"`
}

// MessageResponse carries a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}
