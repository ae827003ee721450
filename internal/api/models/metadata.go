package models

// Enums lists the values accepted by path and query parameters.
type Enums struct {
	StationTypes  []string `json:"stationTypes"`
	Statuses      []string `json:"statuses"`
	WaterClasses  []string `json:"waterClasses"`
	Seasons       []string `json:"seasons"`
	Parameters    []string `json:"parameters"`
	WQIMethods    []string `json:"wqiMethods"`
	Regions       []string `json:"regions"`
	Districts     []string `json:"districts"`
	AlertSeverity []string `json:"alertSeverities"`
}
