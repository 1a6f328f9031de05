package store

// StatusInfo is one entry of the configured status catalog.
type StatusInfo struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Desc  string `json:"desc"`
	Color string `json:"color"`
}

// DeviceUpdate carries one report from a device. Nil pointers mark fields
// the reporter did not provide.
type DeviceUpdate struct {
	ID       string
	ShowName *string
	Using    *bool
	Status   *string
	Fields   map[string]any
}

// MetricCounters holds one path's visit counters across the five periods.
type MetricCounters struct {
	Daily   int64 `json:"daily"`
	Weekly  int64 `json:"weekly"`
	Monthly int64 `json:"monthly"`
	Yearly  int64 `json:"yearly"`
	Total   int64 `json:"total"`
}

// MetricsSnapshot groups the counters of every tracked path by period.
type MetricsSnapshot struct {
	Daily   map[string]int64 `json:"daily"`
	Weekly  map[string]int64 `json:"weekly"`
	Monthly map[string]int64 `json:"monthly"`
	Yearly  map[string]int64 `json:"yearly"`
	Total   map[string]int64 `json:"total"`
}
