package search

// Request describes one search through the Service.
type Request struct {
	Query string
	// Project restricts the search to projects with this display name or
	// source path. Empty means all projects.
	Project string
	// MaxPerProject caps the records returned per group; zero means no cap.
	MaxPerProject int
}

// Result is the outcome of a Service search.
type Result struct {
	Query        string        `json:"query"`
	Groups       []GroupResult `json:"groups"`
	TotalMatches int           `json:"total_matches"`
	Projects     int           `json:"projects_searched"`
}

// GroupResult is a Group with its uncapped match count.
type GroupResult struct {
	Group
	Total int `json:"total"`
}
