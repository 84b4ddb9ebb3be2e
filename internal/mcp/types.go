package mcp

type ListProjectsParams struct {
	Name string `json:"name,omitempty" jsonschema:"fuzzy filter on project display names"`
}

type ProjectItem struct {
	DisplayName string         `json:"display_name"`
	SourcePath  string         `json:"source_path"`
	ModifiedAt  string         `json:"modified_at"`
	RecordCount int            `json:"record_count"`
	Kinds       map[string]int `json:"kinds,omitempty"`
	LoadError   string         `json:"load_error,omitempty"`
}

type ListProjectsResult struct {
	Root     string        `json:"root"`
	LoadedAt string        `json:"loaded_at"`
	Projects []ProjectItem `json:"projects"`
}

type SearchRecordsParams struct {
	Query         string `json:"query" jsonschema:"case-insensitive substring to look for in record text"`
	Project       string `json:"project,omitempty" jsonschema:"restrict to the project with this display name or source path"`
	MaxPerProject int    `json:"max_per_project,omitempty" jsonschema:"maximum records returned per project (0 means no cap)"`
}

type RecordHit struct {
	Kind      string `json:"kind"`
	ID        string `json:"id,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Preview   string `json:"preview"`
	Snippet   string `json:"snippet"`
}

type ProjectHits struct {
	DisplayName string      `json:"display_name"`
	SourcePath  string      `json:"source_path"`
	Total       int         `json:"total"`
	Records     []RecordHit `json:"records"`
}

type SearchRecordsResult struct {
	Query            string        `json:"query"`
	TotalMatches     int           `json:"total_matches"`
	ProjectsSearched int           `json:"projects_searched"`
	Groups           []ProjectHits `json:"groups"`
}

type GetRecordParams struct {
	Project string `json:"project,omitempty" jsonschema:"project display name or source path (empty searches every project)"`
	ID      string `json:"id" jsonschema:"record uuid (leaf uuid for summaries)"`
}

type GetRecordResult struct {
	Project    string   `json:"project"`
	SourcePath string   `json:"source_path"`
	Kind       string   `json:"kind"`
	ID         string   `json:"id"`
	Timestamp  string   `json:"timestamp,omitempty"`
	Fragments  []string `json:"fragments"`
	// Raw is the record re-encoded in its log line shape.
	Raw string `json:"raw"`
}

type ReloadProjectsParams struct{}

type FailedFile struct {
	SourcePath string `json:"source_path"`
	Error      string `json:"error"`
}

type ReloadProjectsResult struct {
	Root       string       `json:"root"`
	Candidates int          `json:"candidates"`
	Loaded     int          `json:"loaded"`
	Records    int          `json:"records"`
	Failed     []FailedFile `json:"failed,omitempty"`
	LoadedAt   string       `json:"loaded_at"`
}

type GetRecentActivityParams struct {
	Limit   int    `json:"limit,omitempty" jsonschema:"maximum entries to return (default 20, max 200)"`
	Project string `json:"project,omitempty" jsonschema:"only entries for this project display name"`
	Type    string `json:"type,omitempty" jsonschema:"only entries of this type: projects_loaded, file_dropped, search_performed or record_viewed"`
}

type ActivityItem struct {
	ID         int64  `json:"id"`
	Type       string `json:"type"`
	Project    string `json:"project,omitempty"`
	SourcePath string `json:"source_path,omitempty"`
	Query      string `json:"query,omitempty"`
	Summary    string `json:"summary"`
	Details    string `json:"details,omitempty"`
	ItemCount  int    `json:"item_count"`
	CreatedAt  string `json:"created_at"`
}

type GetRecentActivityResult struct {
	Activities []ActivityItem `json:"activities"`
}
