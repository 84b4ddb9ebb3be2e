package project

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/rpggio/ccsearch/internal/domain/record"
)

const unknownName = "unknown"

// Project is one log file and the records decoded from it.
type Project struct {
	SourcePath  string          `json:"source_path"`
	DisplayName string          `json:"display_name"`
	ModTime     time.Time       `json:"mod_time"`
	Records     []record.Record `json:"-"`
	// LoadErr is set when the file could not be read as a whole; Records is
	// then empty.
	LoadErr error `json:"-"`
}

// ProjectSummary is a lightweight representation for listing
type ProjectSummary struct {
	DisplayName string              `json:"display_name"`
	SourcePath  string              `json:"source_path"`
	ModTime     time.Time           `json:"mod_time"`
	RecordCount int                 `json:"record_count"`
	Kinds       map[record.Kind]int `json:"kinds,omitempty"`
	LoadError   string              `json:"load_error,omitempty"`
}

// Summary counts the records of p by kind.
func (p Project) Summary() ProjectSummary {
	s := ProjectSummary{
		DisplayName: p.DisplayName,
		SourcePath:  p.SourcePath,
		ModTime:     p.ModTime,
		RecordCount: len(p.Records),
	}
	if len(p.Records) > 0 {
		s.Kinds = make(map[record.Kind]int, 4)
		for _, r := range p.Records {
			s.Kinds[r.Kind()]++
		}
	}
	if p.LoadErr != nil {
		s.LoadError = p.LoadErr.Error()
	}
	return s
}

// DisplayName derives a project name from a log path: the name of the
// directory holding the file. Paths with fewer than two segments yield
// "unknown".
func DisplayName(path string) string {
	segments := strings.Split(filepath.ToSlash(path), "/")
	if len(segments) < 2 {
		return unknownName
	}
	return segments[len(segments)-2]
}

// Snapshot is an immutable result of one load.
type Snapshot struct {
	Root       string    `json:"root"`
	Limit      int       `json:"limit"`
	Candidates int       `json:"candidates"`
	Projects   []Project `json:"projects"`
	LoadedAt   time.Time `json:"loaded_at"`
}

// Failed returns the projects whose file could not be read.
func (s *Snapshot) Failed() []Project {
	var out []Project
	for _, p := range s.Projects {
		if p.LoadErr != nil {
			out = append(out, p)
		}
	}
	return out
}

// RecordCount returns the number of records across all projects.
func (s *Snapshot) RecordCount() int {
	n := 0
	for _, p := range s.Projects {
		n += len(p.Records)
	}
	return n
}
