// Package search runs case-insensitive substring queries over loaded
// projects.
package search

import (
	"strings"

	"github.com/rpggio/ccsearch/internal/domain/project"
	"github.com/rpggio/ccsearch/internal/domain/record"
)

// Group holds the matching records of one project, in file order.
type Group struct {
	DisplayName string          `json:"display_name"`
	SourcePath  string          `json:"source_path"`
	Records     []record.Record `json:"-"`
}

// Search returns, for each project in order, the records with a text
// fragment containing query, ignoring case. Projects without matches are
// omitted. An empty query matches every record that has at least one
// fragment; callers that want "no results" for an empty query must check
// for it themselves.
func Search(projects []project.Project, query string) []Group {
	needle := strings.ToLower(query)
	var groups []Group
	for _, p := range projects {
		var matched []record.Record
		for _, r := range p.Records {
			if Matches(r, needle) {
				matched = append(matched, r)
			}
		}
		if len(matched) > 0 {
			groups = append(groups, Group{
				DisplayName: p.DisplayName,
				SourcePath:  p.SourcePath,
				Records:     matched,
			})
		}
	}
	return groups
}

// Matches reports whether any fragment of r contains the already lowercased
// needle.
func Matches(r record.Record, needle string) bool {
	_, ok := MatchingFragment(r, needle)
	return ok
}

// MatchingFragment returns the first fragment of r containing the already
// lowercased needle.
func MatchingFragment(r record.Record, needle string) (string, bool) {
	for _, fragment := range r.TextFragments() {
		if strings.Contains(strings.ToLower(fragment), needle) {
			return fragment, true
		}
	}
	return "", false
}
