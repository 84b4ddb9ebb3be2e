package project

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// nameSource implements fuzzy.Source over project display names.
type nameSource []Project

func (s nameSource) String(i int) string { return s[i].DisplayName }

func (s nameSource) Len() int { return len(s) }

// FilterByName keeps the projects whose display name fuzzily matches query,
// best match first; ties keep snapshot order. A blank query returns projects
// unchanged.
func FilterByName(projects []Project, query string) []Project {
	query = strings.TrimSpace(query)
	if query == "" {
		return projects
	}
	matches := fuzzy.FindFrom(query, nameSource(projects))
	out := make([]Project, 0, len(matches))
	for _, m := range matches {
		out = append(out, projects[m.Index])
	}
	return out
}
