package manifest

import (
	"path"
	"strings"
)

// Record is one manifest entry.
type Record struct {
	Tag Tag
	// RawTag is the tag text as written
	RawTag     string
	Identifier string
	// Annotation is the free-text description as written, quotes included
	Annotation string
	// Line is the 1-based source line, zero for structured formats
	Line int
	// Err is set when the entry could not be read as a record. Such records
	// stay in the manifest so the run reports them, but are never installed.
	Err error
}

// Manifest is the ordered record list for a run. It is not modified after
// parsing.
type Manifest struct {
	Records []Record
	// Source names where the manifest came from, for messages
	Source string
}

// Len is the progress denominator shown to the operator.
func (m *Manifest) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Records)
}

// Invalid returns the records that failed to parse, in manifest order.
func (m *Manifest) Invalid() []Record {
	if m == nil {
		return nil
	}
	var invalid []Record
	for _, r := range m.Records {
		if r.Err != nil {
			invalid = append(invalid, r)
		}
	}
	return invalid
}

// CountByTag tallies records per tag.
func (m *Manifest) CountByTag() map[Tag]int {
	counts := make(map[Tag]int, len(Tags))
	for _, r := range m.Records {
		counts[r.Tag]++
	}
	return counts
}

// Unquote strips one pair of matching quote characters wrapping the whole
// field. Anything else, including mismatched or lone quotes, is returned
// unchanged.
func Unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if first != last || (first != '"' && first != '\'') {
		return s
	}
	return s[1 : len(s)-1]
}

// RepoName derives a checkout directory name from a repository URL: the
// last path segment without a trailing ".git".
func RepoName(url string) string {
	trimmed := strings.TrimRight(url, "/")
	name := path.Base(trimmed)
	if i := strings.LastIndexAny(name, ":"); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, ".git")
}
