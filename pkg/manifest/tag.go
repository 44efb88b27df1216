package manifest

import "strings"

// Tag selects the installer for a record. The set is closed: every switch
// over Tag in rigup handles all four values.
type Tag int

const (
	TagOfficial Tag = iota
	TagAUR
	TagGit
	TagPip
)

// Tags lists every tag in declaration order.
var Tags = []Tag{TagOfficial, TagAUR, TagGit, TagPip}

// ParseTag maps a manifest tag field to a Tag. Anything that is not an AUR,
// git or pip marker, including the empty string, is the official repository.
func ParseTag(s string) Tag {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A", "AUR":
		return TagAUR
	case "G", "GIT":
		return TagGit
	case "P", "PIP":
		return TagPip
	default:
		return TagOfficial
	}
}

// String returns the canonical name of the tag.
func (t Tag) String() string {
	switch t {
	case TagOfficial:
		return "OFFICIAL"
	case TagAUR:
		return "AUR"
	case TagGit:
		return "GIT"
	case TagPip:
		return "PIP"
	default:
		return "UNKNOWN"
	}
}

// Code is the short marker written in the first column of a CSV manifest.
func (t Tag) Code() string {
	switch t {
	case TagAUR:
		return "A"
	case TagGit:
		return "G"
	case TagPip:
		return "P"
	default:
		return ""
	}
}

// isKnownTag reports whether s names a tag explicitly. Unknown non-empty
// tags still parse as official but are worth a warning.
func isKnownTag(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "A", "AUR", "G", "GIT", "P", "PIP", "OFFICIAL":
		return true
	}
	return false
}
