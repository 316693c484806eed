package schema

import (
	"path/filepath"
	"regexp"
	"strings"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether s is a full-match identifier.
func ValidIdentifier(s string) bool {
	return identPattern.MatchString(s)
}

// NameFromPath derives a message name from a schema file path by dropping
// the directory and the last extension: "msgs/Reading.msg" -> "Reading".
// The result is not validated.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
