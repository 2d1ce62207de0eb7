package usecase

import (
	"regexp"
	"strings"
)

var (
	signOffPattern      = regexp.MustCompile(`^Signed-off-by: .+ <.+@.+\..+>$`)
	cherryPickPattern   = regexp.MustCompile(`^\(cherry picked from commit [0-9a-f]{40}\)$`)
	backportPattern     = regexp.MustCompile(`^\(backported from commit [0-9a-f]{40}\)$`)
	backportNotePattern = regexp.MustCompile(`^\[\S+: .*\]$`)
)

// validSignOff checks a "Signed-off-by: Name <email>" line. The email
// must contain an "@" followed by a dot, with non-empty parts.
func validSignOff(line string) bool {
	return signOffPattern.MatchString(line)
}

// validCherryPick checks a "(cherry picked from commit <sha>)" line with
// a full 40-character hash
func validCherryPick(line string) bool {
	return cherryPickPattern.MatchString(line)
}

// validBackport checks a "(backported from commit <sha>)" line with a
// full 40-character hash
func validBackport(line string) bool {
	return backportPattern.MatchString(line)
}

// validBackportNote checks a "[token: explanation]" adaptation note
func validBackportNote(line string) bool {
	return backportNotePattern.MatchString(line)
}

// bugRefURL extracts the URL from a bug reference line (its second
// whitespace-delimited token) and verifies it carries the canonical
// tracker prefix. Malformed lines simply fail to match.
func bugRefURL(ref, prefix string) (string, bool) {
	fields := strings.Fields(ref)
	if len(fields) < 2 {
		return "", false
	}

	url := fields[1]
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}

	return url, true
}
