package model

import "strings"

// Tag prefixes recognized in commit message bodies. These are the Ubuntu
// kernel patch conventions: a BugLink trailer per referenced bug, a
// Signed-off-by attestation as the last substantive line, and a
// cherry-pick or backport provenance trailer.
const (
	bugRefPrefix     = "BugLink:"
	signOffPrefix    = "Signed-off-by:"
	cherryPickPrefix = "(cherry picked from commit"
	backportPrefix   = "(backported from commit"
)

// Classification is the commit category derived from the title prefix
type Classification string

const (
	// ClassSauce marks a distribution-only patch without an upstream counterpart
	ClassSauce Classification = "sauce"
	// ClassDistro marks packaging/config changes owned by the distribution
	ClassDistro Classification = "distro"
	// ClassOther marks everything else, typically upstream picks
	ClassOther Classification = "other"
)

const (
	saucePrefix  = "UBUNTU: SAUCE:"
	distroPrefix = "UBUNTU:"
)

// ExtractBugRefs returns every bug reference line found in the body, in
// first-appearance order with duplicates collapsed. The full line is
// returned, not just the URL, so validation can report the exact tag text.
func ExtractBugRefs(body string) []string {
	var refs []string
	seen := map[string]bool{}

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, bugRefPrefix) {
			continue
		}
		if seen[line] {
			continue
		}
		seen[line] = true
		refs = append(refs, line)
	}

	return refs
}

// ExtractSignOff returns the trailing sign-off line of the body, or an
// empty string if the last non-blank line is not a sign-off. Blank lines
// after the sign-off are tolerated; any other content after it is not.
func ExtractSignOff(body string) string {
	lines := strings.Split(body, "\n")

	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, signOffPrefix) {
			return line
		}
		return ""
	}

	return ""
}

// ExtractProvenance scans the body from the end for a cherry-pick or
// backport trailer and returns whichever is found first. A backport
// trailer is returned together with the line immediately preceding it,
// which by convention carries the bracketed adaptation note. At most one
// of cherryPick and backport is non-empty.
func ExtractProvenance(body string) (cherryPick, backport, note string) {
	lines := strings.Split(body, "\n")

	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])

		if strings.HasPrefix(line, cherryPickPrefix) {
			return line, "", ""
		}
		if strings.HasPrefix(line, backportPrefix) {
			if i > 0 {
				note = strings.TrimSpace(lines[i-1])
			}
			return "", line, note
		}
	}

	return "", "", ""
}

// Classify maps a commit title to its classification by longest-prefix
// match: "UBUNTU: SAUCE:" wins over "UBUNTU:".
func Classify(title string) Classification {
	switch {
	case strings.HasPrefix(title, saucePrefix):
		return ClassSauce
	case strings.HasPrefix(title, distroPrefix):
		return ClassDistro
	default:
		return ClassOther
	}
}
