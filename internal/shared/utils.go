package shared

import (
	"regexp"
)

// issueKeyPattern matches Jira issue keys such as TEST-123. Keys are
// upper-case by definition; lower-case look-alikes are not keys.
var issueKeyPattern = regexp.MustCompile(`[A-Z][A-Z0-9]+-[0-9]+`)

// ExtractIssueKeys scans the given texts (branch names, commit messages)
// for Jira issue keys. Duplicates are dropped; first-seen order is kept.
func ExtractIssueKeys(texts ...string) []string {
	var keys []string
	seen := make(map[string]struct{})

	for _, text := range texts {
		for _, key := range issueKeyPattern.FindAllString(text, -1) {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
	}

	return keys
}
