package entry

import "strings"

// ParseTags splits a comma-separated tag list. Fragments are trimmed and
// empty ones dropped; order and duplicates are kept. Blank input returns nil.
//
// Examples:
//   - "work, focus" returns ["work", "focus"]
//   - "a,,b, a" returns ["a", "b", "a"]
func ParseTags(input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	var tags []string
	for _, part := range strings.Split(input, ",") {
		if part = strings.TrimSpace(part); part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}
