package ai

import "strings"

const bulletMarker = "* "

// ParseBulletList splits model output into list items. Lines starting with "* "
// lose the marker, other non-empty lines are kept as is. When text is not empty
// the result has at least one element; for empty text it is an empty, non-nil slice.
func ParseBulletList(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return []string{}
	}

	items := make([]string, 0)
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, bulletMarker) {
			items = append(items, strings.TrimSpace(line[len(bulletMarker):]))
			continue
		}
		if line != "" {
			items = append(items, line)
		}
	}

	if len(items) == 0 {
		return []string{trimmed}
	}
	return items
}
