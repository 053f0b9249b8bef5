package lyrics

import (
	"strings"
	"unicode"
)

const shareLinkHost = "genius.com"

// Clean normalizes raw lyrics text. Repeated section headers such as "[Chorus]"
// are dropped after their first occurrence, share links are removed, runs of
// blank lines collapse to one and the result ends with a single newline.
// Repeated lyric lines are kept on purpose.
func Clean(raw string) string {
	seen := make(map[string]struct{})
	cleaned := make([]string, 0, strings.Count(raw, "\n")+1)
	for _, line := range strings.Split(raw, "\n") {
		key := strings.ToLower(strings.TrimSpace(line))
		if _, dup := seen[key]; dup && isSectionHeader(key) {
			continue
		}
		if isShareLink(key) {
			continue
		}
		cleaned = append(cleaned, strings.TrimRightFunc(line, unicode.IsSpace))
		if key != "" {
			seen[key] = struct{}{}
		}
	}

	final := make([]string, 0, len(cleaned))
	blank := false
	for _, line := range cleaned {
		if line == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		final = append(final, line)
	}

	return strings.TrimSpace(strings.Join(final, "\n")) + "\n"
}

func isSectionHeader(key string) bool {
	return strings.HasPrefix(key, "[") && strings.HasSuffix(key, "]")
}

func isShareLink(key string) bool {
	return strings.HasPrefix(key, "https://") && strings.Contains(key, shareLinkHost)
}
