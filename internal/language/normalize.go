package language

import "strings"

// NormalizeTag lowercases a language tag and converts separators to "-".
// Blank or malformed values normalize to an empty string.
func NormalizeTag(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}

	trimmed = strings.ReplaceAll(trimmed, "_", "-")
	parts := strings.Split(trimmed, "-")
	subtags := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		for _, r := range part {
			if r < 'a' || r > 'z' {
				return ""
			}
		}
		subtags = append(subtags, part)
	}

	if len(subtags) == 0 {
		return ""
	}
	return strings.Join(subtags, "-")
}

// NormalizeCode returns the primary language subtag (for example, "en" from "en-US").
func NormalizeCode(raw string) string {
	tag := NormalizeTag(raw)
	if dash := strings.IndexByte(tag, '-'); dash >= 0 {
		return tag[:dash]
	}
	return tag
}
