package validate

import (
	"strings"
	"unicode"
)

// CleanTitle trims a title and removes control characters.
func CleanTitle(title string) string {
	title = strings.TrimSpace(title)

	var sb strings.Builder
	for _, r := range title {
		if !unicode.IsControl(r) {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

// CleanText cleans multi-line text for storage.
func CleanText(text string) string {
	text = strings.TrimSpace(text)

	// Remove null bytes
	text = strings.ReplaceAll(text, "\x00", "")

	// Normalize line endings
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	return text
}

// CleanTag lowercases a tag and keeps only letters, digits and dashes.
func CleanTag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))

	var sb strings.Builder
	for _, r := range tag {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

// CleanTags cleans every tag, dropping empties and duplicates while keeping order.
func CleanTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = CleanTag(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// SafeFilename converts a string to a safe filename.
func SafeFilename(s string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		"\x00", "",
	)
	s = replacer.Replace(s)

	// Trim whitespace and dots from ends
	s = strings.Trim(s, " .")

	if len(s) > 200 {
		s = s[:200]
	}

	return s
}
