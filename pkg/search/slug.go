package search

import (
	"fmt"
	"regexp"
	"strings"
)

const maxSlugLength = 100

var (
	slugStripPattern  = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpacePattern  = regexp.MustCompile(`\s+`)
	slugHyphenPattern = regexp.MustCompile(`-+`)
)

// Slugify derives a URL slug from a display name. The name is lowercased,
// stripped to [a-z0-9 -], whitespace runs become single hyphens, repeated
// hyphens collapse, and the result is trimmed and truncated to 100
// characters. Names that strip to nothing (including purely non-ASCII
// titles) fall back to "building-{fallbackID}".
func Slugify(displayName string, fallbackID int) string {
	slug := strings.ToLower(strings.TrimSpace(displayName))
	slug = slugStripPattern.ReplaceAllString(slug, "")
	slug = slugSpacePattern.ReplaceAllString(slug, "-")
	slug = slugHyphenPattern.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-")
	}

	if slug == "" {
		return fmt.Sprintf("building-%d", fallbackID)
	}
	return slug
}

// ResolveDuplicates assigns final slugs to a sequence of base slugs taken in
// creation order. The first occurrence of a base slug keeps it unchanged;
// the nth occurrence gets "-{n}" appended (2nd -> "-2", 3rd -> "-3").
// Running it over an already-resolved sequence is a no-op because resolved
// slugs are distinct base slugs in their own right.
func ResolveDuplicates(candidateSlugs []string) []string {
	seen := make(map[string]int, len(candidateSlugs))
	final := make([]string, len(candidateSlugs))

	for i, slug := range candidateSlugs {
		seen[slug]++
		if seen[slug] == 1 {
			final[i] = slug
		} else {
			final[i] = fmt.Sprintf("%s-%d", slug, seen[slug])
		}
	}

	return final
}
