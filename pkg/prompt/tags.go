package prompt

import (
	"regexp"
	"strings"
)

var (
	tagPattern = regexp.MustCompile(`\[(.*?)\]`)
	newlines   = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// ExtractTags returns the unique tag names of the template in order of first occurrence.
// The result is empty, never nil, when the template contains no tags.
func ExtractTags(template string) []string {
	matches := tagPattern.FindAllStringSubmatch(template, -1)
	tags := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		tags = append(tags, m[1])
	}
	return tags
}

// Detect is ExtractTags that reports an empty result as ErrNoTagsDetected.
func Detect(template string) ([]string, error) {
	tags := ExtractTags(template)
	if len(tags) == 0 {
		return tags, ErrNoTagsDetected
	}
	return tags, nil
}

// Placeholder returns the bracketed form of a tag.
func Placeholder(tag string) string {
	return "[" + tag + "]"
}

// NormalizeNewlines rewrites CRLF and lone CR line breaks as LF.
// Rendered text must not contain CR, which CSV readers fold into LF.
func NormalizeNewlines(s string) string {
	return newlines.Replace(s)
}
