package prompt

import (
	"fmt"
	"strings"
)

// Fill is the value chosen for one tag.
type Fill struct {
	Tag   string
	Value string
	// Missing marks a tag whose pool had no candidates; its placeholder is kept.
	Missing bool
}

// Label formats the sequence label prepended to every rendered text.
func Label(seq int) string {
	return fmt.Sprintf("No.%03d", seq)
}

// Substitute applies fills in tag order. Each fill replaces only the first
// remaining occurrence of its placeholder, scanning left to right; later
// occurrences of a repeated tag stay in the text. Later fills scan the text
// produced by earlier ones. A fill whose placeholder no longer occurs is a
// no-op.
func Substitute(template string, fills []Fill) string {
	out := template
	for _, f := range fills {
		if f.Missing {
			continue
		}
		out = strings.Replace(out, Placeholder(f.Tag), f.Value, 1)
	}
	return out
}

// Render substitutes fills into the template and prefixes the sequence label.
// It is a pure function of its arguments.
func Render(template string, fills []Fill, seq int) string {
	return Label(seq) + " " + Substitute(template, fills)
}
