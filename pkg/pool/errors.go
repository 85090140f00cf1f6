package pool

import (
	"fmt"
	"strings"
)

// MissingColumnsError lists the tags that have no matching column, in tag order.
type MissingColumnsError struct {
	Tags []string
}

func (e *MissingColumnsError) Error() string {
	quoted := make([]string, len(e.Tags))
	for i, t := range e.Tags {
		quoted[i] = fmt.Sprintf("%q", t)
	}
	return "data source is missing columns: " + strings.Join(quoted, ", ")
}
