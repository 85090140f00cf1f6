package prompt

import "errors"

// ErrNoTagsDetected is returned by Detect when the template has no bracketed spans.
var ErrNoTagsDetected = errors.New("no [ ] tags detected in template")
