// Package mixer holds the state of one template-filling session and runs
// the generate cycle.
//
// A Session owns the template, the detected tags, the current data table,
// the candidate pool derived from both, and the history store. It replaces
// any process-wide state: callers construct one Session per user and drop it
// when done.
//
//	s := mixer.New(mixer.WithLogger(log))
//	if _, err := s.SetTemplate("Wearing [color] [item]"); err != nil { ... }
//	if _, err := s.LoadData(file, "clothes.csv"); err != nil { ... }
//	rec, err := s.Generate(ctx)
//	switch {
//	case errors.Is(err, sampler.ErrExhausted):
//	    // soft warning, nothing was recorded
//	case err != nil:
//	    ...
//	}
//
// The pool is rebuilt whenever the template or the data changes. While no
// valid pool exists (no tags, no data, or missing columns) Generate returns
// ErrNotReady.
//
// Generate samples an unused selection, renders it with the next sequence
// number and appends it to history only after rendering succeeds. A failed
// operation never changes history.
//
// All methods lock the session, so one Session may be shared by concurrent
// HTTP requests from the same user.
package mixer
