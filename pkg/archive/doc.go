// Package archive stores history exports outside the process.
//
// A Storage writes opaque objects under slash separated keys. Two backends
// are provided: LocalStorage confines writes to a base directory, and
// S3Storage writes to an Amazon S3 (or compatible) bucket through
// aws-sdk-go-v2. NewStorage picks one from Config:
//
//	store, err := archive.NewStorage(ctx, cfg)
//	if errors.Is(err, archive.ErrDisabled) {
//	    // archiving is off
//	}
//
// Archiver renders a session's history as the Summary/Full_Prompt CSV export
// and puts it under "<prefix>/<session id>/<timestamp>-history.csv":
//
//	a := archive.NewArchiver(store, archive.WithPrefix("exports"))
//	obj, err := a.Archive(ctx, sess.ID, sess.Mixer.Export())
//
// Archives are write-only. Nothing here reads history back.
//
// S3 failures are classified into ErrBucketNotFound, ErrAccessDenied,
// ErrRequestTimeout, ErrServiceUnavailable, ErrOperationTimeout and
// ErrOperationCanceled; use errors.Is to inspect them.
package archive
