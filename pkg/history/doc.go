// Package history keeps the generation history of one session.
//
// Records are listed newest first. Every record carries a sequence number
// that is one more than the number of records stored before it; Clear drops
// all records and the next sequence starts at 1 again. Records are never
// removed individually.
//
// The store derives the set of selections already taken, which the sampler
// consults to avoid repeats:
//
//	seq := store.NextSequence()
//	sel, err := smp.Sample(sizes, store.Used())
//	...
//	err = store.Append(history.Record{Sequence: seq, Selection: sel, ...})
//
// Export returns Summary/Full_Prompt pairs, and WriteCSV/ReadCSV serialize
// them as UTF-8 CSV with a byte order mark so spreadsheet applications detect
// the encoding.
package history
