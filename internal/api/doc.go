// Package api exposes mixer sessions over HTTP.
//
// Every /api route runs inside a cookie-bound session created on first use.
// Responses use a JSON envelope:
//
//	{"data": ..., "meta": {...}, "error": {"code": "...", "message": "...", "details": {...}}}
//
// Domain errors map to stable codes, for example ErrNotReady becomes
// 409 not_ready and a missing column set becomes 422 missing_columns with the
// absent tags under details.missing. The history export is served as a CSV
// attachment instead of JSON.
package api
