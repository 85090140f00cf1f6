package httpserver

import "errors"

var (
	// ErrStart wraps every failure returned by Server.Run.
	ErrStart = errors.New("httpserver: start failed")
	// ErrAlreadyRunning is joined with ErrStart when Run is called on a running server.
	ErrAlreadyRunning = errors.New("httpserver: already running")
	// ErrShutdown wraps a graceful shutdown that did not complete.
	ErrShutdown = errors.New("httpserver: shutdown failed")
)
