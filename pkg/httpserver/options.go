package httpserver

import "log/slog"

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger. Nil discards logs.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithStartHook registers h to run with the bound address once the listener
// is open. Port 0 in Config.Addr is resolved by then. Nil hooks are ignored.
func WithStartHook(h func(addr string)) Option {
	return func(s *Server) {
		if h != nil {
			s.startHooks = append(s.startHooks, h)
		}
	}
}

// WithStopHook registers h to run after the first graceful shutdown.
// Nil hooks are ignored.
func WithStopHook(h func()) Option {
	return func(s *Server) {
		if h != nil {
			s.stopHooks = append(s.stopHooks, h)
		}
	}
}
