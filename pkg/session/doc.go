// Package session maps browser cookies to mixer sessions.
//
// Every visitor gets an independent *mixer.Session holding its template,
// data and history. A Manager identifies visitors through a Transport (an
// HTTP-only cookie holding a random 32-byte token by default) and keeps the
// sessions in a Registry. Sessions expire after an idle timeout or a maximum
// lifetime, whichever comes first; expired entries are dropped on lookup and
// by the Manager's periodic sweep.
//
//	manager := session.New(
//	    session.WithConfig(cfg),
//	    session.WithFactory(func(id uuid.UUID) *mixer.Session {
//	        return mixer.New(mixer.WithLogger(log.With(logger.SessionID(id))))
//	    }),
//	)
//	defer manager.Close()
//
//	r.Use(manager.Middleware)
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    sess := session.MustFromContext(r.Context())
//	    rec, err := sess.Mixer.Generate(r.Context())
//	    ...
//	}
//
// Errors:
//
//   - ErrInvalidSession   - session without token or mixer, or a reused token
//   - ErrSessionExpired   - session has passed its expiry
//   - ErrSessionNotFound  - no well-formed, known token on the request
//   - ErrTokenGeneration  - the random source failed
//
// Nothing is persisted: a process restart drops every session.
package session
