package middleware

import (
	"context"
	"net/http"
	"time"

	"inkwell/app/policy"
	"inkwell/app/services"

	"github.com/rs/zerolog"
)

type contextKey string

const actorKey contextKey = "actor"

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "inkwell_session"

// RequestLogger logs method, path, status and duration for every request.
func RequestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", sw.status).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}

// Recoverer recovers from panics and logs the error
func Recoverer(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error().
						Interface("panic", rec).
						Str("path", r.URL.Path).
						Msg("recovered from panic")
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// CurrentActor resolves the session cookie to an actor and stores it on
// the request context. Requests without a valid session carry the
// anonymous actor.
func CurrentActor(auth *services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := policy.Actor{}
			if cookie, err := r.Cookie(SessionCookie); err == nil {
				actor = auth.ActorFromToken(cookie.Value)
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// WithActor returns a context carrying the actor.
func WithActor(ctx context.Context, actor policy.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFrom extracts the actor from a request context. Contexts without
// one yield the anonymous actor.
func ActorFrom(ctx context.Context) policy.Actor {
	actor, _ := ctx.Value(actorKey).(policy.Actor)
	return actor
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
