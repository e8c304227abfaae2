package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"lendfold/internal/access"
)

// IdentityVerifier validates the session provider's token and returns the
// actor it vouches for. The portal's session/login system lives outside this
// service; by the time a request gets here, authentication already happened
// and the token is just the transport for the (actorId, actorRole) pair.
type IdentityVerifier interface {
	Verify(token string) (access.Actor, error)
}

type contextKeyActor struct{}

var ContextKeyActor = contextKeyActor{}

// GetActor retrieves the authenticated actor from the context.
func GetActor(ctx context.Context) (access.Actor, bool) {
	actor, ok := ctx.Value(ContextKeyActor).(access.Actor)
	return actor, ok
}

// WithActor injects an actor into the context. Used by tests that exercise
// handlers without minting tokens.
func WithActor(ctx context.Context, actor access.Actor) context.Context {
	return context.WithValue(ctx, ContextKeyActor, actor)
}

// RequireIdentity rejects requests without a valid identity token and puts
// the verified Actor into the request context.
func RequireIdentity(verifier IdentityVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(r.Context(), "unauthenticated request - missing token",
					"request_id", GetRequestID(r.Context()),
				)
				writeUnauthorized(w, "missing or invalid Authorization header")
				return
			}

			actor, err := verifier.Verify(token)
			if err != nil {
				logger.WarnContext(r.Context(), "unauthenticated request - invalid token",
					"error", err,
					"request_id", GetRequestID(r.Context()),
				)
				writeUnauthorized(w, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","message":"` + message + `"}`))
}
