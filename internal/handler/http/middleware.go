package http

import (
	"log/slog"
	"net/http"
	"strings"

	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/logger"
	"github.com/utafrali/storefront/pkg/middleware"
)

// RequireSession rejects requests without an X-Session-ID header with 401 and
// malformed ids with 400, then stores the id in the request context.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := strings.TrimSpace(r.Header.Get(middleware.SessionHeader))
		if sid == "" {
			httputil.WriteError(w, r, apperrors.Unauthorized(middleware.SessionHeader+" header is required"), slog.Default())
			return
		}
		if _, ok := httputil.ParseUUID(w, sid); !ok {
			return
		}
		ctx := logger.WithSessionID(r.Context(), sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalSession lets requests without X-Session-ID through untouched. A
// header that is present must hold a UUID, otherwise the request fails with
// 400 like under RequireSession.
func OptionalSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := strings.TrimSpace(r.Header.Get(middleware.SessionHeader))
		if sid == "" {
			next.ServeHTTP(w, r)
			return
		}
		if _, ok := httputil.ParseUUID(w, sid); !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(logger.WithSessionID(r.Context(), sid)))
	})
}

// sessionID returns the session the request acts on, or "" when none was sent.
func sessionID(r *http.Request) string {
	if sid := logger.SessionIDFromContext(r.Context()); sid != "" {
		return sid
	}
	return strings.TrimSpace(r.Header.Get(middleware.SessionHeader))
}

// ContentTypeJSON enforces that requests with a body have Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "UNSUPPORTED_MEDIA_TYPE", Message: "Content-Type must be application/json"},
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
