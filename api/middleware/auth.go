package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/candyland-dev/candyland-backend/api/responses"
	internalauth "github.com/candyland-dev/candyland-backend/internal/auth"
	pkgauth "github.com/candyland-dev/candyland-backend/pkg/auth"
	"github.com/candyland-dev/candyland-backend/pkg/config"
	pkgerrors "github.com/candyland-dev/candyland-backend/pkg/errors"
	"github.com/candyland-dev/candyland-backend/pkg/logger"
)

// StaffAuth admits only staff-realm tokens whose principal is still active,
// and seeds the context with the re-fetched user.
func StaffAuth(cfg config.JWTConfig, svc internalauth.Service, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := parseBearer(cfg, logg, w, r)
			if !ok {
				return
			}

			user, err := svc.ValidateStaff(r.Context(), claims)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), ctxStaffUser, user)
			if logg != nil {
				ctx = logg.WithPrincipal(ctx, string(pkgauth.RealmStaff), user.ID.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClientAuth admits only client-realm tokens whose principal is still active.
func ClientAuth(cfg config.JWTConfig, svc internalauth.Service, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := parseBearer(cfg, logg, w, r)
			if !ok {
				return
			}

			client, err := svc.ValidateClient(r.Context(), claims)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), ctxClient, client)
			if logg != nil {
				ctx = logg.WithPrincipal(ctx, string(pkgauth.RealmClient), client.ID.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// EitherAuth admits a valid token from either realm. Controllers read the
// context to learn which principal arrived.
func EitherAuth(cfg config.JWTConfig, svc internalauth.Service, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := parseBearer(cfg, logg, w, r)
			if !ok {
				return
			}

			switch claims.Realm {
			case pkgauth.RealmStaff:
				user, err := svc.ValidateStaff(r.Context(), claims)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, r, err)
					return
				}
				ctx := context.WithValue(r.Context(), ctxStaffUser, user)
				next.ServeHTTP(w, r.WithContext(ctx))
			case pkgauth.RealmClient:
				client, err := svc.ValidateClient(r.Context(), claims)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, r, err)
					return
				}
				ctx := context.WithValue(r.Context(), ctxClient, client)
				next.ServeHTTP(w, r.WithContext(ctx))
			default:
				responses.WriteError(r.Context(), logg, w, r,
					pkgerrors.New(pkgerrors.CodeUnauthorized, "token not valid for this realm"))
			}
		})
	}
}

func parseBearer(cfg config.JWTConfig, logg *logger.Logger, w http.ResponseWriter, r *http.Request) (*pkgauth.AccessTokenClaims, bool) {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		responses.WriteError(r.Context(), logg, w, r, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
		return nil, false
	}

	token := raw
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	if token == "" {
		responses.WriteError(r.Context(), logg, w, r, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
		return nil, false
	}

	claims, err := pkgauth.ParseAccessToken(cfg, token)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, r, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
		return nil, false
	}
	return claims, true
}
