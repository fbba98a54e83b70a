package middleware

import (
	"context"
	"net/http"

	"rz-parfum-be/internal/auth"
	"rz-parfum-be/internal/logger"
	"rz-parfum-be/internal/user"
	"rz-parfum-be/internal/utils"

	"go.uber.org/zap"
)

// TokenParser verifies access tokens. *user.Tokens satisfies it.
type TokenParser interface {
	ParseJWT(token string) (*user.CustomClaims, error)
}

// AuthMiddleware is optional auth: anonymous requests pass through, a valid
// token puts the user into the context and an invalid one is rejected.
func AuthMiddleware(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.ParseJWT(tokenStr)
			if err != nil {
				logger.FromCtx(r.Context()).Debug("rejecting access token", zap.Error(err))
				utils.WriteJSONError(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Email, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
			utils.WriteJSONErrorCode(w, "authentication required", utils.CodeUnauthenticated, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RoleChecker confirms a role against the user store. user.Service
// satisfies it.
type RoleChecker interface {
	IsAdmin(ctx context.Context, id uint) (bool, error)
}

// RequireAdmin implies RequireAuth. The token's role claim is confirmed
// against roles on every request so a demotion applies before the token
// expires.
func RequireAdmin(roles RoleChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if !utils.IsAdmin(ctx) {
				utils.WriteJSONErrorCode(w, "admin access required", utils.CodeAccessDenied, http.StatusForbidden)
				return
			}

			id, _ := utils.GetUserIDFromContext(ctx)
			ok, err := roles.IsAdmin(ctx, id)
			if err != nil {
				logger.FromCtx(ctx).Error("admin role lookup failed", zap.Uint("user_id", id), zap.Error(err))
				utils.WriteJSONErrorCode(w, "service temporarily unavailable", utils.CodeStoreUnavailable, http.StatusBadGateway)
				return
			}
			if !ok {
				logger.FromCtx(ctx).Warn("admin claim no longer held", zap.Uint("user_id", id))
				utils.WriteJSONErrorCode(w, "admin access required", utils.CodeAccessDenied, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}
