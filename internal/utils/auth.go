package utils

import "context"

// RoleAdmin is the claim value granting dashboard access.
const RoleAdmin = "ADMIN"

type principalKey struct{}

// Principal is the authenticated caller of a request.
type Principal struct {
	ID    uint
	Email string
	Role  string
}

// SetUserContext attaches the caller resolved from a verified token.
func SetUserContext(ctx context.Context, id uint, email string, role string) context.Context {
	return context.WithValue(ctx, principalKey{}, Principal{ID: id, Email: email, Role: role})
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// GetUserIDFromContext reports false for anonymous requests.
func GetUserIDFromContext(ctx context.Context) (uint, bool) {
	p, ok := PrincipalFrom(ctx)
	return p.ID, ok
}

func GetUserEmailFromContext(ctx context.Context) string {
	p, _ := PrincipalFrom(ctx)
	return p.Email
}

func GetUserRoleFromContext(ctx context.Context) string {
	p, _ := PrincipalFrom(ctx)
	return p.Role
}

func IsAdmin(ctx context.Context) bool {
	return GetUserRoleFromContext(ctx) == RoleAdmin
}
