package graph

import (
	"context"
	"errors"

	"rz-parfum-be/internal/graph/model"
	"rz-parfum-be/internal/logger"
	"rz-parfum-be/internal/utils"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/ast"
	"go.uber.org/zap"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("admin access required")
)

// AuthDirective guards fields marked @auth. An ADMIN requirement is
// confirmed against the user store, not only the token claim.
func (r *Resolver) AuthDirective(ctx context.Context, obj any, next graphql.Resolver, role *model.Role) (any, error) {
	p, ok := utils.PrincipalFrom(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	required := model.RoleUser
	if role != nil {
		required = *role
	}
	if required != model.RoleAdmin {
		return next(ctx)
	}

	if p.Role != utils.RoleAdmin {
		return nil, ErrForbidden
	}
	admin, err := r.UserSvc.IsAdmin(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if !admin {
		logger.FromCtx(ctx).Warn("admin claim no longer held", zap.Uint("user_id", p.ID))
		return nil, ErrForbidden
	}
	return next(ctx)
}

// requiredRole reads the requires argument of an @auth application.
func requiredRole(d *ast.Directive) *model.Role {
	role := model.RoleUser
	if arg := d.Arguments.ForName("requires"); arg != nil && arg.Value != nil {
		role = model.Role(arg.Value.Raw)
	}
	return &role
}
