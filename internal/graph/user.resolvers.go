package graph

import (
	"context"

	"rz-parfum-be/internal/graph/model"
	"rz-parfum-be/internal/logger"
	"rz-parfum-be/internal/utils"

	"go.uber.org/zap"
)

// Signup returns the access token in the payload. No cookie is set, the
// client sends it back as a bearer token.
func (r *mutationResolver) Signup(ctx context.Context, input model.CredentialsInput) (*model.AuthPayload, error) {
	token, u, err := r.UserSvc.Register(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}
	return &model.AuthPayload{Token: token, User: toGraphQLUser(u)}, nil
}

func (r *mutationResolver) Login(ctx context.Context, input model.CredentialsInput) (*model.AuthPayload, error) {
	token, u, err := r.UserSvc.Login(ctx, input.Email, input.Password)
	if err != nil {
		logger.FromCtx(ctx).Debug("graphql login rejected", zap.Error(err))
		return nil, err
	}
	return &model.AuthPayload{Token: token, User: toGraphQLUser(u)}, nil
}

func (r *mutationResolver) RequestPasswordReset(ctx context.Context, email string) (bool, error) {
	if err := r.UserSvc.RequestPasswordReset(ctx, email); err != nil {
		return false, err
	}
	return true, nil
}

func (r *mutationResolver) ResetPassword(ctx context.Context, input model.ResetPasswordInput) (bool, error) {
	if err := r.UserSvc.ResetPassword(ctx, input.Token, input.Password, input.Confirm); err != nil {
		return false, err
	}
	return true, nil
}

func (r *queryResolver) Me(ctx context.Context) (*model.User, error) {
	u, err := r.UserSvc.GetUserByEmail(ctx, utils.GetUserEmailFromContext(ctx))
	if err != nil {
		return nil, err
	}
	return toGraphQLUser(u), nil
}
