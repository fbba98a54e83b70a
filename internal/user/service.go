package user

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"rz-parfum-be/internal/logger"

	"go.uber.org/zap"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ResetNotifier delivers a password reset token to its owner.
type ResetNotifier interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}

// LogNotifier writes reset tokens to the log. Meant for development.
type LogNotifier struct{}

func (LogNotifier) SendPasswordReset(ctx context.Context, email, token string) error {
	logger.FromCtx(ctx).Info("password reset requested",
		zap.String("email", email),
		zap.String("reset_token", token),
	)
	return nil
}

type Service interface {
	Register(ctx context.Context, email, password string) (string, User, error)
	Login(ctx context.Context, email, password string) (string, User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password, confirm string) error
	IsAdmin(ctx context.Context, id uint) (bool, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
}

type service struct {
	repo     Repository
	tokens   *Tokens
	notifier ResetNotifier
}

func NewService(repo Repository, tokens *Tokens, notifier ResetNotifier) Service {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &service{repo: repo, tokens: tokens, notifier: notifier}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateCredentials(email, password string) error {
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

func (s *service) Register(ctx context.Context, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx)
	email = normalizeEmail(email)

	if err := validateCredentials(email, password); err != nil {
		return "", User{}, err
	}

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", User{}, err
	}

	u, err := s.repo.Create(ctx, email, hashed, RoleUser)
	if err != nil {
		if !errors.Is(err, ErrEmailExists) {
			log.Error("failed to create user", zap.String("email", email), zap.Error(err))
		}
		return "", User{}, err
	}

	token, err := s.tokens.GenerateJWT(u.ID, string(u.Role), u.Email)
	if err != nil {
		log.Error("failed to generate jwt", zap.Uint("user_id", u.ID), zap.Error(err))
		return "", User{}, err
	}

	log.Info("register service completed",
		zap.Uint("user_id", u.ID),
		zap.String("email", email),
	)

	return token, u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx)
	email = normalizeEmail(email)

	u, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		log.Debug("login for unknown email")
		return "", User{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", User{}, err
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Debug("password not match", zap.Uint("user_id", u.ID))
		return "", User{}, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateJWT(u.ID, string(u.Role), u.Email)
	if err != nil {
		return "", User{}, err
	}
	return token, u, nil
}

// RequestPasswordReset succeeds for unknown emails without sending anything.
func (s *service) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	token, err := s.tokens.GenerateResetToken(u.ID, u.Email)
	if err != nil {
		return err
	}
	return s.notifier.SendPasswordReset(ctx, u.Email, token)
}

func (s *service) ResetPassword(ctx context.Context, token, password, confirm string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if password != confirm {
		return ErrPasswordMismatch
	}

	claims, err := s.tokens.ParseResetToken(token)
	if err != nil {
		return err
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, claims.UserID, hashed); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("password reset completed", zap.Uint("user_id", claims.UserID))
	return nil
}

func (s *service) IsAdmin(ctx context.Context, id uint) (bool, error) {
	u, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return u.IsAdmin(), nil
}

func (s *service) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return s.repo.FindByEmail(ctx, normalizeEmail(email))
}
