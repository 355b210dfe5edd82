package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/matjarly/matjarly/internal/auth/domain"
	"github.com/matjarly/matjarly/internal/auth/password"
	"github.com/matjarly/matjarly/internal/auth/token"
	userdomain "github.com/matjarly/matjarly/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log    *zap.Logger
	Users  userdomain.Service
	Issuer *token.Issuer
}

type Service struct {
	log    *zap.Logger
	users  userdomain.Service
	issuer *token.Issuer
}

func NewService(p Params) authdomain.Service {
	return &Service{
		log:    p.Log.Named("auth.service"),
		users:  p.Users,
		issuer: p.Issuer,
	}
}

func (s *Service) Login(ctx context.Context, req authdomain.LoginRequest) (*authdomain.LoginResult, error) {
	var storeID *snowflake.ID
	if raw := strings.TrimSpace(req.StoreID); raw != "" {
		parsed, err := snowflake.ParseString(raw)
		if err != nil || parsed == 0 {
			return nil, userdomain.ErrInvalidCredentials
		}
		storeID = &parsed
	}

	user, err := s.users.FindForLogin(ctx, req.Email, storeID)
	if err != nil {
		return nil, err
	}
	if !password.Verify(req.Password, user.PasswordHash) {
		return nil, userdomain.ErrInvalidCredentials
	}
	if !user.EmailVerified && user.Role != userdomain.RoleSuperadmin {
		return nil, userdomain.ErrEmailNotVerified
	}

	signed, expiresAt, err := s.issuer.Issue(user.ID, string(user.Role), user.StoreID)
	if err != nil {
		return nil, err
	}

	s.log.Info("login",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)
	return &authdomain.LoginResult{Token: signed, ExpiresAt: expiresAt, User: user}, nil
}

func (s *Service) Me(ctx context.Context, userID snowflake.ID) (*userdomain.User, error) {
	return s.users.Get(ctx, userID)
}

func (s *Service) ChangePassword(ctx context.Context, userID snowflake.ID, req authdomain.ChangePasswordRequest) error {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !password.Verify(req.CurrentPassword, user.PasswordHash) {
		return authdomain.ErrWrongPassword
	}

	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Save(ctx, user)
}
