package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/matjarly/matjarly/internal/auth/password"
	"github.com/matjarly/matjarly/internal/clock"
	userdomain "github.com/matjarly/matjarly/internal/user/domain"
	"github.com/matjarly/matjarly/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  userdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  userdomain.Repository
}

func NewService(p Params) userdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("user.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req userdomain.CreateRequest) (*userdomain.User, error) {
	if !req.Role.Valid() {
		return nil, userdomain.ErrInvalidRole
	}
	if req.Role.StoreScoped() && req.StoreID == nil {
		return nil, userdomain.ErrStoreRequired
	}

	email := userdomain.NormalizeEmail(req.Email)
	if err := s.EmailAvailable(ctx, req.Role, req.StoreID, email, 0); err != nil {
		return nil, err
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	addresses, err := encodeAddresses(req.Addresses)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	user := &userdomain.User{
		ID:           s.genID.Generate(),
		Role:         req.Role,
		StoreID:      req.StoreID,
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Phone:        strings.TrimSpace(req.Phone),
		Addresses:    addresses,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Insert(ctx, s.db, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*userdomain.User, error) {
	user, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, userdomain.ErrNotFound
	}
	return user, nil
}

func (s *Service) List(ctx context.Context, req userdomain.ListRequest) ([]userdomain.User, pagination.Meta, error) {
	users, total, err := s.repo.List(ctx, s.db, req)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return users, pagination.BuildMeta(req.Pagination, total), nil
}

func (s *Service) Update(ctx context.Context, req userdomain.UpdateRequest) (*userdomain.User, error) {
	userID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || userID == 0 {
		return nil, userdomain.ErrInvalidID
	}

	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.StoreID != nil && (user.StoreID == nil || *user.StoreID != *req.StoreID) {
		return nil, userdomain.ErrNotFound
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Addresses != nil {
		addresses, err := encodeAddresses(*req.Addresses)
		if err != nil {
			return nil, err
		}
		user.Addresses = addresses
	}

	user.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) Delete(ctx context.Context, storeID *snowflake.ID, id string) error {
	userID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || userID == 0 {
		return userdomain.ErrInvalidID
	}

	user, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if storeID != nil && (user.StoreID == nil || *user.StoreID != *storeID) {
		return userdomain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, user.ID)
}

func (s *Service) FindForLogin(ctx context.Context, email string, storeID *snowflake.ID) (*userdomain.User, error) {
	candidates, err := s.repo.FindByEmail(ctx, s.db, userdomain.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	var fallback *userdomain.User
	for i := range candidates {
		candidate := &candidates[i]
		if storeID != nil {
			if candidate.StoreID != nil && *candidate.StoreID == *storeID {
				return candidate, nil
			}
			continue
		}
		if candidate.StoreID == nil {
			return candidate, nil
		}
		if fallback == nil {
			fallback = candidate
		}
	}
	if storeID == nil && fallback != nil {
		return fallback, nil
	}
	return nil, userdomain.ErrInvalidCredentials
}

func (s *Service) FindByResetTokenHash(ctx context.Context, hash string) (*userdomain.User, error) {
	return s.repo.FindByResetTokenHash(ctx, s.db, hash)
}

func (s *Service) Save(ctx context.Context, user *userdomain.User) error {
	user.UpdatedAt = s.clock.Now()
	return s.repo.Update(ctx, s.db, user)
}

func (s *Service) EmailAvailable(ctx context.Context, role userdomain.Role, storeID *snowflake.ID, email string, excludeID snowflake.ID) error {
	conflicts, err := s.repo.CountEmailConflicts(ctx, s.db, role, storeID, userdomain.NormalizeEmail(email), excludeID)
	if err != nil {
		return err
	}
	if conflicts > 0 {
		return userdomain.ErrDuplicateEmail
	}
	return nil
}

func encodeAddresses(entries []userdomain.AddressEntry) (datatypes.JSON, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
