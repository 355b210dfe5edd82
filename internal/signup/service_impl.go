package signup

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/matjarly/matjarly/internal/auth/password"
	"github.com/matjarly/matjarly/internal/clock"
	"github.com/matjarly/matjarly/internal/config"
	ownerdomain "github.com/matjarly/matjarly/internal/owner/domain"
	"github.com/matjarly/matjarly/internal/signup/domain"
	storedomain "github.com/matjarly/matjarly/internal/store/domain"
	userdomain "github.com/matjarly/matjarly/internal/user/domain"
	"github.com/matjarly/matjarly/internal/verification"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	Config       config.Config
	GenID        *snowflake.Node
	Clock        clock.Clock
	Stores       storedomain.Repository
	Owners       ownerdomain.Repository
	Users        userdomain.Repository
	Verification verification.Service
}

type service struct {
	db           *gorm.DB
	log          *zap.Logger
	cfg          config.Config
	genID        *snowflake.Node
	clock        clock.Clock
	stores       storedomain.Repository
	owners       ownerdomain.Repository
	users        userdomain.Repository
	verification verification.Service
}

func NewService(p Params) domain.Service {
	return &service{
		db:           p.DB,
		log:          p.Log.Named("signup.service"),
		cfg:          p.Config,
		genID:        p.GenID,
		clock:        p.Clock,
		stores:       p.Stores,
		owners:       p.Owners,
		users:        p.Users,
		verification: p.Verification,
	}
}

// Signup works against the repositories directly so that store, owner
// and admin account land in a single transaction.
func (s *service) Signup(ctx context.Context, req domain.Request) (*domain.Result, error) {
	nameAr := strings.TrimSpace(req.StoreNameAr)
	nameEn := strings.TrimSpace(req.StoreNameEn)
	if nameAr == "" && nameEn == "" {
		return nil, domain.ErrInvalidRequest
	}

	email := userdomain.NormalizeEmail(req.Email)

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	trialEnd := now.AddDate(0, 0, s.cfg.TrialDays)

	slugSource := nameEn
	if slugSource == "" {
		slugSource = nameAr
	}

	store := &storedomain.Store{
		ID:          s.genID.Generate(),
		NameAr:      nameAr,
		NameEn:      nameEn,
		Slug:        slug.Make(slugSource),
		Status:      storedomain.StoreStatusActive,
		Email:       email,
		Phone:       strings.TrimSpace(req.Phone),
		Settings:    datatypes.JSONMap{},
		TrialEndsAt: &trialEnd,
		AutoRenew:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	user := &userdomain.User{
		ID:           s.genID.Generate(),
		Role:         userdomain.RoleAdmin,
		StoreID:      &store.ID,
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Phone:        strings.TrimSpace(req.Phone),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	permissions, err := json.Marshal(ownerdomain.AllCapabilities())
	if err != nil {
		return nil, err
	}
	owner := &ownerdomain.Owner{
		ID:             s.genID.Generate(),
		StoreID:        store.ID,
		UserID:         user.ID,
		Permissions:    datatypes.JSON(permissions),
		IsPrimaryOwner: true,
		Status:         ownerdomain.OwnerStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.stores.FindBySlug(ctx, tx, store.Slug)
		if err != nil {
			return err
		}
		if existing != nil {
			store.Slug = store.Slug + "-" + store.ID.String()[:6]
		}

		conflicts, err := s.users.CountEmailConflicts(ctx, tx, user.Role, user.StoreID, email, 0)
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return userdomain.ErrDuplicateEmail
		}

		if err := s.stores.Insert(ctx, tx, store); err != nil {
			return err
		}
		if err := s.users.Insert(ctx, tx, user); err != nil {
			return err
		}
		return s.owners.Insert(ctx, tx, owner)
	})
	if err != nil {
		return nil, err
	}

	// Verification email failure should not roll back provisioning;
	// the client can hit resend.
	if err := s.verification.SendSignupOTP(ctx, user.ID); err != nil {
		s.log.Warn("send signup otp", zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	s.log.Info("store provisioned",
		zap.String("store_id", store.ID.String()),
		zap.String("slug", store.Slug),
	)
	return &domain.Result{Store: store, User: user}, nil
}
