package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/matjarly/matjarly/internal/clock"
	ownerdomain "github.com/matjarly/matjarly/internal/owner/domain"
	"github.com/matjarly/matjarly/pkg/db"
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
	Repo  ownerdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  ownerdomain.Repository
}

func NewService(p Params) ownerdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("owner.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Add(ctx context.Context, req ownerdomain.AddRequest) (*ownerdomain.Owner, error) {
	userID, err := snowflake.ParseString(strings.TrimSpace(req.UserID))
	if err != nil || userID == 0 {
		return nil, ownerdomain.ErrInvalidID
	}

	permissions, err := encodePermissions(req.Permissions)
	if err != nil {
		return nil, err
	}

	if req.IsPrimary {
		primary, err := s.repo.FindPrimary(ctx, s.db, req.StoreID)
		if err != nil {
			return nil, err
		}
		if primary != nil {
			return nil, ownerdomain.ErrPrimaryOwnerExists
		}
	}

	existing, err := s.repo.FindActiveByUser(ctx, s.db, req.StoreID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ownerdomain.ErrDuplicateOwner
	}

	now := s.clock.Now()
	owner := &ownerdomain.Owner{
		ID:             s.genID.Generate(),
		StoreID:        req.StoreID,
		UserID:         userID,
		Permissions:    permissions,
		IsPrimaryOwner: req.IsPrimary,
		Status:         ownerdomain.OwnerStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Insert(ctx, s.db, owner); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, ownerdomain.ErrDuplicateOwner
		}
		return nil, err
	}
	return owner, nil
}

func (s *Service) Get(ctx context.Context, storeID snowflake.ID, id string) (*ownerdomain.Owner, error) {
	ownerID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || ownerID == 0 {
		return nil, ownerdomain.ErrInvalidID
	}

	owner, err := s.repo.FindByID(ctx, s.db, storeID, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, ownerdomain.ErrNotFound
	}
	return owner, nil
}

func (s *Service) List(ctx context.Context, storeID snowflake.ID, req ownerdomain.ListRequest) ([]ownerdomain.Owner, pagination.Meta, error) {
	owners, total, err := s.repo.List(ctx, s.db, storeID, req)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return owners, pagination.BuildMeta(req.Pagination, total), nil
}

func (s *Service) Update(ctx context.Context, storeID snowflake.ID, req ownerdomain.UpdateRequest) (*ownerdomain.Owner, error) {
	owner, err := s.Get(ctx, storeID, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Permissions != nil {
		permissions, err := encodePermissions(*req.Permissions)
		if err != nil {
			return nil, err
		}
		owner.Permissions = permissions
	}
	if req.Status != nil {
		if owner.IsPrimaryOwner && *req.Status != ownerdomain.OwnerStatusActive {
			return nil, ownerdomain.ErrPrimaryOwnerProtected
		}
		owner.Status = *req.Status
	}

	owner.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, owner); err != nil {
		return nil, err
	}
	return owner, nil
}

// TransferPrimary demotes the current primary owner and promotes the
// target in one transaction, so the store never has two primaries.
func (s *Service) TransferPrimary(ctx context.Context, storeID snowflake.ID, newOwnerID string) error {
	targetID, err := snowflake.ParseString(strings.TrimSpace(newOwnerID))
	if err != nil || targetID == 0 {
		return ownerdomain.ErrInvalidID
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := s.repo.FindByID(ctx, tx, storeID, targetID)
		if err != nil {
			return err
		}
		if target == nil {
			return ownerdomain.ErrNotFound
		}
		if target.Status != ownerdomain.OwnerStatusActive {
			return ownerdomain.ErrPrimaryOwnerProtected
		}

		now := s.clock.Now()
		err = tx.Model(&ownerdomain.Owner{}).
			Where("store_id = ? AND is_primary_owner = ?", storeID, true).
			Updates(map[string]any{"is_primary_owner": false, "updated_at": now}).Error
		if err != nil {
			return err
		}

		target.IsPrimaryOwner = true
		target.UpdatedAt = now
		return s.repo.Update(ctx, tx, target)
	})
}

func (s *Service) Remove(ctx context.Context, storeID snowflake.ID, id string) error {
	owner, err := s.Get(ctx, storeID, id)
	if err != nil {
		return err
	}
	if owner.IsPrimaryOwner {
		return ownerdomain.ErrPrimaryOwnerProtected
	}
	return s.repo.Delete(ctx, s.db, storeID, owner.ID)
}

func (s *Service) ActiveForUser(ctx context.Context, storeID, userID snowflake.ID) (*ownerdomain.Owner, error) {
	return s.repo.FindActiveByUser(ctx, s.db, storeID, userID)
}

func encodePermissions(capabilities []string) (datatypes.JSON, error) {
	cleaned := make([]string, 0, len(capabilities))
	for _, capability := range capabilities {
		capability = strings.TrimSpace(capability)
		if capability == "" {
			continue
		}
		if !ownerdomain.IsKnownCapability(capability) {
			return nil, ownerdomain.ErrUnknownCapability
		}
		cleaned = append(cleaned, capability)
	}
	raw, err := json.Marshal(cleaned)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
