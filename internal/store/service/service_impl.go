package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/matjarly/matjarly/internal/clock"
	storedomain "github.com/matjarly/matjarly/internal/store/domain"
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
	Repo  storedomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  storedomain.Repository
}

func NewService(p Params) storedomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("store.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req storedomain.CreateRequest) (*storedomain.Store, error) {
	nameEn := strings.TrimSpace(req.NameEn)
	nameAr := strings.TrimSpace(req.NameAr)
	if nameEn == "" && nameAr == "" {
		return nil, storedomain.ErrInvalidName
	}

	slugValue := strings.TrimSpace(req.Slug)
	if slugValue == "" {
		slugValue = nameEn
		if slugValue == "" {
			slugValue = nameAr
		}
	}
	slugValue = slug.Make(slugValue)

	now := s.clock.Now()
	store := &storedomain.Store{
		ID:            s.genID.Generate(),
		NameAr:        nameAr,
		NameEn:        nameEn,
		DescriptionAr: strings.TrimSpace(req.DescriptionAr),
		DescriptionEn: strings.TrimSpace(req.DescriptionEn),
		Slug:          slugValue,
		Status:        storedomain.StoreStatusActive,
		Phone:         strings.TrimSpace(req.Phone),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Address:       strings.TrimSpace(req.Address),
		Settings:      normalizeSettings(req.Settings),
		AutoRenew:     true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.TrialDays > 0 {
		trialEnd := now.AddDate(0, 0, req.TrialDays)
		store.TrialEndsAt = &trialEnd
	}

	existing, err := s.repo.FindBySlug(ctx, s.db, store.Slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		store.Slug = fmt.Sprintf("%s-%s", store.Slug, store.ID.String()[:6])
	}

	if err := s.repo.Insert(ctx, s.db, store); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, storedomain.ErrSlugTaken
		}
		return nil, err
	}
	return store, nil
}

func (s *Service) Get(ctx context.Context, id string) (*storedomain.Store, error) {
	storeID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || storeID == 0 {
		return nil, storedomain.ErrInvalidID
	}

	store, err := s.repo.FindByID(ctx, s.db, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, storedomain.ErrNotFound
	}
	return store, nil
}

func (s *Service) GetBySlug(ctx context.Context, slugValue string) (*storedomain.Store, error) {
	store, err := s.repo.FindBySlug(ctx, s.db, slugValue)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, storedomain.ErrNotFound
	}
	return store, nil
}

func (s *Service) List(ctx context.Context, req storedomain.ListRequest) ([]storedomain.Store, pagination.Meta, error) {
	stores, total, err := s.repo.List(ctx, s.db, req)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return stores, pagination.BuildMeta(req.Pagination, total), nil
}

func (s *Service) Update(ctx context.Context, req storedomain.UpdateRequest) (*storedomain.Store, error) {
	store, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.NameAr != nil {
		store.NameAr = strings.TrimSpace(*req.NameAr)
	}
	if req.NameEn != nil {
		store.NameEn = strings.TrimSpace(*req.NameEn)
	}
	if store.NameAr == "" && store.NameEn == "" {
		return nil, storedomain.ErrInvalidName
	}
	if req.DescriptionAr != nil {
		store.DescriptionAr = strings.TrimSpace(*req.DescriptionAr)
	}
	if req.DescriptionEn != nil {
		store.DescriptionEn = strings.TrimSpace(*req.DescriptionEn)
	}
	if req.Phone != nil {
		store.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		store.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Address != nil {
		store.Address = strings.TrimSpace(*req.Address)
	}
	if req.LogoURL != nil {
		store.LogoURL = strings.TrimSpace(*req.LogoURL)
	}
	if req.Settings != nil {
		store.Settings = normalizeSettings(req.Settings)
	}

	store.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, store); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Service) SetStatus(ctx context.Context, id string, status storedomain.StoreStatus, reason storedomain.StatusReason) (*storedomain.Store, error) {
	switch status {
	case storedomain.StoreStatusActive, storedomain.StoreStatusInactive, storedomain.StoreStatusSuspended:
	default:
		return nil, storedomain.ErrInvalidStatus
	}

	store, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	store.Status = status
	if status == storedomain.StoreStatusActive {
		store.StatusReason = ""
	} else {
		store.StatusReason = reason
	}
	store.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, store); err != nil {
		return nil, err
	}

	s.log.Info("store status changed",
		zap.String("store_id", store.ID.String()),
		zap.String("status", string(status)),
		zap.String("reason", string(store.StatusReason)),
	)
	return store, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	store, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, store.ID)
}

func normalizeSettings(input map[string]any) datatypes.JSONMap {
	output := datatypes.JSONMap{}
	for key, value := range input {
		if key == "" {
			continue
		}
		output[key] = value
	}
	return output
}
