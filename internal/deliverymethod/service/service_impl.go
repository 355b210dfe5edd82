package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/matjarly/matjarly/internal/cache"
	"github.com/matjarly/matjarly/internal/clock"
	dmdomain "github.com/matjarly/matjarly/internal/deliverymethod/domain"
	"github.com/matjarly/matjarly/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  dmdomain.Repository
	Cache cache.StorefrontCache
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  dmdomain.Repository
	cache cache.StorefrontCache
}

func NewService(p Params) dmdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("deliverymethod.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
		cache: p.Cache,
	}
}

func (s *Service) Create(ctx context.Context, req dmdomain.CreateRequest) (*dmdomain.DeliveryMethod, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	if req.IsDefault && !isActive {
		return nil, dmdomain.ErrDefaultCannotBeInactive
	}

	now := s.clock.Now()
	method := &dmdomain.DeliveryMethod{
		ID:             s.genID.Generate(),
		StoreID:        req.StoreID,
		TitleAr:        strings.TrimSpace(req.TitleAr),
		TitleEn:        strings.TrimSpace(req.TitleEn),
		DescriptionAr:  strings.TrimSpace(req.DescriptionAr),
		DescriptionEn:  strings.TrimSpace(req.DescriptionEn),
		Price:          req.Price,
		WhatsappNumber: strings.TrimSpace(req.WhatsappNumber),
		EstimatedDays:  req.EstimatedDays,
		IsActive:       isActive,
		IsDefault:      req.IsDefault,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if method.IsDefault {
			if err := s.repo.UnsetDefault(ctx, tx, req.StoreID); err != nil {
				return err
			}
		}
		return s.repo.Insert(ctx, tx, method)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, req.StoreID, cache.SectionDeliveryMethods)
	return method, nil
}

func (s *Service) Get(ctx context.Context, storeID snowflake.ID, id string) (*dmdomain.DeliveryMethod, error) {
	methodID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || methodID == 0 {
		return nil, dmdomain.ErrInvalidID
	}

	method, err := s.repo.FindByID(ctx, s.db, storeID, methodID)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, dmdomain.ErrNotFound
	}
	return method, nil
}

func (s *Service) List(ctx context.Context, storeID snowflake.ID, req dmdomain.ListRequest) ([]dmdomain.DeliveryMethod, pagination.Meta, error) {
	methods, total, err := s.repo.List(ctx, s.db, storeID, req)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return methods, pagination.BuildMeta(req.Pagination, total), nil
}

func (s *Service) ListActive(ctx context.Context, storeID snowflake.ID) ([]dmdomain.DeliveryMethod, error) {
	var cached []dmdomain.DeliveryMethod
	if hit, err := s.cache.Get(ctx, storeID, cache.SectionDeliveryMethods, &cached); err == nil && hit {
		return cached, nil
	}

	methods, err := s.repo.ListActive(ctx, s.db, storeID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, storeID, cache.SectionDeliveryMethods, methods)
	return methods, nil
}

func (s *Service) Update(ctx context.Context, storeID snowflake.ID, req dmdomain.UpdateRequest) (*dmdomain.DeliveryMethod, error) {
	method, err := s.Get(ctx, storeID, req.ID)
	if err != nil {
		return nil, err
	}

	if req.TitleAr != nil {
		method.TitleAr = strings.TrimSpace(*req.TitleAr)
	}
	if req.TitleEn != nil {
		method.TitleEn = strings.TrimSpace(*req.TitleEn)
	}
	if req.DescriptionAr != nil {
		method.DescriptionAr = strings.TrimSpace(*req.DescriptionAr)
	}
	if req.DescriptionEn != nil {
		method.DescriptionEn = strings.TrimSpace(*req.DescriptionEn)
	}
	if req.Price != nil {
		method.Price = *req.Price
	}
	if req.WhatsappNumber != nil {
		method.WhatsappNumber = strings.TrimSpace(*req.WhatsappNumber)
	}
	if req.EstimatedDays != nil {
		method.EstimatedDays = *req.EstimatedDays
	}

	promote := false
	if req.IsActive != nil {
		method.IsActive = *req.IsActive
	}
	if req.IsDefault != nil {
		if *req.IsDefault && !method.IsDefault {
			promote = true
		}
		method.IsDefault = *req.IsDefault
	}
	if method.IsDefault && !method.IsActive {
		return nil, dmdomain.ErrDefaultCannotBeInactive
	}

	method.UpdatedAt = s.clock.Now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if promote {
			if err := s.repo.UnsetDefault(ctx, tx, storeID); err != nil {
				return err
			}
		}
		return s.repo.Update(ctx, tx, method)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, storeID, cache.SectionDeliveryMethods)
	return method, nil
}

// SetDefault promotes the target and demotes every other default in
// the store inside one transaction, so readers never observe two
// defaults.
func (s *Service) SetDefault(ctx context.Context, storeID snowflake.ID, id string) (*dmdomain.DeliveryMethod, error) {
	method, err := s.Get(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if !method.IsActive {
		return nil, dmdomain.ErrInactiveCannotBeDefault
	}
	if method.IsDefault {
		return method, nil
	}

	method.IsDefault = true
	method.UpdatedAt = s.clock.Now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.UnsetDefault(ctx, tx, storeID); err != nil {
			return err
		}
		return s.repo.Update(ctx, tx, method)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, storeID, cache.SectionDeliveryMethods)
	return method, nil
}

func (s *Service) ToggleActive(ctx context.Context, storeID snowflake.ID, id string) (*dmdomain.DeliveryMethod, error) {
	method, err := s.Get(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if method.IsDefault && method.IsActive {
		return nil, dmdomain.ErrDefaultCannotBeInactive
	}

	method.IsActive = !method.IsActive
	method.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, method); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, storeID, cache.SectionDeliveryMethods)
	return method, nil
}

func (s *Service) Delete(ctx context.Context, storeID snowflake.ID, id string) error {
	method, err := s.Get(ctx, storeID, id)
	if err != nil {
		return err
	}
	if method.IsDefault {
		return dmdomain.ErrDefaultCannotBeDeleted
	}

	if err := s.repo.Delete(ctx, s.db, storeID, method.ID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, storeID, cache.SectionDeliveryMethods)
	return nil
}
