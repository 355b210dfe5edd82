package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/matjarly/matjarly/internal/cache"
	"github.com/matjarly/matjarly/internal/clock"
	pmdomain "github.com/matjarly/matjarly/internal/paymentmethod/domain"
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
	Repo  pmdomain.Repository
	Cache cache.StorefrontCache
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  pmdomain.Repository
	cache cache.StorefrontCache
}

func NewService(p Params) pmdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("paymentmethod.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
		cache: p.Cache,
	}
}

func (s *Service) Create(ctx context.Context, req pmdomain.CreateRequest) (*pmdomain.PaymentMethod, error) {
	if !req.MethodType.Valid() {
		return nil, pmdomain.ErrInvalidMethodType
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	if req.IsDefault && !isActive {
		return nil, pmdomain.ErrDefaultCannotBeInactive
	}

	if req.MethodType == pmdomain.MethodLahza {
		if err := s.checkLahza(ctx, req.StoreID, 0); err != nil {
			return nil, err
		}
	}

	images, err := encodeImages(req.Images)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	method := &pmdomain.PaymentMethod{
		ID:            s.genID.Generate(),
		StoreID:       req.StoreID,
		TitleAr:       strings.TrimSpace(req.TitleAr),
		TitleEn:       strings.TrimSpace(req.TitleEn),
		DescriptionAr: strings.TrimSpace(req.DescriptionAr),
		DescriptionEn: strings.TrimSpace(req.DescriptionEn),
		MethodType:    req.MethodType,
		QRCodeURL:     strings.TrimSpace(req.QRCodeURL),
		LogoURL:       strings.TrimSpace(req.LogoURL),
		Images:        images,
		IsActive:      isActive,
		IsDefault:     req.IsDefault,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
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

	s.cache.Invalidate(ctx, req.StoreID, cache.SectionPaymentMethods)
	return method, nil
}

func (s *Service) Get(ctx context.Context, storeID snowflake.ID, id string) (*pmdomain.PaymentMethod, error) {
	methodID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || methodID == 0 {
		return nil, pmdomain.ErrInvalidID
	}

	method, err := s.repo.FindByID(ctx, s.db, storeID, methodID)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, pmdomain.ErrNotFound
	}
	return method, nil
}

func (s *Service) List(ctx context.Context, storeID snowflake.ID, req pmdomain.ListRequest) ([]pmdomain.PaymentMethod, pagination.Meta, error) {
	methods, total, err := s.repo.List(ctx, s.db, storeID, req)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return methods, pagination.BuildMeta(req.Pagination, total), nil
}

func (s *Service) ListActive(ctx context.Context, storeID snowflake.ID) ([]pmdomain.PaymentMethod, error) {
	var cached []pmdomain.PaymentMethod
	if hit, err := s.cache.Get(ctx, storeID, cache.SectionPaymentMethods, &cached); err == nil && hit {
		return cached, nil
	}

	methods, err := s.repo.ListActive(ctx, s.db, storeID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, storeID, cache.SectionPaymentMethods, methods)
	return methods, nil
}

func (s *Service) Update(ctx context.Context, storeID snowflake.ID, req pmdomain.UpdateRequest) (*pmdomain.PaymentMethod, error) {
	method, err := s.Get(ctx, storeID, req.ID)
	if err != nil {
		return nil, err
	}

	if req.MethodType != nil && *req.MethodType != method.MethodType {
		if !req.MethodType.Valid() {
			return nil, pmdomain.ErrInvalidMethodType
		}
		if *req.MethodType == pmdomain.MethodLahza {
			if err := s.checkLahza(ctx, storeID, method.ID); err != nil {
				return nil, err
			}
		}
		method.MethodType = *req.MethodType
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
	if req.QRCodeURL != nil {
		method.QRCodeURL = strings.TrimSpace(*req.QRCodeURL)
	}
	if req.LogoURL != nil {
		method.LogoURL = strings.TrimSpace(*req.LogoURL)
	}
	if req.Images != nil {
		images, err := encodeImages(*req.Images)
		if err != nil {
			return nil, err
		}
		method.Images = images
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
		return nil, pmdomain.ErrDefaultCannotBeInactive
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

	s.cache.Invalidate(ctx, storeID, cache.SectionPaymentMethods)
	return method, nil
}

func (s *Service) SetDefault(ctx context.Context, storeID snowflake.ID, id string) (*pmdomain.PaymentMethod, error) {
	method, err := s.Get(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if !method.IsActive {
		return nil, pmdomain.ErrInactiveCannotBeDefault
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

	s.cache.Invalidate(ctx, storeID, cache.SectionPaymentMethods)
	return method, nil
}

func (s *Service) ToggleActive(ctx context.Context, storeID snowflake.ID, id string) (*pmdomain.PaymentMethod, error) {
	method, err := s.Get(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if method.IsDefault && method.IsActive {
		return nil, pmdomain.ErrDefaultCannotBeInactive
	}

	method.IsActive = !method.IsActive
	method.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, method); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, storeID, cache.SectionPaymentMethods)
	return method, nil
}

func (s *Service) Delete(ctx context.Context, storeID snowflake.ID, id string) error {
	method, err := s.Get(ctx, storeID, id)
	if err != nil {
		return err
	}
	if method.IsDefault {
		return pmdomain.ErrDefaultCannotBeDeleted
	}

	if err := s.repo.Delete(ctx, s.db, storeID, method.ID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, storeID, cache.SectionPaymentMethods)
	return nil
}

func (s *Service) checkLahza(ctx context.Context, storeID, excludeID snowflake.ID) error {
	total, err := s.repo.CountByType(ctx, s.db, storeID, pmdomain.MethodLahza, excludeID)
	if err != nil {
		return err
	}
	if total > 0 {
		return pmdomain.ErrLahzaAlreadyExists
	}
	return nil
}

func encodeImages(urls []string) (datatypes.JSON, error) {
	if len(urls) == 0 {
		return nil, nil
	}
	cleaned := make([]string, 0, len(urls))
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			cleaned = append(cleaned, u)
		}
	}
	raw, err := json.Marshal(cleaned)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
