package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/matjarly/matjarly/internal/cache"
	"github.com/matjarly/matjarly/internal/clock"
	sliderdomain "github.com/matjarly/matjarly/internal/slider/domain"
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
	Repo  sliderdomain.Repository
	Cache cache.StorefrontCache
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  sliderdomain.Repository
	cache cache.StorefrontCache
}

func NewService(p Params) sliderdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("slider.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
		cache: p.Cache,
	}
}

func (s *Service) Create(ctx context.Context, req sliderdomain.CreateRequest) (*sliderdomain.StoreSlider, error) {
	kind := req.Kind
	if kind == "" {
		kind = sliderdomain.KindSlider
	}
	if !kind.Valid() {
		return nil, sliderdomain.ErrInvalidKind
	}

	imageURL := strings.TrimSpace(req.ImageURL)
	videoURL := strings.TrimSpace(req.VideoURL)
	if kind == sliderdomain.KindSlider && imageURL == "" {
		return nil, sliderdomain.ErrMissingURL
	}
	if kind == sliderdomain.KindVideo && videoURL == "" {
		return nil, sliderdomain.ErrMissingURL
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := s.clock.Now()
	slider := &sliderdomain.StoreSlider{
		ID:        s.genID.Generate(),
		StoreID:   req.StoreID,
		Kind:      kind,
		TitleAr:   strings.TrimSpace(req.TitleAr),
		TitleEn:   strings.TrimSpace(req.TitleEn),
		ImageURL:  imageURL,
		VideoURL:  videoURL,
		LinkURL:   strings.TrimSpace(req.LinkURL),
		SortOrder: req.SortOrder,
		IsActive:  isActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, slider); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, req.StoreID, cache.SectionSliders)
	return slider, nil
}

func (s *Service) Get(ctx context.Context, storeID snowflake.ID, id string) (*sliderdomain.StoreSlider, error) {
	sliderID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || sliderID == 0 {
		return nil, sliderdomain.ErrInvalidID
	}

	slider, err := s.repo.FindByID(ctx, s.db, storeID, sliderID)
	if err != nil {
		return nil, err
	}
	if slider == nil {
		return nil, sliderdomain.ErrNotFound
	}
	return slider, nil
}

func (s *Service) List(ctx context.Context, storeID snowflake.ID, req sliderdomain.ListRequest) ([]sliderdomain.StoreSlider, pagination.Meta, error) {
	sliders, total, err := s.repo.List(ctx, s.db, storeID, req)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return sliders, pagination.BuildMeta(req.Pagination, total), nil
}

func (s *Service) ListActive(ctx context.Context, storeID snowflake.ID) ([]sliderdomain.StoreSlider, error) {
	var cached []sliderdomain.StoreSlider
	if hit, err := s.cache.Get(ctx, storeID, cache.SectionSliders, &cached); err == nil && hit {
		return cached, nil
	}

	sliders, err := s.repo.ListActive(ctx, s.db, storeID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, storeID, cache.SectionSliders, sliders)
	return sliders, nil
}

func (s *Service) Update(ctx context.Context, storeID snowflake.ID, req sliderdomain.UpdateRequest) (*sliderdomain.StoreSlider, error) {
	slider, err := s.Get(ctx, storeID, req.ID)
	if err != nil {
		return nil, err
	}

	if req.TitleAr != nil {
		slider.TitleAr = strings.TrimSpace(*req.TitleAr)
	}
	if req.TitleEn != nil {
		slider.TitleEn = strings.TrimSpace(*req.TitleEn)
	}
	if req.ImageURL != nil {
		slider.ImageURL = strings.TrimSpace(*req.ImageURL)
	}
	if req.VideoURL != nil {
		slider.VideoURL = strings.TrimSpace(*req.VideoURL)
	}
	if req.LinkURL != nil {
		slider.LinkURL = strings.TrimSpace(*req.LinkURL)
	}
	if req.SortOrder != nil {
		slider.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		slider.IsActive = *req.IsActive
	}

	if slider.Kind == sliderdomain.KindSlider && slider.ImageURL == "" {
		return nil, sliderdomain.ErrMissingURL
	}
	if slider.Kind == sliderdomain.KindVideo && slider.VideoURL == "" {
		return nil, sliderdomain.ErrMissingURL
	}

	slider.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, slider); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, storeID, cache.SectionSliders)
	return slider, nil
}

func (s *Service) IncrementView(ctx context.Context, storeID snowflake.ID, id string) error {
	return s.increment(ctx, storeID, id, "view_count")
}

func (s *Service) IncrementClick(ctx context.Context, storeID snowflake.ID, id string) error {
	return s.increment(ctx, storeID, id, "click_count")
}

func (s *Service) increment(ctx context.Context, storeID snowflake.ID, id, column string) error {
	sliderID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || sliderID == 0 {
		return sliderdomain.ErrInvalidID
	}
	return s.repo.IncrementCounter(ctx, s.db, storeID, sliderID, column)
}

func (s *Service) Delete(ctx context.Context, storeID snowflake.ID, id string) error {
	slider, err := s.Get(ctx, storeID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, s.db, storeID, slider.ID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, storeID, cache.SectionSliders)
	return nil
}
