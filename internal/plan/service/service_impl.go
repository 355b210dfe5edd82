package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/matjarly/matjarly/internal/clock"
	plandomain "github.com/matjarly/matjarly/internal/plan/domain"
	"github.com/matjarly/matjarly/pkg/db"
	"github.com/matjarly/matjarly/pkg/db/option"
	"github.com/matjarly/matjarly/pkg/db/pagination"
	"github.com/matjarly/matjarly/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  repository.Repository[plandomain.SubscriptionPlan]
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  repository.Repository[plandomain.SubscriptionPlan]
}

func NewService(p Params) plandomain.Service {
	return &Service{
		log:   p.Log.Named("plan.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req plandomain.CreateRequest) (*plandomain.SubscriptionPlan, error) {
	if !req.Kind.Valid() {
		return nil, plandomain.ErrInvalidKind
	}
	if req.Kind != plandomain.KindLifetime && req.DurationDays <= 0 {
		return nil, plandomain.ErrInvalidDuration
	}

	code := strings.ToLower(strings.TrimSpace(req.Code))
	existing, err := s.repo.FindOne(ctx, &plandomain.SubscriptionPlan{Code: code})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, plandomain.ErrCodeTaken
	}

	features, err := encodeFeatures(req.Features)
	if err != nil {
		return nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "USD"
	}

	now := s.clock.Now()
	plan := &plandomain.SubscriptionPlan{
		ID:           s.genID.Generate(),
		Code:         code,
		Kind:         req.Kind,
		NameAr:       strings.TrimSpace(req.NameAr),
		NameEn:       strings.TrimSpace(req.NameEn),
		DurationDays: req.DurationDays,
		PriceCents:   req.PriceCents,
		Currency:     currency,
		Features:     features,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, plan); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, plandomain.ErrCodeTaken
		}
		return nil, err
	}
	return plan, nil
}

func (s *Service) Get(ctx context.Context, id string) (*plandomain.SubscriptionPlan, error) {
	planID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || planID == 0 {
		return nil, plandomain.ErrInvalidID
	}

	plan, err := s.repo.FindOne(ctx, &plandomain.SubscriptionPlan{ID: planID})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, plandomain.ErrNotFound
	}
	return plan, nil
}

func (s *Service) GetByCode(ctx context.Context, code string) (*plandomain.SubscriptionPlan, error) {
	plan, err := s.repo.FindOne(ctx, &plandomain.SubscriptionPlan{
		Code: strings.ToLower(strings.TrimSpace(code)),
	})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, plandomain.ErrNotFound
	}
	return plan, nil
}

func (s *Service) List(ctx context.Context, req plandomain.ListRequest) ([]plandomain.SubscriptionPlan, pagination.Meta, error) {
	filter := &plandomain.SubscriptionPlan{}
	if kind := strings.TrimSpace(req.Kind); kind != "" {
		filter.Kind = plandomain.Kind(kind)
	}
	if req.IsActive != nil && *req.IsActive {
		filter.IsActive = true
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	page := req.Pagination.Normalize()
	rows, err := s.repo.Find(ctx, filter,
		option.WithSortBy("price_cents", "ASC"),
		option.WithOffset(page.Offset()),
		option.WithLimit(page.Limit),
	)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	plans := make([]plandomain.SubscriptionPlan, 0, len(rows))
	for _, row := range rows {
		plans = append(plans, *row)
	}
	return plans, pagination.BuildMeta(req.Pagination, total), nil
}

func (s *Service) ListActive(ctx context.Context) ([]plandomain.SubscriptionPlan, error) {
	rows, err := s.repo.Find(ctx, &plandomain.SubscriptionPlan{IsActive: true},
		option.WithSortBy("price_cents", "ASC"),
	)
	if err != nil {
		return nil, err
	}

	plans := make([]plandomain.SubscriptionPlan, 0, len(rows))
	for _, row := range rows {
		plans = append(plans, *row)
	}
	return plans, nil
}

func (s *Service) Update(ctx context.Context, req plandomain.UpdateRequest) (*plandomain.SubscriptionPlan, error) {
	plan, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.NameAr != nil {
		plan.NameAr = strings.TrimSpace(*req.NameAr)
	}
	if req.NameEn != nil {
		plan.NameEn = strings.TrimSpace(*req.NameEn)
	}
	if req.DurationDays != nil {
		if plan.Kind != plandomain.KindLifetime && *req.DurationDays <= 0 {
			return nil, plandomain.ErrInvalidDuration
		}
		plan.DurationDays = *req.DurationDays
	}
	if req.PriceCents != nil {
		plan.PriceCents = *req.PriceCents
	}
	if req.Currency != nil {
		plan.Currency = strings.ToUpper(strings.TrimSpace(*req.Currency))
	}
	if req.Features != nil {
		features, err := encodeFeatures(*req.Features)
		if err != nil {
			return nil, err
		}
		plan.Features = features
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	plan.UpdatedAt = s.clock.Now()
	updates := map[string]any{
		"name_ar":       plan.NameAr,
		"name_en":       plan.NameEn,
		"duration_days": plan.DurationDays,
		"price_cents":   plan.PriceCents,
		"currency":      plan.Currency,
		"features":      plan.Features,
		"is_active":     plan.IsActive,
		"updated_at":    plan.UpdatedAt,
	}
	if err := s.repo.Update(ctx, plan.ID.String(), updates); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	plan, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, plan.ID.String())
}

func encodeFeatures(features []string) (datatypes.JSON, error) {
	if len(features) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(features)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
