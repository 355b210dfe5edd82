package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/matjarly/matjarly/internal/clock"
	"github.com/matjarly/matjarly/internal/config"
	plandomain "github.com/matjarly/matjarly/internal/plan/domain"
	"github.com/matjarly/matjarly/internal/providers/email"
	storedomain "github.com/matjarly/matjarly/internal/store/domain"
	subscriptiondomain "github.com/matjarly/matjarly/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const checkBatchSize = 200

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Config config.Config
	Clock  clock.Clock
	Repo   subscriptiondomain.Repository
	Stores storedomain.Service
	Plans  plandomain.Service
	Email  email.Provider
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	cfg      config.Config
	clock    clock.Clock
	repo     subscriptiondomain.Repository
	stores   storedomain.Service
	plans    plandomain.Service
	email    email.Provider
	batchLen int
}

func NewService(p Params) subscriptiondomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("subscription.service"),
		cfg:      p.Config,
		clock:    p.Clock,
		repo:     p.Repo,
		stores:   p.Stores,
		plans:    p.Plans,
		email:    p.Email,
		batchLen: checkBatchSize,
	}
}

// Activate opens a paid window for the store and reactivates it if it
// was shut down for expiry.
func (s *Service) Activate(ctx context.Context, req subscriptiondomain.ActivateRequest) (*storedomain.Store, error) {
	store, err := s.stores.Get(ctx, req.StoreID)
	if err != nil {
		return nil, err
	}

	plan, err := s.plans.GetByCode(ctx, req.PlanCode)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, plandomain.ErrPlanInactive
	}

	duration := req.DurationDays
	if duration <= 0 {
		duration = plan.DurationDays
	}

	now := s.clock.Now()
	store.PlanID = &plan.ID
	store.SubscriptionStart = &now
	if plan.Kind == plandomain.KindLifetime {
		store.SubscriptionEnd = nil
	} else {
		end := now.AddDate(0, 0, duration)
		store.SubscriptionEnd = &end
	}
	if req.AutoRenew != nil {
		store.AutoRenew = *req.AutoRenew
	}
	store.Status = storedomain.StoreStatusActive
	store.StatusReason = ""
	store.ExpiryWarnedAt = nil

	updated, err := s.saveStore(ctx, store)
	if err != nil {
		return nil, err
	}

	s.log.Info("subscription activated",
		zap.String("store_id", store.ID.String()),
		zap.String("plan_code", plan.Code),
	)
	return updated, nil
}

func (s *Service) ExtendTrial(ctx context.Context, storeID string, days int) (*storedomain.Store, error) {
	if days <= 0 {
		return nil, subscriptiondomain.ErrInvalidDays
	}

	store, err := s.stores.Get(ctx, storeID)
	if err != nil {
		return nil, err
	}

	base := s.clock.Now()
	if store.TrialEndsAt != nil && store.TrialEndsAt.After(base) {
		base = *store.TrialEndsAt
	}
	extended := base.AddDate(0, 0, days)
	store.TrialEndsAt = &extended

	return s.saveStore(ctx, store)
}

func (s *Service) Cancel(ctx context.Context, storeID string, immediate bool) (*storedomain.Store, error) {
	store, err := s.stores.Get(ctx, storeID)
	if err != nil {
		return nil, err
	}

	store.AutoRenew = false
	if immediate {
		now := s.clock.Now()
		store.SubscriptionEnd = &now
		store.Status = storedomain.StoreStatusInactive
		store.StatusReason = storedomain.StatusReasonManual
	}

	return s.saveStore(ctx, store)
}

func (s *Service) RunCheck(ctx context.Context) (subscriptiondomain.CheckReport, error) {
	var report subscriptiondomain.CheckReport
	var errs []error

	now := s.clock.Now()
	warnWindow := now.AddDate(0, 0, s.cfg.SubscriptionWarningDays)

	var afterID snowflake.ID
	for {
		batch, err := s.repo.ListActiveBatch(ctx, s.db, afterID, s.batchLen)
		if err != nil {
			return report, err
		}
		if len(batch) == 0 {
			break
		}
		afterID = batch[len(batch)-1].ID

		for i := range batch {
			store := &batch[i]
			report.Checked++

			deactivated, warned, err := s.checkStore(ctx, store, now, warnWindow)
			if err != nil {
				report.Errors++
				errs = append(errs, fmt.Errorf("store %s: %w", store.ID, err))
				continue
			}
			if deactivated {
				report.Deactivated++
			}
			if warned {
				report.Warned++
			}
		}

		if len(batch) < s.batchLen {
			break
		}
	}

	s.log.Info("subscription check finished",
		zap.Int("checked", report.Checked),
		zap.Int("deactivated", report.Deactivated),
		zap.Int("warned", report.Warned),
		zap.Int("errors", report.Errors),
	)
	return report, errors.Join(errs...)
}

func (s *Service) checkStore(ctx context.Context, store *storedomain.Store, now, warnWindow time.Time) (deactivated, warned bool, err error) {
	hasSubscription := store.SubscriptionStart != nil
	lifetime := hasSubscription && store.SubscriptionEnd == nil

	switch {
	case lifetime:
		return false, false, nil

	case hasSubscription && !now.Before(*store.SubscriptionEnd):
		store.Status = storedomain.StoreStatusInactive
		store.StatusReason = storedomain.StatusReasonSubscriptionExpired
		_, err = s.saveStore(ctx, store)
		return err == nil, false, err

	case !hasSubscription && store.TrialEndsAt != nil && !now.Before(*store.TrialEndsAt):
		store.Status = storedomain.StoreStatusInactive
		store.StatusReason = storedomain.StatusReasonTrialExpired
		_, err = s.saveStore(ctx, store)
		return err == nil, false, err

	case hasSubscription && store.SubscriptionEnd.Before(warnWindow):
		if store.ExpiryWarnedAt != nil && store.ExpiryWarnedAt.After(*store.SubscriptionStart) {
			return false, false, nil
		}
		if store.Email == "" {
			return false, false, nil
		}
		err = s.email.SendTemplate(ctx, []string{store.Email}, "subscription_warning", map[string]any{
			"subject":   "اشتراكك على وشك الانتهاء | Subscription expiring soon",
			"name":      store.NameEn,
			"storeName": store.NameEn,
			"expiresAt": store.SubscriptionEnd.Format("2006-01-02"),
		})
		if err != nil {
			return false, false, err
		}
		store.ExpiryWarnedAt = &now
		_, err = s.saveStore(ctx, store)
		return false, err == nil, err
	}

	return false, false, nil
}

func (s *Service) saveStore(ctx context.Context, store *storedomain.Store) (*storedomain.Store, error) {
	store.UpdatedAt = s.clock.Now()
	if err := s.db.WithContext(ctx).Save(store).Error; err != nil {
		return nil, err
	}
	return store, nil
}
