package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matjarly/matjarly/internal/clock"
	obsmetrics "github.com/matjarly/matjarly/internal/observability/metrics"
	subscriptiondomain "github.com/matjarly/matjarly/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrInvalidConfig = errors.New("scheduler: missing dependency")

type Params struct {
	fx.In

	Log             *zap.Logger
	SubscriptionSvc subscriptiondomain.Service
	Clock           clock.Clock
	Metrics         *obsmetrics.SchedulerMetrics `optional:"true"`
	Config          Config                       `optional:"true"`
}

// Scheduler drives the periodic background jobs, currently only the
// subscription check.
type Scheduler struct {
	log             *zap.Logger
	cfg             Config
	clock           clock.Clock
	subscriptionSvc subscriptiondomain.Service
	metrics         *obsmetrics.SchedulerMetrics
}

func New(p Params) (*Scheduler, error) {
	if p.Log == nil || p.SubscriptionSvc == nil || p.Clock == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		log:             p.Log.Named("scheduler").With(zap.String("component", "scheduler")),
		cfg:             p.Config.withDefaults(),
		clock:           p.Clock,
		subscriptionSvc: p.SubscriptionSvc,
		metrics:         p.Metrics,
	}, nil
}

func (s *Scheduler) runJob(
	parent context.Context,
	name string,
	timeout time.Duration,
	fn func(ctx context.Context) error,
) error {
	start := s.clock.Now()
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	log := s.log.With(zap.String("job", name))
	s.metrics.IncJobRun(name)

	err := fn(ctx)
	s.metrics.ObserveJobDuration(name, time.Since(start))
	if err == nil {
		return nil
	}

	s.metrics.IncJobError(name)
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		log.Warn("job timed out",
			zap.Duration("timeout", timeout),
			zap.Error(err),
		)
		return nil
	}

	return fmt.Errorf("%s: %w", name, err)
}

func (s *Scheduler) RunOnce(parent context.Context) error {
	return s.runJob(parent, "subscription_check", s.cfg.SubscriptionTimeout, s.SubscriptionCheckJob)
}

func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()

	for {
		if err := s.RunOnce(ctx); err != nil {
			s.log.Warn("scheduler run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// SubscriptionCheckJob deactivates stores whose subscription or trial
// expired and sends expiry warnings. Per-store failures are already
// collected inside RunCheck; a non-zero error count still lets the
// rest of the batch through.
func (s *Scheduler) SubscriptionCheckJob(ctx context.Context) error {
	report, err := s.subscriptionSvc.RunCheck(ctx)

	s.metrics.AddStoresChecked(report.Checked)
	s.metrics.AddStoresDeactivated(report.Deactivated)
	s.metrics.AddWarningsSent(report.Warned)

	s.log.Info("subscription check finished",
		zap.Int("checked", report.Checked),
		zap.Int("deactivated", report.Deactivated),
		zap.Int("warned", report.Warned),
		zap.Int("errors", report.Errors),
	)
	return err
}
