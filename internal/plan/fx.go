package plan

import (
	plandomain "github.com/matjarly/matjarly/internal/plan/domain"
	"github.com/matjarly/matjarly/internal/plan/service"
	"github.com/matjarly/matjarly/pkg/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("plan",
	fx.Provide(repository.ProvideStore[plandomain.SubscriptionPlan]),
	fx.Provide(service.NewService),
)
