package subscription

import (
	"github.com/matjarly/matjarly/internal/subscription/repository"
	"github.com/matjarly/matjarly/internal/subscription/service"
	"go.uber.org/fx"
)

var Module = fx.Module("subscription",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
