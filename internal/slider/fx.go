package slider

import (
	"github.com/matjarly/matjarly/internal/slider/repository"
	"github.com/matjarly/matjarly/internal/slider/service"
	"go.uber.org/fx"
)

var Module = fx.Module("slider",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
