package store

import (
	"github.com/matjarly/matjarly/internal/store/repository"
	"github.com/matjarly/matjarly/internal/store/service"
	"go.uber.org/fx"
)

var Module = fx.Module("store",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
