package user

import (
	"github.com/matjarly/matjarly/internal/user/repository"
	"github.com/matjarly/matjarly/internal/user/service"
	"go.uber.org/fx"
)

var Module = fx.Module("user",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
