package owner

import (
	"github.com/matjarly/matjarly/internal/owner/repository"
	"github.com/matjarly/matjarly/internal/owner/service"
	"go.uber.org/fx"
)

var Module = fx.Module("owner",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
