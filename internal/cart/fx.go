package cart

import (
	"github.com/matjarly/matjarly/internal/cart/repository"
	"github.com/matjarly/matjarly/internal/cart/service"
	"go.uber.org/fx"
)

var Module = fx.Module("cart",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
