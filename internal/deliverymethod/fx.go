package deliverymethod

import (
	"github.com/matjarly/matjarly/internal/deliverymethod/repository"
	"github.com/matjarly/matjarly/internal/deliverymethod/service"
	"go.uber.org/fx"
)

var Module = fx.Module("deliverymethod",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
