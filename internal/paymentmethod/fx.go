package paymentmethod

import (
	"github.com/matjarly/matjarly/internal/paymentmethod/repository"
	"github.com/matjarly/matjarly/internal/paymentmethod/service"
	"go.uber.org/fx"
)

var Module = fx.Module("paymentmethod",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
