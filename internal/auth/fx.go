package auth

import (
	"github.com/matjarly/matjarly/internal/auth/service"
	"github.com/matjarly/matjarly/internal/auth/token"
	"go.uber.org/fx"
)

var Module = fx.Module("auth",
	fx.Provide(token.NewIssuer),
	fx.Provide(service.NewService),
)
