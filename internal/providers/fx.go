package providers

import (
	"github.com/matjarly/matjarly/internal/providers/email"
	"github.com/matjarly/matjarly/internal/providers/storage"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	email.Module,
	storage.Module,
)
