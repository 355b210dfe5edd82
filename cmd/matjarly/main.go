package main

import (
	"github.com/bwmarrin/snowflake"
	_ "github.com/matjarly/matjarly/docs"
	"github.com/matjarly/matjarly/internal/auth"
	"github.com/matjarly/matjarly/internal/authorization"
	"github.com/matjarly/matjarly/internal/cache"
	"github.com/matjarly/matjarly/internal/cart"
	"github.com/matjarly/matjarly/internal/clock"
	"github.com/matjarly/matjarly/internal/config"
	"github.com/matjarly/matjarly/internal/deliverymethod"
	"github.com/matjarly/matjarly/internal/migration"
	"github.com/matjarly/matjarly/internal/observability"
	"github.com/matjarly/matjarly/internal/owner"
	"github.com/matjarly/matjarly/internal/paymentmethod"
	"github.com/matjarly/matjarly/internal/plan"
	"github.com/matjarly/matjarly/internal/providers"
	"github.com/matjarly/matjarly/internal/ratelimit"
	"github.com/matjarly/matjarly/internal/scheduler"
	"github.com/matjarly/matjarly/internal/server"
	"github.com/matjarly/matjarly/internal/signup"
	"github.com/matjarly/matjarly/internal/slider"
	"github.com/matjarly/matjarly/internal/store"
	"github.com/matjarly/matjarly/internal/storecontext"
	"github.com/matjarly/matjarly/internal/subscription"
	"github.com/matjarly/matjarly/internal/user"
	"github.com/matjarly/matjarly/internal/verification"
	"github.com/matjarly/matjarly/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		cache.Module,
		ratelimit.Module,
		providers.Module,
		migration.Module,

		// Domains
		auth.Module,
		authorization.Module,
		storecontext.Module,
		store.Module,
		user.Module,
		owner.Module,
		verification.Module,
		signup.Module,
		deliverymethod.Module,
		paymentmethod.Module,
		slider.Module,
		plan.Module,
		subscription.Module,
		cart.Module,

		// Edges
		scheduler.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
