package migration

import (
	"github.com/matjarly/matjarly/internal/config"
	"github.com/matjarly/matjarly/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}

		if err := RunMigrations(sqlDB); err != nil {
			return err
		}

		if err := seed.EnsureDefaultPlans(conn); err != nil {
			return err
		}
		return seed.EnsureSuperadmin(conn, cfg.SeedSuperadminEmail, cfg.SeedSuperadminPassword)
	}),
)
