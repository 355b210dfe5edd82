package storage

import (
	"github.com/matjarly/matjarly/internal/clock"
	"github.com/matjarly/matjarly/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("providers.storage",
	fx.Provide(NewFromConfig),
)

func NewFromConfig(cfg config.Config, clk clock.Clock, log *zap.Logger) Uploader {
	if cfg.StorageEndpoint == "" || cfg.StorageAccessKey == "" {
		log.Warn("object storage not configured, uploads disabled")
		return &NoOpUploader{}
	}
	return NewS3(S3Config{
		Endpoint:  cfg.StorageEndpoint,
		Bucket:    cfg.StorageBucket,
		Region:    cfg.StorageRegion,
		AccessKey: cfg.StorageAccessKey,
		SecretKey: cfg.StorageSecretKey,
		PublicURL: cfg.StoragePublicURL,
	}, clk)
}
