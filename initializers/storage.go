package initializers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Kariqs/aroena-api/config"
	"github.com/Kariqs/aroena-api/storage"
)

var Images storage.ImageStore

func SetupStorage(ctx context.Context, cfg config.Storage) error {
	var (
		store storage.ImageStore
		err   error
	)

	switch cfg.Driver {
	case storage.DriverLocal:
		store, err = storage.NewLocalStore(cfg.UploadDir, cfg.PublicURL)
	case storage.DriverS3:
		store, err = storage.NewS3Store(ctx, storage.S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3Key,
			SecretKey: cfg.S3Secret,
			PublicURL: cfg.S3PublicURL,
		})
	case storage.DriverCloudinary:
		store, err = storage.NewCloudinaryStore(storage.CloudinaryOptions{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryFolder,
		})
	default:
		return fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
	if err != nil {
		return fmt.Errorf("failed to set up %s image storage: %w", cfg.Driver, err)
	}

	Images = store
	slog.Info("Image storage ready", "driver", store.Driver())
	return nil
}
