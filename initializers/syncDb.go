package initializers

import (
	"log/slog"

	"github.com/Kariqs/aroena-api/models"
)

func SyncDatabase() error {
	if err := DB.AutoMigrate(&models.User{}, &models.Service{}, &models.Order{}, &models.Admin{}); err != nil {
		return err
	}
	slog.Info("Database synced successfully.")
	return nil
}
