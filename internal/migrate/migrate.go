package migrate

import (
	"refermark-server/internal/model"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrate", fx.Invoke(AutoMigrate))

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Campaign{},
		&model.Referrer{},
		&model.Referral{},
		&model.Customer{},
	); err != nil {
		zap.L().Error("failed to run migrations", zap.Error(err))
		return err
	}
	return nil
}
