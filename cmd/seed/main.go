package main

import (
	"context"
	"errors"
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"refermark-server/internal/migrate"
	"refermark-server/internal/model"
	"refermark-server/pkg/config"
	"refermark-server/pkg/db"
	"refermark-server/pkg/gen"
	"refermark-server/pkg/logger"

	"github.com/bwmarrin/snowflake"
)

// Seeds a demo user so the login endpoint has something to authenticate
// against. Email and password come from SEED_EMAIL / SEED_PASSWORD.
func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		db.Module,
		gen.Module,
		migrate.Module,
		fx.Invoke(seedUser),
		fx.Invoke(func(shutdowner fx.Shutdowner) error {
			return shutdowner.Shutdown()
		}),
	)

	app.Run()
}

func seedUser(gdb *gorm.DB, node *snowflake.Node) error {
	email := getenv("SEED_EMAIL", "demo@refermark.local")
	password := getenv("SEED_PASSWORD", "changeme")

	var existing model.User
	err := gdb.Where(&model.User{Email: email}).First(&existing).Error
	if err == nil {
		zap.L().Info("seed user already exists", zap.String("email", email))
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &model.User{
		ID:           node.Generate().String(),
		Name:         "Demo User",
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := gdb.WithContext(context.Background()).Create(user).Error; err != nil {
		return err
	}

	zap.L().Info("seed user created", zap.String("email", email), zap.String("id", user.ID))
	return nil
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
