package main

import (
	"go.uber.org/fx"

	"refermark-server/internal/migrate"
	"refermark-server/internal/server"
	"refermark-server/pkg/config"
	"refermark-server/pkg/db"
	"refermark-server/pkg/gen"
	"refermark-server/pkg/health"
	"refermark-server/pkg/logger"
	"refermark-server/services/auth"
	"refermark-server/services/campaign"
	"refermark-server/services/referral"
	"refermark-server/services/referrer"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		db.Module,
		gen.Module,
		health.Module,
		migrate.Module,
		server.Module,

		auth.Module,
		campaign.Module,
		referrer.Module,
		referral.Module,
	)

	app.Run()
}
