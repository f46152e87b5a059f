package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/copystack/printledger/internal/analytics"
	"github.com/copystack/printledger/internal/clock"
	"github.com/copystack/printledger/internal/collector"
	"github.com/copystack/printledger/internal/config"
	"github.com/copystack/printledger/internal/device"
	"github.com/copystack/printledger/internal/logger"
	"github.com/copystack/printledger/internal/manualentry"
	"github.com/copystack/printledger/internal/migration"
	"github.com/copystack/printledger/internal/pricing"
	"github.com/copystack/printledger/internal/reading"
	"github.com/copystack/printledger/internal/scheduler"
	"github.com/copystack/printledger/internal/server"
	"github.com/copystack/printledger/internal/settings"
	"github.com/copystack/printledger/internal/waste"
	"github.com/copystack/printledger/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// Functional domains
		device.Module,
		reading.Module,
		waste.Module,
		manualentry.Module,
		settings.Module,
		pricing.Module,
		analytics.Module,
		collector.Module,
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
