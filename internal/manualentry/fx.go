package manualentry

import (
	"github.com/copystack/printledger/internal/manualentry/repository"
	"github.com/copystack/printledger/internal/manualentry/service"
	"go.uber.org/fx"
)

var Module = fx.Module("manualentry.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
