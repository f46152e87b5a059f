package device

import (
	"github.com/copystack/printledger/internal/device/repository"
	"github.com/copystack/printledger/internal/device/service"
	"go.uber.org/fx"
)

var Module = fx.Module("device.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
