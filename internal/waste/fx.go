package waste

import (
	"github.com/copystack/printledger/internal/waste/repository"
	"github.com/copystack/printledger/internal/waste/service"
	"go.uber.org/fx"
)

var Module = fx.Module("waste.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
