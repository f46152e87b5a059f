package reading

import (
	"github.com/copystack/printledger/internal/reading/repository"
	"github.com/copystack/printledger/internal/reading/service"
	"go.uber.org/fx"
)

var Module = fx.Module("reading.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
