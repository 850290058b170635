package currency

import (
	"github.com/jawadsites/boostpanel/internal/currency/repository"
	"github.com/jawadsites/boostpanel/internal/currency/service"
	"go.uber.org/fx"
)

var Module = fx.Module("currency.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
