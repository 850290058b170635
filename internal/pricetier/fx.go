package pricetier

import (
	"github.com/jawadsites/boostpanel/internal/pricetier/repository"
	"github.com/jawadsites/boostpanel/internal/pricetier/service"
	"go.uber.org/fx"
)

var Module = fx.Module("pricetier.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
