package order

import (
	"github.com/jawadsites/boostpanel/internal/order/repository"
	"github.com/jawadsites/boostpanel/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
