package dashboard

import (
	"github.com/jawadsites/boostpanel/internal/dashboard/repository"
	"github.com/jawadsites/boostpanel/internal/dashboard/service"
	"go.uber.org/fx"
)

var Module = fx.Module("dashboard.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
