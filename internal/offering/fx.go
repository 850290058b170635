package offering

import (
	"github.com/jawadsites/boostpanel/internal/offering/repository"
	"github.com/jawadsites/boostpanel/internal/offering/service"
	"go.uber.org/fx"
)

var Module = fx.Module("offering.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
