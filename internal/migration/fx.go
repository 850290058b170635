package migration

import (
	"github.com/jawadsites/boostpanel/internal/config"
	currencydomain "github.com/jawadsites/boostpanel/internal/currency/domain"
	offeringdomain "github.com/jawadsites/boostpanel/internal/offering/domain"
	orderdomain "github.com/jawadsites/boostpanel/internal/order/domain"
	pricetierdomain "github.com/jawadsites/boostpanel/internal/pricetier/domain"
	"github.com/jawadsites/boostpanel/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite and mysql deployments rely on the model schema directly.
			if err := conn.AutoMigrate(
				&offeringdomain.Offering{},
				&offeringdomain.OfferingPlatform{},
				&pricetierdomain.PriceTier{},
				&currencydomain.CurrencyRate{},
				&orderdomain.Order{},
			); err != nil {
				return err
			}
		}

		return seed.EnsureDefaults(conn)
	}),
)
