package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/jawadsites/boostpanel/internal/config"
	"github.com/jawadsites/boostpanel/internal/currency"
	currencydomain "github.com/jawadsites/boostpanel/internal/currency/domain"
	"github.com/jawadsites/boostpanel/internal/dashboard"
	dashboarddomain "github.com/jawadsites/boostpanel/internal/dashboard/domain"
	"github.com/jawadsites/boostpanel/internal/observability"
	obsmiddleware "github.com/jawadsites/boostpanel/internal/observability/logger"
	obsmetrics "github.com/jawadsites/boostpanel/internal/observability/metrics"
	obstracing "github.com/jawadsites/boostpanel/internal/observability/tracing"
	"github.com/jawadsites/boostpanel/internal/offering"
	offeringdomain "github.com/jawadsites/boostpanel/internal/offering/domain"
	"github.com/jawadsites/boostpanel/internal/order"
	orderdomain "github.com/jawadsites/boostpanel/internal/order/domain"
	"github.com/jawadsites/boostpanel/internal/pricetier"
	pricetierdomain "github.com/jawadsites/boostpanel/internal/pricetier/domain"
	"github.com/jawadsites/boostpanel/internal/pricing"
	pricingdomain "github.com/jawadsites/boostpanel/internal/pricing/domain"
	"github.com/jawadsites/boostpanel/internal/ratelimit"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	config.Module,
	fx.Provide(registerGin),
	offering.Module,
	pricetier.Module,
	currency.Module,
	pricing.Module,
	ratelimit.Module,
	order.Module,
	dashboard.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine *gin.Engine
	cfg    config.Config
	db     *gorm.DB
	genID  *snowflake.Node

	offeringSvc  offeringdomain.Service
	priceTierSvc pricetierdomain.Service
	currencySvc  currencydomain.Service
	pricingSvc   pricingdomain.Service
	orderSvc     orderdomain.Service
	dashboardSvc dashboarddomain.Service

	obsMetrics *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin   *gin.Engine
	Cfg   config.Config
	DB    *gorm.DB
	GenID *snowflake.Node

	OfferingSvc  offeringdomain.Service
	PriceTierSvc pricetierdomain.Service
	CurrencySvc  currencydomain.Service
	PricingSvc   pricingdomain.Service
	OrderSvc     orderdomain.Service
	DashboardSvc dashboarddomain.Service

	ObsMetrics *obsmetrics.Metrics `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		db:           p.DB,
		genID:        p.GenID,
		offeringSvc:  p.OfferingSvc,
		priceTierSvc: p.PriceTierSvc,
		currencySvc:  p.CurrencySvc,
		pricingSvc:   p.PricingSvc,
		orderSvc:     p.OrderSvc,
		dashboardSvc: p.DashboardSvc,
		obsMetrics:   p.ObsMetrics,
	}

	svc.registerPublicRoutes()
	svc.registerAdminRoutes()

	return svc
}

func (s *Server) registerPublicRoutes() {
	api := s.engine.Group("/api")

	api.GET("/quote", s.GetQuote)

	api.GET("/offerings", s.ListOfferings)
	api.GET("/offerings/:id", s.GetOffering)
	api.GET("/offerings/:id/tiers", s.ListOfferingTiers)

	api.GET("/currencies", s.ListCurrencies)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:reference", s.GetOrder)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/api", s.requireAdmin())

	admin.POST("/offerings", s.CreateOffering)
	admin.PATCH("/offerings/:id", s.UpdateOffering)

	admin.GET("/price_tiers/:id", s.GetPriceTier)
	admin.POST("/price_tiers", s.CreatePriceTier)
	admin.PATCH("/price_tiers/:id", s.UpdatePriceTier)
	admin.DELETE("/price_tiers/:id", s.DeletePriceTier)

	admin.PUT("/currencies/:code", s.UpsertCurrency)

	admin.GET("/orders", s.ListOrders)
	admin.GET("/exports/orders.csv", s.ExportOrders)
	admin.PATCH("/orders/:reference/status", s.UpdateOrderStatus)

	admin.GET("/dashboard/summary", s.GetDashboardSummary)
}
