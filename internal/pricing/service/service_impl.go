package service

import (
	"context"
	"math"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/jawadsites/boostpanel/internal/config"
	currencydomain "github.com/jawadsites/boostpanel/internal/currency/domain"
	"github.com/jawadsites/boostpanel/internal/observability/metrics"
	offeringdomain "github.com/jawadsites/boostpanel/internal/offering/domain"
	tierdomain "github.com/jawadsites/boostpanel/internal/pricetier/domain"
	pricingdomain "github.com/jawadsites/boostpanel/internal/pricing/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Offerings   offeringdomain.Repository
	Tiers       tierdomain.Repository
	Currencies  currencydomain.Repository
	PricingConf *config.PricingConfigHolder
	Metrics     *metrics.Metrics `optional:"true"`
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	offerings   offeringdomain.Repository
	tiers       tierdomain.Repository
	currencies  currencydomain.Repository
	pricingConf *config.PricingConfigHolder
	metrics     *metrics.Metrics
}

func New(p Params) pricingdomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("pricing.service"),
		offerings:   p.Offerings,
		tiers:       p.Tiers,
		currencies:  p.Currencies,
		pricingConf: p.PricingConf,
		metrics:     p.Metrics,
	}
}

func (s *Service) Quote(ctx context.Context, req pricingdomain.QuoteRequest) (*pricingdomain.QuoteResponse, error) {
	platform := strings.ToLower(strings.TrimSpace(req.Platform))
	if platform == "" {
		return nil, pricingdomain.ErrInvalidPlatform
	}
	if req.Quantity <= 0 {
		return nil, pricingdomain.ErrInvalidQuantity
	}

	offering, err := s.findOffering(ctx, req.Offering)
	if err != nil {
		return nil, err
	}
	if !offering.Active {
		return nil, pricingdomain.ErrOfferingInactive
	}
	if req.Quantity < offering.MinQuantity || req.Quantity > offering.MaxQuantity {
		return nil, pricingdomain.ErrInvalidQuantity
	}

	view, err := s.buildView(ctx, offering)
	if err != nil {
		return nil, err
	}

	code, rate, symbol, err := s.lookupCurrency(ctx, req.Currency)
	if err != nil {
		return nil, err
	}

	quote := pricingdomain.Resolve(pricingdomain.ResolveInput{
		Offering:    *view,
		Platform:    platform,
		Quantity:    req.Quantity,
		Rate:        rate,
		VolumeSteps: volumeSteps(s.pricingConf.Get()),
	})
	s.metrics.QuoteResolved(string(quote.Source))

	resp := &pricingdomain.QuoteResponse{
		OfferingID:      offering.ID.String(),
		OfferingCode:    offering.Code,
		OfferingName:    offering.Name,
		Platform:        quote.Platform,
		Quantity:        req.Quantity,
		Currency:        code,
		Symbol:          symbol,
		Rate:            rate,
		Source:          quote.Source,
		PlatformFactor:  quote.PlatformFactor,
		VolumeFactor:    quote.VolumeFactor,
		ReferenceAmount: round2(quote.ReferenceAmount),
		Amount:          round2(quote.Amount),
	}
	if quote.Tier != nil {
		resp.Tier = &pricingdomain.QuoteTier{
			MinQuantity: quote.Tier.MinQuantity,
			MaxQuantity: quote.Tier.MaxQuantity,
			PricePerK:   quote.Tier.PricePerK,
			DiscountPct: quote.Tier.DiscountPct,
		}
	}
	return resp, nil
}

func (s *Service) findOffering(ctx context.Context, ref string) (*offeringdomain.Offering, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, pricingdomain.ErrInvalidOffering
	}

	if id, err := snowflake.ParseString(ref); err == nil {
		entity, err := s.offerings.FindByID(ctx, s.db, id)
		if err != nil {
			return nil, err
		}
		if entity != nil {
			return entity, nil
		}
	}

	entity, err := s.offerings.FindByCode(ctx, s.db, slug.Make(ref))
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, pricingdomain.ErrOfferingNotFound
	}
	return entity, nil
}

// buildView snapshots the offering's platforms and tier schedules into the
// resolver's input shape.
func (s *Service) buildView(ctx context.Context, offering *offeringdomain.Offering) (*pricingdomain.OfferingView, error) {
	platforms, err := s.offerings.ListPlatforms(ctx, s.db, offering.ID)
	if err != nil {
		return nil, err
	}
	tiers, err := s.tiers.ListByOffering(ctx, s.db, offering.ID)
	if err != nil {
		return nil, err
	}

	view := &pricingdomain.OfferingView{
		ID:            offering.ID,
		Code:          offering.Code,
		Name:          offering.Name,
		BasePricePerK: offering.BasePricePerK,
		MinQuantity:   offering.MinQuantity,
		MaxQuantity:   offering.MaxQuantity,
		Active:        offering.Active,
		Platforms:     make(map[string]pricingdomain.Platform, len(platforms)),
		Tiers:         make(map[string][]pricingdomain.Tier),
	}
	for _, p := range platforms {
		view.Platforms[p.Platform] = pricingdomain.Platform{
			Code:          p.Platform,
			Factor:        p.Factor,
			FlatPricePerK: p.FlatPricePerK,
		}
	}
	for _, t := range tiers {
		view.Tiers[t.Platform] = append(view.Tiers[t.Platform], pricingdomain.Tier{
			ID:          t.ID,
			MinQuantity: t.MinQuantity,
			MaxQuantity: t.MaxQuantity,
			PricePerK:   t.PricePerK,
			DiscountPct: t.DiscountPct,
			Active:      t.Active,
		})
	}
	return view, nil
}

func (s *Service) lookupCurrency(ctx context.Context, code string) (string, float64, string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = "USD"
	}

	entity, err := s.currencies.FindByCode(ctx, s.db, code)
	if err != nil {
		return "", 0, "", err
	}
	if entity == nil || !entity.Active {
		// USD is the reference currency, quotable even without a stored rate.
		if code == "USD" {
			return code, 1.0, "$", nil
		}
		return "", 0, "", pricingdomain.ErrCurrencyNotFound
	}
	return entity.Code, entity.Rate, entity.Symbol, nil
}

func volumeSteps(cfg config.PricingConfig) []pricingdomain.VolumeStep {
	steps := make([]pricingdomain.VolumeStep, 0, len(cfg.VolumeSteps))
	for _, s := range cfg.VolumeSteps {
		steps = append(steps, pricingdomain.VolumeStep{
			MinQuantity: s.MinQuantity,
			Factor:      s.Factor,
		})
	}
	return steps
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
