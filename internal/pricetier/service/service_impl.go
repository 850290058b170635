package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	offeringdomain "github.com/jawadsites/boostpanel/internal/offering/domain"
	pricetierdomain "github.com/jawadsites/boostpanel/internal/pricetier/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Repo         pricetierdomain.Repository
	OfferingRepo offeringdomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	repo         pricetierdomain.Repository
	offeringRepo offeringdomain.Repository
}

func New(p Params) pricetierdomain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("pricetier.service"),
		genID:        p.GenID,
		repo:         p.Repo,
		offeringRepo: p.OfferingRepo,
	}
}

func (s *Service) Create(ctx context.Context, req pricetierdomain.CreateRequest) (*pricetierdomain.MutationResponse, error) {
	offeringID, err := parseID(req.OfferingID)
	if err != nil {
		return nil, pricetierdomain.ErrInvalidOffering
	}

	platform := strings.ToLower(strings.TrimSpace(req.Platform))
	if platform == "" {
		return nil, pricetierdomain.ErrInvalidPlatform
	}
	if req.MinQuantity <= 0 {
		return nil, pricetierdomain.ErrInvalidMinQty
	}
	if req.MaxQuantity < req.MinQuantity {
		return nil, pricetierdomain.ErrInvalidMaxQty
	}
	if req.PricePerK <= 0 {
		return nil, pricetierdomain.ErrInvalidPricePerK
	}
	if req.DiscountPct < 0 || req.DiscountPct >= 100 {
		return nil, pricetierdomain.ErrInvalidDiscountPct
	}

	offering, err := s.offeringRepo.FindByID(ctx, s.db, offeringID)
	if err != nil {
		return nil, err
	}
	if offering == nil {
		return nil, pricetierdomain.ErrInvalidOffering
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	position := 0
	if req.Position != nil {
		position = *req.Position
	}

	now := time.Now().UTC()
	entity := &pricetierdomain.PriceTier{
		ID:          s.genID.Generate(),
		OfferingID:  offeringID,
		Platform:    platform,
		MinQuantity: req.MinQuantity,
		MaxQuantity: req.MaxQuantity,
		PricePerK:   req.PricePerK,
		DiscountPct: req.DiscountPct,
		Active:      active,
		Position:    position,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, entity); err != nil {
		return nil, err
	}

	return &pricetierdomain.MutationResponse{
		Tier:     *s.toResponse(entity),
		Warnings: s.scheduleWarnings(ctx, offeringID, platform),
	}, nil
}

func (s *Service) Update(ctx context.Context, id string, req pricetierdomain.UpdateRequest) (*pricetierdomain.MutationResponse, error) {
	tierID, err := parseID(id)
	if err != nil {
		return nil, pricetierdomain.ErrInvalidID
	}

	entity, err := s.repo.FindByID(ctx, s.db, tierID)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, pricetierdomain.ErrNotFound
	}

	if req.MinQuantity != nil {
		entity.MinQuantity = *req.MinQuantity
	}
	if req.MaxQuantity != nil {
		entity.MaxQuantity = *req.MaxQuantity
	}
	if entity.MinQuantity <= 0 {
		return nil, pricetierdomain.ErrInvalidMinQty
	}
	if entity.MaxQuantity < entity.MinQuantity {
		return nil, pricetierdomain.ErrInvalidMaxQty
	}
	if req.PricePerK != nil {
		if *req.PricePerK <= 0 {
			return nil, pricetierdomain.ErrInvalidPricePerK
		}
		entity.PricePerK = *req.PricePerK
	}
	if req.DiscountPct != nil {
		if *req.DiscountPct < 0 || *req.DiscountPct >= 100 {
			return nil, pricetierdomain.ErrInvalidDiscountPct
		}
		entity.DiscountPct = *req.DiscountPct
	}
	if req.Active != nil {
		entity.Active = *req.Active
	}
	if req.Position != nil {
		entity.Position = *req.Position
	}
	entity.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, entity); err != nil {
		return nil, err
	}

	return &pricetierdomain.MutationResponse{
		Tier:     *s.toResponse(entity),
		Warnings: s.scheduleWarnings(ctx, entity.OfferingID, entity.Platform),
	}, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	tierID, err := parseID(id)
	if err != nil {
		return pricetierdomain.ErrInvalidID
	}

	entity, err := s.repo.FindByID(ctx, s.db, tierID)
	if err != nil {
		return err
	}
	if entity == nil {
		return pricetierdomain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, tierID)
}

func (s *Service) Get(ctx context.Context, id string) (*pricetierdomain.Response, error) {
	tierID, err := parseID(id)
	if err != nil {
		return nil, pricetierdomain.ErrInvalidID
	}

	entity, err := s.repo.FindByID(ctx, s.db, tierID)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, pricetierdomain.ErrNotFound
	}
	return s.toResponse(entity), nil
}

func (s *Service) List(ctx context.Context, offeringID, platform string) (*pricetierdomain.ListResponse, error) {
	id, err := parseID(offeringID)
	if err != nil {
		return nil, pricetierdomain.ErrInvalidOffering
	}

	var items []pricetierdomain.PriceTier
	platform = strings.ToLower(strings.TrimSpace(platform))
	if platform == "" {
		items, err = s.repo.ListByOffering(ctx, s.db, id)
	} else {
		items, err = s.repo.ListByOfferingPlatform(ctx, s.db, id, platform)
	}
	if err != nil {
		return nil, err
	}

	resp := &pricetierdomain.ListResponse{
		Tiers:    make([]pricetierdomain.Response, 0, len(items)),
		Warnings: pricetierdomain.Validate(items),
	}
	for i := range items {
		resp.Tiers = append(resp.Tiers, *s.toResponse(&items[i]))
	}
	return resp, nil
}

// scheduleWarnings revalidates the schedule after a write and returns the
// advisory result for the mutation response. The save already happened;
// malformed schedules are allowed, only surfaced.
func (s *Service) scheduleWarnings(ctx context.Context, offeringID snowflake.ID, platform string) pricetierdomain.Warnings {
	items, err := s.repo.ListByOfferingPlatform(ctx, s.db, offeringID, platform)
	if err != nil {
		return pricetierdomain.Warnings{}
	}
	warnings := pricetierdomain.Validate(items)
	if warnings.Empty() {
		return warnings
	}
	s.log.Warn("tier schedule has range defects",
		zap.String("offering_id", offeringID.String()),
		zap.String("platform", platform),
		zap.Int("gaps", len(warnings.Gaps)),
		zap.Int("overlaps", len(warnings.Overlaps)),
	)
	return warnings
}

func (s *Service) toResponse(t *pricetierdomain.PriceTier) *pricetierdomain.Response {
	return &pricetierdomain.Response{
		ID:          t.ID.String(),
		OfferingID:  t.OfferingID.String(),
		Platform:    t.Platform,
		MinQuantity: t.MinQuantity,
		MaxQuantity: t.MaxQuantity,
		PricePerK:   t.PricePerK,
		DiscountPct: t.DiscountPct,
		Active:      t.Active,
		Position:    t.Position,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
