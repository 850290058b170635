package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	offeringdomain "github.com/jawadsites/boostpanel/internal/offering/domain"
	"github.com/jawadsites/boostpanel/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  offeringdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  offeringdomain.Repository
}

func New(p Params) offeringdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("offering.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req offeringdomain.CreateRequest) (*offeringdomain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, offeringdomain.ErrInvalidName
	}
	if req.BasePricePerK <= 0 {
		return nil, offeringdomain.ErrInvalidBasePrice
	}

	minQty, maxQty := req.MinQuantity, req.MaxQuantity
	if minQty <= 0 {
		minQty = 50
	}
	if maxQty <= 0 {
		maxQty = 1_000_000
	}
	if maxQty < minQty {
		return nil, offeringdomain.ErrInvalidQuantityRange
	}

	platforms, err := normalizePlatforms(req.Platforms)
	if err != nil {
		return nil, err
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		code = name
	}
	code = slug.Make(code)

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now().UTC()
	entity := &offeringdomain.Offering{
		ID:            s.genID.Generate(),
		Code:          code,
		Name:          name,
		Description:   strings.TrimSpace(req.Description),
		BasePricePerK: req.BasePricePerK,
		MinQuantity:   minQty,
		MaxQuantity:   maxQty,
		Active:        active,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.Metadata != nil {
		entity.Metadata = datatypes.JSONMap(req.Metadata)
	}

	if err := s.repo.Insert(ctx, s.db, entity); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, offeringdomain.ErrCodeTaken
		}
		return nil, err
	}

	rows := buildPlatformRows(s.genID, entity.ID, platforms, now)
	if err := s.repo.ReplacePlatforms(ctx, s.db, entity.ID, rows); err != nil {
		return nil, err
	}

	return s.toResponse(entity, rows), nil
}

func (s *Service) Update(ctx context.Context, id string, req offeringdomain.UpdateRequest) (*offeringdomain.Response, error) {
	offeringID, err := parseID(id)
	if err != nil {
		return nil, offeringdomain.ErrInvalidID
	}

	entity, err := s.repo.FindByID(ctx, s.db, offeringID)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, offeringdomain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, offeringdomain.ErrInvalidName
		}
		entity.Name = name
	}
	if req.Description != nil {
		entity.Description = strings.TrimSpace(*req.Description)
	}
	if req.BasePricePerK != nil {
		if *req.BasePricePerK <= 0 {
			return nil, offeringdomain.ErrInvalidBasePrice
		}
		entity.BasePricePerK = *req.BasePricePerK
	}
	if req.MinQuantity != nil {
		entity.MinQuantity = *req.MinQuantity
	}
	if req.MaxQuantity != nil {
		entity.MaxQuantity = *req.MaxQuantity
	}
	if entity.MinQuantity <= 0 || entity.MaxQuantity < entity.MinQuantity {
		return nil, offeringdomain.ErrInvalidQuantityRange
	}
	if req.Active != nil {
		entity.Active = *req.Active
	}
	entity.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, entity); err != nil {
		return nil, err
	}

	if req.Platforms != nil {
		platforms, err := normalizePlatforms(req.Platforms)
		if err != nil {
			return nil, err
		}
		rows := buildPlatformRows(s.genID, entity.ID, platforms, entity.UpdatedAt)
		if err := s.repo.ReplacePlatforms(ctx, s.db, entity.ID, rows); err != nil {
			return nil, err
		}
	}

	rows, err := s.repo.ListPlatforms(ctx, s.db, entity.ID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(entity, rows), nil
}

func (s *Service) List(ctx context.Context) ([]offeringdomain.Response, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]offeringdomain.Response, 0, len(items))
	for i := range items {
		rows, err := s.repo.ListPlatforms(ctx, s.db, items[i].ID)
		if err != nil {
			return nil, err
		}
		resp = append(resp, *s.toResponse(&items[i], rows))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*offeringdomain.Response, error) {
	entity, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListPlatforms(ctx, s.db, entity.ID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(entity, rows), nil
}

// find resolves either a snowflake id or a catalog code.
func (s *Service) find(ctx context.Context, id string) (*offeringdomain.Offering, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, offeringdomain.ErrInvalidID
	}

	if offeringID, err := snowflake.ParseString(id); err == nil {
		entity, err := s.repo.FindByID(ctx, s.db, offeringID)
		if err != nil {
			return nil, err
		}
		if entity != nil {
			return entity, nil
		}
	}

	entity, err := s.repo.FindByCode(ctx, s.db, slug.Make(id))
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, offeringdomain.ErrNotFound
	}
	return entity, nil
}

func (s *Service) toResponse(o *offeringdomain.Offering, platforms []offeringdomain.OfferingPlatform) *offeringdomain.Response {
	resp := &offeringdomain.Response{
		ID:            o.ID.String(),
		Code:          o.Code,
		Name:          o.Name,
		Description:   o.Description,
		BasePricePerK: o.BasePricePerK,
		MinQuantity:   o.MinQuantity,
		MaxQuantity:   o.MaxQuantity,
		Active:        o.Active,
		Platforms:     make([]offeringdomain.PlatformResponse, 0, len(platforms)),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	for _, p := range platforms {
		resp.Platforms = append(resp.Platforms, offeringdomain.PlatformResponse{
			Platform:      p.Platform,
			Factor:        p.Factor,
			FlatPricePerK: p.FlatPricePerK,
		})
	}
	return resp
}

func normalizePlatforms(inputs []offeringdomain.PlatformInput) ([]offeringdomain.PlatformInput, error) {
	seen := make(map[string]struct{}, len(inputs))
	out := make([]offeringdomain.PlatformInput, 0, len(inputs))
	for _, in := range inputs {
		platform := strings.ToLower(strings.TrimSpace(in.Platform))
		if platform == "" {
			return nil, offeringdomain.ErrInvalidPlatform
		}
		if _, ok := seen[platform]; ok {
			return nil, offeringdomain.ErrInvalidPlatform
		}
		seen[platform] = struct{}{}

		factor := in.Factor
		if factor == 0 {
			factor = 1
		}
		if factor < 0 {
			return nil, offeringdomain.ErrInvalidFactor
		}
		if in.FlatPricePerK != nil && *in.FlatPricePerK <= 0 {
			return nil, offeringdomain.ErrInvalidFlatPrice
		}

		out = append(out, offeringdomain.PlatformInput{
			Platform:      platform,
			Factor:        factor,
			FlatPricePerK: in.FlatPricePerK,
		})
	}
	return out, nil
}

func buildPlatformRows(genID *snowflake.Node, offeringID snowflake.ID, inputs []offeringdomain.PlatformInput, now time.Time) []offeringdomain.OfferingPlatform {
	rows := make([]offeringdomain.OfferingPlatform, 0, len(inputs))
	for _, in := range inputs {
		rows = append(rows, offeringdomain.OfferingPlatform{
			ID:            genID.Generate(),
			OfferingID:    offeringID,
			Platform:      in.Platform,
			Factor:        in.Factor,
			FlatPricePerK: in.FlatPricePerK,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}
	return rows
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
