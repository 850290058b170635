package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	currencydomain "github.com/jawadsites/boostpanel/internal/currency/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  currencydomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  currencydomain.Repository
}

func New(p Params) currencydomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("currency.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Upsert(ctx context.Context, req currencydomain.UpsertRequest) (*currencydomain.Response, error) {
	code, err := normalizeCode(req.Code)
	if err != nil {
		return nil, err
	}
	if req.Rate <= 0 {
		return nil, currencydomain.ErrInvalidRate
	}

	now := time.Now().UTC()
	entity, err := s.repo.FindByCode(ctx, s.db, code)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		entity = &currencydomain.CurrencyRate{
			ID:        s.genID.Generate(),
			Code:      code,
			Active:    true,
			CreatedAt: now,
		}
	}

	entity.Rate = req.Rate
	if symbol := strings.TrimSpace(req.Symbol); symbol != "" {
		entity.Symbol = symbol
	}
	if req.Active != nil {
		entity.Active = *req.Active
	}
	entity.UpdatedAt = now

	if err := s.repo.Save(ctx, s.db, entity); err != nil {
		return nil, err
	}
	return toResponse(entity), nil
}

func (s *Service) Get(ctx context.Context, code string) (*currencydomain.Response, error) {
	normalized, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}

	entity, err := s.repo.FindByCode(ctx, s.db, normalized)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, currencydomain.ErrNotFound
	}
	return toResponse(entity), nil
}

func (s *Service) List(ctx context.Context) ([]currencydomain.Response, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]currencydomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *toResponse(&items[i]))
	}
	return resp, nil
}

func toResponse(c *currencydomain.CurrencyRate) *currencydomain.Response {
	return &currencydomain.Response{
		ID:        c.ID.String(),
		Code:      c.Code,
		Rate:      c.Rate,
		Symbol:    c.Symbol,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func normalizeCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) < 3 || len(code) > 8 {
		return "", currencydomain.ErrInvalidCode
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", currencydomain.ErrInvalidCode
		}
	}
	return code, nil
}
