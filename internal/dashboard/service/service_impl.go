package service

import (
	"context"
	"time"

	dashboarddomain "github.com/jawadsites/boostpanel/internal/dashboard/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultWindowDays = 30
	maxWindowDays     = 365
	topOfferingsLimit = 5
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo dashboarddomain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo dashboarddomain.Repository
}

func New(p Params) dashboarddomain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("dashboard.service"),
		repo: p.Repo,
	}
}

func (s *Service) Summary(ctx context.Context, days int) (*dashboarddomain.Summary, error) {
	if days <= 0 {
		days = defaultWindowDays
	}
	if days > maxWindowDays {
		days = maxWindowDays
	}

	now := time.Now().UTC()
	since := now.AddDate(0, 0, -days).Truncate(24 * time.Hour)

	statuses, err := s.repo.CountByStatus(ctx, s.db, since)
	if err != nil {
		return nil, err
	}
	revenue, err := s.repo.RevenueByCurrency(ctx, s.db, since)
	if err != nil {
		return nil, err
	}
	top, err := s.repo.TopOfferings(ctx, s.db, since, topOfferingsLimit)
	if err != nil {
		return nil, err
	}
	daily, err := s.repo.CountPerDay(ctx, s.db, since)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, sc := range statuses {
		total += sc.Count
	}

	return &dashboarddomain.Summary{
		TotalOrders:    total,
		StatusCounts:   statuses,
		RevenueByCode:  revenue,
		TopOfferings:   top,
		OrdersPerDay:   daily,
		WindowStartsAt: since,
		GeneratedAt:    now,
	}, nil
}
