package service

import (
	"context"
	"encoding/csv"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/jawadsites/boostpanel/internal/observability/metrics"
	orderdomain "github.com/jawadsites/boostpanel/internal/order/domain"
	pricingdomain "github.com/jawadsites/boostpanel/internal/pricing/domain"
	"github.com/jawadsites/boostpanel/internal/ratelimit"
	"github.com/jawadsites/boostpanel/pkg/db/pagination"
	"github.com/oklog/ulid/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    orderdomain.Repository
	Pricing pricingdomain.Service
	Limiter *ratelimit.OrderSubmitLimiter `optional:"true"`
	Metrics *metrics.Metrics              `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    orderdomain.Repository
	pricing pricingdomain.Service
	limiter *ratelimit.OrderSubmitLimiter
	metrics *metrics.Metrics
}

func New(p Params) orderdomain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("order.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		pricing: p.Pricing,
		limiter: p.Limiter,
		metrics: p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req orderdomain.CreateRequest) (*orderdomain.Response, error) {
	if err := s.allow(ctx, req.ClientIP); err != nil {
		return nil, err
	}

	target := strings.TrimSpace(req.TargetURL)
	if !validTargetURL(target) {
		return nil, orderdomain.ErrInvalidTargetURL
	}

	// Reprice at submit time. The stored amounts are the quote frozen here.
	quote, err := s.pricing.Quote(ctx, pricingdomain.QuoteRequest{
		Offering: req.Offering,
		Platform: req.Platform,
		Quantity: req.Quantity,
		Currency: req.Currency,
	})
	if err != nil {
		return nil, err
	}

	offeringID, err := snowflake.ParseString(quote.OfferingID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entity := &orderdomain.Order{
		ID:              s.genID.Generate(),
		Reference:       ulid.Make().String(),
		OfferingID:      offeringID,
		OfferingCode:    quote.OfferingCode,
		Platform:        quote.Platform,
		Quantity:        quote.Quantity,
		TargetURL:       target,
		Currency:        quote.Currency,
		Rate:            quote.Rate,
		PriceSource:     string(quote.Source),
		ReferenceAmount: quote.ReferenceAmount,
		Amount:          quote.Amount,
		Status:          orderdomain.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if req.Metadata != nil {
		entity.Metadata = datatypes.JSONMap(req.Metadata)
	}

	if err := s.repo.Insert(ctx, s.db, entity); err != nil {
		return nil, err
	}

	s.metrics.OrderCreated(entity.Currency)
	s.log.Info("order created",
		zap.String("reference", entity.Reference),
		zap.String("offering", entity.OfferingCode),
		zap.String("platform", entity.Platform),
		zap.Int64("quantity", entity.Quantity),
		zap.String("source", entity.PriceSource),
	)
	return toResponse(entity), nil
}

func (s *Service) List(ctx context.Context, req orderdomain.ListRequest) (*orderdomain.ListResponse, error) {
	filter := orderdomain.ListFilter{
		Limit: req.Limit() + 1,
	}
	if req.Status != "" {
		status := orderdomain.Status(strings.ToLower(strings.TrimSpace(req.Status)))
		if !orderdomain.ValidStatus(status) {
			return nil, orderdomain.ErrInvalidStatus
		}
		filter.Status = status
	}
	filter.Platform = strings.ToLower(strings.TrimSpace(req.Platform))
	if offering := strings.TrimSpace(req.Offering); offering != "" {
		id, err := snowflake.ParseString(offering)
		if err != nil {
			return nil, orderdomain.ErrInvalidID
		}
		filter.OfferingID = id
	}
	if req.PageToken != "" {
		cursor, err := pagination.DecodeCursor(req.PageToken)
		if err != nil {
			return nil, orderdomain.ErrInvalidID
		}
		afterID, err := snowflake.ParseString(cursor.ID)
		if err != nil {
			return nil, orderdomain.ErrInvalidID
		}
		filter.AfterID = afterID
	}

	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	resp := &orderdomain.ListResponse{Orders: make([]orderdomain.Response, 0, len(items))}
	limit := req.Limit()
	if len(items) > limit {
		items = items[:limit]
		token, err := pagination.EncodeCursor(pagination.Cursor{ID: items[limit-1].ID.String()})
		if err != nil {
			return nil, err
		}
		resp.PageInfo = pagination.PageInfo{NextPageToken: token, HasMore: true}
	}
	for i := range items {
		resp.Orders = append(resp.Orders, *toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, reference string) (*orderdomain.Response, error) {
	entity, err := s.find(ctx, reference)
	if err != nil {
		return nil, err
	}
	return toResponse(entity), nil
}

func (s *Service) UpdateStatus(ctx context.Context, reference string, req orderdomain.UpdateStatusRequest) (*orderdomain.Response, error) {
	status := orderdomain.Status(strings.ToLower(strings.TrimSpace(string(req.Status))))
	if !orderdomain.ValidStatus(status) {
		return nil, orderdomain.ErrInvalidStatus
	}

	entity, err := s.find(ctx, reference)
	if err != nil {
		return nil, err
	}
	if !orderdomain.CanTransition(entity.Status, status) {
		return nil, orderdomain.ErrInvalidTransition
	}

	entity.Status = status
	entity.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, entity); err != nil {
		return nil, err
	}

	s.log.Info("order status changed",
		zap.String("reference", entity.Reference),
		zap.String("status", string(status)),
	)
	return toResponse(entity), nil
}

var exportHeader = []string{
	"reference", "offering", "platform", "quantity",
	"currency", "rate", "price_source", "reference_amount", "amount",
	"status", "target_url", "created_at",
}

func (s *Service) ExportCSV(ctx context.Context, filter orderdomain.ExportFilter, w io.Writer) (int, error) {
	if filter.Status != "" {
		status := orderdomain.Status(strings.ToLower(strings.TrimSpace(filter.Status)))
		if !orderdomain.ValidStatus(status) {
			return 0, orderdomain.ErrInvalidStatus
		}
		filter.Status = string(status)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return 0, err
	}

	rows := 0
	err := s.repo.Stream(ctx, s.db, orderdomain.StreamFilter{
		Status:   orderdomain.Status(filter.Status),
		Platform: strings.ToLower(strings.TrimSpace(filter.Platform)),
		From:     filter.From,
		To:       filter.To,
	}, func(order *orderdomain.Order) error {
		rows++
		return cw.Write([]string{
			order.Reference,
			order.OfferingCode,
			order.Platform,
			strconv.FormatInt(order.Quantity, 10),
			order.Currency,
			strconv.FormatFloat(order.Rate, 'f', -1, 64),
			order.PriceSource,
			strconv.FormatFloat(order.ReferenceAmount, 'f', 2, 64),
			strconv.FormatFloat(order.Amount, 'f', 2, 64),
			string(order.Status),
			order.TargetURL,
			order.CreatedAt.UTC().Format(time.RFC3339),
		})
	})
	if err != nil {
		return rows, err
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return rows, err
	}

	s.metrics.ExportRows(rows)
	return rows, nil
}

func (s *Service) allow(ctx context.Context, clientIP string) error {
	allowed, retryAfter, err := s.limiter.Allow(ctx, clientIP)
	if err != nil {
		s.log.Warn("order rate limiter unavailable", zap.Error(err))
		return nil
	}
	if !allowed {
		s.log.Info("order submission throttled",
			zap.String("client_ip", clientIP),
			zap.Duration("retry_after", retryAfter),
		)
		return orderdomain.ErrRateLimited
	}
	return nil
}

func (s *Service) find(ctx context.Context, reference string) (*orderdomain.Order, error) {
	reference = strings.ToUpper(strings.TrimSpace(reference))
	if reference == "" {
		return nil, orderdomain.ErrInvalidID
	}

	entity, err := s.repo.FindByReference(ctx, s.db, reference)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, orderdomain.ErrNotFound
	}
	return entity, nil
}

func validTargetURL(target string) bool {
	if target == "" {
		return false
	}
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func toResponse(o *orderdomain.Order) *orderdomain.Response {
	return &orderdomain.Response{
		ID:              o.ID.String(),
		Reference:       o.Reference,
		OfferingID:      o.OfferingID.String(),
		OfferingCode:    o.OfferingCode,
		Platform:        o.Platform,
		Quantity:        o.Quantity,
		TargetURL:       o.TargetURL,
		Currency:        o.Currency,
		Rate:            o.Rate,
		PriceSource:     o.PriceSource,
		ReferenceAmount: o.ReferenceAmount,
		Amount:          o.Amount,
		Status:          o.Status,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
