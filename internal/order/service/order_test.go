package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/jawadsites/boostpanel/internal/config"
	currencydomain "github.com/jawadsites/boostpanel/internal/currency/domain"
	currencyrepo "github.com/jawadsites/boostpanel/internal/currency/repository"
	offeringdomain "github.com/jawadsites/boostpanel/internal/offering/domain"
	offeringrepo "github.com/jawadsites/boostpanel/internal/offering/repository"
	orderdomain "github.com/jawadsites/boostpanel/internal/order/domain"
	orderrepo "github.com/jawadsites/boostpanel/internal/order/repository"
	tierdomain "github.com/jawadsites/boostpanel/internal/pricetier/domain"
	tierrepo "github.com/jawadsites/boostpanel/internal/pricetier/repository"
	pricingservice "github.com/jawadsites/boostpanel/internal/pricing/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newOrderService(t *testing.T) (orderdomain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&offeringdomain.Offering{},
		&offeringdomain.OfferingPlatform{},
		&tierdomain.PriceTier{},
		&currencydomain.CurrencyRate{},
		&orderdomain.Order{},
	)
	require.NoError(t, err)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	holder, err := config.NewPricingConfigHolder()
	require.NoError(t, err)

	now := time.Now().UTC()
	offering := offeringdomain.Offering{
		ID:            node.Generate(),
		Code:          "likes",
		Name:          "Likes",
		BasePricePerK: 1.5,
		MinQuantity:   50,
		MaxQuantity:   500000,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, db.Create(&offering).Error)
	require.NoError(t, db.Create(&offeringdomain.OfferingPlatform{
		ID:         node.Generate(),
		OfferingID: offering.ID,
		Platform:   "instagram",
		Factor:     1.0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}).Error)
	require.NoError(t, db.Create(&currencydomain.CurrencyRate{
		ID:        node.Generate(),
		Code:      "USD",
		Rate:      1.0,
		Symbol:    "$",
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}).Error)

	pricingSvc := pricingservice.New(pricingservice.Params{
		DB:          db,
		Log:         zap.NewNop(),
		Offerings:   offeringrepo.Provide(),
		Tiers:       tierrepo.Provide(),
		Currencies:  currencyrepo.Provide(),
		PricingConf: holder,
	})

	svc := New(Params{
		DB:      db,
		Log:     zap.NewNop(),
		GenID:   node,
		Repo:    orderrepo.Provide(),
		Pricing: pricingSvc,
	})
	return svc, db
}

func createOrder(t *testing.T, svc orderdomain.Service, quantity int64) *orderdomain.Response {
	t.Helper()
	resp, err := svc.Create(context.Background(), orderdomain.CreateRequest{
		Offering:  "likes",
		Platform:  "instagram",
		Quantity:  quantity,
		TargetURL: "https://instagram.com/p/abc123",
	})
	require.NoError(t, err)
	return resp
}

func TestCreateOrder_FreezesQuote(t *testing.T) {
	svc, _ := newOrderService(t)

	resp := createOrder(t, svc, 1000)

	assert.Len(t, resp.Reference, 26)
	assert.Equal(t, orderdomain.StatusPending, resp.Status)
	assert.Equal(t, "likes", resp.OfferingCode)
	assert.Equal(t, "instagram", resp.Platform)
	assert.Equal(t, "base", resp.PriceSource)
	assert.InDelta(t, 1.5, resp.Amount, 1e-9)
}

func TestCreateOrder_RequiresTargetURL(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, orderdomain.CreateRequest{
		Offering: "likes",
		Platform: "instagram",
		Quantity: 1000,
	})
	assert.ErrorIs(t, err, orderdomain.ErrInvalidTargetURL)

	_, err = svc.Create(ctx, orderdomain.CreateRequest{
		Offering:  "likes",
		Platform:  "instagram",
		Quantity:  1000,
		TargetURL: "not a url",
	})
	assert.ErrorIs(t, err, orderdomain.ErrInvalidTargetURL)
}

func TestOrderStatusTransitions(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	resp := createOrder(t, svc, 1000)

	updated, err := svc.UpdateStatus(ctx, resp.Reference, orderdomain.UpdateStatusRequest{Status: orderdomain.StatusProcessing})
	require.NoError(t, err)
	assert.Equal(t, orderdomain.StatusProcessing, updated.Status)

	updated, err = svc.UpdateStatus(ctx, resp.Reference, orderdomain.UpdateStatusRequest{Status: orderdomain.StatusCompleted})
	require.NoError(t, err)
	assert.Equal(t, orderdomain.StatusCompleted, updated.Status)

	// Completed is terminal.
	_, err = svc.UpdateStatus(ctx, resp.Reference, orderdomain.UpdateStatusRequest{Status: orderdomain.StatusPending})
	assert.ErrorIs(t, err, orderdomain.ErrInvalidTransition)

	_, err = svc.UpdateStatus(ctx, resp.Reference, orderdomain.UpdateStatusRequest{Status: "bogus"})
	assert.ErrorIs(t, err, orderdomain.ErrInvalidStatus)

	_, err = svc.UpdateStatus(ctx, "01ARZ3NDEKTSV4RRFFQ69G5FAV", orderdomain.UpdateStatusRequest{Status: orderdomain.StatusProcessing})
	assert.ErrorIs(t, err, orderdomain.ErrNotFound)
}

func TestGetOrder_ByReference(t *testing.T) {
	svc, _ := newOrderService(t)

	created := createOrder(t, svc, 1000)

	got, err := svc.Get(context.Background(), created.Reference)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, orderdomain.ErrInvalidID)
}

func TestListOrders_Pagination(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		createOrder(t, svc, 1000)
	}

	req := orderdomain.ListRequest{}
	req.PageSize = 2

	page1, err := svc.List(ctx, req)
	require.NoError(t, err)
	assert.Len(t, page1.Orders, 2)
	assert.True(t, page1.PageInfo.HasMore)

	req.PageToken = page1.PageInfo.NextPageToken
	page2, err := svc.List(ctx, req)
	require.NoError(t, err)
	assert.Len(t, page2.Orders, 2)
	assert.NotEqual(t, page1.Orders[0].ID, page2.Orders[0].ID)

	req.PageToken = page2.PageInfo.NextPageToken
	page3, err := svc.List(ctx, req)
	require.NoError(t, err)
	assert.Len(t, page3.Orders, 1)
	assert.False(t, page3.PageInfo.HasMore)
}

func TestListOrders_StatusFilter(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	first := createOrder(t, svc, 1000)
	createOrder(t, svc, 2000)

	_, err := svc.UpdateStatus(ctx, first.Reference, orderdomain.UpdateStatusRequest{Status: orderdomain.StatusProcessing})
	require.NoError(t, err)

	resp, err := svc.List(ctx, orderdomain.ListRequest{Status: "processing"})
	require.NoError(t, err)
	assert.Len(t, resp.Orders, 1)
	assert.Equal(t, first.Reference, resp.Orders[0].Reference)

	_, err = svc.List(ctx, orderdomain.ListRequest{Status: "bogus"})
	assert.ErrorIs(t, err, orderdomain.ErrInvalidStatus)
}

func TestExportCSV(t *testing.T) {
	svc, _ := newOrderService(t)

	createOrder(t, svc, 1000)
	createOrder(t, svc, 2000)

	var buf bytes.Buffer
	rows, err := svc.ExportCSV(context.Background(), orderdomain.ExportFilter{}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, rows)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "reference", records[0][0])
	assert.Equal(t, "likes", records[1][1])
	assert.Equal(t, "1000", records[1][3])
}
