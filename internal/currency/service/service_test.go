package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	currencydomain "github.com/jawadsites/boostpanel/internal/currency/domain"
	"github.com/jawadsites/boostpanel/internal/currency/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newService(t *testing.T) currencydomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&currencydomain.CurrencyRate{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func TestUpsertCurrency(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Upsert(ctx, currencydomain.UpsertRequest{Code: "sar", Rate: 3.75, Symbol: "SAR"})
	require.NoError(t, err)
	assert.Equal(t, "SAR", created.Code)
	assert.True(t, created.Active)

	// Second upsert updates the rate in place.
	updated, err := svc.Upsert(ctx, currencydomain.UpsertRequest{Code: "SAR", Rate: 3.76})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.InDelta(t, 3.76, updated.Rate, 1e-9)
	assert.Equal(t, "SAR", updated.Symbol)
}

func TestUpsertCurrency_Validation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, currencydomain.UpsertRequest{Code: "S", Rate: 1})
	assert.ErrorIs(t, err, currencydomain.ErrInvalidCode)

	_, err = svc.Upsert(ctx, currencydomain.UpsertRequest{Code: "US1", Rate: 1})
	assert.ErrorIs(t, err, currencydomain.ErrInvalidCode)

	_, err = svc.Upsert(ctx, currencydomain.UpsertRequest{Code: "EUR", Rate: 0})
	assert.ErrorIs(t, err, currencydomain.ErrInvalidRate)
}

func TestGetAndListCurrencies(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, currencydomain.UpsertRequest{Code: "USD", Rate: 1, Symbol: "$"})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, currencydomain.UpsertRequest{Code: "SAR", Rate: 3.75, Symbol: "SAR"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "usd")
	require.NoError(t, err)
	assert.Equal(t, "USD", got.Code)

	_, err = svc.Get(ctx, "EUR")
	assert.ErrorIs(t, err, currencydomain.ErrNotFound)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "SAR", items[0].Code)
	assert.Equal(t, "USD", items[1].Code)
}
