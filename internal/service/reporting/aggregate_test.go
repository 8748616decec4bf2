package reporting_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PizzaTimeVN/pizza-backend/internal/domain/models"
	"github.com/PizzaTimeVN/pizza-backend/internal/service/reporting"
)

func TestSummarizeSales_ChannelSums(t *testing.T) {
	batch := []models.Record{
		{"cash_revenue": 100.0, "transfer_revenue": 50.0, "grab_revenue": 25.0, "shopee_revenue": 10.0, "total_revenue": 185.0},
		{"cash": "40", "momo": 20.0, "grab": 5.0, "shopee": 5.0, "total": 70.0},
	}

	summary := reporting.SummarizeSales(batch)

	assert.Equal(t, 140.0, summary.Cash)
	assert.Equal(t, 70.0, summary.Transfer)
	assert.Equal(t, 30.0, summary.Grab)
	assert.Equal(t, 15.0, summary.Shopee)
	assert.Equal(t, 255.0, summary.Total)
	assert.Len(t, summary.Data, 2)
}

func TestSummarizeSales_TotalIndependentOfChannels(t *testing.T) {
	// The total channel has its own alias family; it is not recomputed from
	// the four payment channels.
	batch := []models.Record{
		{"cash_revenue": 100.0, "total_revenue": 90.0},
	}

	summary := reporting.SummarizeSales(batch)

	assert.Equal(t, 100.0, summary.Cash)
	assert.Equal(t, 90.0, summary.Total)
}

func TestSummarizeSales_EmptyBatch(t *testing.T) {
	summary := reporting.SummarizeSales(nil)

	assert.Zero(t, summary.Cash)
	assert.Zero(t, summary.Transfer)
	assert.Zero(t, summary.Grab)
	assert.Zero(t, summary.Shopee)
	assert.Zero(t, summary.Total)
	assert.NotNil(t, summary.Data)
	assert.Empty(t, summary.Data)
}

func TestSummarizeQuantity_CoercionAndDefaults(t *testing.T) {
	batch := []models.Record{
		{"quantity": 5, "category": "Pizza", "product_name": "Margherita"},
		{"quantity": "3", "category": "Pizza", "product": "Margherita"},
		{"quantity": nil},
	}

	summary := reporting.SummarizeQuantity(batch)

	assert.Equal(t, 8, summary.TotalQuantity)
	assert.Equal(t, 3, summary.TotalOrders)
	// "Pizza" plus the default label for the third row.
	assert.Equal(t, 2, summary.TotalCategories)
	// product_name and product alias hits are not canonicalized against each
	// other, so "Margherita" counts once and the defaulted row once.
	assert.Equal(t, 2, summary.TotalProducts)
}

func TestSummarizeQuantity_EmptyBatch(t *testing.T) {
	summary := reporting.SummarizeQuantity([]models.Record{})

	assert.Zero(t, summary.TotalQuantity)
	assert.Zero(t, summary.TotalOrders)
	assert.Zero(t, summary.TotalCategories)
	assert.Zero(t, summary.TotalProducts)
	assert.Empty(t, summary.Data)
}

func exportRow(date, store, item string, qty float64, createdAt time.Time, id float64) models.Record {
	return models.Record{
		"date":       date,
		"store":      store,
		"item":       item,
		"quantity":   qty,
		"created_at": createdAt,
		"id":         id,
	}
}

func TestDeduplicateExports_LatestWinsRegardlessOfOrder(t *testing.T) {
	older := time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC)
	newer := older.Add(2 * time.Hour)

	first := exportRow("2024-03-09", "q1", "dough", -10, older, 1)
	second := exportRow("2024-03-09", "q1", "dough", -12, newer, 2)

	for _, batch := range [][]models.Record{
		{first, second},
		{second, first},
	} {
		deduped := reporting.DeduplicateExports(batch)
		require.Len(t, deduped, 1)
		assert.Equal(t, -12.0, deduped[0].Number("quantity"))
	}
}

func TestDeduplicateExports_DistinctKeysKept(t *testing.T) {
	at := time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC)
	batch := []models.Record{
		exportRow("2024-03-09", "q1", "dough", -10, at, 1),
		exportRow("2024-03-09", "q2", "dough", -4, at, 2),
		exportRow("2024-03-10", "q1", "dough", -7, at, 3),
		exportRow("2024-03-09", "q1", "cheese", -2, at, 4),
	}

	assert.Len(t, reporting.DeduplicateExports(batch), 4)
}

func TestDeduplicateExports_Idempotent(t *testing.T) {
	older := time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC)
	batch := []models.Record{
		exportRow("2024-03-09", "q1", "dough", -10, older, 1),
		exportRow("2024-03-09", "q1", "dough", -12, older.Add(time.Hour), 2),
		exportRow("2024-03-09", "q2", "cheese", -3, older, 3),
	}

	once := reporting.DeduplicateExports(batch)
	twice := reporting.DeduplicateExports(once)

	assert.Equal(t, once, twice)
}

func TestDeduplicateExports_EqualTimestampTieBreaksOnID(t *testing.T) {
	at := time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC)

	low := exportRow("2024-03-09", "q1", "dough", -10, at, 5)
	high := exportRow("2024-03-09", "q1", "dough", -12, at, 9)

	for _, batch := range [][]models.Record{
		{low, high},
		{high, low},
	} {
		deduped := reporting.DeduplicateExports(batch)
		require.Len(t, deduped, 1)
		assert.Equal(t, 9.0, deduped[0].Number("id"))
	}
}

func TestSummarizeExports_AbsoluteQuantities(t *testing.T) {
	at := time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC)
	deduped := []models.Record{
		exportRow("2024-03-09", "q1", "dough", -10, at, 1),
		exportRow("2024-03-09", "q2", "cheese", 4, at, 2),
	}

	summary := reporting.SummarizeExports(deduped)

	assert.Equal(t, 14.0, summary.TotalQuantity)
	assert.GreaterOrEqual(t, summary.TotalQuantity, 0.0)
	assert.Equal(t, 2, summary.TotalOrders)
	assert.Equal(t, 2, summary.TotalStores)
	assert.Equal(t, 2, summary.TotalProducts)
}

func TestSummarizeExports_EmptySet(t *testing.T) {
	summary := reporting.SummarizeExports(nil)

	assert.Zero(t, summary.TotalQuantity)
	assert.Zero(t, summary.TotalOrders)
	assert.Zero(t, summary.TotalStores)
	assert.Zero(t, summary.TotalProducts)
	assert.Empty(t, summary.Data)
}
