package merchant

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(customer uuid.UUID, cents int64, at time.Time) Transaction {
	return Transaction{
		ID:           uuid.New(),
		RecipientID:  uuid.New(),
		SourceUserID: customer,
		AmountCents:  cents,
		Type:         TransactionTypeEarning,
		CreatedAt:    at,
	}
}

func TestComputeStatsWindows(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	customer := uuid.New()

	transactions := []Transaction{
		tx(customer, 100, now),                     // today
		tx(customer, 200, now.AddDate(0, 0, -8)),   // within 30 days, outside 7
	}

	stats := ComputeStats(transactions, now)

	assert.Equal(t, int64(100), stats.DailyCents)
	assert.Equal(t, int64(100), stats.WeeklyCents)
	assert.Equal(t, int64(300), stats.MonthlyCents)
	assert.Equal(t, int64(300), stats.TotalCents)
	assert.Equal(t, 2, stats.TransactionCount)
}

func TestComputeStatsInclusiveBoundary(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	dayStart := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	customer := uuid.New()

	transactions := []Transaction{
		tx(customer, 100, dayStart),                      // exactly at midnight
		tx(customer, 200, dayStart.Add(-time.Nanosecond)), // just before
		tx(customer, 400, dayStart.AddDate(0, 0, -7)),     // exactly at week start
		tx(customer, 800, dayStart.AddDate(0, 0, -30)),    // exactly at month start
	}

	stats := ComputeStats(transactions, now)

	assert.Equal(t, int64(100), stats.DailyCents, "lower bound is inclusive")
	assert.Equal(t, int64(700), stats.WeeklyCents)
	assert.Equal(t, int64(1500), stats.MonthlyCents)
	assert.Equal(t, int64(1500), stats.TotalCents)
}

func TestComputeStatsUniqueCustomers(t *testing.T) {
	now := time.Now()
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	transactions := []Transaction{
		tx(a, 10, now),
		tx(a, 10, now.AddDate(0, 0, -40)),
		tx(b, 10, now),
		tx(c, 10, now),
		tx(b, 10, now.AddDate(0, 0, -40)),
	}

	stats := ComputeStats(transactions, now)

	assert.Equal(t, 3, stats.UniqueCustomers, "counted across all transactions, not windowed")
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil, time.Now())

	assert.Equal(t, int64(0), stats.TotalCents)
	assert.Equal(t, 0, stats.TransactionCount)
	assert.Equal(t, 0, stats.UniqueCustomers)
	assert.Equal(t, "0.00", stats.Total)
}

func TestComputeStatsDeterministic(t *testing.T) {
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	customer := uuid.New()

	transactions := []Transaction{
		tx(customer, 1999, now),
		tx(customer, 1, now.AddDate(0, 0, -3)),
		tx(customer, 33333, now.AddDate(0, 0, -20)),
	}

	first := ComputeStats(transactions, now)
	second := ComputeStats(transactions, now)

	require.Equal(t, first, second, "recomputing over the same inputs never drifts")
	assert.Equal(t, "353.33", first.Total)
	assert.Equal(t, "20.00", first.Weekly)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0.00", formatAmount(0))
	assert.Equal(t, "0.01", formatAmount(1))
	assert.Equal(t, "1.00", formatAmount(100))
	assert.Equal(t, "12345.67", formatAmount(1234567))
	assert.Equal(t, "-5.50", formatAmount(-550))
}
