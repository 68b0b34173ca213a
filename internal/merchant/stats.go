package merchant

import (
	"time"

	"github.com/google/uuid"
)

// midnight truncates t to the start of its calendar day in t's location.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ComputeStats derives the dashboard summary from a raw transaction list and
// a reference instant. Windowed sums use an inclusive lower bound
// (created_at >= windowStart) with windows anchored at midnight of now's day,
// seven days before that midnight, and thirty days before it. The unique
// customer count spans all transactions regardless of window. All currency
// math is integer cents; deriving the same list twice yields identical sums.
func ComputeStats(transactions []Transaction, now time.Time) EarningsStats {
	dayStart := midnight(now)
	weekStart := dayStart.AddDate(0, 0, -7)
	monthStart := dayStart.AddDate(0, 0, -30)

	var stats EarningsStats
	customers := make(map[uuid.UUID]struct{})

	for _, tx := range transactions {
		stats.TotalCents += tx.AmountCents
		customers[tx.SourceUserID] = struct{}{}

		if !tx.CreatedAt.Before(dayStart) {
			stats.DailyCents += tx.AmountCents
		}
		if !tx.CreatedAt.Before(weekStart) {
			stats.WeeklyCents += tx.AmountCents
		}
		if !tx.CreatedAt.Before(monthStart) {
			stats.MonthlyCents += tx.AmountCents
		}
	}

	stats.TransactionCount = len(transactions)
	stats.UniqueCustomers = len(customers)

	stats.Total = formatAmount(stats.TotalCents)
	stats.Daily = formatAmount(stats.DailyCents)
	stats.Weekly = formatAmount(stats.WeeklyCents)
	stats.Monthly = formatAmount(stats.MonthlyCents)

	return stats
}
