package merchant

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tixly/internal/profile"
	"tixly/internal/shared/view"
	"tixly/pkg/cache"
	"tixly/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	GetStats(ctx context.Context, merchantID uuid.UUID) (*EarningsStats, error)
	GetTransactions(ctx context.Context, merchantID uuid.UUID) (*TransactionListResponse, error)

	// SetCacheService injects the cache service dependency
	SetCacheService(cacheService cache.Service)
}

type service struct {
	repo         Repository
	cacheService cache.Service
	views        *view.Registry
	statsTTL     time.Duration
	log          *logger.Logger
}

func NewService(repo Repository, statsTTL time.Duration) Service {
	return &service{
		repo:     repo,
		views:    view.NewRegistry(),
		statsTTL: statsTTL,
		log:      logger.GetDefault(),
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// GetStats recomputes the dashboard summary wholesale from the transaction
// list. The earnings fetch and the QR count run concurrently; completions are
// generation-guarded so a stale recompute never overwrites a fresher cached
// summary.
func (s *service) GetStats(ctx context.Context, merchantID uuid.UUID) (*EarningsStats, error) {
	cacheKey := cache.MerchantStatsKey(merchantID.String())

	if s.cacheService != nil {
		var cached EarningsStats
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	viewKey := "merchant:stats:" + merchantID.String()
	gen := s.views.Next(viewKey)

	var (
		wg           sync.WaitGroup
		transactions []Transaction
		qrCount      int64
		txErr        error
		qrErr        error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		transactions, txErr = s.repo.GetEarnings(ctx, merchantID)
	}()
	go func() {
		defer wg.Done()
		qrCount, qrErr = s.repo.ActiveQRCount(ctx, merchantID)
	}()
	wg.Wait()

	if txErr != nil {
		return nil, fmt.Errorf("failed to get merchant earnings: %w", txErr)
	}
	if qrErr != nil {
		return nil, fmt.Errorf("failed to count active qr codes: %w", qrErr)
	}

	stats := ComputeStats(transactions, time.Now())
	stats.ActiveQRCount = qrCount

	if s.cacheService != nil {
		if s.views.Current(viewKey, gen) {
			if err := s.cacheService.Set(ctx, cacheKey, stats, s.statsTTL); err != nil {
				s.log.Warn("failed to cache merchant stats", "merchant_id", merchantID.String(), "error", err)
			}
		} else {
			s.log.LogStaleFetchDiscarded(ctx, viewKey, gen)
		}
	}

	return &stats, nil
}

// GetTransactions returns the merchant's earnings joined with customer names,
// newest first. A transaction whose payer has no profile gets the fallback
// display name.
func (s *service) GetTransactions(ctx context.Context, merchantID uuid.UUID) (*TransactionListResponse, error) {
	cacheKey := cache.MerchantTransactionsKey(merchantID.String())

	if s.cacheService != nil {
		var cached TransactionListResponse
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	viewKey := "merchant:transactions:" + merchantID.String()
	gen := s.views.Next(viewKey)

	rows, err := s.repo.GetTransactionRows(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get merchant transactions: %w", err)
	}

	out := make([]TransactionResponse, 0, len(rows))
	for _, row := range rows {
		name := row.CustomerName
		if name == "" {
			name = profile.FallbackDisplayName
		}
		out = append(out, TransactionResponse{
			ID:           row.ID.String(),
			CustomerName: name,
			AmountCents:  row.AmountCents,
			Amount:       formatAmount(row.AmountCents),
			Type:         row.Type,
			CreatedAt:    row.CreatedAt,
		})
	}

	resp := &TransactionListResponse{
		Transactions: out,
		TotalCount:   len(out),
	}

	if s.cacheService != nil {
		if s.views.Current(viewKey, gen) {
			if err := s.cacheService.Set(ctx, cacheKey, resp, s.statsTTL); err != nil {
				s.log.Warn("failed to cache merchant transactions", "merchant_id", merchantID.String(), "error", err)
			}
		} else {
			s.log.LogStaleFetchDiscarded(ctx, viewKey, gen)
		}
	}

	return resp, nil
}
