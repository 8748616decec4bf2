package reporting

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/PizzaTimeVN/pizza-backend/internal/domain/models"
)

// ErrUnknownChannel indicates a channel update named none of the four payment
// channels.
var ErrUnknownChannel = errors.New("unknown revenue channel")

// ErrSaleNotFound indicates no revenue record exists for the requested
// store/date key.
var ErrSaleNotFound = errors.New("sale record not found")

// Store is the slice of the persistence layer the reporting service needs.
// Batches come back already filtered by date range and store predicate; the
// service only aggregates.
type Store interface {
	FetchSales(ctx context.Context, rng models.DateRange, filter StoreFilter) ([]models.Record, error)
	FetchProductSales(ctx context.Context, rng models.DateRange, store string) ([]models.Record, error)
	FetchExports(ctx context.Context, rng models.DateRange, filter StoreFilter) ([]models.Record, error)
	FetchStoreDirectory(ctx context.Context) ([]models.Record, error)
	FetchSaleRecord(ctx context.Context, store, date string) (models.Record, error)
	UpdateSaleChannel(ctx context.Context, store, date string, fields map[string]float64) error
}

// Service exposes the read-side aggregation operations.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService wires a reporting service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// GetSales fetches revenue rows for the query window and returns the channel
// sums.
func (s *Service) GetSales(ctx context.Context, q models.SalesQuery) (models.SalesSummary, error) {
	filter := ResolveStoreFilter(q.Stores)

	batch, err := s.store.FetchSales(ctx, q.DateRange, filter)
	if err != nil {
		return models.SalesSummary{}, fmt.Errorf("fetch sales batch: %w", err)
	}

	summary := SummarizeSales(batch)
	s.logger.Debug("sales summarized",
		zap.String("start", q.Start),
		zap.String("end", q.End),
		zap.Int("rows", len(batch)),
		zap.Float64("total", summary.Total))
	return summary, nil
}

// GetQuantity fetches product sale rows and returns quantity aggregates.
func (s *Service) GetQuantity(ctx context.Context, q models.QuantityQuery) (models.QuantitySummary, error) {
	batch, err := s.store.FetchProductSales(ctx, q.DateRange, q.Store)
	if err != nil {
		return models.QuantitySummary{}, fmt.Errorf("fetch product sales batch: %w", err)
	}

	return SummarizeQuantity(batch), nil
}

// GetExports fetches raw export rows, collapses resubmissions and returns the
// aggregate over the authoritative set.
func (s *Service) GetExports(ctx context.Context, q models.ExportQuery) (models.ExportSummary, error) {
	filter := ResolveStoreFilter(q.Stores)

	batch, err := s.store.FetchExports(ctx, q.DateRange, filter)
	if err != nil {
		return models.ExportSummary{}, fmt.Errorf("fetch exports batch: %w", err)
	}

	deduped := DeduplicateExports(batch)
	if dropped := len(batch) - len(deduped); dropped > 0 {
		s.logger.Debug("export resubmissions collapsed", zap.Int("dropped", dropped))
	}
	return SummarizeExports(deduped), nil
}

// ListStores returns the store directory, keeping the first row seen per
// store id.
func (s *Service) ListStores(ctx context.Context) ([]models.StoreInfo, error) {
	rows, err := s.store.FetchStoreDirectory(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch store directory: %w", err)
	}

	seen := make(map[string]struct{})
	stores := []models.StoreInfo{}
	for _, rec := range rows {
		id := rec.String("", "store_id")
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		stores = append(stores, models.StoreInfo{
			StoreID:  id,
			Username: rec.String("", "username"),
		})
	}
	return stores, nil
}

// UpdateChannel rewrites one payment channel amount for a (store, date)
// revenue record. The stored total is recomputed by difference so it stays
// consistent with concurrent edits to other channels. Writes land on the
// canonical field names; reads keep preferring them through the alias lists.
func (s *Service) UpdateChannel(ctx context.Context, req models.ChannelUpdateRequest) (models.ChannelUpdateResult, error) {
	aliases, ok := ChannelAliases(req.Channel)
	if !ok {
		return models.ChannelUpdateResult{}, ErrUnknownChannel
	}

	rec, err := s.store.FetchSaleRecord(ctx, req.Store, req.Date)
	if err != nil {
		return models.ChannelUpdateResult{}, fmt.Errorf("fetch sale record: %w", err)
	}
	if rec == nil {
		return models.ChannelUpdateResult{}, ErrSaleNotFound
	}

	oldAmount := rec.Number(aliases...)
	oldTotal := rec.Number(totalAliases...)
	newTotal := RecomputeTotal(oldTotal, oldAmount, req.Amount)

	fields := map[string]float64{
		CanonicalChannelField(req.Channel): req.Amount,
		totalAliases[0]:                    newTotal,
	}
	if err := s.store.UpdateSaleChannel(ctx, req.Store, req.Date, fields); err != nil {
		return models.ChannelUpdateResult{}, fmt.Errorf("update sale channel: %w", err)
	}

	s.logger.Info("revenue channel updated",
		zap.String("store", req.Store),
		zap.String("date", req.Date),
		zap.String("channel", req.Channel),
		zap.Float64("old_amount", oldAmount),
		zap.Float64("new_amount", req.Amount),
		zap.Float64("new_total", newTotal))

	return models.ChannelUpdateResult{
		Store:     req.Store,
		Date:      req.Date,
		Channel:   req.Channel,
		OldAmount: oldAmount,
		NewAmount: req.Amount,
		NewTotal:  newTotal,
	}, nil
}

// Digest is the daily roll-up pushed to the owner's chat channel and
// bookkeeping sheet.
type Digest struct {
	Date    string
	Sales   models.SalesSummary
	Exports models.ExportSummary
}

// DailyDigest aggregates one calendar day across every store.
func (s *Service) DailyDigest(ctx context.Context, date string) (Digest, error) {
	rng := models.DateRange{Start: date, End: date}

	sales, err := s.GetSales(ctx, models.SalesQuery{DateRange: rng})
	if err != nil {
		return Digest{}, err
	}
	exports, err := s.GetExports(ctx, models.ExportQuery{DateRange: rng})
	if err != nil {
		return Digest{}, err
	}

	return Digest{Date: date, Sales: sales, Exports: exports}, nil
}
