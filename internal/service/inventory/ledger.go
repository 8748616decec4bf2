package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PizzaTimeVN/pizza-backend/internal/domain/models"
)

// Store is the persistence slice the ledger needs. Item reads/writes are
// single-key upserts; snapshots are append-only. Serializing concurrent delta
// writers (or using an atomic increment) is the storage layer's concern, not
// the ledger's.
type Store interface {
	ItemQuantity(ctx context.Context, item string) (float64, bool, error)
	UpsertItemQuantity(ctx context.Context, item string, quantity float64) error
	LatestSnapshot(ctx context.Context, store string) (*models.Snapshot, error)
	InsertSnapshot(ctx context.Context, snap models.Snapshot) error
	InsertDeltaAudit(ctx context.Context, audit models.DeltaAudit) error
	InsertCakeCheck(ctx context.Context, audit models.CakeCheckAudit) error
}

// Service maintains current stock per item from signed deltas and manual
// count corrections.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a ledger service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// SignedDelta converts a submitted magnitude into the signed quantity change
// for its kind: intake and production add stock, exports remove it.
func SignedDelta(kind models.DeltaKind, magnitude float64) float64 {
	if kind == models.DeltaExport {
		if magnitude > 0 {
			return -magnitude
		}
		return magnitude
	}
	return magnitude
}

// ApplyDelta reads the current quantity for an item (0 when unseen), applies
// the signed delta and upserts the result. Quantities may go negative; stock
// discrepancies are recorded, not rejected. Returns the new quantity.
func (s *Service) ApplyDelta(ctx context.Context, req models.DeltaRequest, actor string) (float64, error) {
	current, _, err := s.store.ItemQuantity(ctx, req.Item)
	if err != nil {
		return 0, fmt.Errorf("read item %s: %w", req.Item, err)
	}

	delta := SignedDelta(req.Kind, req.Quantity)
	next := current + delta

	if err := s.store.UpsertItemQuantity(ctx, req.Item, next); err != nil {
		return 0, fmt.Errorf("upsert item %s: %w", req.Item, err)
	}

	audit := models.DeltaAudit{
		ID:        uuid.NewString(),
		Item:      req.Item,
		Store:     req.Store,
		Kind:      req.Kind,
		Delta:     delta,
		Before:    current,
		After:     next,
		Actor:     actor,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.InsertDeltaAudit(ctx, audit); err != nil {
		// The ledger write already landed; a lost audit row is logged, not
		// surfaced.
		s.logger.Error("failed to write delta audit", zap.Error(err), zap.String("item", req.Item))
	}

	s.logger.Info("inventory delta applied",
		zap.String("item", req.Item),
		zap.String("kind", string(req.Kind)),
		zap.Float64("delta", delta),
		zap.Float64("quantity", next))
	return next, nil
}

// ApplyAdjustments overlays counted values onto a prior snapshot by direct
// replacement and returns a fresh mapping. The input snapshot is not mutated.
func ApplyAdjustments(prior map[string]float64, adjustments []models.Adjustment) map[string]float64 {
	next := make(map[string]float64, len(prior)+len(adjustments))
	for item, qty := range prior {
		next[item] = qty
	}
	for _, adj := range adjustments {
		next[adj.Item] = adj.Quantity
	}
	return next
}

// AdjustSnapshot reads the latest snapshot for a store, applies manual count
// overrides and persists the result as a new immutable snapshot.
func (s *Service) AdjustSnapshot(ctx context.Context, req models.AdjustRequest, actor string) (models.Snapshot, error) {
	prior, err := s.store.LatestSnapshot(ctx, req.Store)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("load latest snapshot for %s: %w", req.Store, err)
	}

	var base map[string]float64
	if prior != nil {
		base = prior.Items
	}

	snap := models.Snapshot{
		Store:     req.Store,
		Items:     ApplyAdjustments(base, req.Adjustments),
		CreatedAt: s.now().UTC(),
	}

	if err := s.store.InsertSnapshot(ctx, snap); err != nil {
		return models.Snapshot{}, fmt.Errorf("persist snapshot for %s: %w", req.Store, err)
	}

	s.logger.Info("inventory snapshot adjusted",
		zap.String("store", req.Store),
		zap.Int("overrides", len(req.Adjustments)),
		zap.Int("items", len(snap.Items)))
	return snap, nil
}

// CurrentSnapshot returns the latest snapshot for a store, or an empty one
// when the store has never been counted.
func (s *Service) CurrentSnapshot(ctx context.Context, store string) (models.Snapshot, error) {
	snap, err := s.store.LatestSnapshot(ctx, store)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("load latest snapshot for %s: %w", store, err)
	}
	if snap == nil {
		return models.Snapshot{Store: store, Items: map[string]float64{}}, nil
	}
	return *snap, nil
}
