package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PizzaTimeVN/pizza-backend/internal/domain/models"
	"github.com/PizzaTimeVN/pizza-backend/internal/service/inventory"
)

// fakeStore keeps item quantities and snapshots in memory and records every
// audit row it receives.
type fakeStore struct {
	items      map[string]float64
	snapshots  map[string][]models.Snapshot
	deltaAudit []models.DeltaAudit
	cakeAudit  []models.CakeCheckAudit

	itemErr  error
	auditErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		items:     map[string]float64{},
		snapshots: map[string][]models.Snapshot{},
	}
}

func (f *fakeStore) ItemQuantity(_ context.Context, item string) (float64, bool, error) {
	if f.itemErr != nil {
		return 0, false, f.itemErr
	}
	qty, ok := f.items[item]
	return qty, ok, nil
}

func (f *fakeStore) UpsertItemQuantity(_ context.Context, item string, quantity float64) error {
	f.items[item] = quantity
	return nil
}

func (f *fakeStore) LatestSnapshot(_ context.Context, store string) (*models.Snapshot, error) {
	snaps := f.snapshots[store]
	if len(snaps) == 0 {
		return nil, nil
	}
	latest := snaps[len(snaps)-1]
	return &latest, nil
}

func (f *fakeStore) InsertSnapshot(_ context.Context, snap models.Snapshot) error {
	f.snapshots[snap.Store] = append(f.snapshots[snap.Store], snap)
	return nil
}

func (f *fakeStore) InsertDeltaAudit(_ context.Context, audit models.DeltaAudit) error {
	if f.auditErr != nil {
		return f.auditErr
	}
	f.deltaAudit = append(f.deltaAudit, audit)
	return nil
}

func (f *fakeStore) InsertCakeCheck(_ context.Context, audit models.CakeCheckAudit) error {
	f.cakeAudit = append(f.cakeAudit, audit)
	return nil
}

func TestSignedDelta(t *testing.T) {
	assert.Equal(t, 5.0, inventory.SignedDelta(models.DeltaIntake, 5))
	assert.Equal(t, 5.0, inventory.SignedDelta(models.DeltaProduction, 5))
	assert.Equal(t, -5.0, inventory.SignedDelta(models.DeltaExport, 5))
	// Already-negative export magnitudes are not flipped back positive.
	assert.Equal(t, -5.0, inventory.SignedDelta(models.DeltaExport, -5))
}

func TestApplyDelta_UnseenItemBaseZero(t *testing.T) {
	store := newFakeStore()
	svc := inventory.NewService(store, nil)

	qty, err := svc.ApplyDelta(context.Background(), models.DeltaRequest{
		Item: "dough", Quantity: 7, Kind: models.DeltaIntake,
	}, "anna")

	require.NoError(t, err)
	assert.Equal(t, 7.0, qty)
	assert.Equal(t, 7.0, store.items["dough"])
}

func TestApplyDelta_Additivity(t *testing.T) {
	store := newFakeStore()
	svc := inventory.NewService(store, nil)
	ctx := context.Background()

	_, err := svc.ApplyDelta(ctx, models.DeltaRequest{Item: "dough", Quantity: 7, Kind: models.DeltaIntake}, "")
	require.NoError(t, err)
	qty, err := svc.ApplyDelta(ctx, models.DeltaRequest{Item: "dough", Quantity: 3, Kind: models.DeltaProduction}, "")
	require.NoError(t, err)

	assert.Equal(t, 10.0, qty)
}

func TestApplyDelta_ExportCanGoNegative(t *testing.T) {
	store := newFakeStore()
	store.items["cheese"] = 2
	svc := inventory.NewService(store, nil)

	qty, err := svc.ApplyDelta(context.Background(), models.DeltaRequest{
		Item: "cheese", Quantity: 5, Kind: models.DeltaExport,
	}, "")

	require.NoError(t, err)
	// No floor: discrepancies are recorded, not rejected.
	assert.Equal(t, -3.0, qty)
}

func TestApplyDelta_WritesAuditTrail(t *testing.T) {
	store := newFakeStore()
	store.items["dough"] = 4
	svc := inventory.NewService(store, nil)

	_, err := svc.ApplyDelta(context.Background(), models.DeltaRequest{
		Item: "dough", Quantity: 6, Kind: models.DeltaExport, Store: "q1",
	}, "anna")

	require.NoError(t, err)
	require.Len(t, store.deltaAudit, 1)
	audit := store.deltaAudit[0]
	assert.NotEmpty(t, audit.ID)
	assert.Equal(t, 4.0, audit.Before)
	assert.Equal(t, -2.0, audit.After)
	assert.Equal(t, -6.0, audit.Delta)
	assert.Equal(t, "anna", audit.Actor)
}

func TestApplyDelta_AuditFailureDoesNotFailWrite(t *testing.T) {
	store := newFakeStore()
	store.auditErr = errors.New("audit collection unavailable")
	svc := inventory.NewService(store, nil)

	qty, err := svc.ApplyDelta(context.Background(), models.DeltaRequest{
		Item: "dough", Quantity: 2, Kind: models.DeltaIntake,
	}, "")

	require.NoError(t, err)
	assert.Equal(t, 2.0, qty)
}

func TestApplyDelta_ReadFailureSurfaced(t *testing.T) {
	store := newFakeStore()
	store.itemErr = errors.New("connection reset")
	svc := inventory.NewService(store, nil)

	_, err := svc.ApplyDelta(context.Background(), models.DeltaRequest{
		Item: "dough", Quantity: 2, Kind: models.DeltaIntake,
	}, "")

	assert.ErrorContains(t, err, "read item dough")
}

func TestApplyAdjustments_ReplacementNotAdditive(t *testing.T) {
	prior := map[string]float64{"dough": 10, "cheese": 3}

	next := inventory.ApplyAdjustments(prior, []models.Adjustment{
		{Item: "dough", Quantity: 4},
		{Item: "sauce", Quantity: 2},
	})

	assert.Equal(t, 4.0, next["dough"])
	assert.Equal(t, 3.0, next["cheese"])
	assert.Equal(t, 2.0, next["sauce"])

	// The prior snapshot is untouched.
	assert.Equal(t, 10.0, prior["dough"])
	assert.NotContains(t, prior, "sauce")
}

func TestApplyAdjustments_NilPrior(t *testing.T) {
	next := inventory.ApplyAdjustments(nil, []models.Adjustment{{Item: "dough", Quantity: 1}})
	assert.Equal(t, map[string]float64{"dough": 1}, next)
}

func TestAdjustSnapshot_AppendsNewSnapshot(t *testing.T) {
	store := newFakeStore()
	store.snapshots["q1"] = []models.Snapshot{{Store: "q1", Items: map[string]float64{"dough": 10}}}
	svc := inventory.NewService(store, nil)

	snap, err := svc.AdjustSnapshot(context.Background(), models.AdjustRequest{
		Store:       "q1",
		Adjustments: []models.Adjustment{{Item: "dough", Quantity: 6}},
	}, "anna")

	require.NoError(t, err)
	assert.Equal(t, 6.0, snap.Items["dough"])
	assert.False(t, snap.CreatedAt.IsZero())

	// Prior snapshot retained, new one appended.
	require.Len(t, store.snapshots["q1"], 2)
	assert.Equal(t, 10.0, store.snapshots["q1"][0].Items["dough"])
}

func TestAdjustSnapshot_FirstCountForStore(t *testing.T) {
	store := newFakeStore()
	svc := inventory.NewService(store, nil)

	snap, err := svc.AdjustSnapshot(context.Background(), models.AdjustRequest{
		Store:       "q2",
		Adjustments: []models.Adjustment{{Item: "boxes", Quantity: 40}},
	}, "")

	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"boxes": 40}, snap.Items)
}

func TestCurrentSnapshot_EmptyWhenNeverCounted(t *testing.T) {
	svc := inventory.NewService(newFakeStore(), nil)

	snap, err := svc.CurrentSnapshot(context.Background(), "q9")

	require.NoError(t, err)
	assert.Equal(t, "q9", snap.Store)
	assert.Empty(t, snap.Items)
	assert.NotNil(t, snap.Items)
}
