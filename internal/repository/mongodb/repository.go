package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/PizzaTimeVN/pizza-backend/internal/domain/models"
	"github.com/PizzaTimeVN/pizza-backend/internal/service/reporting"
)

// Collection names. sale_quan and pizza_sales keep the historical names the
// store apps write to.
const (
	collSales      = "sale_quan"
	collProducts   = "pizza_sales"
	collExports    = "exports"
	collItems      = "inventory_items"
	collSnapshots  = "inventory_snapshots"
	collDeltaAudit = "inventory_audit"
	collCakeChecks = "cake_checks"
)

// Repository is the MongoDB-backed record store. It implements both
// reporting.Store and inventory.Store.
type Repository struct {
	client *mongo.Client
	dbName string
}

// NewRepository connects to MongoDB and verifies the connection.
func NewRepository(ctx context.Context, uri string, dbName string) (*Repository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Repository{client: client, dbName: dbName}, nil
}

// Close closes the MongoDB connection.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *Repository) coll(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

// FetchSales returns revenue rows within the inclusive date range, optionally
// narrowed to specific stores. Dates are stored as 2006-01-02 strings, so a
// lexical range compare is a calendar compare.
func (r *Repository) FetchSales(ctx context.Context, rng models.DateRange, filter reporting.StoreFilter) ([]models.Record, error) {
	query := bson.M{"date": bson.M{"$gte": rng.Start, "$lte": rng.End}}
	if !filter.All() {
		query["store_id"] = bson.M{"$in": filter.Stores()}
	}
	return r.fetch(ctx, collSales, query, nil)
}

// FetchProductSales returns per-product sale rows for the range and optional
// single store.
func (r *Repository) FetchProductSales(ctx context.Context, rng models.DateRange, store string) ([]models.Record, error) {
	query := bson.M{"date": bson.M{"$gte": rng.Start, "$lte": rng.End}}
	if store != "" {
		query["store"] = store
	}
	return r.fetch(ctx, collProducts, query, nil)
}

// FetchExports returns raw export rows for the range, newest first. The
// reporting layer collapses resubmissions.
func (r *Repository) FetchExports(ctx context.Context, rng models.DateRange, filter reporting.StoreFilter) ([]models.Record, error) {
	query := bson.M{"date": bson.M{"$gte": rng.Start, "$lte": rng.End}}
	if !filter.All() {
		query["store"] = bson.M{"$in": filter.Stores()}
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.fetch(ctx, collExports, query, opts)
}

// FetchStoreDirectory returns the store/username columns of every revenue row;
// the reporting layer deduplicates per store.
func (r *Repository) FetchStoreDirectory(ctx context.Context) ([]models.Record, error) {
	opts := options.Find().SetProjection(bson.M{"store_id": 1, "username": 1})
	return r.fetch(ctx, collSales, bson.M{}, opts)
}

func (r *Repository) fetch(ctx context.Context, coll string, query bson.M, opts *options.FindOptions) ([]models.Record, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.coll(coll).Find(ctx, query, opts)
	} else {
		cursor, err = r.coll(coll).Find(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", coll, err)
	}

	records := []models.Record{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode %s batch: %w", coll, err)
	}
	return records, nil
}

// FetchSaleRecord reads the revenue record for a (store, date) key, nil when
// absent. The key is not enforced unique in storage; the first match wins.
func (r *Repository) FetchSaleRecord(ctx context.Context, store, date string) (models.Record, error) {
	var rec models.Record
	err := r.coll(collSales).FindOne(ctx, bson.M{"store_id": store, "date": date}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read sale record %s/%s: %w", store, date, err)
	}
	return rec, nil
}

// UpdateSaleChannel sets the provided fields on the (store, date) revenue
// record.
func (r *Repository) UpdateSaleChannel(ctx context.Context, store, date string, fields map[string]float64) error {
	set := bson.M{}
	for field, value := range fields {
		set[field] = value
	}

	_, err := r.coll(collSales).UpdateOne(ctx,
		bson.M{"store_id": store, "date": date},
		bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update sale record %s/%s: %w", store, date, err)
	}
	return nil
}

// ItemQuantity reads the current ledger quantity for an item. Unseen items
// report (0, false, nil).
func (r *Repository) ItemQuantity(ctx context.Context, item string) (float64, bool, error) {
	var doc struct {
		Quantity float64 `bson:"quantity"`
	}

	err := r.coll(collItems).FindOne(ctx, bson.M{"_id": item}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read item %s: %w", item, err)
	}
	return doc.Quantity, true, nil
}

// UpsertItemQuantity writes the new quantity keyed by item name. Last writer
// wins; there is no optimistic concurrency check.
func (r *Repository) UpsertItemQuantity(ctx context.Context, item string, quantity float64) error {
	_, err := r.coll(collItems).UpdateOne(ctx,
		bson.M{"_id": item},
		bson.M{"$set": bson.M{"quantity": quantity}},
		options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert item %s: %w", item, err)
	}
	return nil
}

// LatestSnapshot returns the most recent snapshot for a store, or nil when the
// store has never been counted.
func (r *Repository) LatestSnapshot(ctx context.Context, store string) (*models.Snapshot, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var snap models.Snapshot
	err := r.coll(collSnapshots).FindOne(ctx, bson.M{"store": store}, opts).Decode(&snap)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read latest snapshot for %s: %w", store, err)
	}
	return &snap, nil
}

// InsertSnapshot appends a new snapshot document. Prior snapshots are never
// touched.
func (r *Repository) InsertSnapshot(ctx context.Context, snap models.Snapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	if _, err := r.coll(collSnapshots).InsertOne(ctx, snap); err != nil {
		return fmt.Errorf("insert snapshot for %s: %w", snap.Store, err)
	}
	return nil
}

// InsertDeltaAudit appends a ledger mutation trail row.
func (r *Repository) InsertDeltaAudit(ctx context.Context, audit models.DeltaAudit) error {
	if _, err := r.coll(collDeltaAudit).InsertOne(ctx, audit); err != nil {
		return fmt.Errorf("insert delta audit: %w", err)
	}
	return nil
}

// InsertCakeCheck appends a cake check trail row.
func (r *Repository) InsertCakeCheck(ctx context.Context, audit models.CakeCheckAudit) error {
	if _, err := r.coll(collCakeChecks).InsertOne(ctx, audit); err != nil {
		return fmt.Errorf("insert cake check: %w", err)
	}
	return nil
}
