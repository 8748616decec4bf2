package models

import "time"

// DeltaKind enumerates the operational events that move stock.
type DeltaKind string

const (
	DeltaIntake     DeltaKind = "intake"
	DeltaProduction DeltaKind = "production"
	DeltaExport     DeltaKind = "export"
)

// DeltaRequest applies one signed quantity change to a single inventory item.
// Quantity is submitted as a magnitude; export deltas are negated before they
// reach the ledger.
type DeltaRequest struct {
	Item     string    `json:"item" binding:"required"`
	Quantity float64   `json:"quantity" binding:"required"`
	Kind     DeltaKind `json:"kind" binding:"required"`
	Store    string    `json:"store"`
}

// Adjustment overrides one item's quantity during a manual stock count.
// Replacement semantics, not additive.
type Adjustment struct {
	Item     string  `json:"item" binding:"required"`
	Quantity float64 `json:"quantity"`
}

// AdjustRequest replaces parts of a store's latest snapshot with counted
// values and persists the result as a new snapshot.
type AdjustRequest struct {
	Store       string       `json:"store" binding:"required"`
	Adjustments []Adjustment `json:"adjustments" binding:"required"`
}

// Snapshot is a full point-in-time item→quantity mapping for one store.
// Snapshots are immutable; later counts supersede rather than overwrite.
type Snapshot struct {
	ID        string             `bson:"_id,omitempty" json:"id,omitempty"`
	Store     string             `bson:"store" json:"store"`
	Items     map[string]float64 `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// DeltaAudit is the append-only trail row written alongside every ledger
// mutation.
type DeltaAudit struct {
	ID        string    `bson:"_id" json:"id"`
	Item      string    `bson:"item" json:"item"`
	Store     string    `bson:"store,omitempty" json:"store,omitempty"`
	Kind      DeltaKind `bson:"kind" json:"kind"`
	Delta     float64   `bson:"delta" json:"delta"`
	Before    float64   `bson:"before" json:"before"`
	After     float64   `bson:"after" json:"after"`
	Actor     string    `bson:"actor,omitempty" json:"actor,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
