package models

import "time"

// CakeSKU names the two cake bases tracked by the differential check.
type CakeSKU string

const (
	CakeLargeBase CakeSKU = "large_base"
	CakeSmallBase CakeSKU = "small_base"
)

// CakeCountSet holds the five physical counts plus the machine counter reading
// for one SKU on one day.
type CakeCountSet struct {
	YesterdayStock  int `json:"yesterday_stock"`
	TodayStock      int `json:"today_stock"`
	MovedOut        int `json:"moved_out"`
	Discarded       int `json:"discarded"`
	MachineReported int `json:"machine_reported"`
}

// CakeCheckRequest submits one day's counts for both SKUs.
type CakeCheckRequest struct {
	Store string       `json:"store" binding:"required"`
	Date  string       `json:"date" binding:"required"`
	Large CakeCountSet `json:"large"`
	Small CakeCountSet `json:"small"`
}

// CakeStatus classifies the differential for one SKU.
type CakeStatus string

const (
	CakeBalanced CakeStatus = "balanced"
	CakeShortage CakeStatus = "shortage"
	CakeSurplus  CakeStatus = "surplus"
)

// CakeSKUResult is the outcome of the conservation check for one SKU.
// Diff keeps the physical-minus-machine sign: positive means the machine
// under-reported (shortage), negative means surplus.
type CakeSKUResult struct {
	SKU            CakeSKU    `json:"sku"`
	ActualConsumed int        `json:"actual_consumed"`
	Diff           int        `json:"diff"`
	Status         CakeStatus `json:"status"`
	Units          int        `json:"units"`
}

// CakeCheckResult bundles both SKU outcomes for one submission.
type CakeCheckResult struct {
	Store string        `json:"store"`
	Date  string        `json:"date"`
	Large CakeSKUResult `json:"large"`
	Small CakeSKUResult `json:"small"`
}

// CakeCheckAudit is the persisted trail of a submitted check.
type CakeCheckAudit struct {
	ID        string           `bson:"_id" json:"id"`
	Store     string           `bson:"store" json:"store"`
	Date      string           `bson:"date" json:"date"`
	Request   CakeCheckRequest `bson:"request" json:"request"`
	Result    CakeCheckResult  `bson:"result" json:"result"`
	Actor     string           `bson:"actor,omitempty" json:"actor,omitempty"`
	CreatedAt time.Time        `bson:"created_at" json:"created_at"`
}
