package models

// SalesSummary carries the five channel sums for a filtered revenue batch plus
// the raw rows for client-side drill-down. Total is summed from its own alias
// family and is not required to equal the four channel sums.
type SalesSummary struct {
	Cash     float64  `json:"cash"`
	Transfer float64  `json:"transfer"`
	Grab     float64  `json:"grab"`
	Shopee   float64  `json:"shopee"`
	Total    float64  `json:"total"`
	Data     []Record `json:"data"`
}

// QuantitySummary aggregates product sale rows.
type QuantitySummary struct {
	TotalQuantity   int      `json:"total_quantity"`
	TotalOrders     int      `json:"total_orders"`
	TotalCategories int      `json:"total_categories"`
	TotalProducts   int      `json:"total_products"`
	Data            []Record `json:"data"`
}

// ExportSummary aggregates the deduplicated export set. TotalQuantity is an
// absolute-value sum and therefore never negative, whichever sign convention
// the submitting app used.
type ExportSummary struct {
	TotalQuantity float64  `json:"total_quantity"`
	TotalOrders   int      `json:"total_orders"`
	TotalStores   int      `json:"total_stores"`
	TotalProducts int      `json:"total_products"`
	Data          []Record `json:"data"`
}

// StoreInfo identifies one store in the directory listing.
type StoreInfo struct {
	StoreID  string `json:"store_id"`
	Username string `json:"username,omitempty"`
}
