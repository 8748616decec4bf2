package models

// DateRange is an inclusive [Start, End] span of calendar dates formatted as
// 2006-01-02. Start <= End is the caller's responsibility; an inverted range
// simply matches nothing.
type DateRange struct {
	Start string `json:"start_date" binding:"required"`
	End   string `json:"end_date" binding:"required"`
}

// SalesQuery filters revenue records by date range and an optional store list.
// A nil list or one containing the "all" sentinel selects every store.
type SalesQuery struct {
	DateRange
	Stores []string `json:"stores"`
}

// QuantityQuery filters product sale rows by date range and a single optional
// store.
type QuantityQuery struct {
	DateRange
	Store string `json:"store"`
}

// ExportQuery filters inter-store export records.
type ExportQuery struct {
	DateRange
	Stores []string `json:"stores"`
}

// ChannelUpdateRequest rewrites one payment channel amount on the revenue
// record keyed by (store, date). A zero amount is a valid correction.
type ChannelUpdateRequest struct {
	Store   string  `json:"store" binding:"required"`
	Date    string  `json:"date" binding:"required"`
	Channel string  `json:"channel" binding:"required"`
	Amount  float64 `json:"amount"`
}

// ChannelUpdateResult reports the applied channel write and the recomputed
// total.
type ChannelUpdateResult struct {
	Store     string  `json:"store"`
	Date      string  `json:"date"`
	Channel   string  `json:"channel"`
	OldAmount float64 `json:"old_amount"`
	NewAmount float64 `json:"new_amount"`
	NewTotal  float64 `json:"new_total"`
}
