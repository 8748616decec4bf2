package reporting

import (
	"fmt"

	"github.com/PizzaTimeVN/pizza-backend/internal/domain/models"
)

// Alias lists for the revenue channels. Field naming drifted across the store
// app revisions, so every channel accepts the historical spellings in priority
// order; the first present numeric value wins. The total channel has its own
// alias family and is summed independently of the four payment channels.
var (
	cashAliases     = []string{"cash_revenue", "cash", "cash_amount"}
	transferAliases = []string{"transfer_revenue", "momo", "transfer"}
	grabAliases     = []string{"grab_revenue", "grab"}
	shopeeAliases   = []string{"shopee_revenue", "shopee"}
	totalAliases    = []string{"total_revenue", "total", "total_amount"}
)

const (
	defaultCategory = "Khác"
	defaultProduct  = "Unknown"
)

var channelAliases = map[string][]string{
	"cash":     cashAliases,
	"transfer": transferAliases,
	"grab":     grabAliases,
	"shopee":   shopeeAliases,
}

// ChannelAliases returns the alias family for a named payment channel.
func ChannelAliases(channel string) ([]string, bool) {
	aliases, ok := channelAliases[channel]
	return aliases, ok
}

// CanonicalChannelField is the field name channel writes land on: the first
// alias of the family.
func CanonicalChannelField(channel string) string {
	if aliases, ok := channelAliases[channel]; ok {
		return aliases[0]
	}
	return channel
}

// RecomputeTotal adjusts a stored total by difference rather than re-summing
// the channels, so the total stays consistent even if another channel changed
// between read and write. Best-effort convention, not a transactional
// guarantee.
func RecomputeTotal(oldTotal, oldAmount, newAmount float64) float64 {
	return oldTotal - oldAmount + newAmount
}

// SummarizeSales accumulates the five channel sums over an already-filtered
// revenue batch. An empty batch yields all-zero sums and an empty data slice.
func SummarizeSales(batch []models.Record) models.SalesSummary {
	summary := models.SalesSummary{Data: []models.Record{}}

	for _, rec := range batch {
		summary.Cash += rec.Number(cashAliases...)
		summary.Transfer += rec.Number(transferAliases...)
		summary.Grab += rec.Number(grabAliases...)
		summary.Shopee += rec.Number(shopeeAliases...)
		summary.Total += rec.Number(totalAliases...)
	}

	if len(batch) > 0 {
		summary.Data = batch
	}
	return summary
}

// SummarizeQuantity sums quantities and counts distinct categories and
// products over a product-sale batch. Distinctness is exact value equality
// after alias fallback: rows naming the same product through different alias
// fields stay distinct.
func SummarizeQuantity(batch []models.Record) models.QuantitySummary {
	summary := models.QuantitySummary{Data: []models.Record{}}

	categories := make(map[string]struct{})
	products := make(map[string]struct{})

	for _, rec := range batch {
		summary.TotalQuantity += rec.Int("quantity")
		categories[rec.String(defaultCategory, "category")] = struct{}{}
		products[rec.String(defaultProduct, "product_name", "product")] = struct{}{}
	}

	summary.TotalOrders = len(batch)
	if len(batch) > 0 {
		summary.TotalCategories = len(categories)
		summary.TotalProducts = len(products)
		summary.Data = batch
	}
	return summary
}

// DeduplicateExports collapses resubmitted export rows down to one per
// (date, store, item) key, keeping the row with the greatest creation
// timestamp. On equal timestamps the row with the greater surrogate id wins;
// failing that, the later row in input order. Output preserves the order in
// which keys were first seen, which makes the pass idempotent.
func DeduplicateExports(batch []models.Record) []models.Record {
	if len(batch) == 0 {
		return []models.Record{}
	}

	latest := make(map[string]models.Record, len(batch))
	order := make([]string, 0, len(batch))

	for _, rec := range batch {
		key := exportKey(rec)
		current, seen := latest[key]
		if !seen {
			latest[key] = rec
			order = append(order, key)
			continue
		}
		if supersedes(rec, current) {
			latest[key] = rec
		}
	}

	out := make([]models.Record, 0, len(order))
	for _, key := range order {
		out = append(out, latest[key])
	}
	return out
}

// SummarizeExports aggregates an already-deduplicated export set. Stored
// quantities use a negative-for-outbound convention, so the total is summed
// over absolute values and never goes negative.
func SummarizeExports(deduped []models.Record) models.ExportSummary {
	summary := models.ExportSummary{Data: []models.Record{}}

	stores := make(map[string]struct{})
	products := make(map[string]struct{})

	for _, rec := range deduped {
		qty := rec.Number("quantity")
		if qty < 0 {
			qty = -qty
		}
		summary.TotalQuantity += qty
		stores[rec.String("", "store")] = struct{}{}
		products[rec.String("", "item")] = struct{}{}
	}

	summary.TotalOrders = len(deduped)
	if len(deduped) > 0 {
		summary.TotalStores = len(stores)
		summary.TotalProducts = len(products)
		summary.Data = deduped
	}
	return summary
}

func exportKey(rec models.Record) string {
	return fmt.Sprintf("%v|%v|%v", rec["date"], rec["store"], rec["item"])
}

// supersedes decides whether candidate replaces current for the same key.
func supersedes(candidate, current models.Record) bool {
	ct := candidate.Time("created_at")
	pt := current.Time("created_at")
	if !ct.Equal(pt) {
		return ct.After(pt)
	}
	// Equal timestamps: deterministic tie-break on the surrogate id, then
	// later-in-order.
	cid := candidate.Number("id")
	pid := current.Number("id")
	if cid != pid {
		return cid > pid
	}
	return true
}
