package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/PizzaTimeVN/pizza-backend/internal/domain/models"
	"github.com/PizzaTimeVN/pizza-backend/internal/service/reporting"
	"github.com/PizzaTimeVN/pizza-backend/pkg/clients/chat"
)

// Service turns aggregator and checker outputs into human-readable chat posts.
// Delivery is best effort: a failed send is logged by the caller and never
// fails the originating request.
type Service struct {
	client chat.Client
	logger *zap.Logger
}

// NewService wires a notification service instance.
func NewService(client chat.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, logger: logger}
}

// NotifyCakeCheck posts both SKU classifications for a submitted check.
func (s *Service) NotifyCakeCheck(ctx context.Context, result models.CakeCheckResult) error {
	msg := chat.Message{
		Embeds: []chat.Embed{{
			Title:       fmt.Sprintf("Cake stock check — %s (%s)", result.Store, result.Date),
			Description: fmt.Sprintf("Large base: %s\nSmall base: %s", describeSKU(result.Large), describeSKU(result.Small)),
			Color:       cakeCheckColor(result),
		}},
	}
	return s.send(ctx, msg)
}

// NotifyDelta posts a short line for a ledger mutation.
func (s *Service) NotifyDelta(ctx context.Context, req models.DeltaRequest, newQuantity float64) error {
	text := fmt.Sprintf("Inventory %s: %s %+.2f → now %.2f", req.Kind, req.Item, req.Quantity, newQuantity)
	if req.Kind == models.DeltaExport {
		text = fmt.Sprintf("Inventory export: %s -%.2f → now %.2f", req.Item, req.Quantity, newQuantity)
	}
	return s.send(ctx, chat.Message{Content: text})
}

// NotifyDigest posts the scheduled daily roll-up.
func (s *Service) NotifyDigest(ctx context.Context, digest reporting.Digest) error {
	fields := []chat.EmbedField{
		{Name: "Cash", Value: formatAmount(digest.Sales.Cash), Inline: true},
		{Name: "Transfer", Value: formatAmount(digest.Sales.Transfer), Inline: true},
		{Name: "Grab", Value: formatAmount(digest.Sales.Grab), Inline: true},
		{Name: "Shopee", Value: formatAmount(digest.Sales.Shopee), Inline: true},
		{Name: "Total", Value: formatAmount(digest.Sales.Total), Inline: true},
		{Name: "Exports", Value: fmt.Sprintf("%.1f units / %d orders", digest.Exports.TotalQuantity, digest.Exports.TotalOrders), Inline: true},
	}

	msg := chat.Message{
		Embeds: []chat.Embed{{
			Title:  fmt.Sprintf("Daily digest — %s", digest.Date),
			Fields: fields,
		}},
	}
	return s.send(ctx, msg)
}

func (s *Service) send(ctx context.Context, msg chat.Message) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.client.SendMessage(ctxWithTimeout, msg); err != nil {
		return err
	}

	s.logger.Debug("chat notification sent")
	return nil
}

func describeSKU(r models.CakeSKUResult) string {
	switch r.Status {
	case models.CakeBalanced:
		return fmt.Sprintf("balanced (consumed %d, machine %d)", r.ActualConsumed, r.ActualConsumed-r.Diff)
	case models.CakeShortage:
		return fmt.Sprintf("shortage of %d units", r.Units)
	default:
		return fmt.Sprintf("surplus of %d units", r.Units)
	}
}

func cakeCheckColor(result models.CakeCheckResult) int {
	// Green when both SKUs balance, red otherwise.
	if result.Large.Status == models.CakeBalanced && result.Small.Status == models.CakeBalanced {
		return 0x2ecc71
	}
	return 0xe74c3c
}

func formatAmount(v float64) string {
	if v < 0 {
		return "-" + formatAmount(-v)
	}
	s := fmt.Sprintf("%.0f", v)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	return s + "," + strings.Join(parts, ",")
}
