package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PizzaTimeVN/pizza-backend/internal/domain/models"
)

// CheckCounts runs the conservation-of-mass check for one SKU.
//
//	actual_consumed = yesterday − today + moved_out − discarded
//	diff            = actual_consumed − machine_reported
//
// The sign is physical-minus-machine: a positive diff means the machine
// counter under-reported and stock is short; negative means surplus.
func CheckCounts(sku models.CakeSKU, counts models.CakeCountSet) models.CakeSKUResult {
	actual := counts.YesterdayStock - counts.TodayStock + counts.MovedOut - counts.Discarded
	diff := actual - counts.MachineReported

	result := models.CakeSKUResult{
		SKU:            sku,
		ActualConsumed: actual,
		Diff:           diff,
	}

	switch {
	case diff == 0:
		result.Status = models.CakeBalanced
	case diff > 0:
		result.Status = models.CakeShortage
		result.Units = diff
	default:
		result.Status = models.CakeSurplus
		result.Units = -diff
	}
	return result
}

// RunCakeCheck evaluates both SKUs for one submission and appends an audit
// row. The computation itself is stateless; only the trail is persisted.
func (s *Service) RunCakeCheck(ctx context.Context, req models.CakeCheckRequest, actor string) (models.CakeCheckResult, error) {
	result := models.CakeCheckResult{
		Store: req.Store,
		Date:  req.Date,
		Large: CheckCounts(models.CakeLargeBase, req.Large),
		Small: CheckCounts(models.CakeSmallBase, req.Small),
	}

	audit := models.CakeCheckAudit{
		ID:        uuid.NewString(),
		Store:     req.Store,
		Date:      req.Date,
		Request:   req,
		Result:    result,
		Actor:     actor,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.InsertCakeCheck(ctx, audit); err != nil {
		return models.CakeCheckResult{}, fmt.Errorf("persist cake check: %w", err)
	}

	s.logger.Info("cake stock check recorded",
		zap.String("store", req.Store),
		zap.String("date", req.Date),
		zap.String("large_status", string(result.Large.Status)),
		zap.String("small_status", string(result.Small.Status)))
	return result, nil
}
