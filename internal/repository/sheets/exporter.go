package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/PizzaTimeVN/pizza-backend/internal/config"
	"github.com/PizzaTimeVN/pizza-backend/internal/service/reporting"
)

const digestRange = "Digest!A:H"

// Exporter appends daily digest rows to the owner's bookkeeping spreadsheet.
type Exporter interface {
	AppendDigest(ctx context.Context, digest reporting.Digest) error
}

// GoogleSheetExporter implements Exporter using the official Google Sheets API.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetExporter builds a Google Sheets backed exporter instance.
func NewGoogleSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Exporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendDigest appends one row: date, the five revenue sums, export quantity
// and export order count.
func (e *GoogleSheetExporter) AppendDigest(ctx context.Context, digest reporting.Digest) error {
	row := []interface{}{
		digest.Date,
		digest.Sales.Cash,
		digest.Sales.Transfer,
		digest.Sales.Grab,
		digest.Sales.Shopee,
		digest.Sales.Total,
		digest.Exports.TotalQuantity,
		digest.Exports.TotalOrders,
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{row}}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, digestRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append digest row for %s: %w", digest.Date, err)
	}

	e.logger.Debug("digest row appended to sheet", zap.String("date", digest.Date))
	return nil
}
