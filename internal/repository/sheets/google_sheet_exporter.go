// Package sheets exports generated recommendation snapshots to a Google
// spreadsheet so the daily decision history survives restarts.
package sheets

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/config"
	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/domain/models"
)

// Exporter defines the spreadsheet operations used by the snapshot job.
type Exporter interface {
	AppendRecommendations(ctx context.Context, recs []models.Recommendation, generatedAt time.Time) error
}

// GoogleSheetExporter implements Exporter using the official Sheets API.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	sheetRange    string
	logger        *zap.Logger
}

// NewGoogleSheetExporter builds a Google Sheets backed exporter instance.
func NewGoogleSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetExporter, error) {
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
		sheetRange:    cfg.Range,
		logger:        logger,
	}, nil
}

// AppendRecommendations appends one row per recommendation to the configured
// range.
func (e *GoogleSheetExporter) AppendRecommendations(ctx context.Context, recs []models.Recommendation, generatedAt time.Time) error {
	if e.sheetRange == "" {
		return fmt.Errorf("sheet range must not be empty")
	}
	if len(recs) == 0 {
		return nil
	}

	payload := &sheetsapi.ValueRange{Values: recommendationRows(recs, generatedAt)}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, e.sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append recommendations into range %s: %w", e.sheetRange, err)
	}

	e.logger.Debug("recommendations appended to sheet",
		zap.String("range", e.sheetRange),
		zap.Int("rows", len(recs)))
	return nil
}

// recommendationRows flattens recommendations into spreadsheet rows:
// generated_at, priority, category, action, reason, impact, timeline,
// ai_methods.
func recommendationRows(recs []models.Recommendation, generatedAt time.Time) [][]interface{} {
	rows := make([][]interface{}, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, []interface{}{
			generatedAt.Format(time.RFC3339),
			rec.Priority,
			string(rec.Category),
			rec.Action,
			rec.Reason,
			rec.Impact,
			rec.Timeline,
			rec.AIMethods,
		})
	}
	return rows
}
