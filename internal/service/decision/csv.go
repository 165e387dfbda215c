package decision

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Mohammad-Khalifah1/industrial-ai-dashboard/internal/domain/models"
)

// csvHeader is the column order of the decision-center export.
var csvHeader = []string{"priority", "category", "action", "reason", "impact", "timeline", "ai_methods"}

// WriteCSV renders a recommendation set as the downloadable decision report.
func WriteCSV(w io.Writer, recs []models.Recommendation) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, rec := range recs {
		row := []string{
			strconv.Itoa(rec.Priority),
			string(rec.Category),
			rec.Action,
			rec.Reason,
			rec.Impact,
			rec.Timeline,
			rec.AIMethods,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportFilename names the download after its generation time.
func ExportFilename(t time.Time) string {
	return "cookiesjo_recommendations_" + t.Format("20060102_1504") + ".csv"
}
