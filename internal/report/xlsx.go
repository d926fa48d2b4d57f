package report

import (
	"bytes"
	"fmt"

	"github.com/opengovlab/docucert/internal/core/domain"
	"github.com/xuri/excelize/v2"
)

// RenderXLSX builds the fairness workbook: one sheet of per-group
// representation statistics plus a summary sheet with the headline verdicts.
func RenderXLSX(r *domain.CertificationReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return nil, fmt.Errorf("rename summary sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Document", r.Filename},
		{"Document ID", r.DocumentID},
		{"Generated", r.GeneratedAt.Format("2006-01-02 15:04:05")},
	}
	if r.Detection != nil {
		rows = append(rows,
			[]interface{}{"AI likelihood (%)", pct(r.Detection.AIDetectionScore)},
			[]interface{}{"Confidence (%)", pct(r.Detection.Confidence)},
			[]interface{}{"Verdict", r.Detection.Interpretation},
		)
	}
	if r.Risk != nil {
		rows = append(rows, []interface{}{"Review tier", fmt.Sprintf("%d (%s)", r.Risk.Tier, r.Risk.Label)})
	}
	if r.Bias != nil {
		rows = append(rows, []interface{}{"Parity gap (%)", pct(r.Bias.ParityGap)})
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("summary cell: %w", err)
		}
		if err := f.SetSheetRow(summary, cell, &row); err != nil {
			return nil, fmt.Errorf("write summary row: %w", err)
		}
	}

	if r.Bias != nil {
		const groups = "Representation"
		if _, err := f.NewSheet(groups); err != nil {
			return nil, fmt.Errorf("create representation sheet: %w", err)
		}
		header := []interface{}{"Group", "Mentions", "Share (%)", "Positive terms", "Negative terms", "Sentiment ratio", "Underrepresented"}
		if err := f.SetSheetRow(groups, "A1", &header); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
		for i, g := range r.Bias.Groups {
			row := []interface{}{g.Group, g.Mentions, pct(g.Share), g.PositiveTerms, g.NegativeTerms, g.SentimentRatio, g.Underrepresented}
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return nil, fmt.Errorf("group cell: %w", err)
			}
			if err := f.SetSheetRow(groups, cell, &row); err != nil {
				return nil, fmt.Errorf("write group row: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
