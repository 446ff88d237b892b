package dataset

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"roadsense/internal/types"
)

// WriteSummaryReport exports a summary as an xlsx workbook with one sheet
// per table, for sharing outside the pipeline. Count tables are sorted by
// count descending, names breaking ties, so the report is deterministic.
func WriteSummaryReport(path string, s types.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Issues"); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeCountSheet(f, "Issues", "Issue Type", s.TopIssueTypes); err != nil {
		return err
	}

	if _, err := f.NewSheet("Sentiment"); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	if err := writeCountSheet(f, "Sentiment", "Sentiment", s.SentimentSummary); err != nil {
		return err
	}

	if _, err := f.NewSheet("Locations"); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	f.SetCellValue("Locations", "A1", "Location")
	f.SetCellValue("Locations", "B1", "Count")
	for i, lc := range s.TopLocations {
		f.SetCellValue("Locations", fmt.Sprintf("A%d", i+2), lc.Location)
		f.SetCellValue("Locations", fmt.Sprintf("B%d", i+2), lc.Count)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writeCountSheet(f *excelize.File, sheet, header string, counts map[string]int) error {
	type row struct {
		name  string
		count int
	}
	rows := make([]row, 0, len(counts))
	for k, v := range counts {
		rows = append(rows, row{k, v})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].name < rows[j].name
	})

	f.SetCellValue(sheet, "A1", header)
	f.SetCellValue(sheet, "B1", "Count")
	for i, r := range rows {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), r.name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), r.count)
	}
	return nil
}
