package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/carbon-forecast/internal/forecast"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet  = "Summary"
	maxSheetName  = 31
	currencyStyle = "$#,##0.00"
	numberStyle   = "#,##0.00"
)

var summaryHeader = []interface{}{
	"Scenario", "Project type", "Total sequestration (tCO2e)", "Total revenue", "Total cost",
	"Net profit", "NPV", "IRR (%)", "ROI (%)", "Break-even year",
}

var yearlyHeader = []interface{}{
	"Year", "Sequestration (tCO2e)", "Carbon price", "Revenue", "Cost", "Net cash flow", "Cumulative cash flow",
}

// XLSXFormat writes a workbook with a summary sheet and one sheet of yearly
// data per scenario.
func XLSXFormat(w io.Writer, forecasts []forecast.Forecast) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	styles, err := newSheetStyles(f)
	if err != nil {
		return err
	}
	if err := writeHeader(f, summarySheet, summaryHeader, styles.header); err != nil {
		return err
	}

	used := map[string]bool{strings.ToLower(summarySheet): true}
	row := 2
	for _, fc := range forecasts {
		r := fc.Results
		if r == nil {
			continue
		}

		irr := interface{}("N/A")
		if r.IRR != nil {
			irr = *r.IRR
		}
		breakEven := interface{}("N/A")
		if r.BreakEvenYear != nil {
			breakEven = *r.BreakEvenYear
		}
		npv := interface{}(r.NPV)
		if r.Construction != nil {
			npv = "N/A"
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		values := []interface{}{
			fc.Name, string(r.ProjectType), r.TotalSequestration, r.TotalRevenue, r.TotalCost,
			r.NetProfit, npv, irr, r.ROI, breakEven,
		}
		if err := f.SetSheetRow(summarySheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
		row++

		sheet := uniqueSheetName(fc.Name, used)
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", sheet, err)
		}
		if err := writeHeader(f, sheet, yearlyHeader, styles.header); err != nil {
			return err
		}
		for i, record := range r.YearlyData {
			cell, _ := excelize.CoordinatesToCellName(1, i+2)
			values := []interface{}{
				record.Year, record.Sequestration, record.CarbonPrice, record.Revenue,
				record.Cost, record.NetCashFlow, record.CumulativeCashFlow,
			}
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return fmt.Errorf("failed to write yearly row: %w", err)
			}
		}
		if last := len(r.YearlyData) + 1; last > 1 {
			_ = f.SetCellStyle(sheet, "B2", fmt.Sprintf("B%d", last), styles.number)
			_ = f.SetCellStyle(sheet, "C2", fmt.Sprintf("G%d", last), styles.currency)
		}
	}
	if row > 2 {
		_ = f.SetCellStyle(summarySheet, "C2", fmt.Sprintf("C%d", row-1), styles.number)
		_ = f.SetCellStyle(summarySheet, "D2", fmt.Sprintf("G%d", row-1), styles.currency)
	}

	return f.Write(w)
}

type sheetStyles struct {
	header   int
	number   int
	currency int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var styles sheetStyles
	var err error
	styles.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return styles, fmt.Errorf("failed to create header style: %w", err)
	}
	number := numberStyle
	styles.number, err = f.NewStyle(&excelize.Style{CustomNumFmt: &number})
	if err != nil {
		return styles, fmt.Errorf("failed to create number style: %w", err)
	}
	currency := currencyStyle
	styles.currency, err = f.NewStyle(&excelize.Style{CustomNumFmt: &currency})
	if err != nil {
		return styles, fmt.Errorf("failed to create currency style: %w", err)
	}
	return styles, nil
}

func writeHeader(f *excelize.File, sheet string, header []interface{}, style int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// uniqueSheetName strips characters Excel rejects, truncates to the sheet
// name limit and appends a counter on collision. Names compare
// case-insensitively, as in Excel.
func uniqueSheetName(name string, used map[string]bool) string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	cleaned = strings.Trim(cleaned, "'")
	if cleaned == "" {
		cleaned = "Scenario"
	}
	cleaned = truncateRunes(cleaned, maxSheetName)

	candidate := cleaned
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate = truncateRunes(cleaned, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncateRunes(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}
