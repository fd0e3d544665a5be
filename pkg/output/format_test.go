package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iwvelando/carbon-forecast/internal/forecast"
	"github.com/iwvelando/carbon-forecast/pkg/optimization"
	"github.com/iwvelando/carbon-forecast/pkg/sequestration"
	"github.com/xuri/excelize/v2"
)

func floatPtr(value float64) *float64 {
	return &value
}

func intPtr(value int) *int {
	return &value
}

func testForecasts() []forecast.Forecast {
	return []forecast.Forecast{
		{
			Name: "Soil",
			Results: &forecast.Results{
				ProjectType:        sequestration.TypeSoil,
				TotalSequestration: 300,
				TotalRevenue:       6000,
				TotalCost:          1500,
				NetProfit:          4500,
				NPV:                4500,
				IRR:                floatPtr(154.25),
				ROI:                300,
				BreakEvenYear:      intPtr(1),
				YearlyData: []forecast.YearRecord{
					{Year: 1, Sequestration: 150, Revenue: 3000, Cost: 1500, NetCashFlow: 1500, CumulativeCashFlow: 1500, CarbonPrice: 20, IsPositive: true},
					{Year: 2, Sequestration: 150, Revenue: 3000, Cost: 0, NetCashFlow: 3000, CumulativeCashFlow: 4500, CarbonPrice: 20, IsPositive: true},
				},
			},
			Optimizations: []optimization.Summary{{
				Field:           "carbonPrice",
				Target:          "npv",
				Value:           5,
				ValueDisplay:    "$5.00",
				OriginalDisplay: "$20.00",
				Iterations:      12,
				Notes:           []string{"solved for a flat price; the yearly price table is ignored"},
			}},
		},
		{
			Name: "Office: retrofit",
			Results: &forecast.Results{
				ProjectType:        sequestration.TypeConstruction,
				TotalSequestration: 625,
				TotalRevenue:       250000,
				TotalCost:          100000,
				NetProfit:          150000,
				ROI:                25,
				BreakEvenYear:      intPtr(4),
				YearlyData: []forecast.YearRecord{
					{Year: 1, Sequestration: 175, Revenue: 25000, Cost: 100000, NetCashFlow: -75000, CumulativeCashFlow: -75000},
				},
				Construction: &forecast.ConstructionSummary{
					EmbodiedSavings:          125,
					AnnualOperationalSavings: 50,
					TotalSavings:             625,
					AnnualEnergyCostSavings:  25000,
					SimplePaybackYears:       4,
				},
			},
			Notes: []string{"cumulative cash flow stays negative through year 1"},
		},
	}
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := PrettyFormat(&buf, testForecasts()); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	output := buf.String()

	expected := []string{
		"--- Results for scenario Soil (soil) ---",
		"Total sequestration: 300.0 tCO2e",
		"Total revenue:       $6,000.00",
		"IRR:                 154.25%",
		"ROI:                 300.00%",
		"Break-even year:     1",
		"Year | Sequestration | Price | Revenue | Cost | Net | Cumulative",
		"| 150.0 | $20.00 | $3,000.00 | $1,500.00 | $1,500.00 | $1,500.00",
		"Break-even carbonPrice: $5.00 (currently $20.00, 12 iterations)",
		"  * solved for a flat price",
		"--- Results for scenario Office: retrofit (construction) ---",
		"Embodied savings:    125.0 tCO2e",
		"Energy cost savings: $25,000.00 per year",
		"Simple payback:      4.0 years",
		"Note: cumulative cash flow stays negative through year 1",
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("PrettyFormat output missing %q\n%s", want, output)
		}
	}

	construction := output[strings.Index(output, "Office: retrofit"):]
	if strings.Contains(construction, "NPV:") || strings.Contains(construction, "IRR:") {
		t.Error("construction results should not print NPV or IRR")
	}
}

func TestPrettyFormatSkipsMissingResults(t *testing.T) {
	var buf bytes.Buffer
	if err := PrettyFormat(&buf, []forecast.Forecast{{Name: "Empty"}}); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestCsvFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, testForecasts()); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d", len(rows))
	}
	if strings.Join(rows[0], ",") != strings.Join(csvHeader, ",") {
		t.Errorf("unexpected header %v", rows[0])
	}
	want := []string{"Soil", "2", "150.00", "20.00", "3000.00", "0.00", "3000.00", "4500.00"}
	if strings.Join(rows[2], ",") != strings.Join(want, ",") {
		t.Errorf("row = %v, expected %v", rows[2], want)
	}
	if rows[3][0] != "Office: retrofit" || rows[3][6] != "-75000.00" {
		t.Errorf("unexpected construction row %v", rows[3])
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := JSONFormat(&buf, testForecasts()); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[0]["name"] != "Soil" {
		t.Fatalf("unexpected decoded output %v", decoded)
	}
	results := decoded[1]["results"].(map[string]interface{})
	if results["irr"] != nil {
		t.Errorf("expected a null IRR for construction, got %v", results["irr"])
	}
	if _, ok := results["construction"]; !ok {
		t.Error("expected the construction summary in JSON output")
	}
}

func TestXLSXFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := XLSXFormat(&buf, testForecasts()); err != nil {
		t.Fatalf("XLSXFormat() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("output is not a valid workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	expectedSheets := []string{"Summary", "Soil", "Office_ retrofit"}
	if strings.Join(sheets, "|") != strings.Join(expectedSheets, "|") {
		t.Fatalf("sheets = %v, expected %v", sheets, expectedSheets)
	}

	cells := map[string]string{
		"A1": "Scenario",
		"A2": "Soil",
		"B2": "soil",
		"J2": "1",
		"A3": "Office: retrofit",
		"G3": "N/A",
		"H3": "N/A",
	}
	for cell, want := range cells {
		got, err := f.GetCellValue("Summary", cell, excelize.Options{RawCellValue: true})
		if err != nil {
			t.Fatalf("GetCellValue(%s) error = %v", cell, err)
		}
		if got != want {
			t.Errorf("Summary!%s = %q, expected %q", cell, got, want)
		}
	}

	rows, err := f.GetRows("Soil", excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 || rows[2][0] != "2" || rows[2][6] != "4500" {
		t.Errorf("unexpected yearly rows %v", rows)
	}
}

func TestUniqueSheetName(t *testing.T) {
	used := map[string]bool{"summary": true}
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Plain", input: "Mangroves", expected: "Mangroves"},
		{name: "Invalid characters", input: "A/B [phase 1]?", expected: "A_B _phase 1__"},
		{name: "Reserved collision", input: "SUMMARY", expected: "SUMMARY (2)"},
		{name: "Duplicate", input: "mangroves", expected: "mangroves (2)"},
		{name: "Blank", input: "  ", expected: "Scenario"},
		{name: "Too long", input: strings.Repeat("x", 40), expected: strings.Repeat("x", 31)},
		{name: "Too long duplicate", input: strings.Repeat("x", 40), expected: strings.Repeat("x", 27) + " (2)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := uniqueSheetName(tt.input, used)
			if got != tt.expected {
				t.Errorf("uniqueSheetName(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	tests := []struct {
		format  string
		prefix  string
		wantErr bool
	}{
		{format: "pretty", prefix: "--- Results for scenario Soil"},
		{format: "csv", prefix: "scenario,year"},
		{format: "json", prefix: "["},
		{format: "xlsx", prefix: "PK"},
		{format: "yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			err := Write(&buf, tt.format, testForecasts())
			if tt.wantErr {
				if err == nil {
					t.Error("expected an error for an unsupported format")
				}
				return
			}
			if err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if !strings.HasPrefix(buf.String(), tt.prefix) {
				t.Errorf("output for %s does not start with %q", tt.format, tt.prefix)
			}
		})
	}
}
