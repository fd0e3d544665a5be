package costs

import (
	"testing"
)

func TestYearlyCostYearGating(t *testing.T) {
	entries := []Entry{
		{Name: "Site preparation", Kind: Fixed, Amount: 50000, Year: 1},
		{Name: "Monitoring", Kind: Annual, Amount: 1000},
	}

	for year := 1; year <= 10; year++ {
		expected := 1000.0
		if year == 1 {
			expected += 50000
		}
		if got := YearlyCost(entries, year, 1); got != expected {
			t.Errorf("year %d: YearlyCost() = %.2f, expected %.2f", year, got, expected)
		}
	}
}

func TestEntryAmountForYear(t *testing.T) {
	tests := []struct {
		name       string
		entry      Entry
		year       int
		multiplier float64
		expected   float64
	}{
		{
			name:     "Fixed cost in its year",
			entry:    Entry{Kind: Fixed, Amount: 500, Year: 3},
			year:     3,
			expected: 500,
		},
		{
			name:     "Fixed cost outside its year",
			entry:    Entry{Kind: Fixed, Amount: 500, Year: 3},
			year:     4,
			expected: 0,
		},
		{
			name:     "Fixed cost with unset year never matches",
			entry:    Entry{Kind: Fixed, Amount: 500},
			year:     1,
			expected: 0,
		},
		{
			name:       "Per-unit cost scales with size",
			entry:      Entry{Kind: PerUnit, Amount: 20, Year: 1},
			year:       1,
			multiplier: 100,
			expected:   2000,
		},
		{
			name:     "Annual cost before its start year",
			entry:    Entry{Kind: Annual, Amount: 1000, Year: 5},
			year:     4,
			expected: 0,
		},
		{
			name:     "Annual cost from its start year onward",
			entry:    Entry{Kind: Annual, Amount: 1000, Year: 5},
			year:     9,
			expected: 1000,
		},
		{
			name:       "Annual per-unit cost with unset year",
			entry:      Entry{Kind: AnnualPerUnit, Amount: 15},
			year:       12,
			multiplier: 40,
			expected:   600,
		},
		{
			name:     "Unknown kind contributes nothing",
			entry:    Entry{Kind: Kind(42), Amount: 100},
			year:     1,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.AmountForYear(tt.year, tt.multiplier); got != tt.expected {
				t.Errorf("AmountForYear() = %.2f, expected %.2f", got, tt.expected)
			}
		})
	}
}

func TestYearlyBreakdownMatchesTotal(t *testing.T) {
	entries := []Entry{
		{Kind: Fixed, Amount: 10000, Year: 1},
		{Kind: PerUnit, Amount: 50, Year: 1},
		{Kind: Annual, Amount: 2000},
		{Kind: AnnualPerUnit, Amount: 5, Year: 2},
	}
	size := 100.0

	total := make(Breakdown)
	for year := 1; year <= 5; year++ {
		breakdown := YearlyBreakdown(entries, year, size)
		if breakdown.Total() != YearlyCost(entries, year, size) {
			t.Errorf("year %d: breakdown total %.2f != yearly cost %.2f", year, breakdown.Total(), YearlyCost(entries, year, size))
		}
		total.Add(breakdown)
	}

	expected := map[Kind]float64{
		Fixed:         10000,
		PerUnit:       5000,
		Annual:        10000,
		AnnualPerUnit: 2000,
	}
	for kind, amount := range expected {
		if total[kind] != amount {
			t.Errorf("%s bucket = %.2f, expected %.2f", kind, total[kind], amount)
		}
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input    string
		expected Kind
		wantErr  bool
	}{
		{"fixed", Fixed, false},
		{"Annual", Annual, false},
		{"per_unit", PerUnit, false},
		{"perUnit", PerUnit, false},
		{"annual_per_unit", AnnualPerUnit, false},
		{"monthly", Fixed, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseKind(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKind(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseKind(%q) = %s, expected %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestKindTextRoundTrip(t *testing.T) {
	for _, kind := range Kinds {
		text, err := kind.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%s) error: %v", kind, err)
		}
		var parsed Kind
		if err := parsed.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%s) error: %v", text, err)
		}
		if parsed != kind {
			t.Errorf("round trip of %s produced %s", kind, parsed)
		}
	}
}
