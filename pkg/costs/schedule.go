// Package costs evaluates a project's cost entries into per-year totals.
package costs

import (
	"fmt"
	"strings"
)

// Kind classifies how a cost entry recurs and whether it scales with project size.
type Kind int

const (
	// Fixed is a one-time cost paid in its effective year.
	Fixed Kind = iota
	// Annual is paid every year from its effective year onward.
	Annual
	// PerUnit is a one-time cost multiplied by the project size.
	PerUnit
	// AnnualPerUnit is a recurring cost multiplied by the project size.
	AnnualPerUnit
)

// Kinds lists every kind in breakdown order.
var Kinds = []Kind{Fixed, Annual, PerUnit, AnnualPerUnit}

// String returns the configuration spelling of the kind.
func (k Kind) String() string {
	switch k {
	case Fixed:
		return "fixed"
	case Annual:
		return "annual"
	case PerUnit:
		return "perUnit"
	case AnnualPerUnit:
		return "annualPerUnit"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind parses a kind from its configuration spelling. Matching ignores
// case and underscores, so "per_unit" and "PerUnit" are both accepted.
func ParseKind(value string) (Kind, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(value), "_", ""))
	switch normalized {
	case "fixed":
		return Fixed, nil
	case "annual":
		return Annual, nil
	case "perunit":
		return PerUnit, nil
	case "annualperunit":
		return AnnualPerUnit, nil
	default:
		return Fixed, fmt.Errorf("unknown cost kind %q", value)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Recurring reports whether the kind is charged every year from its effective year.
func (k Kind) Recurring() bool {
	return k == Annual || k == AnnualPerUnit
}

// Scaled reports whether the kind is multiplied by the project size.
func (k Kind) Scaled() bool {
	return k == PerUnit || k == AnnualPerUnit
}

// Entry is a single cost line. A Year of 0 means unset: recurring entries
// then apply to every year and one-time entries never match.
type Entry struct {
	Name   string  `json:"name,omitempty" yaml:"name,omitempty"`
	Kind   Kind    `json:"kind" yaml:"kind"`
	Amount float64 `json:"amount" yaml:"amount"`
	Year   int     `json:"year,omitempty" yaml:"year,omitempty"`
}

// AmountForYear returns what the entry contributes in the given year.
func (e Entry) AmountForYear(year int, sizeMultiplier float64) float64 {
	var applies bool
	switch e.Kind {
	case Fixed, PerUnit:
		applies = year == e.Year
	case Annual, AnnualPerUnit:
		applies = e.Year == 0 || year >= e.Year
	}
	if !applies {
		return 0
	}
	if e.Kind.Scaled() {
		return e.Amount * sizeMultiplier
	}
	return e.Amount
}

// YearlyCost sums every entry's contribution for the given project year.
func YearlyCost(entries []Entry, year int, sizeMultiplier float64) float64 {
	total := 0.0
	for _, entry := range entries {
		total += entry.AmountForYear(year, sizeMultiplier)
	}
	return total
}

// Breakdown holds one year's (or a whole projection's) cost per kind.
type Breakdown map[Kind]float64

// YearlyBreakdown buckets the year's cost by kind.
func YearlyBreakdown(entries []Entry, year int, sizeMultiplier float64) Breakdown {
	breakdown := make(Breakdown, len(Kinds))
	for _, entry := range entries {
		if amount := entry.AmountForYear(year, sizeMultiplier); amount != 0 {
			breakdown[entry.Kind] += amount
		}
	}
	return breakdown
}

// Add accumulates other into b.
func (b Breakdown) Add(other Breakdown) {
	for kind, amount := range other {
		b[kind] += amount
	}
}

// Total sums all buckets.
func (b Breakdown) Total() float64 {
	total := 0.0
	for _, kind := range Kinds {
		total += b[kind]
	}
	return total
}
