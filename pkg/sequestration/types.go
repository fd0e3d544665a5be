// Package sequestration models the physical carbon impact of each project
// type: tCO2e sequestered, or emissions avoided relative to a baseline, for
// a given project year.
//
// Project parameters form a closed union. Exactly one variant describes a
// project, and NewModel dispatches on it once. Type ids (tree species,
// cattle types, practices) resolve through an explicit Registry: custom
// entries first, then the built-in tables, then a per-domain default.
package sequestration

import (
	"fmt"
	"strings"
)

// ProjectType names a project variant.
type ProjectType string

// Supported project types.
const (
	TypeForestry     ProjectType = "forestry"
	TypeLivestock    ProjectType = "livestock"
	TypeSoil         ProjectType = "soil"
	TypeRenewable    ProjectType = "renewable"
	TypeBlueCarbon   ProjectType = "bluecarbon"
	TypeREDD         ProjectType = "redd"
	TypeConstruction ProjectType = "construction"
)

// ProjectTypes lists every supported type.
var ProjectTypes = []ProjectType{
	TypeForestry, TypeLivestock, TypeSoil, TypeRenewable, TypeBlueCarbon, TypeREDD, TypeConstruction,
}

// ParseProjectType accepts the canonical names plus a few common spellings
// ("blue-carbon", "redd+", "green-construction").
func ParseProjectType(value string) (ProjectType, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.NewReplacer("-", "", "_", "", " ", "", "+", "").Replace(normalized)
	switch normalized {
	case "forestry", "forest":
		return TypeForestry, nil
	case "livestock", "cattle":
		return TypeLivestock, nil
	case "soil", "soilcarbon":
		return TypeSoil, nil
	case "renewable", "renewableenergy":
		return TypeRenewable, nil
	case "bluecarbon":
		return TypeBlueCarbon, nil
	case "redd":
		return TypeREDD, nil
	case "construction", "greenconstruction":
		return TypeConstruction, nil
	default:
		return "", fmt.Errorf("unknown project type %q", value)
	}
}

// Parameters is implemented only by the variant structs in this package.
type Parameters interface {
	// Type reports the active variant.
	Type() ProjectType
	// Size is the sizing multiplier applied to per-unit costs: hectares,
	// herd size, MW capacity or building area.
	Size() float64
	// Scale returns a copy with the named numeric field multiplied by
	// factor. ok is false when the variant has no such field.
	Scale(field string, factor float64) (scaled Parameters, ok bool)

	isParameters()
}

// Model yields a project's impact for a project year (1-based). The value
// is signed: avoided-emissions types report a reduction against baseline.
type Model interface {
	ImpactForYear(year int) float64
}

// NewModel resolves params against registry and returns the matching model.
// A nil registry uses only the built-in tables.
func NewModel(params Parameters, registry *Registry) (Model, error) {
	switch p := params.(type) {
	case Forestry:
		return p.Model(registry), nil
	case *Forestry:
		return p.Model(registry), nil
	case Livestock:
		return p.Model(registry), nil
	case *Livestock:
		return p.Model(registry), nil
	case Soil:
		return p.Model(registry), nil
	case *Soil:
		return p.Model(registry), nil
	case Renewable:
		return p.Model(registry), nil
	case *Renewable:
		return p.Model(registry), nil
	case BlueCarbon:
		return p.Model(registry), nil
	case *BlueCarbon:
		return p.Model(registry), nil
	case REDD:
		return p.Model(registry), nil
	case *REDD:
		return p.Model(registry), nil
	case Construction:
		return p.Model(registry), nil
	case *Construction:
		return p.Model(registry), nil
	case nil:
		return nil, fmt.Errorf("project parameters are required")
	default:
		return nil, fmt.Errorf("unsupported project parameters %T", params)
	}
}

func scaleFloat(value *float64, factor float64) {
	*value *= factor
}

func scaleOptional(value **float64, fallback, factor float64) {
	base := fallback
	if *value != nil {
		base = **value
	}
	scaled := base * factor
	*value = &scaled
}

func optionalOr(value *float64, fallback float64) float64 {
	if value == nil {
		return fallback
	}
	return *value
}
