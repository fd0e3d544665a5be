package sequestration

import (
	"fmt"
	"strings"
)

// Domain names a lookup table.
type Domain string

// Lookup domains. Rate domains carry a sequestration or emission rate; factor
// domains carry a dimensionless multiplier in Rate.
const (
	DomainTree          Domain = "tree"
	DomainCattle        Domain = "cattle"
	DomainFeed          Domain = "feed"
	DomainManure        Domain = "manure"
	DomainAdditive      Domain = "additive"
	DomainGrazing       Domain = "grazing"
	DomainClimate       Domain = "climate"
	DomainSupplement    Domain = "supplement"
	DomainEnergyProfile Domain = "energyProfile"
	DomainSeasonal      Domain = "seasonal"
	DomainSoil          Domain = "soil"
	DomainBlueCarbon    Domain = "blueCarbon"
	DomainRenewable     Domain = "renewable"
	DomainForest        Domain = "forest"
	DomainBuilding      Domain = "building"
)

// Domains lists every lookup domain.
var Domains = []Domain{
	DomainTree, DomainCattle, DomainFeed, DomainManure, DomainAdditive, DomainGrazing,
	DomainClimate, DomainSupplement, DomainEnergyProfile, DomainSeasonal, DomainSoil,
	DomainBlueCarbon, DomainRenewable, DomainForest, DomainBuilding,
}

// ParseDomain matches a domain name ignoring case.
func ParseDomain(value string) (Domain, error) {
	trimmed := strings.TrimSpace(value)
	for _, domain := range Domains {
		if strings.EqualFold(string(domain), trimmed) {
			return domain, nil
		}
	}
	return "", fmt.Errorf("unknown type domain %q", value)
}

// TypeInfo describes one entry of a lookup table. Only the fields meaningful
// for the entry's domain are set:
//
//	tree:       Rate tCO2e/ha/yr at maturity, MaturityYears
//	cattle:     Rate kg CO2e/head/yr
//	soil, blueCarbon: Rate tCO2e/ha/yr
//	forest:     Rate tCO2e saved per hectare of avoided deforestation
//	renewable:  CapacityFactor
//	building:   Rate embodied kg CO2e/m2, EnergyIntensity kWh/m2/yr
//	others:     Rate is a multiplier
type TypeInfo struct {
	ID              string  `json:"id" yaml:"id"`
	Name            string  `json:"name" yaml:"name"`
	Rate            float64 `json:"rate,omitempty" yaml:"rate,omitempty"`
	MaturityYears   int     `json:"maturityYears,omitempty" yaml:"maturityYears,omitempty"`
	CapacityFactor  float64 `json:"capacityFactor,omitempty" yaml:"capacityFactor,omitempty"`
	EnergyIntensity float64 `json:"energyIntensity,omitempty" yaml:"energyIntensity,omitempty"`
}

// Registry holds user-defined types. The zero value and nil are usable and
// resolve only against the built-in tables.
type Registry struct {
	custom map[Domain][]TypeInfo
}

// NewRegistry builds a registry from custom entries keyed by domain.
func NewRegistry(custom map[Domain][]TypeInfo) *Registry {
	r := &Registry{custom: make(map[Domain][]TypeInfo, len(custom))}
	for domain, entries := range custom {
		r.custom[domain] = append([]TypeInfo(nil), entries...)
	}
	return r
}

// Add registers a custom entry and returns the registry for chaining.
func (r *Registry) Add(domain Domain, info TypeInfo) *Registry {
	if r.custom == nil {
		r.custom = make(map[Domain][]TypeInfo)
	}
	r.custom[domain] = append(r.custom[domain], info)
	return r
}

// Custom returns the custom entries for domain.
func (r *Registry) Custom(domain Domain) []TypeInfo {
	if r == nil {
		return nil
	}
	return r.custom[domain]
}

// Resolve looks id up in the custom entries, then the built-in table, and
// finally returns the domain default. found is false only for the default.
func (r *Registry) Resolve(domain Domain, id string) (info TypeInfo, found bool) {
	key := normalizeID(id)
	if r != nil && key != "" {
		for _, entry := range r.custom[domain] {
			if normalizeID(entry.ID) == key {
				return entry, true
			}
		}
	}
	if entry, ok := builtins[domain][key]; ok {
		return entry, true
	}
	return defaults[domain], false
}

// Builtin returns the built-in table for domain, keyed by id.
func Builtin(domain Domain) map[string]TypeInfo {
	return builtins[domain]
}

// Default returns the fallback entry for domain.
func Default(domain Domain) TypeInfo {
	return defaults[domain]
}

func (r *Registry) rate(domain Domain, id string) float64 {
	info, _ := r.Resolve(domain, id)
	return info.Rate
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
