package catalog

import "github.com/iwvelando/carbon-forecast/pkg/sequestration"

var builtinProducts = []Product{
	{
		ID:           "improved-genetics",
		Name:         "Improved herd genetics",
		ProjectTypes: []sequestration.ProjectType{sequestration.TypeLivestock},
		Adjustments:  []Adjustment{{Field: "calvingRate", Factor: 1.1}},
	},
	{
		ID:           "community-patrols",
		Name:         "Community forest patrols",
		ProjectTypes: []sequestration.ProjectType{sequestration.TypeREDD},
		Adjustments:  []Adjustment{{Field: "leakageRisk", Factor: 0.5}},
	},
	{
		ID:           "bifacial-panels",
		Name:         "Bifacial solar panels",
		ProjectTypes: []sequestration.ProjectType{sequestration.TypeRenewable},
		Adjustments:  []Adjustment{{Field: "capacityFactor", Factor: 1.1}},
	},
	{
		ID:           "low-carbon-concrete",
		Name:         "Low-carbon concrete",
		ProjectTypes: []sequestration.ProjectType{sequestration.TypeConstruction},
		Adjustments:  []Adjustment{{Field: "materialReduction", Factor: 1.5}},
	},
	{
		ID:           "envelope-retrofit",
		Name:         "Building envelope retrofit",
		ProjectTypes: []sequestration.ProjectType{sequestration.TypeConstruction},
		Adjustments:  []Adjustment{{Field: "energyEfficiency", Factor: 1.25}},
	},
}
