package sequestration

// Built-in lookup tables. Keys are lower-case ids.
var builtins = map[Domain]map[string]TypeInfo{
	DomainTree: {
		"pine":         {ID: "pine", Name: "Pine", Rate: 8.0, MaturityYears: 25},
		"oak":          {ID: "oak", Name: "Oak", Rate: 5.5, MaturityYears: 40},
		"eucalyptus":   {ID: "eucalyptus", Name: "Eucalyptus", Rate: 12.0, MaturityYears: 10},
		"teak":         {ID: "teak", Name: "Teak", Rate: 9.0, MaturityYears: 20},
		"mahogany":     {ID: "mahogany", Name: "Mahogany", Rate: 7.5, MaturityYears: 30},
		"bamboo":       {ID: "bamboo", Name: "Bamboo", Rate: 15.0, MaturityYears: 6},
		"mixed-native": {ID: "mixed-native", Name: "Mixed native species", Rate: 6.0, MaturityYears: 30},
	},
	DomainCattle: {
		"beef-cow":     {ID: "beef-cow", Name: "Beef cow", Rate: 2300},
		"dairy-cow":    {ID: "dairy-cow", Name: "Dairy cow", Rate: 3500},
		"dual-purpose": {ID: "dual-purpose", Name: "Dual-purpose cow", Rate: 2800},
		"steer":        {ID: "steer", Name: "Steer", Rate: 2000},
		"heifer":       {ID: "heifer", Name: "Heifer", Rate: 1700},
		"bull":         {ID: "bull", Name: "Bull", Rate: 2600},
	},
	DomainFeed: {
		"pasture":          {ID: "pasture", Name: "Pasture", Rate: 1.0},
		"mixed":            {ID: "mixed", Name: "Mixed ration", Rate: 0.95},
		"high-concentrate": {ID: "high-concentrate", Name: "High concentrate", Rate: 0.90},
		"silage":           {ID: "silage", Name: "Silage based", Rate: 0.93},
		"low-quality":      {ID: "low-quality", Name: "Low quality roughage", Rate: 1.10},
	},
	DomainManure: {
		"pasture-deposit":    {ID: "pasture-deposit", Name: "Deposited on pasture", Rate: 1.0},
		"solid-storage":      {ID: "solid-storage", Name: "Solid storage", Rate: 1.02},
		"liquid-slurry":      {ID: "liquid-slurry", Name: "Liquid slurry", Rate: 1.10},
		"anaerobic-digester": {ID: "anaerobic-digester", Name: "Anaerobic digester", Rate: 0.85},
		"composting":         {ID: "composting", Name: "Composting", Rate: 0.93},
	},
	DomainAdditive: {
		"none":           {ID: "none", Name: "None", Rate: 1.0},
		"3-nop":          {ID: "3-nop", Name: "3-NOP", Rate: 0.70},
		"seaweed":        {ID: "seaweed", Name: "Red seaweed", Rate: 0.80},
		"essential-oils": {ID: "essential-oils", Name: "Essential oils", Rate: 0.92},
		"tannins":        {ID: "tannins", Name: "Tannins", Rate: 0.95},
		"ionophores":     {ID: "ionophores", Name: "Ionophores", Rate: 0.94},
	},
	DomainGrazing: {
		"continuous":   {ID: "continuous", Name: "Continuous grazing", Rate: 1.0},
		"rotational":   {ID: "rotational", Name: "Rotational grazing", Rate: 0.93},
		"adaptive":     {ID: "adaptive", Name: "Adaptive multi-paddock", Rate: 0.88},
		"silvopasture": {ID: "silvopasture", Name: "Silvopasture", Rate: 0.90},
		"feedlot":      {ID: "feedlot", Name: "Feedlot", Rate: 1.05},
	},
	DomainClimate: {
		"temperate": {ID: "temperate", Name: "Temperate", Rate: 1.0},
		"tropical":  {ID: "tropical", Name: "Tropical", Rate: 1.06},
		"arid":      {ID: "arid", Name: "Arid", Rate: 1.04},
		"cold":      {ID: "cold", Name: "Cold", Rate: 0.97},
	},
	DomainSupplement: {
		"none":     {ID: "none", Name: "None", Rate: 1.0},
		"mineral":  {ID: "mineral", Name: "Mineral", Rate: 0.98},
		"protein":  {ID: "protein", Name: "Protein", Rate: 0.96},
		"energy":   {ID: "energy", Name: "Energy", Rate: 0.97},
		"combined": {ID: "combined", Name: "Combined", Rate: 0.94},
	},
	DomainEnergyProfile: {
		"low":      {ID: "low", Name: "Low energy diet", Rate: 1.05},
		"standard": {ID: "standard", Name: "Standard energy diet", Rate: 1.0},
		"high":     {ID: "high", Name: "High energy diet", Rate: 0.95},
	},
	DomainSeasonal: {
		"year-round": {ID: "year-round", Name: "Year-round", Rate: 1.0},
		"seasonal":   {ID: "seasonal", Name: "Seasonal shortages", Rate: 1.03},
		"rotational": {ID: "rotational", Name: "Rotational feed plan", Rate: 0.98},
	},
	DomainSoil: {
		"cover-crops":        {ID: "cover-crops", Name: "Cover crops", Rate: 0.5},
		"no-till":            {ID: "no-till", Name: "No-till", Rate: 0.4},
		"rotational-grazing": {ID: "rotational-grazing", Name: "Rotational grazing", Rate: 1.0},
		"agroforestry":       {ID: "agroforestry", Name: "Agroforestry", Rate: 2.5},
		"biochar":            {ID: "biochar", Name: "Biochar", Rate: 1.5},
		"compost":            {ID: "compost", Name: "Compost application", Rate: 0.8},
	},
	DomainBlueCarbon: {
		"mangrove":   {ID: "mangrove", Name: "Mangrove", Rate: 8.0},
		"seagrass":   {ID: "seagrass", Name: "Seagrass", Rate: 4.5},
		"salt-marsh": {ID: "salt-marsh", Name: "Salt marsh", Rate: 6.0},
	},
	DomainRenewable: {
		"solar":      {ID: "solar", Name: "Solar PV", CapacityFactor: 0.20},
		"wind":       {ID: "wind", Name: "Onshore wind", CapacityFactor: 0.35},
		"offshore":   {ID: "offshore", Name: "Offshore wind", CapacityFactor: 0.45},
		"hydro":      {ID: "hydro", Name: "Run-of-river hydro", CapacityFactor: 0.45},
		"biomass":    {ID: "biomass", Name: "Biomass", CapacityFactor: 0.70},
		"geothermal": {ID: "geothermal", Name: "Geothermal", CapacityFactor: 0.90},
	},
	DomainForest: {
		"tropical-rainforest": {ID: "tropical-rainforest", Name: "Tropical rainforest", Rate: 650},
		"tropical-dry":        {ID: "tropical-dry", Name: "Tropical dry forest", Rate: 350},
		"temperate":           {ID: "temperate", Name: "Temperate forest", Rate: 400},
		"boreal":              {ID: "boreal", Name: "Boreal forest", Rate: 300},
		"peat-swamp":          {ID: "peat-swamp", Name: "Peat swamp forest", Rate: 900},
	},
	DomainBuilding: {
		"office":      {ID: "office", Name: "Office", Rate: 500, EnergyIntensity: 200},
		"residential": {ID: "residential", Name: "Residential", Rate: 350, EnergyIntensity: 150},
		"retail":      {ID: "retail", Name: "Retail", Rate: 450, EnergyIntensity: 250},
		"industrial":  {ID: "industrial", Name: "Industrial", Rate: 400, EnergyIntensity: 180},
		"education":   {ID: "education", Name: "Education", Rate: 420, EnergyIntensity: 160},
	},
}

// Per-domain fallbacks for ids that resolve nowhere.
var defaults = map[Domain]TypeInfo{
	DomainTree:          {ID: "default", Name: "Default species", Rate: 7.0, MaturityYears: 30},
	DomainCattle:        {ID: "default", Name: "Default cattle", Rate: 2500},
	DomainFeed:          {ID: "default", Name: "Default feed", Rate: 1.0},
	DomainManure:        {ID: "default", Name: "Default manure management", Rate: 1.0},
	DomainAdditive:      {ID: "default", Name: "No additive", Rate: 1.0},
	DomainGrazing:       {ID: "default", Name: "Default grazing", Rate: 1.0},
	DomainClimate:       {ID: "default", Name: "Default climate", Rate: 1.0},
	DomainSupplement:    {ID: "default", Name: "No supplementation", Rate: 1.0},
	DomainEnergyProfile: {ID: "default", Name: "Standard energy diet", Rate: 1.0},
	DomainSeasonal:      {ID: "default", Name: "Year-round", Rate: 1.0},
	DomainSoil:          {ID: "default", Name: "Default practice", Rate: 0.5},
	DomainBlueCarbon:    {ID: "default", Name: "Default ecosystem", Rate: 6.0},
	DomainRenewable:     {ID: "default", Name: "Default technology", CapacityFactor: 0.25},
	DomainForest:        {ID: "default", Name: "Default forest", Rate: 400},
	DomainBuilding:      {ID: "default", Name: "Default building", Rate: 450, EnergyIntensity: 200},
}
