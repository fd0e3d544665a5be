// Package catalog holds purchasable products that adjust a project's
// parameters, such as a feed additive programme or an improved seedling
// stock.
package catalog

import (
	"fmt"
	"sort"

	"github.com/iwvelando/carbon-forecast/pkg/sequestration"
)

// Adjustment multiplies one numeric parameter field by Factor.
type Adjustment struct {
	Field  string  `json:"field" yaml:"field"`
	Factor float64 `json:"factor" yaml:"factor"`
}

// Product is a catalog entry. An empty ProjectTypes list applies to every
// project type.
type Product struct {
	ID           string                      `json:"id" yaml:"id"`
	Name         string                      `json:"name" yaml:"name"`
	ProjectTypes []sequestration.ProjectType `json:"projectTypes,omitempty" yaml:"projectTypes,omitempty"`
	Adjustments  []Adjustment                `json:"adjustments" yaml:"adjustments"`
}

// AppliesTo reports whether the product may be used on projectType. Allowed
// types are matched with the same spellings ParseProjectType accepts.
func (p Product) AppliesTo(projectType sequestration.ProjectType) bool {
	if len(p.ProjectTypes) == 0 {
		return true
	}
	for _, allowed := range p.ProjectTypes {
		if normalizeType(allowed) == projectType {
			return true
		}
	}
	return false
}

func normalizeType(projectType sequestration.ProjectType) sequestration.ProjectType {
	parsed, err := sequestration.ParseProjectType(string(projectType))
	if err != nil {
		return projectType
	}
	return parsed
}

// Catalog is a product lookup by id.
type Catalog struct {
	products map[string]Product
}

// New builds a catalog. Later products replace earlier ones with the same id.
func New(products ...Product) *Catalog {
	c := &Catalog{products: make(map[string]Product, len(products))}
	for _, product := range products {
		if len(product.ProjectTypes) > 0 {
			types := make([]sequestration.ProjectType, len(product.ProjectTypes))
			for i, projectType := range product.ProjectTypes {
				types[i] = normalizeType(projectType)
			}
			product.ProjectTypes = types
		}
		c.products[product.ID] = product
	}
	return c
}

// Default returns the built-in products.
func Default() *Catalog {
	return New(builtinProducts...)
}

// With returns a new catalog holding c's products plus extra.
func (c *Catalog) With(extra ...Product) *Catalog {
	merged := make([]Product, 0, len(extra))
	if c != nil {
		merged = append(merged, c.Products()...)
	}
	return New(append(merged, extra...)...)
}

// Get looks up a product by id.
func (c *Catalog) Get(id string) (Product, bool) {
	if c == nil {
		return Product{}, false
	}
	product, ok := c.products[id]
	return product, ok
}

// Products lists every product sorted by id.
func (c *Catalog) Products() []Product {
	if c == nil {
		return nil
	}
	products := make([]Product, 0, len(c.products))
	for _, product := range c.products {
		products = append(products, product)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products
}

// Apply returns a copy of params with each selected product's adjustments
// multiplied in, in the order given. Unknown products, products for other
// project types and unsupported fields are skipped with a note; params is
// never modified.
func (c *Catalog) Apply(params sequestration.Parameters, productIDs []string) (sequestration.Parameters, []string) {
	if params == nil || len(productIDs) == 0 {
		return params, nil
	}

	var notes []string
	result := params
	for _, id := range productIDs {
		product, ok := c.Get(id)
		if !ok {
			notes = append(notes, fmt.Sprintf("unknown product '%s' ignored", id))
			continue
		}
		if !product.AppliesTo(result.Type()) {
			notes = append(notes, fmt.Sprintf("product '%s' does not apply to %s projects", id, result.Type()))
			continue
		}
		for _, adjustment := range product.Adjustments {
			scaled, ok := result.Scale(adjustment.Field, adjustment.Factor)
			if !ok {
				notes = append(notes, fmt.Sprintf("product '%s' adjusts unsupported field '%s'", id, adjustment.Field))
				continue
			}
			result = scaled
		}
	}
	return result, notes
}
