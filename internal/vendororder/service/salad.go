package service

import (
	"strings"

	"vendor-orders/internal/utils"
	"vendor-orders/internal/vendororder/model"
)

// salad breaker columns (0-based); column 0 is unused
const (
	saladColName       = 1 // only on the first row of each salad
	saladColIngredient = 2
	saladColQty        = 3 // grams per salad
	saladColVendor     = 4
)

// SaladTable maps composite products to their ingredients.
type SaladTable struct {
	recipes map[string][]model.SaladIngredient
	byNorm  map[string]string // normalized salad name -> recipes key
}

// saladSection is the fold state: the salad whose ingredients are being listed.
type saladSection struct {
	name string
}

// next consumes one row. A blank row closes the section, a name cell opens a new one,
// and an ingredient row inside a section yields an ingredient.
func (s saladSection) next(row []string) (saladSection, *model.SaladIngredient) {
	if isBlankRow(row) {
		return saladSection{}, nil
	}
	if name := cell(row, saladColName); name != "" {
		s = saladSection{name: name}
	}
	if s.name == "" {
		return s, nil
	}
	ing := cell(row, saladColIngredient)
	if ing == "" {
		return s, nil
	}
	return s, &model.SaladIngredient{
		Name:       ing,
		QtyPerUnit: utils.ParseLeadingFloat(cell(row, saladColQty)),
		VendorKey:  CanonicalizeVendor(cell(row, saladColVendor)),
	}
}

// BuildSaladTable folds the breaker rows (row 0 is the header) into recipes.
func BuildSaladTable(rows [][]string) *SaladTable {
	t := &SaladTable{
		recipes: make(map[string][]model.SaladIngredient),
		byNorm:  make(map[string]string),
	}
	var (
		sec saladSection
		ing *model.SaladIngredient
	)
	for i, r := range rows {
		if i == 0 {
			continue
		}
		sec, ing = sec.next(r)
		if ing == nil {
			continue
		}
		t.recipes[sec.name] = append(t.recipes[sec.name], *ing)
		if n := Normalize(sec.name); n != "" {
			if _, ok := t.byNorm[n]; !ok {
				t.byNorm[n] = sec.name
			}
		}
	}
	return t
}

// Lookup finds a recipe by exact product name, then by normalized name.
func (t *SaladTable) Lookup(product string) ([]model.SaladIngredient, bool) {
	if t == nil {
		return nil, false
	}
	p := strings.TrimSpace(product)
	if rec, ok := t.recipes[p]; ok {
		return rec, true
	}
	if key, ok := t.byNorm[Normalize(p)]; ok {
		return t.recipes[key], true
	}
	return nil, false
}

// Len is the number of salads with at least one ingredient.
func (t *SaladTable) Len() int { return len(t.recipes) }
