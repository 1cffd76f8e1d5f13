package service

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"vendor-orders/internal/utils"
	"vendor-orders/internal/vendororder/model"
)

const unmatchedSource = "Order"

// Totals holds VendorTotal per vendor key and canonical product name.
type Totals struct {
	byVendor map[string]map[string]*model.VendorTotal
}

func newTotals() *Totals {
	return &Totals{byVendor: make(map[string]map[string]*model.VendorTotal)}
}

// add folds one order line in. Weight and unit pattern fill lazily and are never cleared;
// if two lines disagree the smaller weight and the lexicographically smaller pattern stay,
// which keeps the result independent of row order.
func (t *Totals) add(vendor, product string, units float64, perUnitGrams *float64, unitPattern string) {
	vendor = CanonicalizeVendor(vendor)
	products, ok := t.byVendor[vendor]
	if !ok {
		products = make(map[string]*model.VendorTotal)
		t.byVendor[vendor] = products
	}
	vt, ok := products[product]
	if !ok {
		vt = &model.VendorTotal{}
		products[product] = vt
	}
	vt.Units += units

	if perUnitGrams != nil && (vt.PerUnitGrams == nil || *perUnitGrams < *vt.PerUnitGrams) {
		g := *perUnitGrams
		vt.PerUnitGrams = &g
	}
	if unitPattern != "" && (vt.UnitPattern == "" || unitPattern < vt.UnitPattern) {
		vt.UnitPattern = unitPattern
	}
}

// Vendors returns vendor keys in lexicographic order.
func (t *Totals) Vendors() []string {
	out := make([]string, 0, len(t.byVendor))
	for v := range t.byVendor {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Products returns a vendor's canonical product names in lexicographic order.
func (t *Totals) Products(vendor string) []string {
	products := t.byVendor[vendor]
	out := make([]string, 0, len(products))
	for p := range products {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (t *Totals) Get(vendor, product string) (model.VendorTotal, bool) {
	vt, ok := t.byVendor[vendor][product]
	if !ok {
		return model.VendorTotal{}, false
	}
	out := *vt
	if vt.PerUnitGrams != nil {
		g := *vt.PerUnitGrams
		out.PerUnitGrams = &g
	}
	return out, true
}

// Aggregation is the outcome of one pass over the order table.
type Aggregation struct {
	Totals    *Totals
	Unmatched []model.UnmatchedRecord
	Skipped   []model.SkippedLine
}

type resolutionKind int

const (
	resolvedUnmatched resolutionKind = iota
	resolvedSalad
	resolvedVendor
)

// resolution is how one order line is served: salad expansion, a vendor match, or nothing.
type resolution struct {
	kind   resolutionKind
	recipe []model.SaladIngredient
	match  model.MatchResult
}

// Engine runs the matching and aggregation over the order table.
type Engine struct {
	idx     *ReferenceIndex
	salads  *SaladTable
	matcher *Matcher
	opt     Options
	log     zerolog.Logger
}

func NewEngine(idx *ReferenceIndex, salads *SaladTable, opt Options, logger zerolog.Logger) *Engine {
	return &Engine{
		idx:     idx,
		salads:  salads,
		matcher: NewMatcher(idx, opt.MinFuzzyScore, logger),
		opt:     opt,
		log:     logger,
	}
}

func (e *Engine) resolve(product string) resolution {
	if rec, ok := e.salads.Lookup(product); ok {
		return resolution{kind: resolvedSalad, recipe: rec}
	}
	if m, ok := e.matcher.Match(product); ok {
		return resolution{kind: resolvedVendor, match: m}
	}
	return resolution{kind: resolvedUnmatched}
}

// Aggregate walks the order rows (row 0 is the header) and accumulates vendor totals.
func (e *Engine) Aggregate(orders [][]string) *Aggregation {
	agg := &Aggregation{Totals: newTotals()}

	for i, r := range orders {
		if i == 0 {
			continue
		}
		product := cell(r, e.opt.ProductCol)
		if product == "" {
			continue
		}
		if e.isSummaryRow(product) {
			continue
		}
		rawQty := cell(r, e.opt.QtyCol)
		units, ok := utils.ParseQuantity(rawQty)
		if !ok || units <= 0 {
			e.log.Debug().Int("row", i+1).Str("product", product).Str("qty", rawQty).Msg("order line skipped")
			agg.Skipped = append(agg.Skipped, model.SkippedLine{
				Row:         i + 1,
				Name:        product,
				RawQuantity: rawQty,
				Reason:      skipReason(rawQty),
			})
			continue
		}

		res := e.resolve(product)
		switch res.kind {
		case resolvedSalad:
			e.log.Debug().Str("product", product).Int("ingredients", len(res.recipe)).Msg("salad expanded")
			for _, ing := range res.recipe {
				var perUnit *float64
				if ing.QtyPerUnit > 0 {
					g := ing.QtyPerUnit
					perUnit = &g
				}
				agg.Totals.add(ing.VendorKey, ing.Name, units, perUnit, "")
			}
		case resolvedVendor:
			entry := res.match.Entry
			canonical := entry.CanonicalName
			if canonical == "" {
				canonical = product
			}
			agg.Totals.add(entry.VendorKey, canonical, units, effectivePerUnitGrams(product, entry), entry.UnitPattern)
		default:
			agg.Unmatched = append(agg.Unmatched, model.UnmatchedRecord{
				Name:     product,
				Quantity: units,
				Source:   unmatchedSource,
				Reason:   "No vendor match",
			})
		}
	}
	return agg
}

func (e *Engine) isSummaryRow(product string) bool {
	p := strings.ToLower(product)
	for _, k := range e.opt.SkipKeywords {
		if k != "" && strings.Contains(p, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

// effectivePerUnitGrams prefers the weight written in the order's own name, then the
// mapping weight. Microgreens subscriptions are always counted in units.
func effectivePerUnitGrams(product string, entry model.ReferenceEntry) *float64 {
	if isMicrogreensSubscription(product) {
		return nil
	}
	if g, ok := ParseGramsFromName(product); ok && g > 0 {
		return &g
	}
	if entry.PerUnitGrams != nil && *entry.PerUnitGrams > 0 {
		g := *entry.PerUnitGrams
		return &g
	}
	return nil
}

func skipReason(rawQty string) string {
	if strings.TrimSpace(rawQty) == "" {
		return "missing quantity"
	}
	return "invalid or zero quantity"
}
