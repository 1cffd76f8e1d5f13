package service

import (
	"sort"
	"strings"

	"vendor-orders/internal/vendororder/model"
)

// Vendor_Product_Mapping columns (0-based).
const (
	refColProductMod  = 1 // cleaned-up product name
	refColProductOrig = 2 // name as it appears in the shop listing
	refColQty         = 3 // per-unit quantity: "500 gms", "6 pcs", "one bunch"
	refColVendor      = 4 // vendor location / market, used for grouping
	refColContact     = 5 // contact person for WhatsApp
	refColPhone       = 6
	refColLang        = 7
	refColHindiName   = 8
)

// ReferenceIndex is the read-only lookup built from the vendor mapping table.
type ReferenceIndex struct {
	byNorm    map[string]*model.ReferenceEntry
	byBase    map[string]*model.ReferenceEntry
	baseKeys  []string            // shortest first, then lexicographic
	keyRank   map[string]int      // position in baseKeys
	keyTokens map[string]tokenSet // base key -> core tokens
	inv       map[string][]string // token -> base keys containing it, in baseKeys order
	vendors   map[string]model.VendorMeta
	hindi     map[string]string // base-normalized English name -> Hindi name
}

// BuildReferenceIndex reads mapping rows (row 0 is the header). Merge rules:
//   - the first row to claim a normalized or base name keeps it; a later row only
//     backfills a missing per-unit weight;
//   - vendor meta is registered under the vendor key and under the contact name:
//     first phone wins, Hindi is sticky, contact name fills only when empty;
//   - the first Hindi name per base name wins.
func BuildReferenceIndex(rows [][]string) *ReferenceIndex {
	byNorm := make(map[string]*model.ReferenceEntry)
	byBase := make(map[string]*model.ReferenceEntry)
	vendors := make(map[string]*model.VendorMeta)
	hindi := make(map[string]string)

	for i, r := range rows {
		if i == 0 || isBlankRow(r) {
			continue
		}
		location := cell(r, refColVendor)
		contact := cell(r, refColContact)
		phone := cell(r, refColPhone)
		langCell := cell(r, refColLang)
		qtyCell := cell(r, refColQty)

		vendorText := firstNonEmpty(location, contact)
		lang := model.English
		if strings.EqualFold(langCell, "hindi") || reHindiMarker.MatchString(vendorText) {
			lang = model.Hindi
		}

		vendorKey := CanonicalizeVendor(firstNonEmpty(location, contact, UnknownVendor))
		contactName := firstNonEmpty(contact, vendorKey)

		mergeVendorMeta(vendors, vendorKey, phone, lang, contactName)
		mergeVendorMeta(vendors, contactName, phone, lang, contactName)

		var perUnit *float64
		unitPattern := ""
		if isUnitOnlyQty(strings.ToLower(qtyCell)) {
			unitPattern = qtyCell
		} else if g, ok := ParseQtyCellToGrams(qtyCell); ok {
			perUnit = &g
		}

		hindiName := cell(r, refColHindiName)
		for _, p := range []string{cell(r, refColProductMod), cell(r, refColProductOrig)} {
			if p == "" {
				continue
			}
			n, b := Normalize(p), BaseNormalize(p)
			// one entry shared by both maps, so a backfill through either key shows in both
			entry := &model.ReferenceEntry{
				VendorKey:     vendorKey,
				Phone:         phone,
				Language:      lang,
				CanonicalName: p,
				PerUnitGrams:  perUnit,
				UnitPattern:   unitPattern,
			}
			registerEntry(byNorm, n, entry)
			registerEntry(byBase, b, entry)

			if hindiName != "" && b != "" {
				if _, ok := hindi[b]; !ok {
					hindi[b] = hindiName
				}
			}
		}
	}

	return freezeIndex(byNorm, byBase, vendors, hindi)
}

func registerEntry(m map[string]*model.ReferenceEntry, key string, entry *model.ReferenceEntry) {
	if key == "" {
		return
	}
	ex, ok := m[key]
	if !ok {
		m[key] = entry
		return
	}
	if ex.PerUnitGrams == nil && entry.PerUnitGrams != nil && *entry.PerUnitGrams != 0 {
		g := *entry.PerUnitGrams
		ex.PerUnitGrams = &g
	}
}

func mergeVendorMeta(m map[string]*model.VendorMeta, key, phone string, lang model.Language, contact string) {
	meta, ok := m[key]
	if !ok {
		meta = &model.VendorMeta{Language: lang, ContactName: contact}
		m[key] = meta
	}
	if meta.Phone == "" {
		meta.Phone = phone
	}
	if lang == model.Hindi {
		meta.Language = model.Hindi
	}
	if meta.ContactName == "" {
		meta.ContactName = contact
	}
}

func freezeIndex(
	byNorm, byBase map[string]*model.ReferenceEntry,
	vendors map[string]*model.VendorMeta,
	hindi map[string]string,
) *ReferenceIndex {
	idx := &ReferenceIndex{
		byNorm:    byNorm,
		byBase:    byBase,
		keyRank:   make(map[string]int, len(byBase)),
		keyTokens: make(map[string]tokenSet, len(byBase)),
		inv:       make(map[string][]string),
		vendors:   make(map[string]model.VendorMeta, len(vendors)),
		hindi:     hindi,
	}
	for k, v := range vendors {
		idx.vendors[k] = *v
	}

	idx.baseKeys = make([]string, 0, len(byBase))
	for k := range byBase {
		idx.baseKeys = append(idx.baseKeys, k)
	}
	sort.Slice(idx.baseKeys, func(i, j int) bool {
		a, b := idx.baseKeys[i], idx.baseKeys[j]
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return a < b
	})

	for i, k := range idx.baseKeys {
		idx.keyRank[k] = i
		toks := coreTokens(k)
		idx.keyTokens[k] = toks
		for t := range toks {
			idx.inv[t] = append(idx.inv[t], k)
		}
	}
	return idx
}

func (idx *ReferenceIndex) exact(norm string) (model.ReferenceEntry, bool) {
	e, ok := idx.byNorm[norm]
	if !ok {
		return model.ReferenceEntry{}, false
	}
	return cloneEntry(e), true
}

func (idx *ReferenceIndex) base(base string) (model.ReferenceEntry, bool) {
	e, ok := idx.byBase[base]
	if !ok {
		return model.ReferenceEntry{}, false
	}
	return cloneEntry(e), true
}

// candidateKeys returns the base keys sharing at least one token, in baseKeys order.
func (idx *ReferenceIndex) candidateKeys(tokens tokenSet) []string {
	seen := make(map[string]struct{})
	for t := range tokens {
		for _, k := range idx.inv[t] {
			seen[k] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return idx.keyRank[out[i]] < idx.keyRank[out[j]] })
	return out
}

// Vendor returns contact data for a vendor key, English with no phone when unknown.
func (idx *ReferenceIndex) Vendor(key string) model.VendorMeta {
	if m, ok := idx.vendors[key]; ok {
		return m
	}
	return model.VendorMeta{Language: model.English, ContactName: key}
}

// LocalizedName returns the Hindi product name for Hindi-speaking vendors when one is mapped.
func (idx *ReferenceIndex) LocalizedName(name string, lang model.Language) string {
	if lang != model.Hindi {
		return name
	}
	b := BaseNormalize(name)
	if b == "" {
		return name
	}
	if h, ok := idx.hindi[b]; ok && h != "" {
		return h
	}
	return name
}

// Len is the number of distinct base names in the index.
func (idx *ReferenceIndex) Len() int { return len(idx.baseKeys) }

func cloneEntry(e *model.ReferenceEntry) model.ReferenceEntry {
	out := *e
	if e.PerUnitGrams != nil {
		g := *e.PerUnitGrams
		out.PerUnitGrams = &g
	}
	return out
}

func cell(r []string, i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[i])
}

func isBlankRow(r []string) bool {
	for _, v := range r {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
