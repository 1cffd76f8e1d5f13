package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"vendor-orders/internal/vendororder/model"
)

// NoWeight fills the weight columns of unit-only rows.
const NoWeight = "—"

var hundred = decimal.NewFromInt(100)

type messageTemplate struct {
	header     string // vendor, vendor
	footer     string // signature
	totalLabel string
	unitWord   func(units float64) string
}

var templates = map[model.Language]messageTemplate{
	model.English: {
		header:     "Dear %s,\nYour order for tomorrow (%s):\n\n",
		footer:     "\n\nPlease confirm.\nThanks,\n%s",
		totalLabel: "Total",
		unitWord: func(units float64) string {
			if units == 1 {
				return "unit"
			}
			return "units"
		},
	},
	model.Hindi: {
		header:     "प्रिय %s,\nआपका कल का ऑर्डर (%s):\n\n",
		footer:     "\n\nकृपया कन्फर्म करें।\nधन्यवाद,\n%s",
		totalLabel: "कुल",
		unitWord:   func(float64) string { return "यूनिट" },
	},
}

func templateFor(lang model.Language) messageTemplate {
	if t, ok := templates[lang]; ok {
		return t
	}
	return templates[model.English]
}

func (e *Engine) bufferFactor() decimal.Decimal {
	return decimal.NewFromFloat(e.opt.BufferPercent).Div(hundred).Add(decimal.NewFromInt(1))
}

func hasWeight(product string, vt model.VendorTotal) bool {
	return vt.PerUnitGrams != nil && *vt.PerUnitGrams > 0 && !isMicrogreensSubscription(product)
}

func unitPhrase(units float64, lang model.Language) string {
	return formatNumber(units) + " " + templateFor(lang).unitWord(units)
}

// OrderLines renders the vendor order table, vendors and products in key order.
func (e *Engine) OrderLines(agg *Aggregation) []model.OrderLine {
	factor := e.bufferFactor()
	out := []model.OrderLine{}
	for _, vendor := range agg.Totals.Vendors() {
		for _, product := range agg.Totals.Products(vendor) {
			vt, _ := agg.Totals.Get(vendor, product)
			line := model.OrderLine{
				Serial:      len(out) + 1,
				DisplayName: CleanDisplayName(product, vt.PerUnitGrams),
				Vendor:      vendor,
				Units:       vt.Units,
			}
			if hasWeight(product, vt) {
				base := decimal.NewFromFloat(vt.Units).Mul(decimal.NewFromFloat(*vt.PerUnitGrams))
				line.BaseWeight = fmtWeightDecimal(base)
				line.BufferedWeight = fmtWeightDecimal(base.Mul(factor))
			} else {
				if vt.UnitPattern != "" {
					line.SUnits = MakeSUnitString(vt.Units, vt.UnitPattern)
				}
				if line.SUnits == "" {
					line.SUnits = unitPhrase(vt.Units, model.English)
				}
				line.BaseWeight = NoWeight
				line.BufferedWeight = NoWeight
			}
			out = append(out, line)
		}
	}
	return out
}

// Messages renders one WhatsApp message per vendor in the vendor's language.
// The salutation always uses the vendor key, never the contact person.
func (e *Engine) Messages(agg *Aggregation) []model.Message {
	out := []model.Message{}
	for _, vendor := range agg.Totals.Vendors() {
		meta := e.idx.Vendor(vendor)
		lang := meta.Language
		if lang != model.Hindi {
			lang = model.English
		}
		tpl := templateFor(lang)

		lines := make([]string, 0, len(agg.Totals.Products(vendor)))
		for _, product := range agg.Totals.Products(vendor) {
			vt, _ := agg.Totals.Get(vendor, product)
			lines = append(lines, fmt.Sprintf("• %s – %s", e.idx.LocalizedName(product, lang), e.messageQty(product, vt, tpl, lang)))
		}

		text := fmt.Sprintf(tpl.header, vendor, vendor) +
			strings.Join(lines, "\n") +
			fmt.Sprintf(tpl.footer, e.opt.Signature)

		out = append(out, model.Message{
			Serial:     len(out) + 1,
			VendorName: vendor,
			Phone:      meta.Phone,
			Language:   lang,
			Text:       text,
		})
	}
	return out
}

// messageQty: weight items get the buffered total, where the buffer is applied to the
// unit count and rounded up before converting to weight.
func (e *Engine) messageQty(product string, vt model.VendorTotal, tpl messageTemplate, lang model.Language) string {
	if isMicrogreensSubscription(product) {
		return unitPhrase(vt.Units, lang)
	}
	if hasWeight(product, vt) {
		qty := decimal.NewFromFloat(vt.Units).Mul(e.bufferFactor()).Ceil()
		total := decimal.NewFromFloat(*vt.PerUnitGrams).Mul(qty)
		return tpl.totalLabel + " " + fmtWeightDecimal(total)
	}
	if vt.UnitPattern != "" {
		if s := MakeSUnitString(vt.Units, vt.UnitPattern); s != "" && s != NoWeight {
			return s
		}
	}
	return unitPhrase(vt.Units, lang)
}

func unmatchedItems(recs []model.UnmatchedRecord) []model.UnmatchedItem {
	out := make([]model.UnmatchedItem, 0, len(recs))
	for i, u := range recs {
		out = append(out, model.UnmatchedItem{
			Serial:   i + 1,
			Name:     u.Name,
			Quantity: u.Quantity,
			Source:   u.Source,
			Note:     u.Reason,
		})
	}
	return out
}
