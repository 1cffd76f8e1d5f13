package service

import (
	"github.com/rs/zerolog"

	"vendor-orders/internal/vendororder/model"
)

func mappingRows() [][]string {
	return [][]string{
		{"Sr", "Product (Modified)", "Product (Original)", "Qty", "Vendor", "Contact", "Phone", "Language", "Hindi Name"},
		{"1", "Tomato", "Tomato (Desi) - 1kg", "500 gms", "Andheri hindi", "Ramesh", "9111111111", "", "टमाटर"},
		{"2", "Spinach Leaves", "Palak", "one bunch", "Dadar", "Suresh", "9222222222", "English", ""},
		{"3", "Cherry Tomato Red", "", "200 gms", "Dadar", "Suresh", "", "English", ""},
		{"4", "Basil Italian", "", "100g", "Vashi", "", "9333333333", "", ""},
		{"5", "Red Onion", "", "1 kg", "Anderi", "Mahesh", "9444444444", "Hindi", "लाल प्याज"},
		{"6", "Red Onion Large", "", "2 kg", "Vashi", "", "", "", ""},
		{"7", "Carrot", "", "100 gms", "Dadar", "Suresh", "", "", ""},
		{"8", "Coconut", "", "6 pcs", "Vashi", "", "", "", ""},
		{"9", "Microgreen Subscription", "", "200 gms", "Vashi", "", "", "", ""},
		{"", "", "", "", "", "", "", "", ""},
	}
}

func saladRows() [][]string {
	return [][]string{
		{"", "Salad", "Ingredient", "Qty (g)", "Vendor"},
		{"", "Greek Salad", "Lettuce", "50", "VendorA"},
		{"", "", "Feta", "20", "VendorB"},
		{"", "", "", "", ""},
		{"", "", "Orphan Leaf", "10", "VendorC"},
		{"", "Caesar Salad", "Romaine", "80 g", "anderi"},
		{"", "", "Parmesan", "abc", "VendorB"},
	}
}

// orderRows prepends the header; each pair is product, quantity.
func orderRows(lines ...[2]string) [][]string {
	rows := [][]string{{"Sr", "Date", "Product", "Qty"}}
	for i, l := range lines {
		rows = append(rows, []string{itoa(i + 1), "", l[0], l[1]})
	}
	return rows
}

func itoa(i int) string { return formatNumber(float64(i)) }

func newTestEngine(opt Options) *Engine {
	return NewEngine(BuildReferenceIndex(mappingRows()), BuildSaladTable(saladRows()), opt, zerolog.Nop())
}

func grams(g float64) *float64 { return &g }

// snapshot copies the totals into plain values for deep comparison.
func snapshot(t *Totals) map[string]map[string]model.VendorTotal {
	out := make(map[string]map[string]model.VendorTotal)
	for _, v := range t.Vendors() {
		out[v] = make(map[string]model.VendorTotal)
		for _, p := range t.Products(v) {
			vt, _ := t.Get(v, p)
			out[v][p] = vt
		}
	}
	return out
}
