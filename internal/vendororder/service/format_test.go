package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendor-orders/internal/vendororder/model"
)

func TestOrderLinesBuffer(t *testing.T) {
	eng := newTestEngine(DefaultOptions())
	agg := eng.Aggregate(orderRows([2]string{"Carrot", "10"}))

	lines := eng.OrderLines(agg)
	require.Len(t, lines, 1)
	assert.Equal(t, model.OrderLine{
		Serial:         1,
		DisplayName:    "Carrot (100 gms)",
		Vendor:         "Dadar",
		Units:          10,
		BaseWeight:     "1 kg",
		BufferedWeight: "1.12 kg",
	}, lines[0])
}

func TestOrderLinesUnitBased(t *testing.T) {
	eng := newTestEngine(DefaultOptions())
	agg := eng.Aggregate(orderRows(
		[2]string{"Coconut", "4"},
		[2]string{"Microgreen Subscription (200g)", "1"},
		[2]string{"Palak", "3"},
	))

	lines := eng.OrderLines(agg)
	require.Len(t, lines, 3)

	// Dadar before Vashi, products sorted within a vendor
	assert.Equal(t, model.OrderLine{Serial: 1, DisplayName: "Palak", Vendor: "Dadar", Units: 3, SUnits: "3 bunch", BaseWeight: NoWeight, BufferedWeight: NoWeight}, lines[0])
	assert.Equal(t, model.OrderLine{Serial: 2, DisplayName: "Coconut", Vendor: "Vashi", Units: 4, SUnits: "24 pcs", BaseWeight: NoWeight, BufferedWeight: NoWeight}, lines[1])
	assert.Equal(t, model.OrderLine{Serial: 3, DisplayName: "Microgreen Subscription", Vendor: "Vashi", Units: 1, SUnits: "1 unit", BaseWeight: NoWeight, BufferedWeight: NoWeight}, lines[2])
}

func TestOrderLinesZeroBuffer(t *testing.T) {
	opt := DefaultOptions()
	opt.BufferPercent = 0
	eng := newTestEngine(opt)
	lines := eng.OrderLines(eng.Aggregate(orderRows([2]string{"Red Onion", "3"})))

	require.Len(t, lines, 1)
	assert.Equal(t, "Red Onion (1 kg)", lines[0].DisplayName)
	assert.Equal(t, "3 kg", lines[0].BaseWeight)
	assert.Equal(t, "3 kg", lines[0].BufferedWeight)
}

func TestMessagesEnglish(t *testing.T) {
	eng := newTestEngine(DefaultOptions())
	agg := eng.Aggregate(orderRows(
		[2]string{"Carrot", "10"},
		[2]string{"Palak", "3"},
	))

	msgs := eng.Messages(agg)
	require.Len(t, msgs, 1)
	assert.Equal(t, 1, msgs[0].Serial)
	assert.Equal(t, "Dadar", msgs[0].VendorName)
	assert.Equal(t, "9222222222", msgs[0].Phone)
	assert.Equal(t, model.English, msgs[0].Language)
	assert.Equal(t,
		"Dear Dadar,\nYour order for tomorrow (Dadar):\n\n"+
			"• Carrot – Total 1.2 kg\n"+
			"• Palak – 3 bunch"+
			"\n\nPlease confirm.\nThanks,\nArkoun Farms",
		msgs[0].Text)
}

func TestMessagesHindi(t *testing.T) {
	eng := newTestEngine(DefaultOptions())
	agg := eng.Aggregate(orderRows(
		[2]string{"Tomato", "2"},
		[2]string{"Red Onion", "1"},
	))

	msgs := eng.Messages(agg)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Andheri", msgs[0].VendorName)
	assert.Equal(t, model.Hindi, msgs[0].Language)
	assert.Equal(t,
		"प्रिय Andheri,\nआपका कल का ऑर्डर (Andheri):\n\n"+
			"• लाल प्याज – कुल 2 kg\n"+
			"• टमाटर – कुल 1.5 kg"+
			"\n\nकृपया कन्फर्म करें।\nधन्यवाद,\nArkoun Farms",
		msgs[0].Text)
}

func TestMessagesUnitsAndFallbacks(t *testing.T) {
	opt := DefaultOptions()
	opt.Signature = "Test Farm"
	eng := newTestEngine(opt)
	agg := eng.Aggregate(orderRows(
		[2]string{"Coconut", "2"},
		[2]string{"Microgreen Subscription (200g)", "3"},
		[2]string{"Greek Salad", "1"},
	))

	msgs := eng.Messages(agg)
	require.Len(t, msgs, 3)
	assert.Equal(t, []string{"Vashi", "VendorA", "VendorB"}, []string{msgs[0].VendorName, msgs[1].VendorName, msgs[2].VendorName})

	assert.Contains(t, msgs[0].Text, "• Coconut – 12 pcs\n")
	assert.Contains(t, msgs[0].Text, "• Microgreen Subscription – 3 units")
	assert.NotContains(t, msgs[0].Text, "gms")
	assert.Contains(t, msgs[0].Text, "Thanks,\nTest Farm")

	// 1 salad x 1.12 rounds up to 2 units of 50 g
	assert.Contains(t, msgs[1].Text, "• Lettuce – Total 100 gms")
	assert.Empty(t, msgs[1].Phone, "vendors missing from the mapping have no phone")
	assert.Equal(t, model.English, msgs[1].Language)
	assert.Equal(t, 3, msgs[2].Serial)
}

func TestUnmatchedItems(t *testing.T) {
	got := unmatchedItems([]model.UnmatchedRecord{
		{Name: "Dragon Fruit", Quantity: 2, Source: "Order", Reason: "No vendor match"},
		{Name: "Paneer", Quantity: 1, Source: "Order", Reason: "No vendor match"},
	})
	assert.Equal(t, []model.UnmatchedItem{
		{Serial: 1, Name: "Dragon Fruit", Quantity: 2, Source: "Order", Note: "No vendor match"},
		{Serial: 2, Name: "Paneer", Quantity: 1, Source: "Order", Note: "No vendor match"},
	}, got)
	assert.Empty(t, unmatchedItems(nil))
}
