package model

import (
	"errors"
	"time"
)

var (
	// ErrMissingTable is returned when one of the three input tables is absent.
	ErrMissingTable = errors.New("required table is missing")

	// ErrNoOrderRows is returned when the order table has a header but no data rows.
	ErrNoOrderRows = errors.New("order table has no data rows")
)

type Language string

const (
	English Language = "English"
	Hindi   Language = "Hindi"
)

// ReferenceEntry is one product name variant from the vendor mapping table.
// Weight-based products carry PerUnitGrams, unit-based ones carry UnitPattern.
type ReferenceEntry struct {
	VendorKey     string
	Phone         string
	Language      Language
	CanonicalName string   // product name as written in the mapping row
	PerUnitGrams  *float64 // grams per ordered unit, nil if unknown or unit-based
	UnitPattern   string   // "6 pcs", "one bunch"; empty for weight-based
}

type VendorMeta struct {
	Phone       string
	Language    Language
	ContactName string
}

type SaladIngredient struct {
	Name       string
	QtyPerUnit float64 // grams per ordered salad
	VendorKey  string
}

// VendorTotal accumulates one (vendor, canonical product) pair.
type VendorTotal struct {
	Units        float64
	PerUnitGrams *float64
	UnitPattern  string
}

type MatchMethod string

const (
	MatchExact    MatchMethod = "exact"
	MatchBase     MatchMethod = "base"
	MatchCoreWord MatchMethod = "core_word"
	MatchFuzzy    MatchMethod = "fuzzy"
)

type MatchResult struct {
	Entry  ReferenceEntry
	Method MatchMethod
	Key    string  // index key that produced the hit
	Score  float64 // composite score, fuzzy only
}

type UnmatchedRecord struct {
	Name     string
	Quantity float64
	Source   string
	Reason   string
}

// SkippedLine is an order row with a product name that was dropped before matching.
type SkippedLine struct {
	Row         int    `json:"row"` // 1-based sheet row
	Name        string `json:"name"`
	RawQuantity string `json:"raw_quantity"`
	Reason      string `json:"reason"`
}

type OrderLine struct {
	Serial         int     `json:"serial"`
	DisplayName    string  `json:"display_name"`
	Vendor         string  `json:"vendor"`
	Units          float64 `json:"units"`
	SUnits         string  `json:"s_units"`
	BaseWeight     string  `json:"base_weight"`
	BufferedWeight string  `json:"buffered_weight"`
}

type Message struct {
	Serial     int      `json:"serial"`
	VendorName string   `json:"vendor_name"`
	Phone      string   `json:"phone"`
	Language   Language `json:"language"`
	Text       string   `json:"text"`
}

type UnmatchedItem struct {
	Serial   int     `json:"serial"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Source   string  `json:"source"`
	Note     string  `json:"note"`
}

type Result struct {
	RunID         string          `json:"run_id"`
	GeneratedAt   time.Time       `json:"generated_at"`
	BufferPercent float64         `json:"buffer_percent"`
	OrderLines    []OrderLine     `json:"order_lines"`
	Messages      []Message       `json:"messages"`
	Unmatched     []UnmatchedItem `json:"unmatched"`
	Skipped       []SkippedLine   `json:"skipped"`
}
