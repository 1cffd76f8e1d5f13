package service

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"vendor-orders/internal/vendororder/model"
)

// DefaultBufferPercent is added on top of ordered weights when no buffer is configured.
const DefaultBufferPercent = 12.0

// Orders List columns (0-based).
const (
	DefaultProductCol = 2
	DefaultQtyCol     = 3
)

// DefaultSkipKeywords mark footer rows of the order sheet.
var DefaultSkipKeywords = []string{"order value", "total value", "total"}

type Options struct {
	BufferPercent float64
	MinFuzzyScore float64
	SkipKeywords  []string
	ProductCol    int
	QtyCol        int
	Signature     string // last line of every WhatsApp message
}

func DefaultOptions() Options {
	return Options{
		BufferPercent: DefaultBufferPercent,
		MinFuzzyScore: DefaultMinFuzzyScore,
		SkipKeywords:  DefaultSkipKeywords,
		ProductCol:    DefaultProductCol,
		QtyCol:        DefaultQtyCol,
		Signature:     "Arkoun Farms",
	}
}

// ParseBufferPercent reads the buffer cell. "12", "12%" and a percent-formatted 0.12 all
// mean 12; empty or garbage falls back to the default.
func ParseBufferPercent(raw string) float64 {
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	if s == "" {
		return DefaultBufferPercent
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return DefaultBufferPercent
	}
	if v > 0 && v < 1 {
		v = decimal.NewFromFloat(v).Mul(hundred).InexactFloat64()
	}
	return v
}

// Tables are the three input sheets as positional rows, header row included.
type Tables struct {
	Orders  [][]string
	Mapping [][]string
	Salads  [][]string
}

// Run builds the reference index and salad table, aggregates the orders and renders the
// three output record sets. Missing tables or an empty order sheet abort the run.
func Run(t Tables, opt Options, logger zerolog.Logger) (model.Result, error) {
	switch {
	case t.Mapping == nil:
		return model.Result{}, eris.Wrap(model.ErrMissingTable, "vendor product mapping")
	case t.Salads == nil:
		return model.Result{}, eris.Wrap(model.ErrMissingTable, "salad breaker")
	case t.Orders == nil:
		return model.Result{}, eris.Wrap(model.ErrMissingTable, "orders list")
	case len(t.Orders) <= 1:
		return model.Result{}, eris.Wrapf(model.ErrNoOrderRows, "orders list has %d rows", len(t.Orders))
	}

	idx := BuildReferenceIndex(t.Mapping)
	salads := BuildSaladTable(t.Salads)
	logger.Debug().
		Int("reference_names", idx.Len()).
		Int("salads", salads.Len()).
		Float64("buffer_percent", opt.BufferPercent).
		Msg("reference tables built")

	eng := NewEngine(idx, salads, opt, logger)
	agg := eng.Aggregate(t.Orders)
	skipped := agg.Skipped
	if skipped == nil {
		skipped = []model.SkippedLine{}
	}

	return model.Result{
		RunID:         uuid.NewString(),
		GeneratedAt:   time.Now(),
		BufferPercent: opt.BufferPercent,
		OrderLines:    eng.OrderLines(agg),
		Messages:      eng.Messages(agg),
		Unmatched:     unmatchedItems(agg.Unmatched),
		Skipped:       skipped,
	}, nil
}
