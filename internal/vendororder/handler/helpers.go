package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"vendor-orders/internal/config"
	"vendor-orders/internal/fileio"
	vendorSvc "vendor-orders/internal/vendororder/service"
)

func readTable(r *http.Request, field, sheet string) ([][]string, error) {
	f, hdr, err := r.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("missing %s: %w", field, err)
	}
	defer f.Close()

	// sheet names only apply to workbooks; a csv upload is its own table
	rows, err := fileio.ReadAnyRows(f, hdr.Filename, sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", field, err)
	}
	return rows, nil
}

// optionsFrom builds run options from config; a non-empty form value overrides the buffer.
func optionsFrom(cfg config.Config, bufferOverride string) vendorSvc.Options {
	opt := vendorSvc.DefaultOptions()
	opt.BufferPercent = vendorSvc.ParseBufferPercent(cfg.BufferPercent)
	if strings.TrimSpace(bufferOverride) != "" {
		opt.BufferPercent = vendorSvc.ParseBufferPercent(bufferOverride)
	}
	if cfg.MinFuzzyScore > 0 {
		opt.MinFuzzyScore = cfg.MinFuzzyScore
	}
	if len(cfg.SkipKeywords) > 0 {
		opt.SkipKeywords = cfg.SkipKeywords
	}
	if cfg.Signature != "" {
		opt.Signature = cfg.Signature
	}
	return opt
}

func formatOf(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return "json"
	case "xlsx", "excel":
		return "xlsx"
	default:
		return ""
	}
}

// requestLogger prefers the request-scoped logger set by the logging middleware.
func requestLogger(r *http.Request, fallback zerolog.Logger) zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l != nil && l.GetLevel() != zerolog.Disabled {
		return *l
	}
	return fallback
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
