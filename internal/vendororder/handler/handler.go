package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"vendor-orders/internal/config"
	"vendor-orders/internal/fileio"
	"vendor-orders/internal/vendororder/model"
	vendorSvc "vendor-orders/internal/vendororder/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// VendorOrders returns the POST /vendor-orders handler. The form carries the three input
// tables as files (orders, mapping, salads) plus optional buffer_percent and format.
func VendorOrders(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := requestLogger(r, logger)
		defer r.Body.Close()

		if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
			writeError(w, http.StatusBadRequest, "bad multipart form: "+err.Error())
			return
		}

		format := formatOf(r.FormValue("format"))
		if format == "" {
			writeError(w, http.StatusBadRequest, "format must be json or xlsx")
			return
		}

		var tables vendorSvc.Tables
		for _, in := range []struct {
			field, sheet string
			dst          *[][]string
		}{
			{"orders", cfg.OrdersSheet, &tables.Orders},
			{"mapping", cfg.MappingSheet, &tables.Mapping},
			{"salads", cfg.SaladSheet, &tables.Salads},
		} {
			rows, err := readTable(r, in.field, in.sheet)
			if err != nil {
				log.Warn().Err(err).Str("field", in.field).Msg("input table rejected")
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			*in.dst = rows
		}

		opt := optionsFrom(cfg, r.FormValue("buffer_percent"))
		res, err := vendorSvc.Run(tables, opt, log)
		if err != nil {
			status := statusFor(err)
			if status >= http.StatusInternalServerError {
				log.Error().Err(err).Msg("vendor order run failed")
			} else {
				log.Warn().Err(err).Msg("vendor order run rejected")
			}
			writeError(w, status, err.Error())
			return
		}

		log.Info().
			Str("run_id", res.RunID).
			Int("order_rows", len(tables.Orders)-1).
			Int("vendors", len(res.Messages)).
			Int("order_lines", len(res.OrderLines)).
			Int("unmatched", len(res.Unmatched)).
			Int("skipped", len(res.Skipped)).
			Float64("buffer_percent", res.BufferPercent).
			Dur("elapsed", time.Since(start)).
			Msg("vendor orders generated")

		if format == "xlsx" {
			writeWorkbook(w, res, log)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			log.Error().Err(err).Msg("write json")
		}
	}
}

func writeWorkbook(w http.ResponseWriter, res model.Result, log zerolog.Logger) {
	var buf bytes.Buffer
	if err := fileio.WriteWorkbook(&buf, res); err != nil {
		log.Error().Err(err).Msg("render workbook")
		writeError(w, http.StatusInternalServerError, "failed to render workbook")
		return
	}
	name := fmt.Sprintf("vendor-orders-%s.xlsx", res.GeneratedAt.Format("20060102-150405"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	w.Header().Set("Cache-Control", "no-store")
	if _, err := buf.WriteTo(w); err != nil {
		log.Error().Err(err).Msg("write workbook")
	}
}

// statusFor maps run errors: an empty order sheet is the caller's data problem,
// everything else is ours.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrNoOrderRows):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrMissingTable):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
