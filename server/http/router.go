package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"vendor-orders/internal/config"
	"vendor-orders/internal/middleware"
	vendorHnd "vendor-orders/internal/vendororder/handler"
	"vendor-orders/server/http/handlers"
)

// rate limiter burst; uploads come in bursts of one per click
const rateBurst = 5

func NewRouter(cfg config.Config, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// order matters: recover -> requestID -> logging -> cors -> limit -> rate
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) << 20))

	r.Get("/health", handlers.Health)

	r.With(middleware.RateLimit(cfg.RateLimitRPS, rateBurst)).
		Post("/vendor-orders", vendorHnd.VendorOrders(cfg, logger))

	return r
}
