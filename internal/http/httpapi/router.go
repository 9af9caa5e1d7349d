package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/flashfund/server/internal/http/handlers"
	"github.com/flashfund/server/internal/infra"
	"github.com/flashfund/server/internal/middleware"
)

func NewRouter(app *handlers.App, cfg *infra.Config, log infra.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(log),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.RateLimit(cfg.RateLimitPerMin, time.Minute),
	)

	auth := middleware.Auth(cfg.JWTSecret)

	// Health
	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/campaigns", func(r chi.Router) {
		r.Get("/", app.CampaignsList)
		r.Get("/{id}", app.CampaignsGet)
		r.Get("/{id}/donations/{account}", app.DonationsGet)
		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Post("/", app.CampaignsCreate)
			r.Post("/{id}/donations", app.DonationsCreate)
			r.Post("/{id}/cancel", app.CampaignsCancel)
			r.Post("/{id}/claim", app.CampaignsClaim)
			r.Post("/{id}/refund", app.RefundsCreate)
		})
	})

	r.Get("/v1/ledger", app.LedgerState)

	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Post("/v1/fees/withdraw", app.FeesWithdraw)
		r.Put("/v1/fees/percent", app.FeesUpdate)
		r.Post("/v1/pause", app.Pause)
		r.Post("/v1/unpause", app.Unpause)
		r.Post("/v1/owner/transfer", app.OwnerTransfer)
	})

	// The ledger never accepts ambient funds: any raw value push is
	// rejected, and unknown operations fail outright.
	r.Post("/v1/transfer", app.DirectTransfer)
	r.NotFound(app.InvalidCall)
	r.MethodNotAllowed(app.InvalidCall)

	return r
}
