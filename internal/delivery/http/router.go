package http

import (
	"net/http"

	"github.com/aegntic/growth-service/internal/delivery/http/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Event      *handlers.EventHandler
	Site       *handlers.SiteHandler
	Showcase   *handlers.ShowcaseHandler
	Commission *handlers.CommissionHandler
}

func NewRouter(h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/events", h.Event.SubmitEvent)

		r.Route("/sites", func(r chi.Router) {
			r.Post("/", h.Site.RegisterSite)
			r.Get("/{siteID}/metrics", h.Site.GetSiteMetrics)
			r.Post("/{siteID}/recompute", h.Site.RecomputeScore)
			r.Get("/{siteID}/rejected-events", h.Event.GetRejectedEvents)
			r.Put("/{siteID}/showcase/pin", h.Site.SetShowcasePinned)
			r.Put("/{siteID}/showcase/opt-out", h.Site.SetShowcaseOptOut)
		})

		r.Route("/showcase", func(r chi.Router) {
			r.Get("/", h.Showcase.GetShowcase)
			r.Post("/refresh", h.Showcase.RefreshShowcase)
		})

		r.Route("/referrals", func(r chi.Router) {
			r.Post("/", h.Commission.CreateRelationship)
			r.Post("/{relationID}/convert", h.Commission.ConvertRelationship)
		})

		r.Route("/commissions", func(r chi.Router) {
			r.Post("/", h.Commission.PostCommission)
			r.Get("/unpaid", h.Commission.GetUnpaidRecords)
			r.Post("/mark-paid", h.Commission.MarkRecordsPaid)
			r.Get("/referrer/{referrerID}", h.Commission.GetCommissionHistory)
		})
	})

	return r
}
