package handlers

import (
	"net/http"

	"github.com/aegntic/growth-service/internal/delivery/http/dto"
	"github.com/aegntic/growth-service/internal/usecase"
	sitedto "github.com/aegntic/growth-service/internal/usecase/dto/site"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type SiteHandler struct {
	siteUC      usecase.SiteUsecase
	scoreUC     usecase.ScoreUsecase
	promotionUC usecase.PromotionUsecase
	validate    *validator.Validate
}

func NewSiteHandler(
	siteUC usecase.SiteUsecase,
	scoreUC usecase.ScoreUsecase,
	promotionUC usecase.PromotionUsecase,
	validate *validator.Validate) *SiteHandler {

	return &SiteHandler{
		siteUC:      siteUC,
		scoreUC:     scoreUC,
		promotionUC: promotionUC,
		validate:    validate,
	}
}

// RegisterSite is the hook the site builder calls on publish. Idempotent.
func (h *SiteHandler) RegisterSite(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterSiteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	createdAt, err := parseTime(req.CreatedAt)
	if err != nil {
		writeError(w, http.StatusBadRequest, "created_at must be RFC3339")
		return
	}

	site, err := h.siteUC.RegisterSite(&sitedto.RegisterSiteInput{
		SiteID:    req.SiteID,
		OwnerID:   req.OwnerID,
		CreatedAt: createdAt,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.SiteResponse{
		SiteID:        site.ID,
		OwnerID:       site.OwnerID,
		State:         string(site.State),
		ViralScore:    site.ViralScore,
		ShareCount:    site.ShareCount,
		FeaturedUntil: site.FeaturedUntil,
		CreatedAt:     site.CreatedAt,
	})
}

func (h *SiteHandler) GetSiteMetrics(w http.ResponseWriter, r *http.Request) {
	siteID := chi.URLParam(r, "siteID")

	metrics, err := h.siteUC.GetSiteMetrics(siteID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SiteMetricsResponse{
		SiteID:        metrics.SiteID,
		Score:         metrics.Score,
		ShareCount:    metrics.ShareCount,
		Featured:      metrics.Featured,
		FeaturedUntil: metrics.FeaturedUntil,
	})
}

// RecomputeScore forces a recompute outside the usual triggers. Mostly an
// operational escape hatch.
func (h *SiteHandler) RecomputeScore(w http.ResponseWriter, r *http.Request) {
	siteID := chi.URLParam(r, "siteID")

	score, err := h.scoreUC.Recompute(r.Context(), siteID, "manual")
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"site_id": siteID, "score": score})
}

func (h *SiteHandler) SetShowcasePinned(w http.ResponseWriter, r *http.Request) {
	h.setFlag(w, r, h.promotionUC.SetShowcasePinned)
}

func (h *SiteHandler) SetShowcaseOptOut(w http.ResponseWriter, r *http.Request) {
	h.setFlag(w, r, h.promotionUC.SetShowcaseOptOut)
}

func (h *SiteHandler) setFlag(w http.ResponseWriter, r *http.Request, update func(string, bool) error) {
	siteID := chi.URLParam(r, "siteID")

	var req dto.ShowcaseFlagRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if err := update(siteID, req.Value); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
