package handlers

import (
	"net/http"

	"github.com/aegntic/growth-service/internal/delivery/http/dto"
	"github.com/aegntic/growth-service/internal/usecase"
)

type ShowcaseHandler struct {
	promotionUC usecase.PromotionUsecase
}

func NewShowcaseHandler(promotionUC usecase.PromotionUsecase) *ShowcaseHandler {
	return &ShowcaseHandler{promotionUC: promotionUC}
}

func (h *ShowcaseHandler) GetShowcase(w http.ResponseWriter, r *http.Request) {
	entries, err := h.promotionUC.GetShowcase(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	responses := make([]dto.ShowcaseEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = dto.ShowcaseEntryResponse{
			SiteID:      entry.SiteID,
			Score:       entry.Score,
			Rank:        entry.Rank,
			Pinned:      entry.Pinned,
			RefreshedAt: entry.RefreshedAt,
		}
	}
	writeJSON(w, http.StatusOK, responses)
}

// RefreshShowcase rebuilds the snapshot on demand, ahead of the schedule.
func (h *ShowcaseHandler) RefreshShowcase(w http.ResponseWriter, r *http.Request) {
	entries, err := h.promotionUC.RefreshShowcase(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": len(entries)})
}
