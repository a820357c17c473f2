package handlers

import (
	"net/http"
	"strconv"

	"github.com/aegntic/growth-service/internal/delivery/http/dto"
	"github.com/aegntic/growth-service/internal/domain"
	"github.com/aegntic/growth-service/internal/usecase"
	eventsdto "github.com/aegntic/growth-service/internal/usecase/dto/events"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type EventHandler struct {
	admissionUC usecase.AdmissionUsecase
	validate    *validator.Validate
}

func NewEventHandler(admissionUC usecase.AdmissionUsecase, validate *validator.Validate) *EventHandler {
	return &EventHandler{admissionUC: admissionUC, validate: validate}
}

func (h *EventHandler) SubmitEvent(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitEventRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	occurredAt, err := parseTime(req.OccurredAt)
	if err != nil {
		writeError(w, http.StatusBadRequest, "occurred_at must be RFC3339")
		return
	}

	output, err := h.admissionUC.SubmitEvent(r.Context(), &eventsdto.SubmitEventInput{
		SiteID:       req.SiteID,
		ActorID:      req.ActorID,
		ActorAddress: req.ActorAddress,
		Kind:         domain.EventKind(req.Kind),
		Platform:     domain.Platform(req.Platform),
		BoostWeight:  req.BoostWeight,
		OccurredAt:   occurredAt,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	status := http.StatusCreated
	if !output.Admitted {
		status = http.StatusOK
	}
	writeJSON(w, status, dto.AdmissionResponse{
		EventID:  output.EventID,
		Admitted: output.Admitted,
		Reason:   output.Reason,
		Score:    output.Score,
	})
}

func (h *EventHandler) GetRejectedEvents(w http.ResponseWriter, r *http.Request) {
	siteID := chi.URLParam(r, "siteID")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}

	rejected, err := h.admissionUC.GetRejectedEvents(r.Context(), siteID, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	responses := make([]dto.RejectedEventResponse, len(rejected))
	for i, ev := range rejected {
		responses[i] = dto.RejectedEventResponse{
			ID:         ev.ID,
			SiteID:     ev.SiteID,
			ActorID:    ev.ActorID,
			Kind:       string(ev.Kind),
			Platform:   string(ev.Platform),
			Reason:     ev.Reason,
			OccurredAt: ev.OccurredAt,
			RejectedAt: ev.RejectedAt,
		}
	}
	writeJSON(w, http.StatusOK, responses)
}
