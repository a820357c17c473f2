package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/aegntic/growth-service/internal/delivery/http/dto"
	"github.com/aegntic/growth-service/internal/domain"
	"github.com/aegntic/growth-service/internal/usecase"
	commissiondto "github.com/aegntic/growth-service/internal/usecase/dto/commission"
	referraldto "github.com/aegntic/growth-service/internal/usecase/dto/referral"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type CommissionHandler struct {
	commissionUC usecase.CommissionUsecase
	validate     *validator.Validate
}

func NewCommissionHandler(commissionUC usecase.CommissionUsecase, validate *validator.Validate) *CommissionHandler {
	return &CommissionHandler{commissionUC: commissionUC, validate: validate}
}

func (h *CommissionHandler) CreateRelationship(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRelationshipRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	startedAt, err := parseTime(req.StartedAt)
	if err != nil {
		writeError(w, http.StatusBadRequest, "started_at must be RFC3339")
		return
	}

	relationship, err := h.commissionUC.CreateRelationship(&referraldto.CreateRelationshipInput{
		ReferrerID: req.ReferrerID,
		RefereeID:  req.RefereeID,
		StartedAt:  startedAt,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.RelationshipResponse{
		ID:         relationship.ID,
		ReferrerID: relationship.ReferrerID,
		RefereeID:  relationship.RefereeID,
		Status:     string(relationship.Status),
		StartedAt:  relationship.StartedAt,
	})
}

func (h *CommissionHandler) ConvertRelationship(w http.ResponseWriter, r *http.Request) {
	relationID := chi.URLParam(r, "relationID")
	if err := h.commissionUC.ConvertRelationship(relationID); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PostCommission is the billing hook: one call per referee billing period.
// A repeated call for the same period returns 409 and changes nothing.
func (h *CommissionHandler) PostCommission(w http.ResponseWriter, r *http.Request) {
	var req dto.PostCommissionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	periodStart, err := time.Parse(time.RFC3339, req.PeriodStart)
	if err != nil {
		writeError(w, http.StatusBadRequest, "period_start must be RFC3339")
		return
	}
	periodEnd, err := time.Parse(time.RFC3339, req.PeriodEnd)
	if err != nil {
		writeError(w, http.StatusBadRequest, "period_end must be RFC3339")
		return
	}
	if !periodEnd.After(periodStart) {
		writeError(w, http.StatusBadRequest, "period_end must be after period_start")
		return
	}

	record, err := h.commissionUC.PostCommission(r.Context(), &commissiondto.PostCommissionInput{
		RelationshipID:   req.RelationshipID,
		ReferrerID:       req.ReferrerID,
		RefereeID:        req.RefereeID,
		PeriodStart:      periodStart,
		PeriodEnd:        periodEnd,
		Amount:           req.Amount,
		PerformanceBonus: req.PerformanceBonus,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateCommissionPeriod) {
			writeError(w, http.StatusConflict, "commission already posted for this period")
			return
		}
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCommissionResponse(record))
}

func (h *CommissionHandler) GetCommissionHistory(w http.ResponseWriter, r *http.Request) {
	referrerID := chi.URLParam(r, "referrerID")

	records, err := h.commissionUC.GetCommissionHistory(r.Context(), referrerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	responses := make([]dto.CommissionRecordResponse, len(records))
	for i, record := range records {
		responses[i] = toCommissionResponse(record)
	}
	writeJSON(w, http.StatusOK, responses)
}

func (h *CommissionHandler) GetUnpaidRecords(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}

	records, err := h.commissionUC.GetUnpaidRecords(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	responses := make([]dto.CommissionRecordResponse, len(records))
	for i, record := range records {
		responses[i] = toCommissionResponse(record)
	}
	writeJSON(w, http.StatusOK, responses)
}

func (h *CommissionHandler) MarkRecordsPaid(w http.ResponseWriter, r *http.Request) {
	var req dto.MarkPaidRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	input := &commissiondto.MarkPaidInput{RecordIDs: req.RecordIDs}
	if req.PaidAt != nil {
		input.PaidAt = *req.PaidAt
	}

	if err := h.commissionUC.MarkRecordsPaid(r.Context(), input); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toCommissionResponse(record *domain.CommissionRecord) dto.CommissionRecordResponse {
	return dto.CommissionRecordResponse{
		ID:          record.ID,
		ReferrerID:  record.ReferrerID,
		RefereeID:   record.RefereeID,
		PeriodStart: record.PeriodStart,
		PeriodEnd:   record.PeriodEnd,
		BaseAmount:  record.BaseAmount,
		AppliedRate: record.AppliedRate,
		BonusRate:   record.BonusRate,
		RateTier:    string(record.RateTier),
		AgeMonths:   record.AgeMonths,
		Amount:      record.Amount,
		PaidAt:      record.PaidAt,
		CreatedAt:   record.CreatedAt,
	}
}
