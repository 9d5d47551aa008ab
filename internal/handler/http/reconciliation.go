package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/fieldsquad/fieldops-backend-go/internal/domain/reconciliation"
	"github.com/fieldsquad/fieldops-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReconciliationHandler interface {
	Trigger(w http.ResponseWriter, r *http.Request)
	GetRun(w http.ResponseWriter, r *http.Request)
}

type reconciliationHandlerImpl struct {
	reconciliationService reconciliation.Service
}

func NewReconciliationHandler(reconciliationService reconciliation.Service) ReconciliationHandler {
	return &reconciliationHandlerImpl{
		reconciliationService: reconciliationService,
	}
}

// Trigger implements ReconciliationHandler. The body is optional; an empty
// body triggers a run for today (UTC).
func (h *reconciliationHandlerImpl) Trigger(w http.ResponseWriter, r *http.Request) {
	var req reconciliation.TriggerRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.reconciliationService.TriggerRun(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Reconciliation run completed", result)
}

// GetRun implements ReconciliationHandler.
func (h *reconciliationHandlerImpl) GetRun(w http.ResponseWriter, r *http.Request) {
	cohortDate := chi.URLParam(r, "cohortDate")

	result, err := h.reconciliationService.GetRun(r.Context(), cohortDate)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
