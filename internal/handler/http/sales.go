package http

import (
	"encoding/json"
	"net/http"

	"github.com/fieldsquad/fieldops-backend-go/internal/domain/sales"
	"github.com/fieldsquad/fieldops-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SalesHandler interface {
	Record(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
}

type salesHandlerImpl struct {
	salesService sales.Service
}

func NewSalesHandler(salesService sales.Service) SalesHandler {
	return &salesHandlerImpl{
		salesService: salesService,
	}
}

// Record implements SalesHandler.
func (h *salesHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	var req sales.RecordSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.salesService.RecordSale(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Sale recorded", result)
}

// ListByEmployee implements SalesHandler.
func (h *salesHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	result, err := h.salesService.ListSales(r.Context(), employeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
