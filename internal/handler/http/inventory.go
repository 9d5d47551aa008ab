package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/fieldsquad/fieldops-backend-go/internal/domain/inventory"
	"github.com/fieldsquad/fieldops-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type InventoryHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type inventoryHandlerImpl struct {
	inventoryService inventory.Service
}

func NewInventoryHandler(inventoryService inventory.Service) InventoryHandler {
	return &inventoryHandlerImpl{
		inventoryService: inventoryService,
	}
}

// Create implements InventoryHandler.
func (h *inventoryHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req inventory.CreateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.inventoryService.AssignInventory(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Assignment created", result)
}

// Get implements InventoryHandler.
func (h *inventoryHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.inventoryService.GetAssignment(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements InventoryHandler.
func (h *inventoryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := inventory.AssignmentFilter{
		Page:  1,
		Limit: 20,
	}

	if v := r.URL.Query().Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := r.URL.Query().Get("product_id"); v != "" {
		filter.ProductID = &v
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status := inventory.AssignmentStatus(v)
		filter.Status = &status
	}
	if v := r.URL.Query().Get("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil && page > 0 {
			filter.Page = page
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 && limit <= 100 {
			filter.Limit = limit
		}
	}

	result, err := h.inventoryService.ListAssignments(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := int((result.TotalCount + int64(filter.Limit) - 1) / int64(filter.Limit))
	response.SuccessWithMeta(w, result.Data, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages,
	})
}
