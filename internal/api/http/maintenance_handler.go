package http

import (
	"net/http"

	"smartride-backend/internal/service"
)

// MaintenanceHandler serves admin maintenance endpoints
type MaintenanceHandler struct {
	lifecycle service.LifecycleService
}

func NewMaintenanceHandler(lifecycle service.LifecycleService) *MaintenanceHandler {
	return &MaintenanceHandler{lifecycle: lifecycle}
}

type startMaintenanceRequest struct {
	VehicleID   int64  `json:"vehicle_id" validate:"required,gt=0"`
	Description string `json:"description" validate:"required,max=500"`
	CostCents   int64  `json:"cost_cents" validate:"gte=0"`
}

func (h *MaintenanceHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startMaintenanceRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	record, err := h.lifecycle.StartMaintenance(r.Context(), req.VehicleID, req.Description, req.CostCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (h *MaintenanceHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	record, err := h.lifecycle.CompleteMaintenance(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}
