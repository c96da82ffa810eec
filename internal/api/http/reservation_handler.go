package http

import (
	"net/http"

	"smartride-backend/internal/domain"
	"smartride-backend/internal/security"
	"smartride-backend/internal/service"
)

// ReservationHandler serves type-level reservation endpoints
type ReservationHandler struct {
	lifecycle service.LifecycleService
}

func NewReservationHandler(lifecycle service.LifecycleService) *ReservationHandler {
	return &ReservationHandler{lifecycle: lifecycle}
}

type createReservationRequest struct {
	VehicleTypeID int64 `json:"vehicle_type_id" validate:"required,gt=0"`
	// CustomerID is required for admin requests, ignored otherwise.
	CustomerID int64  `json:"customer_id" validate:"omitempty,gt=0"`
	StartDate  string `json:"start_date" validate:"required"`
	EndDate    string `json:"end_date" validate:"required"`
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	var req createReservationRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		writeError(w, err)
		return
	}

	customerID := claims.SubjectID
	if claims.Role == security.RoleAdmin {
		if req.CustomerID == 0 {
			writeError(w, domain.InvalidRangef("customer_id is required"))
			return
		}
		customerID = req.CustomerID
	}

	res, err := h.lifecycle.CreateReservation(r.Context(), customerID, req.VehicleTypeID, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	// Admins may cancel any reservation; customers only their own.
	customerID := claims.SubjectID
	if claims.Role == security.RoleAdmin {
		customerID = 0
	}

	if err := h.lifecycle.CancelReservation(r.Context(), customerID, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *ReservationHandler) Fulfill(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	rental, err := h.lifecycle.FulfillReservation(r.Context(), id, claims.SubjectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.lifecycle.ListReservations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservations)
}

func (h *ReservationHandler) MyReservations(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	reservations, err := h.lifecycle.CustomerReservations(r.Context(), claims.SubjectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservations)
}
