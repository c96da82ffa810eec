package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"smartride-backend/internal/domain"
	"smartride-backend/internal/security"
	"smartride-backend/internal/service"
)

// RentalHandler serves booking, availability and return endpoints
type RentalHandler struct {
	booking   service.BookingService
	lifecycle service.LifecycleService
}

func NewRentalHandler(booking service.BookingService, lifecycle service.LifecycleService) *RentalHandler {
	return &RentalHandler{booking: booking, lifecycle: lifecycle}
}

type createRentalRequest struct {
	VehicleID int64 `json:"vehicle_id" validate:"required,gt=0"`
	// CustomerID is required for admin bookings and ignored for
	// customer self-service, where the token identifies the customer.
	CustomerID int64  `json:"customer_id" validate:"omitempty,gt=0"`
	StartDate  string `json:"start_date" validate:"required"`
	DueDate    string `json:"due_date" validate:"required"`
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	var req createRentalRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		writeError(w, err)
		return
	}
	due, err := parseDate("due_date", req.DueDate)
	if err != nil {
		writeError(w, err)
		return
	}

	var customerID, staffID int64
	if claims.Role == security.RoleAdmin {
		if req.CustomerID == 0 {
			writeError(w, domain.InvalidRangef("customer_id is required"))
			return
		}
		customerID = req.CustomerID
		staffID = claims.SubjectID
	} else {
		customerID = claims.SubjectID
	}

	rental, err := h.booking.CreateRental(r.Context(), req.VehicleID, customerID, staffID, start, due)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

func (h *RentalHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	start, err := parseDate("start", r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, err)
		return
	}
	due, err := parseDate("due", r.URL.Query().Get("due"))
	if err != nil {
		writeError(w, err)
		return
	}

	available, err := h.booking.CheckAvailability(r.Context(), vehicleID, start, due)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"available": available})
}

func (h *RentalHandler) MyRentals(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	status := domain.RentalStatus(r.URL.Query().Get("status"))
	switch status {
	case "", domain.RentalStatusActive, domain.RentalStatusCompleted:
	default:
		writeError(w, domain.InvalidRangef("invalid status %q", status))
		return
	}

	rentals, err := h.lifecycle.CustomerRentals(r.Context(), claims.SubjectID, status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

type returnRequest struct {
	// ReturnDate defaults to today when omitted.
	ReturnDate string `json:"return_date"`
}

func (h *RentalHandler) Return(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	// The body is optional; an empty body means "returned today".
	var req returnRequest
	if decodeErr := json.NewDecoder(r.Body).Decode(&req); decodeErr != nil && !errors.Is(decodeErr, io.EOF) {
		writeError(w, domain.InvalidRangef("malformed request body: %v", decodeErr))
		return
	}

	returnDate := today()
	if req.ReturnDate != "" {
		returnDate, err = parseDate("return_date", req.ReturnDate)
		if err != nil {
			writeError(w, err)
			return
		}
	}

	rental, err := h.lifecycle.ProcessReturn(r.Context(), rentalID, returnDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}
