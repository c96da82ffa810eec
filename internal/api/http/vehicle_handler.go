package http

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"smartride-backend/internal/domain"
	"smartride-backend/internal/repository"
	"smartride-backend/internal/service"
)

// VehicleHandler serves the fleet catalog and admin fleet management
type VehicleHandler struct {
	vehicles service.VehicleService
}

func NewVehicleHandler(vehicles service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.VehicleFilter{
		TypeName: q.Get("type"),
		Status:   domain.VehicleStatus(q.Get("status")),
		Search:   q.Get("search"),
	}
	if raw := q.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, domain.InvalidRangef("invalid year %q", raw))
			return
		}
		filter.Year = year
	}

	vehicles, err := h.vehicles.ListVehicles(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	vehicle, history, err := h.vehicles.GetVehicle(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"vehicle": vehicle,
		"rentals": history,
	})
}

func (h *VehicleHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.vehicles.ListVehicleTypes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types)
}

type vehicleRequest struct {
	TypeID          int64  `json:"type_id" validate:"required,gt=0"`
	Make            string `json:"make" validate:"required,max=50"`
	Model           string `json:"model" validate:"required,max=50"`
	Year            int    `json:"year" validate:"required,gte=1950,lte=2100"`
	PlateNo         string `json:"plate_no" validate:"required,max=20"`
	RatePerDayCents int64  `json:"rate_per_day_cents" validate:"required,gt=0"`
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req vehicleRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	vehicle := &domain.Vehicle{
		TypeID:          req.TypeID,
		Make:            req.Make,
		Model:           req.Model,
		Year:            req.Year,
		PlateNo:         req.PlateNo,
		RatePerDayCents: req.RatePerDayCents,
	}
	if err := h.vehicles.AddVehicle(r.Context(), vehicle); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req vehicleRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	vehicle := &domain.Vehicle{
		ID:              id,
		TypeID:          req.TypeID,
		Make:            req.Make,
		Model:           req.Model,
		Year:            req.Year,
		PlateNo:         req.PlateNo,
		RatePerDayCents: req.RatePerDayCents,
	}
	if err := h.vehicles.UpdateVehicle(r.Context(), vehicle); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.vehicles.DeleteVehicle(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *VehicleHandler) ListMaintenance(w http.ResponseWriter, r *http.Request) {
	records, err := h.vehicles.ListMaintenance(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// ExportCSV streams the current fleet as a CSV download.
func (h *VehicleHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicles.ListVehicles(r.Context(), repository.VehicleFilter{})
	if err != nil {
		writeError(w, err)
		return
	}

	filename := fmt.Sprintf("fleet-%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "type", "make", "model", "year", "plate_no", "rate_per_day", "status"})
	for _, v := range vehicles {
		_ = cw.Write([]string{
			strconv.FormatInt(v.ID, 10),
			v.TypeName,
			v.Make,
			v.Model,
			strconv.Itoa(v.Year),
			v.PlateNo,
			fmt.Sprintf("%.2f", float64(v.RatePerDayCents)/100),
			string(v.Status),
		})
	}
	cw.Flush()
}
