package http

import (
	"net/http"

	"smartride-backend/internal/domain"
	"smartride-backend/internal/service"
)

// AuthHandler serves registration, login and profile endpoints
type AuthHandler struct {
	auth service.AuthService
}

func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type registerRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,min=7,max=20"`
	LicenseNo string `json:"license_no" validate:"required,min=4,max=30"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type adminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type loginResponse struct {
	tokenResponse
	Customer *domain.Customer `json:"customer,omitempty"`
	Staff    *domain.Staff    `json:"staff,omitempty"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	customer, err := h.auth.RegisterCustomer(r.Context(), req.Name, req.Email, req.Phone, req.LicenseNo, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	customer, access, refresh, err := h.auth.LoginCustomer(r.Context(), req.Email, req.Password)
	if err != nil {
		// Credential failures always read the same to the caller.
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid email or password"})
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{
		tokenResponse: tokenResponse{AccessToken: access, RefreshToken: refresh},
		Customer:      customer,
	})
}

func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	staff, access, refresh, err := h.auth.LoginAdmin(r.Context(), req.Username, req.Password)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid username or password"})
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{
		tokenResponse: tokenResponse{AccessToken: access, RefreshToken: refresh},
		Staff:         staff,
	})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	access, refresh, err := h.auth.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid or expired refresh token"})
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: access, RefreshToken: refresh})
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	customer, err := h.auth.GetCustomer(r.Context(), claims.SubjectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

// ListCustomers serves the admin customer listing; the search query
// matches name, email or license number.
func (h *AuthHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.auth.SearchCustomers(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

// CreateCustomer lets an admin register a walk-in customer. It runs the
// same registration path as self-service sign-up.
func (h *AuthHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	customer, err := h.auth.RegisterCustomer(r.Context(), req.Name, req.Email, req.Phone, req.LicenseNo, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

type updateProfileRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,min=7,max=20"`
	LicenseNo string `json:"license_no" validate:"required,min=4,max=30"`
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	var req updateProfileRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	customer, err := h.auth.UpdateProfile(r.Context(), claims.SubjectID, req.Name, req.Email, req.Phone, req.LicenseNo)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}
