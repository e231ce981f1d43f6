package referral

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MenteSana-Clinic/intake-service/internal/auth"
	"github.com/MenteSana-Clinic/intake-service/internal/pagination"
	"github.com/gorilla/mux"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

// CreateReferral handles POST /referrals
func (h *Handler) CreateReferral(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.FromContext(r.Context()); !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req CreateReferralRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	referral, err := h.service.SubmitReferral(r.Context(), req)
	if err != nil {
		if IsValidationError(err) {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "creation_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(ReferralSuccessResponse{
		Success:  true,
		Message:  "Referral created successfully",
		Referral: referral,
	})
}

// ListReferrals handles GET /referrals
func (h *Handler) ListReferrals(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.FromContext(r.Context()); !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	params := pagination.ParseParams(r)

	response, err := h.service.ListReferrals(r.Context(), params)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// SearchByNationalID handles GET /referrals/search?national_id=X
func (h *Handler) SearchByNationalID(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.FromContext(r.Context()); !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	nationalID := r.URL.Query().Get("national_id")
	if nationalID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "national_id query parameter is required")
		return
	}

	referral, err := h.service.FindByNationalID(r.Context(), nationalID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", fmt.Sprintf("No patient found with national ID %s", nationalID))
			return
		}
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ReferralSuccessResponse{
		Success:  true,
		Message:  "Patient retrieved successfully",
		Referral: referral,
	})
}

// ListUnscheduled handles GET /referrals/unscheduled
func (h *Handler) ListUnscheduled(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.FromContext(r.Context()); !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	params := pagination.ParseParams(r)

	response, err := h.service.ListUnscheduled(r.Context(), params)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// ScheduleAppointment handles PUT /referrals/{national_id}/appointment
func (h *Handler) ScheduleAppointment(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.FromContext(r.Context()); !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	vars := mux.Vars(r)
	nationalID := vars["national_id"]
	if nationalID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "National ID is required")
		return
	}

	var req ScheduleAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	rows, err := h.service.SubmitAppointment(r.Context(), nationalID, req)
	if err != nil {
		if IsValidationError(err) {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "scheduling_failed", err.Error())
		return
	}

	// Ok(0) at the service level; the HTTP surface distinguishes it so
	// the form can tell the operator no patient matched.
	if rows == 0 {
		respondError(w, http.StatusNotFound, "not_found", fmt.Sprintf("No patient found with national ID %s", nationalID))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ScheduleResponse{
		Success:      true,
		Message:      "Appointment scheduled successfully",
		RowsAffected: rows,
	})
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}
