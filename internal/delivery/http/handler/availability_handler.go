package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/SayedAliMajed/pearlconnect-back-end/internal/delivery/dto"
	"github.com/SayedAliMajed/pearlconnect-back-end/internal/delivery/http/middleware"
	"github.com/SayedAliMajed/pearlconnect-back-end/internal/usecase"
	"github.com/SayedAliMajed/pearlconnect-back-end/pkg/response"
	"github.com/SayedAliMajed/pearlconnect-back-end/pkg/validator"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

func (h *AvailabilityHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	providerID, ok := parseProviderID(w, r)
	if !ok {
		return
	}

	schedule, err := h.availabilityUsecase.GetSchedule(r.Context(), providerID)
	if err != nil {
		switch err {
		case usecase.ErrScheduleNotFound:
			response.NotFound(w, "Schedule not found")
		default:
			response.InternalServerError(w, "Failed to get schedule")
		}
		return
	}

	response.Success(w, http.StatusOK, "Schedule retrieved successfully", schedule)
}

func (h *AvailabilityHandler) SetSchedule(w http.ResponseWriter, r *http.Request) {
	actorID, actorRoleID, ok := actor(w, r)
	if !ok {
		return
	}
	providerID, ok := parseProviderID(w, r)
	if !ok {
		return
	}

	var req dto.SetScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	schedule, err := h.availabilityUsecase.SetSchedule(r.Context(), actorID, actorRoleID, providerID, &req)
	if err != nil {
		h.writeScheduleMutationError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Schedule saved successfully", schedule)
}

func (h *AvailabilityHandler) PatchSchedule(w http.ResponseWriter, r *http.Request) {
	actorID, actorRoleID, ok := actor(w, r)
	if !ok {
		return
	}
	providerID, ok := parseProviderID(w, r)
	if !ok {
		return
	}

	var req dto.PatchScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	schedule, err := h.availabilityUsecase.PatchSchedule(r.Context(), actorID, actorRoleID, providerID, &req)
	if err != nil {
		h.writeScheduleMutationError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Schedule updated successfully", schedule)
}

func (h *AvailabilityHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	actorID, actorRoleID, ok := actor(w, r)
	if !ok {
		return
	}
	providerID, ok := parseProviderID(w, r)
	if !ok {
		return
	}

	err := h.availabilityUsecase.DeleteSchedule(r.Context(), actorID, actorRoleID, providerID)
	if err != nil {
		switch err {
		case usecase.ErrScheduleNotFound:
			response.NotFound(w, "Schedule not found")
		case usecase.ErrNotScheduleOwner:
			response.Forbidden(w, "You don't have permission to manage this schedule")
		default:
			response.InternalServerError(w, "Failed to delete schedule")
		}
		return
	}

	response.Success(w, http.StatusOK, "Schedule deleted successfully", nil)
}

// GetSlots returns the bookable slot grid of a provider on one date.
// Query parameter: date=YYYY-MM-DD (required).
func (h *AvailabilityHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	providerID, ok := parseProviderID(w, r)
	if !ok {
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "Query parameter 'date' is required", nil)
		return
	}

	slots, err := h.availabilityUsecase.GetSlots(r.Context(), providerID, date)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDate:
			response.Error(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", nil)
		case usecase.ErrScheduleNotConfigured:
			response.NotFound(w, "Provider has not configured a schedule")
		default:
			response.InternalServerError(w, "Failed to get available slots")
		}
		return
	}

	response.Success(w, http.StatusOK, "Slots retrieved successfully", slots)
}

func (h *AvailabilityHandler) writeScheduleMutationError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrScheduleNotFound:
		response.NotFound(w, "Schedule not found")
	case usecase.ErrNotScheduleOwner:
		response.Forbidden(w, "You don't have permission to manage this schedule")
	case usecase.ErrProviderNotFound:
		response.NotFound(w, "Provider not found")
	case usecase.ErrInvalidDate,
		usecase.ErrInvalidRuleWindow,
		usecase.ErrSlotExceedsWindow,
		usecase.ErrInvalidBreakWindow,
		usecase.ErrDuplicateException:
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	default:
		response.InternalServerError(w, "Failed to save schedule")
	}
}

func parseProviderID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	vars := mux.Vars(r)
	providerID, err := uuid.Parse(vars["providerId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid provider ID", nil)
		return uuid.Nil, false
	}
	return providerID, true
}

func actor(w http.ResponseWriter, r *http.Request) (uuid.UUID, int, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return uuid.Nil, 0, false
	}
	roleID, ok := middleware.GetRoleIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return uuid.Nil, 0, false
	}
	return userID, roleID, true
}
