package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/roster-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type ShiftLookupHandler interface {
	LookupShifts(w http.ResponseWriter, r *http.Request)
	GetShiftByDate(w http.ResponseWriter, r *http.Request)
	BatchLookup(w http.ResponseWriter, r *http.Request)
}

type shiftLookupHandlerImpl struct {
	lookupService schedule.LookupService
}

func NewShiftLookupHandler(lookupService schedule.LookupService) ShiftLookupHandler {
	return &shiftLookupHandlerImpl{
		lookupService: lookupService,
	}
}

// LookupShifts implements ShiftLookupHandler.
func (h *shiftLookupHandlerImpl) LookupShifts(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	eventDate, ok := parseDateParam(w, "event_date", r.URL.Query().Get("event_date"))
	if !ok {
		return
	}

	forceRemote := false
	if raw := r.URL.Query().Get("force_remote"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			response.HandleError(w, validator.ValidationErrors{{
				Field:   "force_remote",
				Message: "force_remote must be a boolean",
			}})
			return
		}
		forceRemote = parsed
	}

	result, err := h.lookupService.LookupShifts(r.Context(), employeeID, eventDate, forceRemote)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetShiftByDate implements ShiftLookupHandler.
func (h *shiftLookupHandlerImpl) GetShiftByDate(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	date, ok := parseDateParam(w, "date", chi.URLParam(r, "date"))
	if !ok {
		return
	}

	code, err := h.lookupService.GetShiftByDate(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, schedule.ShiftByDateResponse{
		EmployeeID: employeeID,
		Date:       date.Format(validator.DateLayout),
		ShiftCode:  code,
	})
}

// BatchLookup implements ShiftLookupHandler.
func (h *shiftLookupHandlerImpl) BatchLookup(w http.ResponseWriter, r *http.Request) {
	var req schedule.BatchLookupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	eventDate, _ := validator.IsValidDate(req.EventDate)
	results := h.lookupService.BatchLookup(r.Context(), req.EmployeeIDs, eventDate)

	response.Success(w, results)
}
