package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/shiftcode"
	"github.com/cmlabs-hris/roster-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/validator"
)

const maxGridUpload = 10 << 20

type AttendanceFactsHandler interface {
	Leave(w http.ResponseWriter, r *http.Request)
	Overtime(w http.ResponseWriter, r *http.Request)
	RShifts(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	ImportGrid(w http.ResponseWriter, r *http.Request)
}

type attendanceFactsHandlerImpl struct {
	factsService shiftcode.FactsService
}

func NewAttendanceFactsHandler(factsService shiftcode.FactsService) AttendanceFactsHandler {
	return &attendanceFactsHandlerImpl{
		factsService: factsService,
	}
}

func (h *attendanceFactsHandlerImpl) Leave(w http.ResponseWriter, r *http.Request) {
	var req shiftcode.MonthlyFactsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.factsService.Leave(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceFactsHandlerImpl) Overtime(w http.ResponseWriter, r *http.Request) {
	var req shiftcode.MonthlyFactsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.factsService.Overtime(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceFactsHandlerImpl) RShifts(w http.ResponseWriter, r *http.Request) {
	var req shiftcode.MonthlyFactsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.factsService.RShifts(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceFactsHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	var req shiftcode.MonthlyFactsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.factsService.Summary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ImportGrid accepts a multipart xlsx upload in the "file" field. Optional
// "year" and "month" fields override the period printed on the sheet.
func (h *attendanceFactsHandlerImpl) ImportGrid(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxGridUpload)
	if err := r.ParseMultipartForm(maxGridUpload); err != nil {
		response.BadRequest(w, "Invalid multipart form", map[string]string{"file": err.Error()})
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		response.HandleError(w, validator.ValidationErrors{{Field: "file", Message: "file is required"}})
		return
	}
	defer file.Close()

	var errs validator.ValidationErrors
	year, month := 0, 0
	if raw := r.FormValue("year"); raw != "" {
		if year, err = strconv.Atoi(raw); err != nil {
			errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be a number"})
		}
	}
	if raw := r.FormValue("month"); raw != "" {
		if month, err = strconv.Atoi(raw); err != nil {
			errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be a number"})
		}
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	result, err := h.factsService.ImportGrid(r.Context(), file, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift grid imported successfully", result)
}
