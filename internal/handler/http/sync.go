package http

import (
	"net/http"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/stats"
	"github.com/cmlabs-hris/roster-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type SyncHandler interface {
	SyncDepartmentDate(w http.ResponseWriter, r *http.Request)
	SyncDepartmentRange(w http.ResponseWriter, r *http.Request)
	SyncAllDepartments(w http.ResponseWriter, r *http.Request)
	GetStatus(w http.ResponseWriter, r *http.Request)
	GetUnprocessedDates(w http.ResponseWriter, r *http.Request)
}

type syncHandlerImpl struct {
	syncService stats.SyncService
}

func NewSyncHandler(syncService stats.SyncService) SyncHandler {
	return &syncHandlerImpl{
		syncService: syncService,
	}
}

// SyncDepartmentDate implements SyncHandler.
func (h *syncHandlerImpl) SyncDepartmentDate(w http.ResponseWriter, r *http.Request) {
	department := chi.URLParam(r, "department")

	date, ok := parseDateParam(w, "date", chi.URLParam(r, "date"))
	if !ok {
		return
	}

	result, err := h.syncService.SyncDateForDepartment(r.Context(), department, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SyncDepartmentRange implements SyncHandler.
func (h *syncHandlerImpl) SyncDepartmentRange(w http.ResponseWriter, r *http.Request) {
	department := chi.URLParam(r, "department")

	var req stats.SyncRangeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}
	from, to, _ := validator.IsValidDateRange(req.From, req.To)

	result, err := h.syncService.SyncDateRangeForDepartment(r.Context(), department, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SyncAllDepartments implements SyncHandler.
func (h *syncHandlerImpl) SyncAllDepartments(w http.ResponseWriter, r *http.Request) {
	date, ok := parseDateParam(w, "date", chi.URLParam(r, "date"))
	if !ok {
		return
	}

	result, err := h.syncService.SyncAllDepartments(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetStatus implements SyncHandler.
func (h *syncHandlerImpl) GetStatus(w http.ResponseWriter, r *http.Request) {
	department := chi.URLParam(r, "department")

	req := stats.SyncRangeRequest{From: r.URL.Query().Get("from"), To: r.URL.Query().Get("to")}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}
	from, to, _ := validator.IsValidDateRange(req.From, req.To)

	result, err := h.syncService.GetSyncStatus(r.Context(), department, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetUnprocessedDates implements SyncHandler.
func (h *syncHandlerImpl) GetUnprocessedDates(w http.ResponseWriter, r *http.Request) {
	department := chi.URLParam(r, "department")

	req := stats.SyncRangeRequest{From: r.URL.Query().Get("from"), To: r.URL.Query().Get("to")}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}
	from, to, _ := validator.IsValidDateRange(req.From, req.To)

	dates, err := h.syncService.GetUnprocessedDates(r.Context(), department, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"department":  department,
		"unprocessed": dates,
	})
}
