package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/roster-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/roster-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/roster-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/roster-backend-go/internal/domain/shiftcode"
	"github.com/cmlabs-hris/roster-backend-go/internal/domain/stats"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeIDMissing):
		BadRequest(w, "Employee ID is required", nil)

	// Schedule domain errors
	case errors.Is(err, schedule.ErrEntryNotFound):
		NotFound(w, "Schedule entry not found")
	case errors.Is(err, schedule.ErrInvalidDateFormat):
		BadRequest(w, err.Error(), nil)

	// Shift grid errors
	case errors.Is(err, shiftcode.ErrInvalidPeriod),
		errors.Is(err, shiftcode.ErrNoEmployees),
		errors.Is(err, shiftcode.ErrEmptyGrid),
		errors.Is(err, shiftcode.ErrGridHeaderNotFound),
		errors.Is(err, shiftcode.ErrGridPeriodUnknown):
		BadRequest(w, err.Error(), nil)

	// Sync errors
	case errors.Is(err, stats.ErrInvalidDepartment),
		errors.Is(err, stats.ErrInvalidDateRange),
		errors.Is(err, stats.ErrDateRangeTooLarge):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
