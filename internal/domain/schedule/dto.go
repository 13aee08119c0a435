package schedule

import (
	"fmt"

	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/validator"
)

const maxBatchLookupIDs = 200

type BatchLookupRequest struct {
	EmployeeIDs []string `json:"employee_ids"`
	EventDate   string   `json:"event_date"`
}

func (r *BatchLookupRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.EmployeeIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_ids",
			Message: "employee_ids must contain at least one id",
		})
	}
	if len(r.EmployeeIDs) > maxBatchLookupIDs {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_ids",
			Message: fmt.Sprintf("employee_ids must not contain more than %d ids", maxBatchLookupIDs),
		})
	}
	for i, id := range r.EmployeeIDs {
		if validator.IsEmpty(id) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("employee_ids[%d]", i),
				Message: "employee id must not be empty",
			})
		}
	}
	if _, ok := validator.IsValidDate(r.EventDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "event_date",
			Message: "event_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ShiftByDateResponse struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	ShiftCode  *string `json:"shift_code"`
}
