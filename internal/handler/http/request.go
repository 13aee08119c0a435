package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/validator"
)

const maxJSONBody = 4 << 20

// decodeJSON writes a 400 and returns false when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(dst); err != nil {
		response.BadRequest(w, "Invalid request body", map[string]string{"body": err.Error()})
		return false
	}
	return true
}

// parseDateParam writes a 422 naming field and returns false when value is not YYYY-MM-DD.
func parseDateParam(w http.ResponseWriter, field, value string) (time.Time, bool) {
	date, ok := validator.IsValidDate(value)
	if !ok {
		response.HandleError(w, validator.ValidationErrors{{
			Field:   field,
			Message: field + " must be in YYYY-MM-DD format",
		}})
		return time.Time{}, false
	}
	return date, true
}
