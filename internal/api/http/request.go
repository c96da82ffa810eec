package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"smartride-backend/internal/domain"
)

const dateLayout = "2006-01-02"

var validate = validator.New()

// decodeAndValidate parses the JSON request body into dst and runs
// struct validation on it.
func decodeAndValidate(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.InvalidRangef("malformed request body: %v", err)
	}
	if err := validate.Struct(dst); err != nil {
		return domain.InvalidRangef("invalid request: %v", err)
	}
	return nil
}

// pathID extracts a numeric path variable from the route.
func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.InvalidRangef("invalid %s %q", name, raw)
	}
	return id, nil
}

// today returns the current calendar date, truncated to midnight UTC.
func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// parseDate parses a calendar date in YYYY-MM-DD form, UTC.
func parseDate(field, raw string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, domain.InvalidRangef("invalid %s %q, want YYYY-MM-DD", field, raw)
	}
	return t, nil
}
