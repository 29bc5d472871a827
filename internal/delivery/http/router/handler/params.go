package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const dateLayout = "2006-01-02"

// parseIDParam reads a numeric path parameter.
func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", name)
	}

	return uint(id), nil
}

// intQuery reads an optional integer query parameter. Absent or malformed
// values fall back instead of erroring.
func intQuery(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return value
}

// uintQuery reads an optional numeric query parameter.
func uintQuery(c echo.Context, name string) *uint {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}

	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}

	id := uint(value)

	return &id
}

// floatQuery reads an optional decimal query parameter.
func floatQuery(c echo.Context, name string) *float64 {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}

	return &value
}

// strQuery reads an optional string query parameter.
func strQuery(c echo.Context, name string) *string {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}

	return &raw
}

// dateQuery reads an optional YYYY-MM-DD query parameter. With endOfDay the
// timestamp moves to the last instant of that day, so date ranges include
// records created on the end date itself.
func dateQuery(c echo.Context, name string, endOfDay bool) *time.Time {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}

	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil
	}
	if endOfDay {
		parsed = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	return &parsed
}
