package worklocation

import (
	"strings"
	"time"
)

// WorkLocation is geofenced reference data owned by admin tooling. The
// validation engine only ever reads it.
type WorkLocation struct {
	ID           string
	Name         string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64

	// AllowedShifts restricts which named shifts may check in here.
	// Nil or empty means every shift is permitted.
	AllowedShifts []string

	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AllowsShift reports whether the named shift may check in at this location.
func (w WorkLocation) AllowsShift(shiftName string) bool {
	if len(w.AllowedShifts) == 0 {
		return true
	}
	for _, allowed := range w.AllowedShifts {
		if strings.EqualFold(allowed, shiftName) {
			return true
		}
	}
	return false
}
