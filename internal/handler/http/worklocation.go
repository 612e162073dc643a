package http

import (
	"net/http"

	"github.com/dokterku/presensi-backend-go/internal/domain/worklocation"
	"github.com/dokterku/presensi-backend-go/internal/handler/http/response"
)

type WorkLocationHandler interface {
	ListActive(w http.ResponseWriter, r *http.Request)
}

type workLocationHandlerImpl struct {
	workLocationRepo worklocation.WorkLocationRepository
}

func NewWorkLocationHandler(workLocationRepo worklocation.WorkLocationRepository) WorkLocationHandler {
	return &workLocationHandlerImpl{
		workLocationRepo: workLocationRepo,
	}
}

type workLocationResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	RadiusMeters  float64  `json:"radius_meters"`
	AllowedShifts []string `json:"allowed_shifts,omitempty"`
}

// ListActive implements WorkLocationHandler. Reference data for the mobile
// client so it can show the geofence before the user attempts a check-in.
func (h *workLocationHandlerImpl) ListActive(w http.ResponseWriter, r *http.Request) {
	locations, err := h.workLocationRepo.ListActive(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results := make([]workLocationResponse, 0, len(locations))
	for _, loc := range locations {
		results = append(results, workLocationResponse{
			ID:            loc.ID,
			Name:          loc.Name,
			Latitude:      loc.Latitude,
			Longitude:     loc.Longitude,
			RadiusMeters:  loc.RadiusMeters,
			AllowedShifts: loc.AllowedShifts,
		})
	}

	response.Success(w, map[string]interface{}{"work_locations": results})
}
