package handler

import (
	"visitmap/internal/overlay/models"
	"visitmap/internal/palette"
	tripmodels "visitmap/internal/trips/models"
)

// SelectPaletteRequest is the body of PUT /palette.
type SelectPaletteRequest struct {
	Name string `json:"name"`
}

// PaletteResponse describes the selected palette and the roles it yields.
type PaletteResponse struct {
	Selected palette.Palette         `json:"selected"`
	Roles    palette.VisitColorRoles `json:"roles"`
}

// PaletteListResponse is the body of GET /palettes.
type PaletteListResponse struct {
	Selected string            `json:"selected"`
	Palettes []palette.Palette `json:"palettes"`
}

// TripsPayload is both the body of PUT /trips and the response of the trip
// endpoints.
type TripsPayload struct {
	Trips []tripmodels.Trip `json:"trips"`
}

// OverlayListResponse is the body of GET /overlays.
type OverlayListResponse struct {
	Overlays []models.Overlay `json:"overlays"`
}

// VisibilityRequest is the body of PATCH /overlays/{id}/visibility. Visible is
// a pointer so a missing field is rejected instead of read as false.
type VisibilityRequest struct {
	Visible *bool `json:"visible"`
}
