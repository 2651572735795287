package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"visitmap/internal/overlay/models"
	"visitmap/internal/overlay/service"
	"visitmap/internal/palette"
	tripmodels "visitmap/internal/trips/models"
	dErrors "visitmap/pkg/domain-errors"
	"visitmap/pkg/platform/httputil"
	"visitmap/pkg/requestcontext"
)

// Service defines the overlay operations exposed over HTTP.
type Service interface {
	Trips(ctx context.Context) []tripmodels.Trip
	ReplaceTrips(ctx context.Context, trips []tripmodels.Trip) ([]tripmodels.Trip, error)
	Overlays(ctx context.Context) []models.Overlay
	SetVisibility(ctx context.Context, id string, visible bool) (models.Overlay, error)
	Palettes() (palette.Palette, []palette.Palette)
	SelectPalette(ctx context.Context, name string) (palette.Palette, error)
	Frame(ctx context.Context, req service.FrameRequest) (*service.Frame, error)
}

// Handler wires overlay, trip, palette and frame endpoints to the service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an overlay handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/palettes", h.HandleListPalettes)
	r.Put("/palette", h.HandleSelectPalette)
	r.Get("/trips", h.HandleListTrips)
	r.Put("/trips", h.HandleReplaceTrips)
	r.Get("/overlays", h.HandleListOverlays)
	r.Patch("/overlays/{id}/visibility", h.HandleSetVisibility)
	r.Get("/map/frame", h.HandleFrame)
}

// HandleListPalettes handles GET /palettes.
func (h *Handler) HandleListPalettes(w http.ResponseWriter, _ *http.Request) {
	selected, all := h.service.Palettes()
	httputil.WriteJSON(w, http.StatusOK, PaletteListResponse{
		Selected: selected.Name,
		Palettes: all,
	})
}

// HandleSelectPalette handles PUT /palette.
func (h *Handler) HandleSelectPalette(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeJSON[SelectPaletteRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "palette name is required"))
		return
	}

	p, err := h.service.SelectPalette(ctx, name)
	if err != nil {
		h.logger.WarnContext(ctx, "select palette failed",
			"request_id", requestID,
			"palette", name,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, PaletteResponse{Selected: p, Roles: palette.DeriveRoles(p)})
}

// HandleListTrips handles GET /trips.
func (h *Handler) HandleListTrips(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, TripsPayload{Trips: h.service.Trips(r.Context())})
}

// HandleReplaceTrips handles PUT /trips. The whole log is replaced.
func (h *Handler) HandleReplaceTrips(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeJSON[TripsPayload](w, r, h.logger, requestID)
	if !ok {
		return
	}
	if req.Trips == nil {
		req.Trips = []tripmodels.Trip{}
	}

	trips, err := h.service.ReplaceTrips(ctx, req.Trips)
	if err != nil {
		h.logger.ErrorContext(ctx, "replace trips failed",
			"request_id", requestID,
			"trips", len(req.Trips),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, TripsPayload{Trips: trips})
}

// HandleListOverlays handles GET /overlays.
func (h *Handler) HandleListOverlays(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, OverlayListResponse{Overlays: h.service.Overlays(r.Context())})
}

// HandleSetVisibility handles PATCH /overlays/{id}/visibility.
func (h *Handler) HandleSetVisibility(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	id := chi.URLParam(r, "id")

	req, ok := httputil.DecodeJSON[VisibilityRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}
	if req.Visible == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "visible is required"))
		return
	}

	overlay, err := h.service.SetVisibility(ctx, id, *req.Visible)
	if err != nil {
		h.logger.WarnContext(ctx, "set overlay visibility failed",
			"request_id", requestID,
			"overlay_id", id,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, overlay)
}

// HandleFrame handles GET /map/frame?year=&mode=&timeline=.
func (h *Handler) HandleFrame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, err := parseFrameQuery(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	frame, err := h.service.Frame(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "frame failed",
			"request_id", requestID,
			"year", req.Year,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, frame)
}

func parseFrameQuery(r *http.Request) (service.FrameRequest, error) {
	q := r.URL.Query()
	var req service.FrameRequest

	if raw := q.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 1 || year > 9999 {
			return req, dErrors.New(dErrors.CodeValidation, "year must be a calendar year")
		}
		req.Year = year
	}

	mode, err := palette.ParseMode(q.Get("mode"))
	if err != nil {
		return req, dErrors.Wrap(err, dErrors.CodeValidation, "mode must be cumulative or yearly")
	}
	req.Mode = mode

	if raw := q.Get("timeline"); raw != "" {
		timeline, err := strconv.ParseBool(raw)
		if err != nil {
			return req, dErrors.New(dErrors.CodeValidation, "timeline must be true or false")
		}
		req.Timeline = timeline
	}
	return req, nil
}
