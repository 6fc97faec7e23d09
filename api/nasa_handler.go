package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/marsconnect/mars-quest-backend/errs"
	"github.com/marsconnect/mars-quest-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// nasaAPI is the slice of the NASA client the proxy endpoints need.
type nasaAPI interface {
	MarsPhotos(ctx context.Context, rover string, sol *int, earthDate, camera string, page int) (json.RawMessage, error)
	MarsWeather(ctx context.Context) (json.RawMessage, error)
	APOD(ctx context.Context, date string, hd bool) (json.RawMessage, error)
	RoverManifest(ctx context.Context, rover string) (json.RawMessage, error)
	RandomMarsPhoto(ctx context.Context) (json.RawMessage, error)
}

type nasaHandler struct {
	responder Responder
	logger    zerolog.Logger
	client    nasaAPI
}

func newNASAHandler(client nasaAPI) nasaHandler {
	logger := log.With().Str("handlerName", "nasaHandler").Logger()

	return nasaHandler{
		responder: NewResponder(logger),
		logger:    logger,
		client:    client,
	}
}

// getMarsPhotos proxies the rover photos feed with validated parameters.
func (h nasaHandler) getMarsPhotos() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		rover := query.Get("rover")
		if rover == "" {
			rover = "curiosity"
		}
		if !services.IsValidRover(rover) {
			h.responder.WriteError(w, errs.BadRequest(fmt.Sprintf(
				"Invalid rover name. Must be one of: %s", strings.Join(services.AvailableRovers(), ", "))))
			return
		}

		page := 1
		if raw := query.Get("page"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				h.responder.WriteError(w, errs.BadRequest("Page must be a positive number"))
				return
			}
			page = parsed
		}

		var sol *int
		if raw := query.Get("sol"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				h.responder.WriteError(w, errs.BadRequest("Sol must be a non-negative number"))
				return
			}
			sol = &parsed
		}

		earthDate := query.Get("earth_date")
		camera := query.Get("camera")

		photos, err := h.client.MarsPhotos(r.Context(), rover, sol, earthDate, camera, page)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		meta := map[string]any{
			"rover": rover,
			"page":  page,
		}
		if sol != nil {
			meta["sol"] = *sol
		}
		if earthDate != "" {
			meta["earth_date"] = earthDate
		}
		if camera != "" {
			meta["camera"] = camera
		}

		h.responder.WriteDataWithMeta(w, http.StatusOK, photos, meta)
	}
}

func (h nasaHandler) getMarsWeather() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weather, err := h.client.MarsWeather(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteDataWithMeta(w, http.StatusOK, weather, map[string]any{
			"source":      "InSight Mars Weather Service",
			"lastUpdated": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func (h nasaHandler) getAPOD() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		date := query.Get("date")
		hd := query.Get("hd") != "false"

		apod, err := h.client.APOD(r.Context(), date, hd)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		metaDate := date
		if metaDate == "" {
			metaDate = "today"
		}

		h.responder.WriteDataWithMeta(w, http.StatusOK, apod, map[string]any{
			"date": metaDate,
			"hd":   hd,
		})
	}
}

func (h nasaHandler) getRoverManifest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rover := chi.URLParam(r, "rover")

		manifest, err := h.client.RoverManifest(r.Context(), rover)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteDataWithMeta(w, http.StatusOK, manifest, map[string]any{
			"rover":       rover,
			"lastUpdated": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func (h nasaHandler) getRovers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rovers := services.AvailableRovers()
		h.responder.WriteDataWithMeta(w, http.StatusOK, rovers, map[string]any{
			"total": len(rovers),
		})
	}
}

// getCameras lists camera codes for a rover; unknown rovers yield an empty
// list, matching the upstream behavior.
func (h nasaHandler) getCameras() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rover := chi.URLParam(r, "rover")
		cameras := services.AvailableCameras(rover)
		if cameras == nil {
			cameras = []string{}
		}

		h.responder.WriteDataWithMeta(w, http.StatusOK, cameras, map[string]any{
			"rover": rover,
			"total": len(cameras),
		})
	}
}

func (h nasaHandler) getRandomPhoto() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		photo, err := h.client.RandomMarsPhoto(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteDataWithMeta(w, http.StatusOK, photo, map[string]any{
			"purpose":     "mission_inspiration",
			"generatedAt": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
