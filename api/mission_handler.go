package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/marsconnect/mars-quest-backend/errs"
	"github.com/marsconnect/mars-quest-backend/models"
	"github.com/marsconnect/mars-quest-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

type missionStore interface {
	Add(mission *models.Mission) error
	FindAll() ([]*models.Mission, error)
	FindByID(id uuid.UUID) (*models.Mission, error)
	Update(id uuid.UUID, updates map[string]any) (*models.Mission, error)
	Delete(id uuid.UUID) (bool, error)
	AddTelemetry(missionID uuid.UUID, reading *models.TelemetryReading) (*models.Mission, error)
	FindTelemetry(missionID uuid.UUID, limit, offset int) ([]models.TelemetryReading, error)
}

type missionHandler struct {
	responder Responder
	logger    zerolog.Logger
	missions  missionStore
}

func newMissionHandler(missions missionStore) missionHandler {
	logger := log.With().Str("handlerName", "missionHandler").Logger()

	return missionHandler{
		responder: NewResponder(logger),
		logger:    logger,
		missions:  missions,
	}
}

type missionRequest struct {
	Name       string     `json:"name"`
	LaunchDate *time.Time `json:"launchDate"`
	Status     *string    `json:"status"`
	Crew       *[]string  `json:"crew"`
}

func invalidStatusError() error {
	return errs.NewValidationError("status",
		fmt.Sprintf("Status must be one of: %s", strings.Join(models.ValidMissionStatuses, ", ")))
}

func (h missionHandler) createMission() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req missionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("mission payload"))
			return
		}

		if strings.TrimSpace(req.Name) == "" {
			h.responder.WriteError(w, errs.NewValidationError("name", "Mission name is required"))
			return
		}
		if req.LaunchDate == nil {
			h.responder.WriteError(w, errs.NewValidationError("launchDate", "Launch date is required"))
			return
		}

		status := models.MissionPlanned
		if req.Status != nil {
			if !models.IsValidMissionStatus(*req.Status) {
				h.responder.WriteError(w, invalidStatusError())
				return
			}
			status = *req.Status
		}

		mission := models.Mission{
			Name:       strings.TrimSpace(req.Name),
			LaunchDate: *req.LaunchDate,
			Status:     status,
		}
		if req.Crew != nil {
			mission.Crew = datatypes.NewJSONSlice(*req.Crew)
		}

		if err := h.missions.Add(&mission); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "mission", err))
			return
		}

		h.responder.WriteDataWithMeta(w, http.StatusCreated, mission, map[string]any{
			"createdAt": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func (h missionHandler) getAllMissions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		missions, err := h.missions.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "missions", err))
			return
		}

		h.responder.WriteDataWithMeta(w, http.StatusOK, missions, map[string]any{
			"total":     len(missions),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func parseMissionID(r *http.Request) (uuid.UUID, error) {
	idStr := chi.URLParam(r, "missionID")
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid mission id")
	}
	return id, nil
}

func (h missionHandler) getMission() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseMissionID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		mission, err := h.missions.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "mission", err))
			return
		}
		if mission == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Mission not found"))
			return
		}

		h.responder.WriteData(w, http.StatusOK, mission)
	}
}

func (h missionHandler) updateMission() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseMissionID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req missionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("mission payload"))
			return
		}

		updates := make(map[string]any)
		if strings.TrimSpace(req.Name) != "" {
			updates["name"] = strings.TrimSpace(req.Name)
		}
		if req.LaunchDate != nil {
			updates["launch_date"] = *req.LaunchDate
		}
		if req.Status != nil {
			// no transition rules: any status may replace any other
			if !models.IsValidMissionStatus(*req.Status) {
				h.responder.WriteError(w, invalidStatusError())
				return
			}
			updates["status"] = *req.Status
		}
		if req.Crew != nil {
			updates["crew"] = datatypes.NewJSONSlice(*req.Crew)
		}

		if len(updates) == 0 {
			h.responder.WriteError(w, errs.BadRequest("No mission fields to update"))
			return
		}

		mission, err := h.missions.Update(id, updates)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "mission", err))
			return
		}
		if mission == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Mission not found"))
			return
		}

		h.responder.WriteDataWithMeta(w, http.StatusOK, mission, map[string]any{
			"updatedAt": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func (h missionHandler) deleteMission() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseMissionID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		deleted, err := h.missions.Delete(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "mission", err))
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFoundError("Mission not found"))
			return
		}

		h.responder.WriteDataWithMeta(w, http.StatusOK,
			map[string]string{"message": "Mission deleted successfully"},
			map[string]any{"deletedAt": time.Now().UTC().Format(time.RFC3339)})
	}
}

type telemetryRequest struct {
	Temperature *float64 `json:"temperature"`
	Pressure    *float64 `json:"pressure"`
	Altitude    *float64 `json:"altitude"`
}

// addTelemetry appends a reading to a mission. The timestamp is assigned
// server-side.
func (h missionHandler) addTelemetry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseMissionID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req telemetryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("telemetry payload"))
			return
		}
		if req.Temperature == nil || req.Pressure == nil || req.Altitude == nil {
			h.responder.WriteError(w, errs.BadRequest("temperature, pressure and altitude are required"))
			return
		}

		reading := models.TelemetryReading{
			Temperature: *req.Temperature,
			Pressure:    *req.Pressure,
			Altitude:    *req.Altitude,
		}

		mission, err := h.missions.AddTelemetry(id, &reading)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("append telemetry to", "mission", err))
			return
		}
		if mission == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Mission not found"))
			return
		}

		h.responder.WriteDataWithMeta(w, http.StatusCreated, reading, map[string]any{
			"telemetryAddedAt": reading.Timestamp.Format(time.RFC3339),
		})
	}
}

// getTelemetry returns one page of a mission's readings, newest first.
func (h missionHandler) getTelemetry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseMissionID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		mission, err := h.missions.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "mission", err))
			return
		}
		if mission == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Mission not found"))
			return
		}

		limit := parseQueryInt(r, "limit", 0)
		offset := parseQueryInt(r, "offset", 0)

		readings, err := h.missions.FindTelemetry(id, limit, offset)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find telemetry of", "mission", err))
			return
		}

		h.responder.WriteDataWithMeta(w, http.StatusOK, readings, map[string]any{
			"missionId": id,
			"count":     len(readings),
			"limit":     limit,
			"offset":    offset,
		})
	}
}

func parseQueryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}

func (h missionHandler) getCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories := services.MissionCategories()
		h.responder.WriteDataWithMeta(w, http.StatusOK, categories, map[string]any{
			"total":     len(categories),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func (h missionHandler) getDifficulties() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		difficulties := services.MissionDifficulties()
		h.responder.WriteDataWithMeta(w, http.StatusOK, difficulties, map[string]any{
			"total":     len(difficulties),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
