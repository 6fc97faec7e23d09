package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/marsconnect/mars-quest-backend/models"
	"gorm.io/gorm"
)

// DefaultTelemetryLimit bounds telemetry reads when the caller does not pass
// an explicit limit.
const DefaultTelemetryLimit = 100

type MissionRepo struct {
	db *gorm.DB
}

func NewMissionRepo(db *gorm.DB) *MissionRepo {
	return &MissionRepo{db}
}

// Add inserts a new mission into the database.
func (r *MissionRepo) Add(mission *models.Mission) error {
	return r.db.Create(mission).Error
}

// FindAll returns all missions sorted by launch date, most recent first.
func (r *MissionRepo) FindAll() ([]*models.Mission, error) {
	var missions []*models.Mission
	err := r.db.Order("launch_date DESC").Find(&missions).Error
	return missions, err
}

// FindByID returns a mission by id, or nil when no such mission exists.
func (r *MissionRepo) FindByID(id uuid.UUID) (*models.Mission, error) {
	var mission models.Mission
	err := r.db.First(&mission, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &mission, nil
}

// Update applies the given column updates and returns the refreshed mission,
// or nil when the mission does not exist.
func (r *MissionRepo) Update(id uuid.UUID, updates map[string]any) (*models.Mission, error) {
	result := r.db.Model(&models.Mission{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByID(id)
}

// Delete removes a mission and its telemetry. It reports whether a row was
// actually deleted.
func (r *MissionRepo) Delete(id uuid.UUID) (bool, error) {
	result := r.db.Delete(&models.Mission{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// AddTelemetry appends a reading to a mission, stamping it server-side.
// Returns nil without error when the mission does not exist.
func (r *MissionRepo) AddTelemetry(missionID uuid.UUID, reading *models.TelemetryReading) (*models.Mission, error) {
	mission, err := r.FindByID(missionID)
	if err != nil || mission == nil {
		return nil, err
	}

	reading.MissionID = missionID
	reading.Timestamp = time.Now().UTC()
	if err := r.db.Create(reading).Error; err != nil {
		return nil, err
	}
	return mission, nil
}

// FindTelemetry returns a page of readings for a mission, newest first.
// Telemetry grows without bound, so reads are always paginated.
func (r *MissionRepo) FindTelemetry(missionID uuid.UUID, limit, offset int) ([]models.TelemetryReading, error) {
	if limit <= 0 {
		limit = DefaultTelemetryLimit
	}
	if offset < 0 {
		offset = 0
	}

	var readings []models.TelemetryReading
	err := r.db.Where("mission_id = ?", missionID).
		Order("timestamp DESC").
		Limit(limit).
		Offset(offset).
		Find(&readings).Error
	return readings, err
}
