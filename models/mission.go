package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Mission statuses. The status field carries no transition rules: any value
// may be replaced by any other via an update.
const (
	MissionPlanned   = "planned"
	MissionActive    = "active"
	MissionCompleted = "completed"
	MissionFailed    = "failed"
)

// ValidMissionStatuses lists the accepted status values in order.
var ValidMissionStatuses = []string{MissionPlanned, MissionActive, MissionCompleted, MissionFailed}

// Mission is a colonization-challenge record, independent of the
// community/solution subsystem. Crew is stored as a JSON array of names.
type Mission struct {
	ID         uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name       string                      `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex"`
	LaunchDate time.Time                   `json:"launchDate" db:"launch_date" gorm:"not null"`
	Status     string                      `json:"status" db:"status" gorm:"type:text;not null;default:planned"`
	Crew       datatypes.JSONSlice[string] `json:"crew" db:"crew"`

	Telemetry []TelemetryReading `json:"telemetry,omitempty" gorm:"foreignKey:MissionID;references:ID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// IsValidMissionStatus reports whether status is one of the accepted values.
func IsValidMissionStatus(status string) bool {
	for _, s := range ValidMissionStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// TelemetryReading is a single timestamped environmental sample appended to a
// mission. Readings are timestamped server-side at insertion.
type TelemetryReading struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	MissionID   uuid.UUID `json:"missionId" db:"mission_id" gorm:"type:uuid;not null;index"`
	Temperature float64   `json:"temperature" db:"temperature" gorm:"not null"`
	Pressure    float64   `json:"pressure" db:"pressure" gorm:"not null"`
	Altitude    float64   `json:"altitude" db:"altitude" gorm:"not null"`
	Timestamp   time.Time `json:"timestamp" db:"timestamp" gorm:"not null;index"`
}
