package models

import (
	"time"

	"github.com/sahatak/telecare-agent/src/common/models/enum"
)

// SessionStatusSnapshot is the authoritative video-session state for one appointment,
// as returned by the status endpoint. A fresh snapshot supersedes the previous one
// wholesale; snapshots are never merged field by field.
type SessionStatusSnapshot struct {
	AppointmentID          string                 `json:"appointment_id"`
	SessionStatus          enum.SessionStatus     `json:"session_status"`
	AppointmentStatus      enum.AppointmentStatus `json:"appointment_status"`
	SessionStartedAt       *time.Time             `json:"session_started_at,omitempty"`
	SessionDurationSeconds *int                   `json:"session_duration_seconds,omitempty"`
}

// EffectiveSessionStatus resolves the session state the UI should act on. A session
// with a start timestamp but no explicit status is reported by older backends; it is
// treated as active.
func (s SessionStatusSnapshot) EffectiveSessionStatus() enum.SessionStatus {
	if s.SessionStatus == enum.SessionUnknown && s.SessionStartedAt != nil {
		return enum.SessionActive
	}
	return s.SessionStatus
}

// SessionButton is the derived UI descriptor for an appointment's video-session
// control. A zero Action means no button is rendered at all.
type SessionButton struct {
	Action  enum.ButtonAction
	Label   string
	Enabled bool
}
