package video

import (
	"context"

	"github.com/sahatak/telecare-agent/src/common/models"
)

// SessionInfo is returned by start/join: where the client should connect.
// The transport itself (WebRTC) is outside this agent.
type SessionInfo struct {
	SessionID string `json:"session_id"`
	RoomURL   string `json:"room_url"`
	Token     string `json:"token,omitempty"`
}

type Service interface {
	// StartSession opens the video session for an appointment (doctor side).
	StartSession(ctx context.Context, appointmentID string) (SessionInfo, error)

	// JoinSession joins an already-started session (patient side, or doctor rejoin).
	JoinSession(ctx context.Context, appointmentID string) (SessionInfo, error)

	// EndSession closes the session; also used as the corrective "force end" when a
	// session is detected stuck.
	EndSession(ctx context.Context, appointmentID string) error

	// Status fetches the authoritative session snapshot for an appointment.
	Status(ctx context.Context, appointmentID string) (models.SessionStatusSnapshot, error)

	// CompleteAppointment marks the appointment finished after the session ends.
	CompleteAppointment(ctx context.Context, appointmentID string) error
}
