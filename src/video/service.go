package video

import (
	"context"
	"fmt"

	"github.com/sahatak/telecare-agent/src/common/models"
	"github.com/sahatak/telecare-agent/src/common/rest"
)

type service struct {
	api rest.Client
}

func NewService(api rest.Client) Service {
	return &service{api: api}
}

func (s *service) StartSession(ctx context.Context, appointmentID string) (SessionInfo, error) {
	var info SessionInfo
	err := s.api.Post(ctx, fmt.Sprintf("/appointments/%s/video/start", appointmentID), nil, &info)
	return info, err
}

func (s *service) JoinSession(ctx context.Context, appointmentID string) (SessionInfo, error) {
	var info SessionInfo
	err := s.api.Post(ctx, fmt.Sprintf("/appointments/%s/video/join", appointmentID), nil, &info)
	return info, err
}

func (s *service) EndSession(ctx context.Context, appointmentID string) error {
	return s.api.Post(ctx, fmt.Sprintf("/appointments/%s/video/end", appointmentID), nil, nil)
}

func (s *service) Status(ctx context.Context, appointmentID string) (models.SessionStatusSnapshot, error) {
	var snapshot models.SessionStatusSnapshot
	err := s.api.Get(ctx, fmt.Sprintf("/appointments/%s/video/status", appointmentID), nil, &snapshot)
	if err != nil {
		return snapshot, err
	}
	// Some status payloads omit the appointment id; key the snapshot ourselves.
	snapshot.AppointmentID = appointmentID
	return snapshot, nil
}

func (s *service) CompleteAppointment(ctx context.Context, appointmentID string) error {
	return s.api.Post(ctx, fmt.Sprintf("/appointments/%s/complete", appointmentID), nil, nil)
}
