package support

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sahatak/telecare-agent/src/common/models"
	"github.com/sahatak/telecare-agent/src/common/rest"
)

type Service interface {
	// ReportProblem files a support ticket. Returns the reference id assigned to it.
	ReportProblem(ctx context.Context, report models.ProblemReport) (string, error)

	// ContactSupervisor escalates an issue to the medical supervisor.
	ContactSupervisor(ctx context.Context, request models.SupervisorRequest) (string, error)
}

type service struct {
	api rest.Client
}

func NewService(api rest.Client) Service {
	return &service{api: api}
}

func (s *service) ReportProblem(ctx context.Context, report models.ProblemReport) (string, error) {
	if strings.TrimSpace(report.Subject) == "" {
		return "", &rest.ValidationError{Field: "subject", Reason: "required"}
	}
	if strings.TrimSpace(report.Description) == "" {
		return "", &rest.ValidationError{Field: "description", Reason: "required"}
	}
	if report.ReferenceID == "" {
		report.ReferenceID = uuid.New().String()
	}

	if err := s.api.Post(ctx, "/support/report-problem", report, nil); err != nil {
		return "", err
	}
	return report.ReferenceID, nil
}

func (s *service) ContactSupervisor(ctx context.Context, request models.SupervisorRequest) (string, error) {
	if strings.TrimSpace(request.Subject) == "" {
		return "", &rest.ValidationError{Field: "subject", Reason: "required"}
	}
	if strings.TrimSpace(request.Message) == "" {
		return "", &rest.ValidationError{Field: "message", Reason: "required"}
	}
	if request.ReferenceID == "" {
		request.ReferenceID = uuid.New().String()
	}

	if err := s.api.Post(ctx, "/support/contact-supervisor", request, nil); err != nil {
		return "", err
	}
	return request.ReferenceID, nil
}
