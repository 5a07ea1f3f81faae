package models

// ProblemReport is the report-a-problem form payload.
type ProblemReport struct {
	ReferenceID string `json:"reference_id"`
	Category    string `json:"category"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	ContactBack bool   `json:"contact_back"`
}

// SupervisorRequest is the contact-supervisor form payload.
type SupervisorRequest struct {
	ReferenceID   string `json:"reference_id"`
	AppointmentID string `json:"appointment_id,omitempty"`
	Subject       string `json:"subject"`
	Message       string `json:"message"`
}
