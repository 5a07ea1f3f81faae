package models

import (
	"time"

	"github.com/sahatak/telecare-agent/src/common/models/enum"
)

type Doctor struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Specialty string `json:"specialty"`
}

// AvailabilitySlot is one bookable time range on a doctor's calendar.
type AvailabilitySlot struct {
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	Available bool      `json:"available"`
}

type Appointment struct {
	ID          string                 `json:"id"`
	DoctorID    string                 `json:"doctor_id"`
	PatientID   string                 `json:"patient_id"`
	ScheduledAt time.Time              `json:"scheduled_at"`
	Status      enum.AppointmentStatus `json:"status"`
	Reason      string                 `json:"reason,omitempty"`
}

// BookingRequest is the payload for creating a new appointment.
type BookingRequest struct {
	DoctorID    string    `json:"doctor_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Reason      string    `json:"reason,omitempty"`
}
