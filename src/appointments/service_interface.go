package appointments

import (
	"context"
	"time"

	"github.com/sahatak/telecare-agent/src/common/models"
)

type Service interface {
	// Doctors lists doctors, optionally filtered by specialty. Served from cache
	// inside the TTL window unless forceRefresh is set.
	Doctors(ctx context.Context, specialty string, forceRefresh bool) ([]models.Doctor, error)

	// Availability lists a doctor's bookable slots for one date (YYYY-MM-DD).
	Availability(ctx context.Context, doctorID, date string, forceRefresh bool) ([]models.AvailabilitySlot, error)

	// Book creates an appointment and invalidates the cached availability the slot
	// came from.
	Book(ctx context.Context, request models.BookingRequest) (models.Appointment, error)

	Cancel(ctx context.Context, appointmentID string) error

	Reschedule(ctx context.Context, appointmentID string, newTime time.Time) (models.Appointment, error)
}
