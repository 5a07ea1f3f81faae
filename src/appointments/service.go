package appointments

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sahatak/telecare-agent/src/cache"
	"github.com/sahatak/telecare-agent/src/common/models"
	"github.com/sahatak/telecare-agent/src/common/rest"
)

type service struct {
	api      rest.Client
	memoizer *cache.Memoizer
	cache    cache.CacheService
}

func NewService(api rest.Client, cacheService cache.CacheService) Service {
	return &service{
		api:      api,
		memoizer: cache.NewMemoizer(cacheService),
		cache:    cacheService,
	}
}

func (s *service) Doctors(ctx context.Context, specialty string, forceRefresh bool) ([]models.Doctor, error) {
	var params any
	if specialty != "" {
		params = map[string]string{"specialty": specialty}
	}
	return cache.Fetch(ctx, s.memoizer, cache.TypeDoctorsList, cache.TypeDoctorsList, params, forceRefresh,
		func(ctx context.Context) ([]models.Doctor, error) {
			query := url.Values{}
			if specialty != "" {
				query.Set("specialty", specialty)
			}
			var doctors []models.Doctor
			err := s.api.Get(ctx, "/appointments/doctors", query, &doctors)
			return doctors, err
		})
}

func (s *service) Availability(ctx context.Context, doctorID, date string, forceRefresh bool) ([]models.AvailabilitySlot, error) {
	params := map[string]string{"doctor_id": doctorID, "date": date}
	return cache.Fetch(ctx, s.memoizer, cache.TypeDoctorAvailability, cache.TypeDoctorAvailability, params, forceRefresh,
		func(ctx context.Context) ([]models.AvailabilitySlot, error) {
			query := url.Values{"date": {date}}
			var slots []models.AvailabilitySlot
			err := s.api.Get(ctx, fmt.Sprintf("/appointments/doctors/%s/availability", doctorID), query, &slots)
			return slots, err
		})
}

func (s *service) Book(ctx context.Context, request models.BookingRequest) (models.Appointment, error) {
	var appointment models.Appointment
	if strings.TrimSpace(request.DoctorID) == "" {
		return appointment, &rest.ValidationError{Field: "doctor_id", Reason: "required"}
	}
	if request.ScheduledAt.IsZero() {
		return appointment, &rest.ValidationError{Field: "scheduled_at", Reason: "required"}
	}

	if err := s.api.Post(ctx, "/appointments/", request, &appointment); err != nil {
		return appointment, err
	}

	// The booked slot is gone; cached availability for that doctor is now wrong.
	s.cache.ClearByType(cache.TypeDoctorAvailability)
	s.cache.ClearByType(cache.TypeAppointments)
	return appointment, nil
}

func (s *service) Cancel(ctx context.Context, appointmentID string) error {
	if err := s.api.Put(ctx, fmt.Sprintf("/appointments/%s/cancel", appointmentID), nil, nil); err != nil {
		return err
	}
	s.cache.ClearByType(cache.TypeAppointments)
	s.cache.ClearByType(cache.TypeDoctorAvailability)
	return nil
}

func (s *service) Reschedule(ctx context.Context, appointmentID string, newTime time.Time) (models.Appointment, error) {
	var appointment models.Appointment
	if newTime.IsZero() {
		return appointment, &rest.ValidationError{Field: "scheduled_at", Reason: "required"}
	}

	body := map[string]time.Time{"scheduled_at": newTime}
	if err := s.api.Put(ctx, fmt.Sprintf("/appointments/%s/reschedule", appointmentID), body, &appointment); err != nil {
		return appointment, err
	}

	s.cache.ClearByType(cache.TypeAppointments)
	s.cache.ClearByType(cache.TypeDoctorAvailability)
	return appointment, nil
}
