package service

import (
	"context"

	"github.com/hotdrive/rental-service/rental/internal/model"
	"go.uber.org/zap"
)

// FailMode decides what the availability endpoint reports when the
// underlying lookup fails. The right default is a business decision:
// fail-open trades an overbooking risk for never blocking sales.
type FailMode string

const (
	FailOpen   FailMode = "open"
	FailClosed FailMode = "closed"
)

// ResolveAvailability classifies every vehicle for the requested window.
// Escalation is monotonic: available -> partial_conflict -> unavailable;
// maintenance pre-empts everything.
func ResolveAvailability(from, to model.Date, bookings []model.Booking, vehicles []model.Vehicle) map[int]model.Classification {
	result := make(map[int]model.Classification, len(vehicles))
	for _, v := range vehicles {
		if v.Status == model.VehicleMaintenance {
			result[v.ID] = model.ClassMaintenance
			continue
		}
		result[v.ID] = model.ClassAvailable
	}

	for _, b := range bookings {
		if !b.Status.IsBlocking() {
			continue
		}
		if !model.Overlaps(b.DepartureDate, b.ReturnDate, from, to) {
			continue
		}
		vehicleID := b.OccupiedVehicleID()
		current, ok := result[vehicleID]
		if !ok || current == model.ClassMaintenance || current == model.ClassUnavailable {
			continue
		}
		if model.Contains(b.DepartureDate, b.ReturnDate, from, to) {
			result[vehicleID] = model.ClassUnavailable
			continue
		}
		result[vehicleID] = model.ClassPartialConflict
	}
	return result
}

// ResolveAvailability is the fetching wrapper around the pure resolver; on
// lookup failure it applies the configured fail policy instead of
// propagating the error.
func (s *Service) ResolveAvailability(ctx context.Context, from, to model.Date) (map[int]model.Classification, error) {
	vehicles, err := s.repo.ListVehicles(ctx)
	if err != nil {
		s.log.Error("availability: list vehicles", zap.Error(err))
		return s.failPolicy(nil), nil
	}
	bookings, err := s.repo.ListBlockingBookings(ctx, from, to)
	if err != nil {
		s.log.Error("availability: list bookings", zap.Error(err))
		return s.failPolicy(vehicles), nil
	}
	return ResolveAvailability(from, to, bookings, vehicles), nil
}

func (s *Service) failPolicy(vehicles []model.Vehicle) map[int]model.Classification {
	fallback := model.ClassAvailable
	if s.failMode == FailClosed {
		fallback = model.ClassUnavailable
	}
	result := make(map[int]model.Classification, len(vehicles))
	for _, v := range vehicles {
		result[v.ID] = fallback
	}
	return result
}
