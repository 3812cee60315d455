package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/hotdrive/rental-service/pkg/kafka"
	"github.com/hotdrive/rental-service/rental/internal/errs"
	"github.com/hotdrive/rental-service/rental/internal/model"
	"github.com/hotdrive/rental-service/rental/internal/repository"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Service struct {
	log      *zap.Logger
	repo     repository.Repository
	producer sarama.SyncProducer
	failMode FailMode
	now      func() time.Time
}

type Option func(*Service)

// WithProducer wires the notification producer. Without it confirmation
// notifications are skipped (logged), nothing else changes.
func WithProducer(p sarama.SyncProducer) Option {
	return func(s *Service) { s.producer = p }
}

func WithFailMode(m FailMode) Option {
	return func(s *Service) { s.failMode = m }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo repository.Repository, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		log:      log,
		repo:     repo,
		failMode: FailOpen,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	return s.repo.ListVehicles(ctx)
}

func (s *Service) SetVehicleStatus(ctx context.Context, id int, status model.VehicleStatus) error {
	switch status {
	case model.VehicleAvailable, model.VehicleMaintenance, model.VehicleRetired:
	default:
		return errors.Errorf("unknown vehicle status %q", status)
	}
	return s.repo.UpdateVehicleStatus(ctx, id, status)
}

func (s *Service) GetBooking(ctx context.Context, id string) (model.Booking, error) {
	return s.repo.GetBooking(ctx, id)
}

func (s *Service) ListBookings(ctx context.Context, status *model.BookingStatus) ([]model.Booking, error) {
	return s.repo.ListBookings(ctx, status)
}

func (s *Service) ListUnassigned(ctx context.Context) ([]model.Booking, error) {
	return s.repo.ListUnassigned(ctx)
}

// CreateBooking validates the request, prices it, persists the primary
// record and mirrors customer bookings into the admin table. Mirror failure
// never rolls back the customer-facing success.
func (s *Service) CreateBooking(ctx context.Context, req model.CreateBookingRequest) (model.Booking, error) {
	if !req.ReturnDate.After(req.DepartureDate.Time) {
		return model.Booking{}, errs.ErrInvalidDates
	}
	today := model.DateOf(s.now())
	if req.DepartureDate.Before(today.Time) {
		return model.Booking{}, errs.ErrPastDeparture
	}
	vehicle, err := s.repo.GetVehicle(ctx, req.VehicleID)
	if err != nil {
		return model.Booking{}, err
	}
	if vehicle.Status == model.VehicleRetired {
		return model.Booking{}, errs.ErrVehicleNotFound
	}

	source := req.Source
	if source == "" {
		source = model.SourceWeb
	}
	status := model.StatusPending
	if req.Status != "" {
		status = model.NormalizeStatus(req.Status)
	} else if source == model.SourceWalkIn {
		status = model.StatusActive
	}

	days := model.RentalDays(req.DepartureDate, req.ReturnDate)
	total := vehicle.PricePerDay * float64(days)
	for _, sup := range req.Supplements {
		if sup.PerDay {
			total += sup.Price * float64(days)
			continue
		}
		total += sup.Price
	}

	booking := model.Booking{
		ID:            uuid.NewString(),
		Status:        status,
		VehicleID:     req.VehicleID,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		PickupTime:    req.PickupTime,
		ReturnTime:    req.ReturnTime,
		ClientName:    req.ClientName,
		ClientPhone:   req.ClientPhone,
		ClientEmail:   req.ClientEmail,
		TotalPrice:    total,
		RentalDays:    days,
		Source:        source,
	}
	// web bookings are auto-assigned to the vehicle the customer picked;
	// phone bookings wait in the unassigned panel
	if source != model.SourcePhone {
		vehicleID := req.VehicleID
		booking.AssignedVehicleID = &vehicleID
	}

	if source == model.SourceWeb {
		return s.createCustomerBooking(ctx, req, booking)
	}
	return s.createAdminBooking(ctx, booking)
}

// createAdminBooking writes the scheduling record directly (staff quick-add).
func (s *Service) createAdminBooking(ctx context.Context, booking model.Booking) (model.Booking, error) {
	created, err := s.insertWithReference(ctx, booking)
	if err != nil {
		return model.Booking{}, err
	}
	if err := s.repo.CreateContact(ctx, created.ID, created.ClientName, created.ClientPhone, created.ClientEmail); err != nil {
		s.log.Warn("create contact", zap.String("booking", created.ID), zap.Error(err))
	}
	return created, nil
}

// createCustomerBooking writes the full customer record first; the admin
// mirror is best-effort.
func (s *Service) createCustomerBooking(ctx context.Context, req model.CreateBookingRequest, booking model.Booking) (model.Booking, error) {
	reference, err := s.GenerateReference(ctx)
	if err != nil {
		return model.Booking{}, err
	}
	booking.Reference = reference

	supplements, err := json.Marshal(req.Supplements)
	if err != nil {
		return model.Booking{}, errors.Wrap(err, "marshal supplements")
	}
	rec := model.CustomerBooking{
		ID:            booking.ID,
		Reference:     booking.Reference,
		VehicleID:     booking.VehicleID,
		DepartureDate: booking.DepartureDate,
		ReturnDate:    booking.ReturnDate,
		PickupTime:    booking.PickupTime,
		ReturnTime:    booking.ReturnTime,
		ClientName:    booking.ClientName,
		ClientPhone:   booking.ClientPhone,
		ClientEmail:   booking.ClientEmail,
		LicenseNumber: req.LicenseNumber,
		Supplements:   supplements,
		TotalPrice:    booking.TotalPrice,
		RentalDays:    booking.RentalDays,
	}
	if err := s.repo.CreateCustomerBooking(ctx, rec); err != nil {
		return model.Booking{}, err
	}

	mirrored, err := s.repo.CreateBooking(ctx, booking)
	if repository.IsUniqueViolation(err) {
		// another booking claimed the reference between generation and
		// insert; re-issue and keep the customer record pointing at the
		// reference the mirror actually got
		mirrored, err = s.insertWithReference(ctx, booking)
		if err == nil && mirrored.Reference != rec.Reference {
			if uerr := s.repo.UpdateCustomerReference(ctx, rec.ID, mirrored.Reference); uerr != nil {
				s.log.Warn("sync customer reference", zap.String("booking", rec.ID), zap.Error(uerr))
			}
		}
	}
	if err != nil {
		// the customer already has a confirmed submission; staff will see
		// the booking on the next sheet reconciliation
		s.log.Error("admin mirror write failed", zap.String("reference", booking.Reference), zap.Error(err))
		return booking, nil
	}
	if err := s.repo.CreateContact(ctx, mirrored.ID, mirrored.ClientName, mirrored.ClientPhone, mirrored.ClientEmail); err != nil {
		s.log.Warn("create contact", zap.String("booking", mirrored.ID), zap.Error(err))
	}
	return mirrored, nil
}

func (s *Service) insertWithReference(ctx context.Context, booking model.Booking) (model.Booking, error) {
	const attempts = 3
	var lastErr error
	for i := 0; i < attempts; i++ {
		reference, err := s.GenerateReference(ctx)
		if err != nil {
			return model.Booking{}, err
		}
		booking.Reference = reference
		created, err := s.repo.CreateBooking(ctx, booking)
		if err == nil {
			return created, nil
		}
		if !repository.IsUniqueViolation(err) {
			return model.Booking{}, err
		}
		lastErr = err
	}
	return model.Booking{}, errors.Wrap(lastErr, "reference collision")
}

// UpdateBookingStatus applies any status change: the forward flow is a UI
// affordance, not an enforced state machine. Moving into the active state
// dispatches a confirmation notification when an email is on file.
func (s *Service) UpdateBookingStatus(ctx context.Context, id string, status string) (model.Booking, error) {
	next := model.NormalizeStatus(status)
	prev, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return model.Booking{}, err
	}
	updated, err := s.repo.UpdateBookingStatus(ctx, id, next)
	if err != nil {
		return model.Booking{}, err
	}
	if next == model.StatusActive && prev.Status != model.StatusActive && updated.ClientEmail != "" {
		s.notifyConfirmation(ctx, updated)
	}
	return updated, nil
}

// AssignVehicle sets the allocated vehicle. Availability is deliberately not
// re-checked here: the grid only offers non-conflicting rows, and staff may
// overrule it anyway.
func (s *Service) AssignVehicle(ctx context.Context, id string, vehicleID int) (model.Booking, error) {
	if _, err := s.repo.GetVehicle(ctx, vehicleID); err != nil {
		return model.Booking{}, err
	}
	return s.repo.AssignVehicle(ctx, id, vehicleID)
}

// RescheduleBooking implements the drag-drop contract: the new start comes
// from the target cell, duration is preserved unless an explicit end is
// given, and a vehicle change is rejected because drag is same-row only.
func (s *Service) RescheduleBooking(ctx context.Context, id string, req model.RescheduleRequest) (model.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return model.Booking{}, err
	}
	if req.VehicleID != nil && !CanDrop(booking, *req.VehicleID) {
		return model.Booking{}, errs.ErrVehicleMismatch
	}

	newStart := req.DepartureDate
	var newEnd model.Date
	if req.ReturnDate != nil {
		newEnd = *req.ReturnDate
	} else {
		duration := int(booking.ReturnDate.Sub(booking.DepartureDate.Time).Hours() / 24)
		newEnd = newStart.AddDays(duration)
	}
	if newEnd.Before(newStart.Time) {
		return model.Booking{}, errs.ErrInvalidDates
	}
	return s.repo.Reschedule(ctx, id, newStart, newEnd, model.RentalDays(newStart, newEnd))
}

// UpdateBooking applies field edits from the details modal. Rental days
// follow date edits; the price does not, staff negotiate it by hand.
func (s *Service) UpdateBooking(ctx context.Context, id string, req model.UpdateBookingRequest) (model.Booking, error) {
	current, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return model.Booking{}, err
	}
	var rentalDays *int
	if req.DepartureDate != nil || req.ReturnDate != nil {
		departure := current.DepartureDate
		ret := current.ReturnDate
		if req.DepartureDate != nil {
			departure = *req.DepartureDate
		}
		if req.ReturnDate != nil {
			ret = *req.ReturnDate
		}
		if !ret.After(departure.Time) {
			return model.Booking{}, errs.ErrInvalidDates
		}
		days := model.RentalDays(departure, ret)
		rentalDays = &days
	}
	return s.repo.UpdateBooking(ctx, id, req, rentalDays)
}

func (s *Service) DeleteBooking(ctx context.Context, id string) error {
	return s.repo.DeleteBooking(ctx, id)
}

// notifyConfirmation is fire-and-forget: a failed notification must never
// make a valid status change look failed.
func (s *Service) notifyConfirmation(ctx context.Context, b model.Booking) {
	if s.producer == nil {
		s.log.Debug("notification skipped, no producer", zap.String("reference", b.Reference))
		return
	}
	vehicleName := ""
	if vehicle, err := s.repo.GetVehicle(ctx, b.OccupiedVehicleID()); err == nil {
		vehicleName = vehicle.Name
	}
	payload := model.NotificationPayload{
		Reference:     b.Reference,
		Email:         b.ClientEmail,
		ClientName:    b.ClientName,
		VehicleName:   vehicleName,
		DepartureDate: b.DepartureDate,
		ReturnDate:    b.ReturnDate,
		TotalPrice:    b.TotalPrice,
	}
	value, err := json.Marshal(payload)
	if err != nil {
		s.log.Error("marshal notification", zap.Error(err))
		return
	}
	_, _, err = s.producer.SendMessage(&sarama.ProducerMessage{
		Topic: kafka.NotificationTopic,
		Key:   sarama.StringEncoder(b.Reference),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		s.log.Error("send notification", zap.String("reference", b.Reference), zap.Error(err))
	}
}
