package handler

import (
	"context"

	"github.com/hotdrive/rental-service/rental/internal/model"
	"github.com/hotdrive/rental-service/rental/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type RentalService interface {
	ListVehicles(ctx context.Context) ([]model.Vehicle, error)
	SetVehicleStatus(ctx context.Context, id int, status model.VehicleStatus) error
	ResolveAvailability(ctx context.Context, from, to model.Date) (map[int]model.Classification, error)

	CreateBooking(ctx context.Context, req model.CreateBookingRequest) (model.Booking, error)
	GetBooking(ctx context.Context, id string) (model.Booking, error)
	ListBookings(ctx context.Context, status *model.BookingStatus) ([]model.Booking, error)
	ListUnassigned(ctx context.Context) ([]model.Booking, error)
	UpdateBooking(ctx context.Context, id string, req model.UpdateBookingRequest) (model.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status string) (model.Booking, error)
	AssignVehicle(ctx context.Context, id string, vehicleID int) (model.Booking, error)
	RescheduleBooking(ctx context.Context, id string, req model.RescheduleRequest) (model.Booking, error)
	DeleteBooking(ctx context.Context, id string) error

	Timeline(ctx context.Context, start model.Date, days int) (service.Timeline, error)
}

var _ RentalService = (*service.Service)(nil)
