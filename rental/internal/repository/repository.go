package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/hotdrive/rental-service/rental/internal/errs"
	"github.com/hotdrive/rental-service/rental/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go

type Repository interface {
	ListVehicles(ctx context.Context) ([]model.Vehicle, error)
	GetVehicle(ctx context.Context, id int) (model.Vehicle, error)
	UpdateVehicleStatus(ctx context.Context, id int, status model.VehicleStatus) error

	CreateBooking(ctx context.Context, b model.Booking) (model.Booking, error)
	CreateCustomerBooking(ctx context.Context, rec model.CustomerBooking) error
	UpdateCustomerReference(ctx context.Context, id, reference string) error
	CreateContact(ctx context.Context, bookingID, name, phone, email string) error
	GetBooking(ctx context.Context, id string) (model.Booking, error)
	ListBookings(ctx context.Context, status *model.BookingStatus) ([]model.Booking, error)
	ListBlockingBookings(ctx context.Context, from, to model.Date) ([]model.Booking, error)
	ListScheduledBookings(ctx context.Context, from, to model.Date) ([]model.Booking, error)
	ListUnassigned(ctx context.Context) ([]model.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status model.BookingStatus) (model.Booking, error)
	AssignVehicle(ctx context.Context, id string, vehicleID int) (model.Booking, error)
	Reschedule(ctx context.Context, id string, departure, ret model.Date, rentalDays int) (model.Booking, error)
	UpdateBooking(ctx context.Context, id string, req model.UpdateBookingRequest, rentalDays *int) (model.Booking, error)
	DeleteBooking(ctx context.Context, id string) error

	MaxReferenceSeq(ctx context.Context, prefix string) (int, error)

	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	vehiclesTableName         = `vehicles`
	bookingsTableName         = `bookings`
	customerBookingsTableName = `customer_bookings`
	contactsTableName         = `contacts`
	settingsTableName         = `settings`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var vehicleColumns = []string{
	"id", "name", "brand", "model", "year", "category",
	"transmission", "fuel", "seats", "price_per_day", "image_url", "status",
}

func (r *repository) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	query, args, err := qb.Select(vehicleColumns...).
		From(vehiclesTableName).
		Where(sq.NotEq{"status": model.VehicleRetired}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	var vehicles []model.Vehicle
	if err := r.db.SelectContext(ctx, &vehicles, query, args...); err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *repository) GetVehicle(ctx context.Context, id int) (model.Vehicle, error) {
	query, args, err := qb.Select(vehicleColumns...).
		From(vehiclesTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Vehicle{}, err
	}
	var v model.Vehicle
	if err := r.db.GetContext(ctx, &v, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Vehicle{}, errs.ErrVehicleNotFound
		}
		return model.Vehicle{}, err
	}
	return v, nil
}

func (r *repository) UpdateVehicleStatus(ctx context.Context, id int, status model.VehicleStatus) error {
	query, args, err := qb.Update(vehiclesTableName).
		Set("status", status).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 { //nolint:errcheck
		return errs.ErrVehicleNotFound
	}
	return nil
}

func (r *repository) GetSetting(ctx context.Context, key string) (string, error) {
	query, args, err := qb.Select("value").
		From(settingsTableName).
		Where(sq.Eq{"key": key}).
		Limit(1).
		ToSql()
	if err != nil {
		return "", err
	}
	var value string
	if err := r.db.GetContext(ctx, &value, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", errs.ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *repository) SetSetting(ctx context.Context, key, value string) error {
	q := `
insert into settings (key, value) values ($1, $2)
on conflict (key) do update set value = excluded.value`
	_, err := r.db.ExecContext(ctx, q, key, value)
	return err
}
