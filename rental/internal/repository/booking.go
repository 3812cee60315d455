package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/hotdrive/rental-service/rental/internal/errs"
	"github.com/hotdrive/rental-service/rental/internal/model"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var bookingColumns = []string{
	"id", "reference", "status", "vehicle_id", "assigned_vehicle_id",
	"departure_date", "return_date", "pickup_time", "return_time",
	"client_name", "client_phone", "client_email",
	"total_price", "rental_days", "source", "created_at", "updated_at",
}

// IsUniqueViolation reports a postgres unique-constraint failure, used to
// retry reference generation on a rare same-instant collision.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func (r *repository) CreateBooking(ctx context.Context, b model.Booking) (model.Booking, error) {
	query, args, err := qb.Insert(bookingsTableName).
		Columns("id", "reference", "status", "vehicle_id", "assigned_vehicle_id",
			"departure_date", "return_date", "pickup_time", "return_time",
			"client_name", "client_phone", "client_email",
			"total_price", "rental_days", "source").
		Values(b.ID, b.Reference, b.Status, b.VehicleID, b.AssignedVehicleID,
			b.DepartureDate, b.ReturnDate, b.PickupTime, b.ReturnTime,
			b.ClientName, b.ClientPhone, b.ClientEmail,
			b.TotalPrice, b.RentalDays, b.Source).
		Suffix("returning " + columnList(bookingColumns)).
		ToSql()
	if err != nil {
		return model.Booking{}, err
	}
	var created model.Booking
	if err := r.db.GetContext(ctx, &created, query, args...); err != nil {
		r.log.Error("CreateBooking", zap.String("q", query), zap.Error(err))
		return model.Booking{}, err
	}
	return created, nil
}

func (r *repository) CreateCustomerBooking(ctx context.Context, rec model.CustomerBooking) error {
	query, args, err := qb.Insert(customerBookingsTableName).
		Columns("id", "reference", "vehicle_id", "departure_date", "return_date",
			"pickup_time", "return_time", "client_name", "client_phone", "client_email",
			"license_number", "supplements", "total_price", "rental_days").
		Values(rec.ID, rec.Reference, rec.VehicleID, rec.DepartureDate, rec.ReturnDate,
			rec.PickupTime, rec.ReturnTime, rec.ClientName, rec.ClientPhone, rec.ClientEmail,
			rec.LicenseNumber, rec.Supplements, rec.TotalPrice, rec.RentalDays).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

// UpdateCustomerReference re-points the customer record at a re-issued
// reference after a mirror-write collision.
func (r *repository) UpdateCustomerReference(ctx context.Context, id, reference string) error {
	query, args, err := qb.Update(customerBookingsTableName).
		Set("reference", reference).
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
		return errs.ErrNotFound
	}
	return nil
}

func (r *repository) CreateContact(ctx context.Context, bookingID, name, phone, email string) error {
	query, args, err := qb.Insert(contactsTableName).
		Columns("booking_id", "name", "phone", "email").
		Values(bookingID, name, phone, email).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *repository) GetBooking(ctx context.Context, id string) (model.Booking, error) {
	query, args, err := qb.Select(bookingColumns...).
		From(bookingsTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Booking{}, err
	}
	var b model.Booking
	if err := r.db.GetContext(ctx, &b, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Booking{}, errs.ErrNotFound
		}
		return model.Booking{}, err
	}
	return b, nil
}

func (r *repository) ListBookings(ctx context.Context, status *model.BookingStatus) ([]model.Booking, error) {
	q := qb.Select(bookingColumns...).
		From(bookingsTableName).
		OrderBy("departure_date", "created_at")
	if status != nil {
		q = q.Where(sq.Eq{"status": *status})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	var bookings []model.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListBlockingBookings returns bookings in a blocking status whose closed
// interval intersects [from, to].
func (r *repository) ListBlockingBookings(ctx context.Context, from, to model.Date) ([]model.Booking, error) {
	query, args, err := qb.Select(bookingColumns...).
		From(bookingsTableName).
		Where(sq.Eq{"status": []model.BookingStatus{model.StatusNew, model.StatusPending, model.StatusActive}}).
		Where(sq.LtOrEq{"departure_date": to}).
		Where(sq.GtOrEq{"return_date": from}).
		OrderBy("departure_date").
		ToSql()
	if err != nil {
		return nil, err
	}
	var bookings []model.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListScheduledBookings returns every non-cancelled booking intersecting
// [from, to]. The timeline keeps completed bars on the grid; only cancelled
// bookings disappear.
func (r *repository) ListScheduledBookings(ctx context.Context, from, to model.Date) ([]model.Booking, error) {
	query, args, err := qb.Select(bookingColumns...).
		From(bookingsTableName).
		Where(sq.NotEq{"status": model.StatusCancelled}).
		Where(sq.LtOrEq{"departure_date": to}).
		Where(sq.GtOrEq{"return_date": from}).
		OrderBy("departure_date").
		ToSql()
	if err != nil {
		return nil, err
	}
	var bookings []model.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repository) ListUnassigned(ctx context.Context) ([]model.Booking, error) {
	query, args, err := qb.Select(bookingColumns...).
		From(bookingsTableName).
		Where(sq.Eq{"assigned_vehicle_id": nil}).
		Where(sq.Eq{"status": []model.BookingStatus{model.StatusNew, model.StatusPending}}).
		OrderBy("departure_date").
		ToSql()
	if err != nil {
		return nil, err
	}
	var bookings []model.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repository) UpdateBookingStatus(ctx context.Context, id string, status model.BookingStatus) (model.Booking, error) {
	return r.updateBooking(ctx, id, map[string]interface{}{"status": status})
}

func (r *repository) AssignVehicle(ctx context.Context, id string, vehicleID int) (model.Booking, error) {
	return r.updateBooking(ctx, id, map[string]interface{}{"assigned_vehicle_id": vehicleID})
}

func (r *repository) Reschedule(ctx context.Context, id string, departure, ret model.Date, rentalDays int) (model.Booking, error) {
	return r.updateBooking(ctx, id, map[string]interface{}{
		"departure_date": departure,
		"return_date":    ret,
		"rental_days":    rentalDays,
	})
}

func (r *repository) UpdateBooking(ctx context.Context, id string, req model.UpdateBookingRequest, rentalDays *int) (model.Booking, error) {
	set := map[string]interface{}{}
	if req.ClientName != nil {
		set["client_name"] = *req.ClientName
	}
	if req.ClientPhone != nil {
		set["client_phone"] = *req.ClientPhone
	}
	if req.ClientEmail != nil {
		set["client_email"] = *req.ClientEmail
	}
	if req.DepartureDate != nil {
		set["departure_date"] = *req.DepartureDate
	}
	if req.ReturnDate != nil {
		set["return_date"] = *req.ReturnDate
	}
	if req.TotalPrice != nil {
		set["total_price"] = *req.TotalPrice
	}
	if rentalDays != nil {
		set["rental_days"] = *rentalDays
	}
	if len(set) == 0 {
		return r.GetBooking(ctx, id)
	}
	return r.updateBooking(ctx, id, set)
}

func (r *repository) updateBooking(ctx context.Context, id string, set map[string]interface{}) (model.Booking, error) {
	q := qb.Update(bookingsTableName).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("returning " + columnList(bookingColumns))
	for col, val := range set {
		q = q.Set(col, val)
	}
	query, args, err := q.ToSql()
	if err != nil {
		return model.Booking{}, err
	}
	var b model.Booking
	if err := r.db.GetContext(ctx, &b, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Booking{}, errs.ErrNotFound
		}
		r.log.Error("updateBooking", zap.String("q", query), zap.Error(err))
		return model.Booking{}, err
	}
	return b, nil
}

// DeleteBooking removes the booking and its contact entry in one
// transaction. Hard delete, no undo.
func (r *repository) DeleteBooking(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		fmt.Sprintf(`delete from %s where booking_id = $1`, contactsTableName), id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx,
		fmt.Sprintf(`delete from %s where id = $1`, bookingsTableName), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 { //nolint:errcheck
		return errs.ErrNotFound
	}
	return tx.Commit()
}

// MaxReferenceSeq returns the highest sequence already issued for the given
// year-month reference prefix, 0 when the month has none.
func (r *repository) MaxReferenceSeq(ctx context.Context, prefix string) (int, error) {
	q := `
select coalesce(max(substring(reference from '\d{4}$')::int), 0)
from bookings
where reference like $1`
	var seq int
	if err := r.db.QueryRowContext(ctx, q, prefix+"%").Scan(&seq); err != nil {
		return 0, err
	}
	return seq, nil
}

func columnList(cols []string) string {
	return strings.Join(cols, ", ")
}
