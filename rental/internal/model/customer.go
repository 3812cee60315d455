package model

import (
	"encoding/json"
	"time"
)

// CustomerBooking is the full customer submission. It is written once at
// creation; scheduling works off the reduced Booking record.
type CustomerBooking struct {
	ID            string          `db:"id"`
	Reference     string          `db:"reference"`
	VehicleID     int             `db:"vehicle_id"`
	DepartureDate Date            `db:"departure_date"`
	ReturnDate    Date            `db:"return_date"`
	PickupTime    string          `db:"pickup_time"`
	ReturnTime    string          `db:"return_time"`
	ClientName    string          `db:"client_name"`
	ClientPhone   string          `db:"client_phone"`
	ClientEmail   string          `db:"client_email"`
	LicenseNumber string          `db:"license_number"`
	Supplements   json.RawMessage `db:"supplements"`
	TotalPrice    float64         `db:"total_price"`
	RentalDays    int             `db:"rental_days"`
	CreatedAt     time.Time       `db:"created_at"`
}
