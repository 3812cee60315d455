package model

import (
	"time"
)

type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "available"
	VehicleMaintenance VehicleStatus = "maintenance"
	VehicleRetired     VehicleStatus = "retired"
)

type Vehicle struct {
	ID           int           `json:"id" db:"id"`
	Name         string        `json:"name" db:"name"`
	Brand        string        `json:"brand" db:"brand"`
	Model        string        `json:"model" db:"model"`
	Year         int           `json:"year" db:"year"`
	Category     string        `json:"category" db:"category"`
	Transmission string        `json:"transmission" db:"transmission"`
	Fuel         string        `json:"fuel" db:"fuel"`
	Seats        int           `json:"seats" db:"seats"`
	PricePerDay  float64       `json:"pricePerDay" db:"price_per_day"`
	ImageURL     string        `json:"imageUrl" db:"image_url"`
	Status       VehicleStatus `json:"status" db:"status"`
}

type BookingStatus string

const (
	StatusNew       BookingStatus = "new"
	StatusPending   BookingStatus = "pending"
	StatusActive    BookingStatus = "active"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// NormalizeStatus maps the legacy customer-flow vocabulary onto the admin
// enum: "confirmed" and "active" are the same locked-in state.
func NormalizeStatus(s string) BookingStatus {
	switch BookingStatus(s) {
	case StatusNew, StatusPending, StatusActive, StatusCompleted, StatusCancelled:
		return BookingStatus(s)
	}
	if s == "confirmed" {
		return StatusActive
	}
	return StatusNew
}

// IsBlocking reports whether a booking in this status occupies its vehicle
// for availability purposes.
func (s BookingStatus) IsBlocking() bool {
	switch s {
	case StatusNew, StatusPending, StatusActive:
		return true
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type BookingSource string

const (
	SourceWeb    BookingSource = "web"
	SourceWalkIn BookingSource = "walk_in"
	SourcePhone  BookingSource = "phone"
)

type Booking struct {
	ID                string        `json:"id" db:"id"`
	Reference         string        `json:"reference" db:"reference"`
	Status            BookingStatus `json:"status" db:"status"`
	VehicleID         int           `json:"vehicleId" db:"vehicle_id"`
	AssignedVehicleID *int          `json:"assignedVehicleId,omitempty" db:"assigned_vehicle_id"`
	DepartureDate     Date          `json:"departureDate" db:"departure_date"`
	ReturnDate        Date          `json:"returnDate" db:"return_date"`
	PickupTime        string        `json:"pickupTime,omitempty" db:"pickup_time"`
	ReturnTime        string        `json:"returnTime,omitempty" db:"return_time"`
	ClientName        string        `json:"clientName" db:"client_name"`
	ClientPhone       string        `json:"clientPhone" db:"client_phone"`
	ClientEmail       string        `json:"clientEmail,omitempty" db:"client_email"`
	TotalPrice        float64       `json:"totalPrice" db:"total_price"`
	RentalDays        int           `json:"rentalDays" db:"rental_days"`
	Source            BookingSource `json:"source" db:"source"`
	CreatedAt         time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time     `json:"updatedAt" db:"updated_at"`
}

// OccupiedVehicleID is the vehicle the booking actually blocks: the assigned
// vehicle when staff allocated one, the requested vehicle otherwise.
func (b Booking) OccupiedVehicleID() int {
	if b.AssignedVehicleID != nil {
		return *b.AssignedVehicleID
	}
	return b.VehicleID
}

// Unassigned bookings await staff allocation and show up in a dedicated panel.
func (b Booking) Unassigned() bool {
	return b.AssignedVehicleID == nil && (b.Status == StatusNew || b.Status == StatusPending)
}

type Classification string

const (
	ClassAvailable       Classification = "available"
	ClassPartialConflict Classification = "partial_conflict"
	ClassUnavailable     Classification = "unavailable"
	ClassMaintenance     Classification = "maintenance"
)

type Supplement struct {
	Code   string  `json:"code" validate:"required,oneof=child_seat insurance extra_driver"`
	Price  float64 `json:"price" validate:"gte=0"`
	PerDay bool    `json:"perDay"`
}

type CreateBookingRequest struct {
	VehicleID     int           `json:"vehicleId" validate:"required,gt=0"`
	DepartureDate Date          `json:"departureDate" validate:"required"`
	ReturnDate    Date          `json:"returnDate" validate:"required"`
	PickupTime    string        `json:"pickupTime,omitempty" validate:"omitempty,datetime=15:04"`
	ReturnTime    string        `json:"returnTime,omitempty" validate:"omitempty,datetime=15:04"`
	ClientName    string        `json:"clientName" validate:"required"`
	ClientPhone   string        `json:"clientPhone" validate:"required,min=6"`
	ClientEmail   string        `json:"clientEmail,omitempty" validate:"omitempty,email"`
	LicenseNumber string        `json:"licenseNumber,omitempty"`
	Supplements   []Supplement  `json:"supplements,omitempty" validate:"dive"`
	Source        BookingSource `json:"source,omitempty"`
	Status        string        `json:"status,omitempty"`
}

type UpdateBookingRequest struct {
	ClientName    *string  `json:"clientName,omitempty"`
	ClientPhone   *string  `json:"clientPhone,omitempty"`
	ClientEmail   *string  `json:"clientEmail,omitempty"`
	DepartureDate *Date    `json:"departureDate,omitempty"`
	ReturnDate    *Date    `json:"returnDate,omitempty"`
	TotalPrice    *float64 `json:"totalPrice,omitempty"`
}

type RescheduleRequest struct {
	DepartureDate Date  `json:"departureDate" validate:"required"`
	ReturnDate    *Date `json:"returnDate,omitempty"`
	VehicleID     *int  `json:"vehicleId,omitempty"`
}

// NotificationPayload goes to the notification topic when a booking is
// confirmed and an email is on file.
type NotificationPayload struct {
	Reference     string  `json:"reference"`
	Email         string  `json:"email"`
	ClientName    string  `json:"clientName"`
	VehicleName   string  `json:"vehicleName"`
	DepartureDate Date    `json:"departureDate"`
	ReturnDate    Date    `json:"returnDate"`
	TotalPrice    float64 `json:"totalPrice"`
}
