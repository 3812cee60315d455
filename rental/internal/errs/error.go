package errs

import (
	"errors"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrInvalidDates    = errors.New("return date must be after departure date")
	ErrPastDeparture   = errors.New("departure date is in the past")
	ErrVehicleMismatch = errors.New("reschedule cannot move a booking to another vehicle")
	ErrNoSelection     = errors.New("no booking armed for assignment")
)

type ValidationErrorResponse struct {
	Message string `json:"message"`
	Errors  struct {
		AdditionalProperties string `json:"additionalProperties"`
	} `json:"errors"`
}
