package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/hotdrive/rental-service/pkg/validate"
	"github.com/hotdrive/rental-service/rental/internal/errs"
	"github.com/hotdrive/rental-service/rental/internal/handler"
	"github.com/hotdrive/rental-service/rental/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	service_mocks "github.com/hotdrive/rental-service/rental/internal/handler/mocks"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validate.NewCustomValidator()
	return e
}

func newHandler(svc handler.RentalService) *handler.Handler {
	return handler.New(svc, nil, "admin-secret", zap.NewNop())
}

func TestHandler_CreateBooking(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockRentalService)

	vehicleTwo := 2
	created := model.Booking{
		ID:                "b1",
		Reference:         "HD-2024-07-0003",
		Status:            model.StatusPending,
		VehicleID:         2,
		AssignedVehicleID: &vehicleTwo,
		DepartureDate:     model.NewDate(2024, time.July, 10),
		ReturnDate:        model.NewDate(2024, time.July, 13),
		ClientName:        "Ada Lovelace",
		ClientPhone:       "+49123456",
		TotalPrice:        195,
		RentalDays:        3,
		Source:            model.SourceWeb,
	}

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"vehicleId":2,"departureDate":"2024-07-10","returnDate":"2024-07-13","clientName":"Ada Lovelace","clientPhone":"+49123456"}`,
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					CreateBooking(gomock.Any(), model.CreateBookingRequest{
						VehicleID:     2,
						DepartureDate: model.NewDate(2024, time.July, 10),
						ReturnDate:    model.NewDate(2024, time.July, 13),
						ClientName:    "Ada Lovelace",
						ClientPhone:   "+49123456",
						Source:        model.SourceWeb,
					}).
					Return(created, nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"id":"b1","reference":"HD-2024-07-0003","status":"pending","vehicleId":2,"assignedVehicleId":2,"departureDate":"2024-07-10","returnDate":"2024-07-13","clientName":"Ada Lovelace","clientPhone":"+49123456","totalPrice":195,"rentalDays":3,"source":"web","createdAt":"0001-01-01T00:00:00Z","updatedAt":"0001-01-01T00:00:00Z"}`,
			},
		},
		{
			name:         "err. clientName required",
			body:         `{"vehicleId":2,"departureDate":"2024-07-10","returnDate":"2024-07-13","clientPhone":"+49123456"}`,
			mockBehavior: func(r *service_mocks.MockRentalService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
		{
			name: "err. past departure",
			body: `{"vehicleId":2,"departureDate":"2020-01-02","returnDate":"2020-01-05","clientName":"Ada Lovelace","clientPhone":"+49123456"}`,
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					CreateBooking(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, errs.ErrPastDeparture)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"departure date is in the past"}`,
			},
		},
		{
			name: "err. vehicle not found",
			body: `{"vehicleId":99,"departureDate":"2024-07-10","returnDate":"2024-07-13","clientName":"Ada Lovelace","clientPhone":"+49123456"}`,
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					CreateBooking(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, errs.ErrVehicleNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"vehicle not found"}`,
			},
		},
		{
			name: "err. internal",
			body: `{"vehicleId":2,"departureDate":"2024-07-10","returnDate":"2024-07-13","clientName":"Ada Lovelace","clientPhone":"+49123456"}`,
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					CreateBooking(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, errors.New("db internal"))
			},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"message":"db internal"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockRentalService(c)
			h := newHandler(svc)

			e := newEcho()
			e.POST("/bookings", h.CreateBooking)

			r := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_GetAvailability(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockRentalService)

	var tests = []struct {
		name         string
		query        string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:  "ok",
			query: "from=2024-07-10&to=2024-07-13",
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					ResolveAvailability(gomock.Any(), model.NewDate(2024, time.July, 10), model.NewDate(2024, time.July, 13)).
					Return(map[int]model.Classification{
						1: model.ClassAvailable,
						2: model.ClassPartialConflict,
						3: model.ClassMaintenance,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"1":"available","2":"partial_conflict","3":"maintenance"}`,
			},
		},
		{
			name:  "ok. reversed range is swapped",
			query: "from=2024-07-13&to=2024-07-10",
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					ResolveAvailability(gomock.Any(), model.NewDate(2024, time.July, 10), model.NewDate(2024, time.July, 13)).
					Return(map[int]model.Classification{1: model.ClassAvailable}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"1":"available"}`,
			},
		},
		{
			name:         "err. bad from",
			query:        "from=10-07-2024&to=2024-07-13",
			mockBehavior: func(r *service_mocks.MockRentalService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"from is invalid"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockRentalService(c)
			h := newHandler(svc)

			e := newEcho()
			e.GET("/availability", h.GetAvailability)

			r := httptest.NewRequest(http.MethodGet, "/availability?"+tt.query, http.NoBody)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_UpdateBookingStatus(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockRentalService)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok. confirmed maps to active",
			body: `{"status":"confirmed"}`,
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					UpdateBookingStatus(gomock.Any(), "b1", "confirmed").
					Return(model.Booking{ID: "b1", Status: model.StatusActive}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
			},
		},
		{
			name:         "err. status required",
			body:         `{}`,
			mockBehavior: func(r *service_mocks.MockRentalService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
		{
			name: "err. not found",
			body: `{"status":"cancelled"}`,
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					UpdateBookingStatus(gomock.Any(), "b1", "cancelled").
					Return(model.Booking{}, errs.ErrNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"not found"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockRentalService(c)
			h := newHandler(svc)

			e := newEcho()
			e.PATCH("/bookings/:id/status", h.UpdateBookingStatus)

			r := httptest.NewRequest(http.MethodPatch, "/bookings/b1/status", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_RescheduleBooking(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockRentalService)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"departureDate":"2024-07-20"}`,
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					RescheduleBooking(gomock.Any(), "b1", model.RescheduleRequest{
						DepartureDate: model.NewDate(2024, time.July, 20),
					}).
					Return(model.Booking{ID: "b1"}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
			},
		},
		{
			name: "err. cross-row drop rejected",
			body: `{"departureDate":"2024-07-20","vehicleId":5}`,
			mockBehavior: func(r *service_mocks.MockRentalService) {
				five := 5
				r.EXPECT().
					RescheduleBooking(gomock.Any(), "b1", model.RescheduleRequest{
						DepartureDate: model.NewDate(2024, time.July, 20),
						VehicleID:     &five,
					}).
					Return(model.Booking{}, errs.ErrVehicleMismatch)
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"reschedule cannot move a booking to another vehicle"}`,
			},
		},
		{
			name: "err. not found",
			body: `{"departureDate":"2024-07-20"}`,
			mockBehavior: func(r *service_mocks.MockRentalService) {
				r.EXPECT().
					RescheduleBooking(gomock.Any(), "nope", gomock.Any()).
					Return(model.Booking{}, errs.ErrNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"not found"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockRentalService(c)
			h := newHandler(svc)

			e := newEcho()
			e.PATCH("/bookings/:id/reschedule", h.RescheduleBooking)

			id := "b1"
			if tt.name == "err. not found" {
				id = "nope"
			}
			r := httptest.NewRequest(http.MethodPatch, "/bookings/"+id+"/reschedule", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}
