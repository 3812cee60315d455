package handler

import (
	"net/http"
	"strconv"

	md "github.com/hotdrive/rental-service/pkg/middleware"
	"github.com/hotdrive/rental-service/pkg/validate"
	"github.com/hotdrive/rental-service/rental/internal/dashboard"
	"github.com/hotdrive/rental-service/rental/internal/errs"
	"github.com/hotdrive/rental-service/rental/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Handler struct {
	rentalSvc RentalService
	dash      *dashboard.Store
	adminKey  string
	log       *zap.Logger
}

func New(rentalSvc RentalService, dash *dashboard.Store, adminKey string, log *zap.Logger) *Handler {
	return &Handler{
		rentalSvc: rentalSvc,
		dash:      dash,
		adminKey:  adminKey,
		log:       log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.GET("/vehicles", h.GetVehicles)
	api.GET("/availability", h.GetAvailability)
	api.POST("/bookings", h.CreateBooking)

	admin := api.Group("/admin", md.AdminKey(h.adminKey))
	admin.GET("/bookings", h.ListBookings)
	admin.GET("/bookings/unassigned", h.ListUnassigned)
	admin.POST("/bookings", h.QuickAddBooking)
	admin.GET("/bookings/:id", h.GetBooking)
	admin.PATCH("/bookings/:id", h.UpdateBooking)
	admin.PATCH("/bookings/:id/status", h.UpdateBookingStatus)
	admin.PATCH("/bookings/:id/assign", h.AssignVehicle)
	admin.PATCH("/bookings/:id/reschedule", h.RescheduleBooking)
	admin.DELETE("/bookings/:id", h.DeleteBooking)
	admin.GET("/timeline", h.GetTimeline)
	admin.PATCH("/vehicles/:id/status", h.SetVehicleStatus)
	admin.GET("/dashboard", h.GetDashboard)
	admin.PATCH("/dashboard", h.PatchDashboard)
	admin.POST("/dashboard/select", h.SelectBooking)
	admin.POST("/dashboard/assign", h.AssignSelected)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) GetVehicles(c echo.Context) error {
	vehicles, err := h.rentalSvc.ListVehicles(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, vehicles)
}

func (h *Handler) GetAvailability(c echo.Context) error {
	from, err := model.ParseDate(c.QueryParam("from"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("from is invalid"))
	}
	to, err := model.ParseDate(c.QueryParam("to"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("to is invalid"))
	}
	if to.Before(from.Time) {
		from, to = to, from
	}
	result, err := h.rentalSvc.ResolveAvailability(c.Request().Context(), from, to)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) CreateBooking(c echo.Context) error {
	var req model.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	// customer endpoint always books as web traffic
	req.Source = model.SourceWeb
	req.Status = ""
	if err := c.Validate(req); err != nil {
		return err
	}
	booking, err := h.rentalSvc.CreateBooking(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidDates), errors.Is(err, errs.ErrPastDeparture):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, errs.ErrVehicleNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, booking)
}

func (h *Handler) QuickAddBooking(c echo.Context) error {
	var req model.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Source == "" || req.Source == model.SourceWeb {
		req.Source = model.SourceWalkIn
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	booking, err := h.rentalSvc.CreateBooking(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidDates), errors.Is(err, errs.ErrPastDeparture):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, errs.ErrVehicleNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, booking)
}

func (h *Handler) ListBookings(c echo.Context) error {
	var status *model.BookingStatus
	if s := c.QueryParam("status"); s != "" {
		normalized := model.NormalizeStatus(s)
		status = &normalized
	}
	bookings, err := h.rentalSvc.ListBookings(c.Request().Context(), status)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *Handler) ListUnassigned(c echo.Context) error {
	bookings, err := h.rentalSvc.ListUnassigned(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *Handler) GetBooking(c echo.Context) error {
	booking, err := h.rentalSvc.GetBooking(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *Handler) UpdateBooking(c echo.Context) error {
	var req model.UpdateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	booking, err := h.rentalSvc.UpdateBooking(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, errs.ErrInvalidDates):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *Handler) UpdateBookingStatus(c echo.Context) error {
	type Req struct {
		Status string `json:"status" validate:"required"`
	}
	var req Req
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	booking, err := h.rentalSvc.UpdateBookingStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *Handler) AssignVehicle(c echo.Context) error {
	type Req struct {
		VehicleID int `json:"vehicleId" validate:"required,gt=0"`
	}
	var req Req
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	booking, err := h.rentalSvc.AssignVehicle(c.Request().Context(), c.Param("id"), req.VehicleID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, errs.ErrVehicleNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *Handler) RescheduleBooking(c echo.Context) error {
	var req model.RescheduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	booking, err := h.rentalSvc.RescheduleBooking(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, errs.ErrVehicleMismatch), errors.Is(err, errs.ErrInvalidDates):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *Handler) DeleteBooking(c echo.Context) error {
	if err := h.rentalSvc.DeleteBooking(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) GetTimeline(c echo.Context) error {
	state := h.dash.Snapshot()
	start := state.WindowStart
	days := state.WindowDays

	if s := c.QueryParam("start"); s != "" {
		parsed, err := model.ParseDate(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.New("start is invalid"))
		}
		start = parsed
	}
	if s := c.QueryParam("days"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil || parsed < 1 || parsed > 90 {
			return echo.NewHTTPError(http.StatusBadRequest, errors.New("days is invalid"))
		}
		days = parsed
	}

	timeline, err := h.rentalSvc.Timeline(c.Request().Context(), start, days)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, timeline)
}

func (h *Handler) SetVehicleStatus(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("id is invalid"))
	}
	type Req struct {
		Status model.VehicleStatus `json:"status" validate:"required,oneof=available maintenance retired"`
	}
	var req Req
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	if err := h.rentalSvc.SetVehicleStatus(c.Request().Context(), id, req.Status); err != nil {
		if errors.Is(err, errs.ErrVehicleNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusOK)
}

func (h *Handler) GetDashboard(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dash.Snapshot())
}

func (h *Handler) PatchDashboard(c echo.Context) error {
	var patch dashboard.Patch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, h.dash.Apply(c.Request().Context(), patch))
}

// SelectBooking arms an unassigned booking for tap-to-assign.
func (h *Handler) SelectBooking(c echo.Context) error {
	type Req struct {
		BookingID string `json:"bookingId" validate:"required"`
	}
	var req Req
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.dash.Arm(req.BookingID))
}

// AssignSelected assigns the armed booking to the tapped vehicle row and
// disarms the selection.
func (h *Handler) AssignSelected(c echo.Context) error {
	type Req struct {
		VehicleID int `json:"vehicleId" validate:"required,gt=0"`
	}
	var req Req
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	bookingID, err := h.dash.TakeArmed()
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	booking, err := h.rentalSvc.AssignVehicle(c.Request().Context(), bookingID, req.VehicleID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrNotFound), errors.Is(err, errs.ErrVehicleNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, booking)
}
