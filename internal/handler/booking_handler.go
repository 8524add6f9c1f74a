package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/burkedavid/golf-society-booking-sub000/internal/dto"
	"github.com/burkedavid/golf-society-booking-sub000/internal/middleware"
	"github.com/burkedavid/golf-society-booking-sub000/internal/models"
	"github.com/burkedavid/golf-society-booking-sub000/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	outings := e.Group("/api/v1/outings", auth)
	outings.POST("/:id/bookings", h.CreateBooking)
	outings.GET("/:id/bookings", h.ListBookings, middleware.AdminOnly)

	e.GET("/api/v1/members/me/bookings", h.MyBookings, auth)

	bookings := e.Group("/api/v1/bookings", auth)
	bookings.GET("/:id", h.GetBooking)
	bookings.PUT("/:id", h.UpdateBooking, middleware.AdminOnly)
	bookings.DELETE("/:id", h.CancelBooking, middleware.AdminOnly)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	outingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid outing id")
	}

	member := middleware.CurrentMember(c)
	if member == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.svc.AttemptReservation(
		c.Request().Context(),
		uint(outingID),
		member.ID,
		req.ToReservationRequest(member.Handicap),
	)
	if err != nil {
		return mapBookingError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func mapBookingError(err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return echo.NewHTTPError(http.StatusBadRequest, dto.ErrorResponse{
			Message: "validation failed",
			Fields:  verr.Fields,
		})
	case errors.Is(err, service.ErrOutingNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrBookingNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrDeadlineExpired),
		errors.Is(err, service.ErrDuplicateBooking),
		errors.Is(err, service.ErrCapacityExceeded),
		errors.Is(err, service.ErrAlreadyCancelled),
		errors.Is(err, service.ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "booking not found")
	}

	// Owners see their own bookings; everything else is admin-only.
	member := middleware.CurrentMember(c)
	if member == nil || (booking.MemberID != member.ID && !member.IsAdmin) {
		return echo.NewHTTPError(http.StatusForbidden, "not your booking")
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	outingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid outing id")
	}

	var status *models.BookingStatus
	if s := c.QueryParam("status"); s != "" {
		bs := models.BookingStatus(s)
		status = &bs
	}

	bookings, err := h.svc.ListBookingsForOuting(c.Request().Context(), uint(outingID), status)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = dto.ToBookingResponse(&b)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) MyBookings(c echo.Context) error {
	member := middleware.CurrentMember(c)
	if member == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	bookings, err := h.svc.ListBookingsForMember(c.Request().Context(), member.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = dto.ToBookingResponse(&b)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	var req dto.UpdateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.svc.UpdateBooking(c.Request().Context(), uint(id), req.ToPatch())
	if err != nil {
		return mapBookingError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.svc.CancelBooking(c.Request().Context(), uint(id))
	if err != nil {
		return mapBookingError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}
