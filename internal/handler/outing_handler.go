package handler

import (
	"net/http"
	"strconv"

	"github.com/burkedavid/golf-society-booking-sub000/internal/dto"
	"github.com/burkedavid/golf-society-booking-sub000/internal/middleware"
	"github.com/burkedavid/golf-society-booking-sub000/internal/service"
	"github.com/labstack/echo/v4"
)

type OutingHandler struct {
	svc        service.OutingService
	bookingSvc service.BookingService
}

func NewOutingHandler(svc service.OutingService, bookingSvc service.BookingService) *OutingHandler {
	return &OutingHandler{svc: svc, bookingSvc: bookingSvc}
}

func (h *OutingHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	// Browsing outings is public; changing them is admin-only.
	e.GET("/api/v1/outings", h.ListOutings)
	e.GET("/api/v1/outings/:id", h.GetOuting)

	admin := e.Group("/api/v1/outings", auth, middleware.AdminOnly)
	admin.POST("", h.CreateOuting)
	admin.PUT("/:id", h.UpdateOuting)
	admin.DELETE("/:id", h.DeleteOuting)
	admin.PUT("/:id/menu", h.ReplaceMenu)
	admin.GET("/:id/summary", h.Summary)
}

func (h *OutingHandler) CreateOuting(c echo.Context) error {
	var req dto.CreateOutingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	outing := req.ToModel()
	if err := h.svc.CreateOuting(c.Request().Context(), outing); err != nil {
		return mapBookingError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToOutingResponse(outing, outing.Capacity))
}

func (h *OutingHandler) GetOuting(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid outing id")
	}

	outing, err := h.svc.GetOuting(c.Request().Context(), uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "outing not found")
	}

	spaces, err := h.bookingSvc.AvailableSpaces(c.Request().Context(), outing.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToOutingResponse(outing, spaces))
}

func (h *OutingHandler) ListOutings(c echo.Context) error {
	outings, err := h.svc.ListOutings(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.OutingResponse, len(outings))
	for i := range outings {
		spaces, err := h.bookingSvc.AvailableSpaces(c.Request().Context(), outings[i].ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		resp[i] = dto.ToOutingResponse(&outings[i], spaces)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *OutingHandler) UpdateOuting(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid outing id")
	}

	var req dto.CreateOutingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	outing := req.ToModel()
	outing.ID = uint(id)
	outing.MenuItems = nil // menu is replaced through its own endpoint

	if err := h.svc.UpdateOuting(c.Request().Context(), outing); err != nil {
		return mapBookingError(err)
	}

	spaces, err := h.bookingSvc.AvailableSpaces(c.Request().Context(), outing.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToOutingResponse(outing, spaces))
}

func (h *OutingHandler) DeleteOuting(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid outing id")
	}

	if err := h.svc.DeleteOuting(c.Request().Context(), uint(id)); err != nil {
		return mapBookingError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *OutingHandler) ReplaceMenu(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid outing id")
	}

	var req dto.ReplaceMenuRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.svc.ReplaceMenu(c.Request().Context(), uint(id), req.ToModels()); err != nil {
		return mapBookingError(err)
	}

	outing, err := h.svc.GetOuting(c.Request().Context(), uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	spaces, err := h.bookingSvc.AvailableSpaces(c.Request().Context(), outing.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToOutingResponse(outing, spaces))
}

func (h *OutingHandler) Summary(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid outing id")
	}

	summary, err := h.svc.Summary(c.Request().Context(), uint(id))
	if err != nil {
		return mapBookingError(err)
	}

	return c.JSON(http.StatusOK, summary)
}
