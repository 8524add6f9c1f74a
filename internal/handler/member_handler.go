package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/burkedavid/golf-society-booking-sub000/internal/dto"
	"github.com/burkedavid/golf-society-booking-sub000/internal/middleware"
	"github.com/burkedavid/golf-society-booking-sub000/internal/service"
	"github.com/labstack/echo/v4"
)

type MemberHandler struct {
	svc service.MemberService
}

func NewMemberHandler(svc service.MemberService) *MemberHandler {
	return &MemberHandler{svc: svc}
}

func (h *MemberHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.POST("/api/v1/members", h.Register)
	e.POST("/api/v1/auth/login", h.Login)
	e.POST("/api/v1/auth/logout", h.Logout, auth)

	e.GET("/api/v1/members/me", h.Me, auth)
	e.GET("/api/v1/members", h.ListMembers, auth, middleware.AdminOnly)
	e.GET("/api/v1/members/:id", h.GetMember, auth, middleware.AdminOnly)
}

func (h *MemberHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	member, err := h.svc.Register(c.Request().Context(), &service.RegisterRequest{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Handicap: req.Handicap,
	})
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			return echo.NewHTTPError(http.StatusBadRequest, dto.ErrorResponse{
				Message: "validation failed",
				Fields:  verr.Fields,
			})
		case errors.Is(err, service.ErrEmailTaken):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToMemberResponse(member))
}

func (h *MemberHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	session, err := h.svc.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		Member:    dto.ToMemberResponse(session.Member),
	})
}

func (h *MemberHandler) Logout(c echo.Context) error {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	token := strings.TrimPrefix(header, "Bearer ")

	if err := h.svc.Logout(c.Request().Context(), token); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *MemberHandler) Me(c echo.Context) error {
	member := middleware.CurrentMember(c)
	if member == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return c.JSON(http.StatusOK, dto.ToMemberResponse(member))
}

func (h *MemberHandler) GetMember(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid member id")
	}

	member, err := h.svc.GetByID(c.Request().Context(), uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "member not found")
	}
	return c.JSON(http.StatusOK, dto.ToMemberResponse(member))
}

func (h *MemberHandler) ListMembers(c echo.Context) error {
	members, err := h.svc.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.MemberResponse, len(members))
	for i := range members {
		resp[i] = dto.ToMemberResponse(&members[i])
	}
	return c.JSON(http.StatusOK, resp)
}
