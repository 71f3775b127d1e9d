package inbox

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/apperror"
	"github.com/hms/hms/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/messages", h.Send)
	api.GET("/messages", h.Mailbox)
	api.PUT("/messages/:id/read", h.MarkRead)
}

type sendRequest struct {
	ReceiverID int64  `json:"receiver_id" form:"receiver_id"`
	Subject    string `json:"subject" form:"subject"`
	Content    string `json:"content" form:"content"`
}

func (h *Handler) Send(c echo.Context) error {
	var req sendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	senderID := auth.DoctorIDFromContext(c.Request().Context())
	m, err := h.svc.Send(c.Request().Context(), senderID, req.ReceiverID, req.Subject, req.Content)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *Handler) Mailbox(c echo.Context) error {
	doctorID := auth.DoctorIDFromContext(c.Request().Context())
	if doctorID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "no identity")
	}
	box, err := h.svc.Mailbox(c.Request().Context(), doctorID)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, box)
}

func (h *Handler) MarkRead(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	doctorID := auth.DoctorIDFromContext(c.Request().Context())
	if err := h.svc.MarkRead(c.Request().Context(), doctorID, id); err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
