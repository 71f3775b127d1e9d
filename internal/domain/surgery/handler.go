package surgery

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/apperror"
	"github.com/hms/hms/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/operations", h.Schedule)
	api.GET("/operations", h.List)
	api.GET("/operations/:id", h.Get)
	api.PUT("/operations/:id/status", h.UpdateStatus)
}

type scheduleRequest struct {
	Name        string   `json:"name" form:"name"`
	PatientID   int64    `json:"patient_id" form:"patient_id"`
	DoctorID    int64    `json:"doctor_id" form:"doctor_id"`
	PerformedAt string   `json:"performed_at" form:"performed_at"`
	Status      string   `json:"status" form:"status"`
	Cost        *float64 `json:"cost" form:"cost"`
	Notes       *string  `json:"notes" form:"notes"`
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func (h *Handler) Schedule(c echo.Context) error {
	var req scheduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	var performedAt time.Time
	if req.PerformedAt != "" {
		var err error
		performedAt, err = time.Parse(time.RFC3339, req.PerformedAt)
		if err != nil {
			// Fall back to a bare date.
			performedAt, err = time.Parse("2006-01-02", req.PerformedAt)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "performed_at must be RFC3339 or YYYY-MM-DD")
			}
		}
	}
	op := &Operation{
		Name:        req.Name,
		PatientID:   req.PatientID,
		DoctorID:    req.DoctorID,
		PerformedAt: performedAt,
		Status:      req.Status,
		Cost:        req.Cost,
		Notes:       req.Notes,
	}
	if err := h.svc.Schedule(c.Request().Context(), op); err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, op)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	op, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, op)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

type statusRequest struct {
	Status string `json:"status" form:"status"`
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	op, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, op)
}
