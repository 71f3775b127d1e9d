package billing

import (
	"net/http"

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
	api.POST("/income", h.Record)
	api.GET("/income", h.List)
	api.GET("/income/total", h.Total)
}

type incomeRequest struct {
	Amount      float64 `json:"amount" form:"amount"`
	Source      *string `json:"source" form:"source"`
	PatientID   *int64  `json:"patient_id" form:"patient_id"`
	DoctorID    *int64  `json:"doctor_id" form:"doctor_id"`
	Description *string `json:"description" form:"description"`
}

func (h *Handler) Record(c echo.Context) error {
	var req incomeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	in := &Income{
		Amount:      req.Amount,
		Source:      req.Source,
		PatientID:   req.PatientID,
		DoctorID:    req.DoctorID,
		Description: req.Description,
	}
	if err := h.svc.Record(c.Request().Context(), in); err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, in)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Total(c echo.Context) error {
	sum, err := h.svc.Total(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, map[string]float64{"total": sum})
}
