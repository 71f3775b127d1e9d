package appointment

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
	api.POST("/appointments", h.Book)
	api.GET("/appointments", h.List)
	api.GET("/appointments/:id", h.Get)
	api.PUT("/appointments/:id/status", h.UpdateStatus)
	api.POST("/appointments/:id/prescriptions", h.Prescribe)
	api.GET("/appointments/:id/prescriptions", h.Prescriptions)
}

// bookRequest ignores any caller-supplied status on purpose.
type bookRequest struct {
	VisitDate string  `json:"visit_date" form:"visit_date"`
	VisitTime string  `json:"visit_time" form:"visit_time"`
	Diagnosis *string `json:"diagnosis" form:"diagnosis"`
	PatientID int64   `json:"patient_id" form:"patient_id"`
	DoctorID  int64   `json:"doctor_id" form:"doctor_id"`
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func (h *Handler) Book(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	date, err := time.Parse("2006-01-02", req.VisitDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "visit_date must be YYYY-MM-DD")
	}
	a := &Appointment{
		VisitDate: date,
		VisitTime: req.VisitTime,
		Diagnosis: req.Diagnosis,
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
	}
	if err := h.svc.Book(c.Request().Context(), a); err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	a, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, a)
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
	a, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, a)
}

type prescribeRequest struct {
	Medication string  `json:"medication" form:"medication"`
	Dosage     string  `json:"dosage" form:"dosage"`
	Notes      *string `json:"notes" form:"notes"`
}

func (h *Handler) Prescribe(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req prescribeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p := &Prescription{
		Medication:    req.Medication,
		Dosage:        req.Dosage,
		Notes:         req.Notes,
		AppointmentID: id,
	}
	if err := h.svc.Prescribe(c.Request().Context(), p); err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) Prescriptions(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	items, err := h.svc.Prescriptions(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, items)
}
