package doctor

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

// RegisterRoutes wires the protected doctor endpoints. Login goes on the
// public group separately.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/doctors", h.Register)
	api.GET("/doctors", h.List)
	api.GET("/doctors/available", h.AvailableOn)
	api.GET("/doctors/:id", h.Get)
	api.PUT("/doctors/:id", h.Update)
	api.DELETE("/doctors/:id", h.Delete)
	api.GET("/doctors/:id/profile", h.Profile)
	api.GET("/doctors/:id/availability", h.Availability)
	api.PUT("/doctors/:id/availability", h.ReplaceAvailability)
}

func (h *Handler) RegisterPublicRoutes(public *echo.Group) {
	public.POST("/auth/login", h.Login)
}

type doctorRequest struct {
	Email           string  `json:"email" form:"email"`
	Password        string  `json:"password" form:"password"`
	Name            string  `json:"name" form:"name"`
	Specialization  *string `json:"specialization" form:"specialization"`
	Phone           *string `json:"phone" form:"phone"`
	Hospital        *string `json:"hospital" form:"hospital"`
	ExperienceYears int     `json:"experience_years" form:"experience_years"`
	TotalPatients   int     `json:"total_patients" form:"total_patients"`
	TotalReviews    int     `json:"total_reviews" form:"total_reviews"`
	Bio             *string `json:"bio" form:"bio"`
}

func (req *doctorRequest) toModel() *Doctor {
	return &Doctor{
		Email:           req.Email,
		Name:            req.Name,
		Specialization:  req.Specialization,
		Phone:           req.Phone,
		Hospital:        req.Hospital,
		ExperienceYears: req.ExperienceYears,
		TotalPatients:   req.TotalPatients,
		TotalReviews:    req.TotalReviews,
		Bio:             req.Bio,
	}
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type loginResponse struct {
	Token  string  `json:"token"`
	Doctor *Doctor `json:"doctor"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d, token, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, loginResponse{Token: token, Doctor: d})
}

func (h *Handler) Register(c echo.Context) error {
	var req doctorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d := req.toModel()
	if err := h.svc.Register(c.Request().Context(), d, req.Password); err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	d, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req doctorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d := req.toModel()
	d.ID = id
	if err := h.svc.Update(c.Request().Context(), d); err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Profile(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	prof, err := h.svc.Profile(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, prof)
}

type availabilityRequest struct {
	Days []int `json:"days" form:"days"`
}

func (h *Handler) ReplaceAvailability(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req availabilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.ReplaceAvailability(c.Request().Context(), id, req.Days); err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	days, err := h.svc.Availability(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, availabilityRequest{Days: days})
}

func (h *Handler) Availability(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	days, err := h.svc.Availability(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, availabilityRequest{Days: days})
}

// AvailableOn answers "which doctors work on this date" by mapping the date
// to its weekday index.
func (h *Handler) AvailableOn(c echo.Context) error {
	raw := c.QueryParam("date")
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	doctors, err := h.svc.AvailableOn(c.Request().Context(), date)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, doctors)
}
