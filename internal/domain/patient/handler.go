package patient

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/apperror"
	"github.com/hms/hms/pkg/formval"
	"github.com/hms/hms/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/patients", h.Register)
	api.GET("/patients", h.List)
	api.GET("/patients/:id", h.Get)
	api.PUT("/patients/:id", h.Update)
	api.DELETE("/patients/:id", h.Delete)
	api.GET("/patients/:id/profile", h.Profile)
	api.POST("/patients/:id/records", h.UploadRecord)
	api.GET("/records/:id/download", h.DownloadRecord)
}

// patientRequest carries numeric fields as strings so absent or empty input
// stores NULL rather than zero.
type patientRequest struct {
	Name    string `json:"name" form:"name"`
	Age     string `json:"age" form:"age"`
	Gender  string `json:"gender" form:"gender"`
	Phone   string `json:"phone" form:"phone"`
	Email   string `json:"email" form:"email"`
	Address string `json:"address" form:"address"`
	Weight  string `json:"weight" form:"weight"`
	Disease string `json:"disease" form:"disease"`
	Status  string `json:"status" form:"status"`
}

func (req *patientRequest) toModel() (*Patient, error) {
	age, err := formval.OptionalInt(req.Age)
	if err != nil {
		return nil, apperror.Validation("malformed age: %q", req.Age)
	}
	weight, err := formval.OptionalFloat(req.Weight)
	if err != nil {
		return nil, apperror.Validation("malformed weight: %q", req.Weight)
	}
	p := &Patient{
		Name:   req.Name,
		Age:    age,
		Weight: weight,
		Status: req.Status,
	}
	if req.Gender != "" {
		p.Gender = &req.Gender
	}
	if req.Phone != "" {
		p.Phone = &req.Phone
	}
	if req.Email != "" {
		p.Email = &req.Email
	}
	if req.Address != "" {
		p.Address = &req.Address
	}
	if req.Disease != "" {
		p.Disease = &req.Disease
	}
	return p, nil
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func (h *Handler) Register(c echo.Context) error {
	var req patientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := req.toModel()
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	if err := h.svc.Register(c.Request().Context(), p); err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, p)
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
	var req patientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := req.toModel()
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	p.ID = id
	if err := h.svc.Update(c.Request().Context(), p); err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, p)
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

func (h *Handler) UploadRecord(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	defer src.Close()
	rec, err := h.svc.UploadRecord(c.Request().Context(), id, fh.Filename, src)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) DownloadRecord(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	rec, rc, err := h.svc.DownloadRecord(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	defer rc.Close()
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+rec.Filename+`"`)
	return c.Stream(http.StatusOK, echo.MIMEOctetStream, rc)
}
