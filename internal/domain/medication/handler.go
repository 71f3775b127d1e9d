package medication

import (
	"net/http"
	"strconv"
	"time"

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
	api.POST("/medications", h.Add)
	api.GET("/medications", h.List)
	api.GET("/medications/:id", h.Get)
	api.PUT("/medications/:id", h.Update)
	api.PUT("/medications/:id/stock", h.SetStock)
	api.DELETE("/medications/:id", h.Delete)
}

// medicationRequest carries stock and price as strings; empty input coerces
// to zero rather than NULL.
type medicationRequest struct {
	Name          string `json:"name" form:"name"`
	Dosage        string `json:"dosage" form:"dosage"`
	Description   string `json:"description" form:"description"`
	StockQuantity string `json:"stock_quantity" form:"stock_quantity"`
	UnitPrice     string `json:"unit_price" form:"unit_price"`
	ExpiryDate    string `json:"expiry_date" form:"expiry_date"`
}

func (req *medicationRequest) toModel() (*Medication, error) {
	stock, err := formval.IntOrZero(req.StockQuantity)
	if err != nil {
		return nil, apperror.Validation("malformed stock_quantity: %q", req.StockQuantity)
	}
	price, err := formval.FloatOrZero(req.UnitPrice)
	if err != nil {
		return nil, apperror.Validation("malformed unit_price: %q", req.UnitPrice)
	}
	m := &Medication{
		Name:          req.Name,
		StockQuantity: stock,
		UnitPrice:     price,
	}
	if req.Dosage != "" {
		m.Dosage = &req.Dosage
	}
	if req.Description != "" {
		m.Description = &req.Description
	}
	if req.ExpiryDate != "" {
		exp, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			return nil, apperror.Validation("expiry_date must be YYYY-MM-DD")
		}
		m.ExpiryDate = &exp
	}
	return m, nil
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func (h *Handler) Add(c echo.Context) error {
	var req medicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	m, err := req.toModel()
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	if err := h.svc.Add(c.Request().Context(), m); err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	m, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, m)
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
	var req medicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	m, err := req.toModel()
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	m.ID = id
	if err := h.svc.Update(c.Request().Context(), m); err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, m)
}

type stockRequest struct {
	StockQuantity int `json:"stock_quantity" form:"stock_quantity"`
}

func (h *Handler) SetStock(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req stockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.SetStock(c.Request().Context(), id, req.StockQuantity); err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	m, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(apperror.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, m)
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
