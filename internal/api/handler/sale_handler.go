package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/storemanager/store-api/internal/api/metrics"
	"github.com/storemanager/store-api/internal/core/domain"
	"github.com/storemanager/store-api/internal/core/ports"
)

// SaleHandler handles HTTP requests for the sales ledger.
type SaleHandler struct {
	service ports.SaleService
}

func NewSaleHandler(service ports.SaleService) *SaleHandler {
	return &SaleHandler{service: service}
}

// Create handles POST /api/v1/sales. Insufficient stock is a normal result
// and is answered with 200.
//
// @Summary      Record a sale
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      saleRequest  true  "Sale details"
// @Success      201   {object}  domain.Sale
// @Success      200   {object}  insufficientStockResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/v1/sales [post]
func (h *SaleHandler) Create(c echo.Context) error {
	start := time.Now()
	var req saleRequest
	if err := bindAndValidate(c, &req); err != nil {
		metrics.SalesRejectedTotal.WithLabelValues("invalid").Inc()
		return err
	}

	res, err := h.service.Record(c.Request().Context(), *req.ProductID, *req.Quantity)
	if err != nil {
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve) && ve.Field == "product_id":
			metrics.SalesRejectedTotal.WithLabelValues("unknown_product").Inc()
		case errors.Is(err, domain.ErrValidation):
			metrics.SalesRejectedTotal.WithLabelValues("invalid").Inc()
		default:
			metrics.SaleDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		}
		return err
	}

	metrics.SaleDuration.WithLabelValues(string(res.Outcome)).Observe(time.Since(start).Seconds())
	if res.Outcome == ports.OutcomeInsufficientStock {
		metrics.SalesRejectedTotal.WithLabelValues(string(ports.OutcomeInsufficientStock)).Inc()
		return c.JSON(http.StatusOK, insufficientStockResponse{Message: "Insufficient stock", Available: res.Available})
	}

	metrics.SalesRecordedTotal.Inc()
	metrics.UnitsSoldTotal.Add(float64(res.Sale.Quantity))
	return c.JSON(http.StatusCreated, res.Sale)
}

// List handles GET /api/v1/sales.
//
// @Summary      List sales
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  saleListResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/v1/sales [get]
func (h *SaleHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return c.JSON(http.StatusOK, saleListResponse{Message: "No sale record(s) available", Sales: []*domain.Sale{}})
	}
	return c.JSON(http.StatusOK, saleListResponse{Message: "Success", Sales: items})
}

// Get handles GET /api/v1/sales/:id.
//
// @Summary      Get a sale
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Sale id"
// @Success      200  {object}  saleResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/sales/{id} [get]
func (h *SaleHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	s, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, saleResponse{Message: "Success", Sale: s})
}
