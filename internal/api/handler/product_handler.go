package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storemanager/store-api/internal/api/metrics"
	"github.com/storemanager/store-api/internal/core/domain"
	"github.com/storemanager/store-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

func (r productRequest) toInput() ports.ProductInput {
	return ports.ProductInput{
		Name:      *r.ProductName,
		Category:  *r.Category,
		Quantity:  *r.Quantity,
		UnitPrice: *r.UnitPrice,
	}
}

// Create handles POST /api/v1/products.
//
// @Summary      Add a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product details"
// @Success      201   {object}  productCreatedResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/v1/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}

	metrics.ProductChangesTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, productCreatedResponse{Message: "Product created", Product: p})
}

// List handles GET /api/v1/products.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  productListResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/v1/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return c.JSON(http.StatusOK, productListResponse{Message: "No product record(s) available", Products: []*domain.Product{}})
	}
	return c.JSON(http.StatusOK, productListResponse{Message: "Success", Products: items})
}

// Get handles GET /api/v1/products/:id.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Update handles PUT /api/v1/products/:id. All four fields are required;
// nothing is applied when any of them is missing or invalid.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Product id"
// @Param        body  body      productRequest  true  "Product details"
// @Success      200   {object}  productCreatedResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.Update(c.Request().Context(), id, req.toInput())
	if err != nil {
		return err
	}

	metrics.ProductChangesTotal.WithLabelValues("updated").Inc()
	return c.JSON(http.StatusOK, productCreatedResponse{Message: "update successful!", Product: p})
}

// Delete handles DELETE /api/v1/products/:id. Sales of the product are kept.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Product id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	deleted, err := h.service.Delete(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrProductNotFound
	}

	metrics.ProductChangesTotal.WithLabelValues("deleted").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "delete operation successful!"})
}
