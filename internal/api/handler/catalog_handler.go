package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aslamtailor/storefront-api/internal/core/domain"
	"github.com/aslamtailor/storefront-api/internal/core/ports"
)

// CatalogHandler handles HTTP requests for products and customers.
type CatalogHandler struct {
	service ports.CatalogService
}

func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

type createProductRequest struct {
	Name     string  `json:"name"     validate:"required"`
	SKU      string  `json:"sku"      validate:"required"`
	Category string  `json:"category" validate:"required"`
	Price    float64 `json:"price"    validate:"required,gt=0"`
	ImageURL string  `json:"image_url"`
	Active   bool    `json:"active"`
}

type createCustomerRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"      validate:"required,email"`
	Phone     string `json:"phone"`
}

type listProductsResponse struct {
	Data  []domain.Product `json:"data"`
	Total int              `json:"total"`
}

type listCustomersResponse struct {
	Data  []domain.Customer `json:"data"`
	Total int               `json:"total"`
}

// CreateProduct handles POST /v1/products.
//
// @Summary      Add a product to the catalog
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  errorResponse
// @Router       /v1/products [post]
func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	product, err := h.service.CreateProduct(c.Request().Context(), domain.Product{
		Name:     req.Name,
		SKU:      req.SKU,
		Category: req.Category,
		Price:    req.Price,
		ImageURL: req.ImageURL,
		Active:   req.Active,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, product)
}

// GetProduct handles GET /v1/products/:id.
//
// @Summary      Fetch a single product
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  errorResponse
// @Router       /v1/products/{id} [get]
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	product, err := h.service.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// ListProducts handles GET /v1/products.
//
// @Summary      List catalog products
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  listProductsResponse
// @Router       /v1/products [get]
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	products, err := h.service.ListProducts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listProductsResponse{Data: products, Total: len(products)})
}

// CreateCustomer handles POST /v1/customers.
//
// @Summary      Register a customer profile
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body      createCustomerRequest  true  "Customer details"
// @Success      201   {object}  domain.Customer
// @Failure      400   {object}  errorResponse
// @Router       /v1/customers [post]
func (h *CatalogHandler) CreateCustomer(c echo.Context) error {
	var req createCustomerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	customer, err := h.service.CreateCustomer(c.Request().Context(), domain.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, customer)
}

// GetCustomer handles GET /v1/customers/:id.
//
// @Summary      Fetch a single customer profile
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  domain.Customer
// @Failure      404  {object}  errorResponse
// @Router       /v1/customers/{id} [get]
func (h *CatalogHandler) GetCustomer(c echo.Context) error {
	customer, err := h.service.GetCustomer(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

// ListCustomers handles GET /v1/customers.
//
// @Summary      List customer profiles
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  listCustomersResponse
// @Router       /v1/customers [get]
func (h *CatalogHandler) ListCustomers(c echo.Context) error {
	customers, err := h.service.ListCustomers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listCustomersResponse{Data: customers, Total: len(customers)})
}
