package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tinymarket/market/internal/api/metrics"
	"github.com/tinymarket/market/internal/api/view"
	"github.com/tinymarket/market/internal/core/ports"
)

const msgProductListed = "Product listed."

// ProductHandler handles listing, creating and searching products.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /products (session required).
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.service.ListProducts(c.Request().Context())
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "products.html", view.Page{Title: "Products", Products: products})
}

// NewForm handles GET /product/new (session required).
func (h *ProductHandler) NewForm(c echo.Context) error {
	return render(c, http.StatusOK, "new_product.html", view.Page{Title: "List a product"})
}

// Create handles POST /product/new (session required). The price is kept as
// the text the seller typed.
func (h *ProductHandler) Create(c echo.Context) error {
	var form productForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	_, err := h.service.CreateProduct(c.Request().Context(), ports.CreateProductInput{
		Title:       form.Title,
		Description: form.Description,
		Price:       form.Price,
		SellerID:    sessionUserID(c),
	})
	if err != nil {
		return err
	}

	metrics.ProductsCreatedTotal.Inc()
	return redirectWithFlash(c, "/products", msgProductListed)
}

// Search handles GET /search?query=. It is reachable without a session.
func (h *ProductHandler) Search(c echo.Context) error {
	query := c.QueryParam("query")

	products, err := h.service.SearchProducts(c.Request().Context(), query)
	if err != nil {
		return err
	}

	metrics.SearchesTotal.Inc()
	return render(c, http.StatusOK, "products.html", view.Page{Title: "Search", Products: products, Query: &query})
}
