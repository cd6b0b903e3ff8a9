// internal/handlers/product.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/pixelarium/backend/internal/i18n"
	"github.com/pixelarium/backend/internal/models"
	"github.com/pixelarium/backend/internal/services"
	"github.com/pixelarium/backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, toProductResponse(product))
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	products, total, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(toProductResponses(products), total, params))
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id", "product")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, toProductResponse(product))
}

// PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id", "product")
	if !ok {
		return
	}

	var req services.ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, toProductResponse(product))
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id", "product")
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// POST /products/:id/image
func (h *ProductHandler) UploadProductImage(c *gin.Context) {
	id, ok := parseID(c, "id", "product")
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileMissing), err.Error())
		return
	}
	defer file.Close()

	product, err := h.productService.SetProductImage(c.Request.Context(), id, file, header)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, toProductResponse(product))
}

// GET /products/search?name=
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	products, err := h.productService.SearchProductsByName(c.Request.Context(), c.Query("name"))
	h.respondProducts(c, products, err)
}

// GET /products/price/:price
func (h *ProductHandler) GetProductsByPrice(c *gin.Context) {
	price, ok := parseDecimal(c, c.Param("price"))
	if !ok {
		return
	}

	products, err := h.productService.FindProductsByPrice(c.Request.Context(), price)
	h.respondProducts(c, products, err)
}

// GET /products/price-range?min=&max=
func (h *ProductHandler) GetProductsByPriceRange(c *gin.Context) {
	min, max, ok := parseDecimalRange(c)
	if !ok {
		return
	}

	products, err := h.productService.FindProductsByPriceRange(c.Request.Context(), min, max)
	h.respondProducts(c, products, err)
}

// GET /products/sale-price/:price
func (h *ProductHandler) GetProductsBySalePrice(c *gin.Context) {
	price, ok := parseDecimal(c, c.Param("price"))
	if !ok {
		return
	}

	products, err := h.productService.FindProductsBySalePrice(c.Request.Context(), price)
	h.respondProducts(c, products, err)
}

// GET /products/sale-offers
func (h *ProductHandler) GetSaleOffers(c *gin.Context) {
	products, err := h.productService.FindSaleOffers(c.Request.Context())
	h.respondProducts(c, products, err)
}

// GET /products/category/:category
func (h *ProductHandler) GetProductsByCategory(c *gin.Context) {
	category, ok := parseCategory(c, c.Param("category"))
	if !ok {
		return
	}

	products, err := h.productService.FindProductsByCategory(c.Request.Context(), category)
	h.respondProducts(c, products, err)
}

// GET /products/category/:category/price/:price
func (h *ProductHandler) GetProductsByCategoryAndPrice(c *gin.Context) {
	category, ok := parseCategory(c, c.Param("category"))
	if !ok {
		return
	}
	price, ok := parseDecimal(c, c.Param("price"))
	if !ok {
		return
	}

	products, err := h.productService.FindProductsByCategoryAndPrice(c.Request.Context(), category, price)
	h.respondProducts(c, products, err)
}

// GET /products/category/:category/price-range?min=&max=
func (h *ProductHandler) GetProductsByCategoryAndPriceRange(c *gin.Context) {
	category, ok := parseCategory(c, c.Param("category"))
	if !ok {
		return
	}
	min, max, ok := parseDecimalRange(c)
	if !ok {
		return
	}

	products, err := h.productService.FindProductsByCategoryAndPriceRange(c.Request.Context(), category, min, max)
	h.respondProducts(c, products, err)
}

func (h *ProductHandler) respondProducts(c *gin.Context, products []models.Product, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, toProductResponses(products))
}
