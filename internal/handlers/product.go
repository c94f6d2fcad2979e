// internal/handlers/product.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aurum-jewels/admin-console/internal/backend"
	"github.com/aurum-jewels/admin-console/internal/i18n"
	"github.com/aurum-jewels/admin-console/internal/services"
	"github.com/aurum-jewels/admin-console/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
	storageService *services.StorageService
}

func NewProductHandler(productService *services.ProductService, storageService *services.StorageService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		storageService: storageService,
	}
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	session, ok := utils.GetSessionFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	searchParams := services.ProductSearchParams{
		PaginationParams: params,
		Category:         c.Query("category"),
	}

	products, err := h.productService.ListProducts(c.Request.Context(), session, searchParams)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	result := utils.Paginate(products, params)
	utils.PaginatedResponse(c, result)
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	session, ok := utils.GetSessionFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req backend.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), session, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"product": product,
	})
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	session, ok := utils.GetSessionFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": product,
	})
}

// PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	session, ok := utils.GetSessionFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req backend.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), session, c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": product,
	})
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	session, ok := utils.GetSessionFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), session, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductDeleted),
	})
}

// POST /uploads
func (h *ProductHandler) UploadProductImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	session, ok := utils.GetSessionFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileRequired), nil)
		return
	}

	result, err := h.storageService.UploadImage(c.Request.Context(), session, fileHeader)
	if err != nil {
		if backend.IsValidation(err) {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileInvalidType), err.Error())
			return
		}
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"image": result.URL,
		"file":  result,
	})
}

// DELETE /uploads/*key
func (h *ProductHandler) DeleteProductImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileRequired), nil)
		return
	}

	if err := h.storageService.DeleteImage(c.Request.Context(), key); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"key": key})
}
