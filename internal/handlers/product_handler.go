package handlers

import (
	"strconv"

	"github.com/Pincessis17/MerchFlow/internal/services"
	"github.com/Pincessis17/MerchFlow/pkg/pagination"
	"github.com/Pincessis17/MerchFlow/pkg/response"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	service       *services.ProductService
	importService *services.ImportService
}

func NewProductHandler(service *services.ProductService, importService *services.ImportService) *ProductHandler {
	return &ProductHandler{
		service:       service,
		importService: importService,
	}
}

// List pages products with search and category filters
func (h *ProductHandler) List(c *gin.Context) {
	companyID := c.GetUint("company_id")
	params := pagination.ParsePageParams(c)

	products, total, err := h.service.List(companyID, *params, c.Query("search"), c.Query("category"))
	if err != nil {
		response.ServerError(c, "failed to list products")
		return
	}

	response.SuccessWithPage(c, products, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// GetByID returns one product
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	product, err := h.service.GetByID(c.GetUint("company_id"), uint(id))
	if err != nil {
		response.NotFound(c, err.Error())
		return
	}

	response.Success(c, product)
}

// Create adds a product
func (h *ProductHandler) Create(c *gin.Context) {
	var input services.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "product name is required")
		return
	}

	product, err := h.service.Create(c.GetUint("company_id"), input)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "product created", product)
}

// Update edits a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	var input services.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "product name is required")
		return
	}

	product, err := h.service.Update(c.GetUint("company_id"), uint(id), input)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "product updated", product)
}

// Delete removes a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	if err := h.service.Delete(c.GetUint("company_id"), uint(id)); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "product deleted", nil)
}

// LowStock products at or below the threshold
func (h *ProductHandler) LowStock(c *gin.Context) {
	threshold, err := strconv.Atoi(c.DefaultQuery("threshold", "5"))
	if err != nil || threshold < 0 {
		response.BadRequest(c, "invalid threshold")
		return
	}

	products, err := h.service.LowStock(c.GetUint("company_id"), threshold)
	if err != nil {
		response.ServerError(c, "failed to list low stock products")
		return
	}

	response.Success(c, products)
}

// Categories distinct category names in use
func (h *ProductHandler) Categories(c *gin.Context) {
	categories, err := h.service.Categories(c.GetUint("company_id"))
	if err != nil {
		response.ServerError(c, "failed to list categories")
		return
	}

	response.Success(c, categories)
}

// Import takes a CSV upload and upserts products
func (h *ProductHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "a CSV file upload named 'file' is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "could not read the uploaded file")
		return
	}
	defer file.Close()

	result, err := h.importService.ImportProducts(c.GetUint("company_id"), file)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "import finished", result)
}
