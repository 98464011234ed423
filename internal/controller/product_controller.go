package controller

import (
	"errors"
	"net/http"

	"storefront-service/internal/dto"
	"storefront-service/internal/model"
	"storefront-service/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	Service *service.ProductService
}

func NewProductController(s *service.ProductService) *ProductController {
	return &ProductController{Service: s}
}

// GET /api/product/list
func (ctl *ProductController) List(c *gin.Context) {
	products, err := ctl.Service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

// GET /api/product/:productId
func (ctl *ProductController) Get(c *gin.Context) {
	p, err := ctl.Service.Get(c.Request.Context(), c.Param("productId"))
	if errors.Is(err, service.ErrProductNotFound) {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": p})
}

// POST /api/product/add — admin
func (ctl *ProductController) Add(c *gin.Context) {
	var req dto.ProductAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}

	p := &model.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Category:      req.Category,
		SubCategory:   req.SubCategory,
		Images:        req.Images,
		Sizes:         req.Sizes,
		SizePricing:   req.SizePricing,
		Discount:      req.Discount,
		StockQuantity: req.StockQuantity,
		SizeStock:     req.SizeStock,
		Bestseller:    req.Bestseller,
	}
	if err := ctl.Service.Add(c.Request.Context(), p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": p})
}

// POST /api/product/remove — admin
func (ctl *ProductController) Remove(c *gin.Context) {
	var req dto.ProductRemoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}

	err := ctl.Service.Remove(c.Request.Context(), req.ProductID)
	if errors.Is(err, service.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product removed"})
}

// POST /api/product/stock — admin
func (ctl *ProductController) UpdateStock(c *gin.Context) {
	var req dto.ProductStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}

	err := ctl.Service.UpdateStock(c.Request.Context(), req.ProductID, req.InStock, req.StockQuantity, req.SizeStock)
	if errors.Is(err, service.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Stock updated"})
}

// POST /api/pricing/set — admin
func (ctl *ProductController) SetPricing(c *gin.Context) {
	var req dto.PricingSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}

	err := ctl.Service.SetPricing(c.Request.Context(), req.ProductID, req.BasePrice, req.Sizes)
	if errors.Is(err, service.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}
	if errors.Is(err, service.ErrDuplicateSize) {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Duplicate size in price table"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Pricing updated"})
}
