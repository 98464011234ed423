package controller

import (
	"errors"
	"net/http"

	"storefront-service/internal/dto"
	"storefront-service/internal/service"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	Service *service.CartService
}

func NewCartController(s *service.CartService) *CartController {
	return &CartController{Service: s}
}

func cartFailureMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, service.ErrSizeRequired):
		return "Size is required", true
	case errors.Is(err, service.ErrOutOfStock):
		return "Product is out of stock", true
	case errors.Is(err, service.ErrBadQuantity):
		return "Quantity must be zero or positive", true
	case errors.Is(err, service.ErrProductNotFound):
		return "Product not found", true
	}
	return "", false
}

// POST /api/cart/add
func (ctl *CartController) Add(c *gin.Context) {
	var req dto.CartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}

	cart, err := ctl.Service.Add(c.Request.Context(), c.GetString("userID"), req.ProductID, req.Size)
	if msg, ok := cartFailureMessage(err); ok {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": msg})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": cart})
}

// POST /api/cart/update
func (ctl *CartController) Update(c *gin.Context) {
	var req dto.CartUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}

	cart, err := ctl.Service.SetQuantity(c.Request.Context(), c.GetString("userID"), req.ProductID, req.Size, req.Quantity)
	if msg, ok := cartFailureMessage(err); ok {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": msg})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": cart})
}

// POST /api/cart/remove
func (ctl *CartController) Remove(c *gin.Context) {
	var req dto.CartRemoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}

	cart, err := ctl.Service.Remove(c.Request.Context(), c.GetString("userID"), req.ProductID, req.Size)
	if msg, ok := cartFailureMessage(err); ok {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": msg})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": cart})
}

// POST /api/cart/get
func (ctl *CartController) Get(c *gin.Context) {
	view, err := ctl.Service.View(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": view})
}
