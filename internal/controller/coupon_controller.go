package controller

import (
	"errors"
	"net/http"
	"time"

	"storefront-service/internal/dto"
	"storefront-service/internal/model"
	"storefront-service/internal/repository"
	"storefront-service/internal/service"

	"github.com/gin-gonic/gin"
)

type CouponController struct {
	Coupons     *service.CouponService
	Cart        *service.CartService
	DeliveryFee float64
}

func NewCouponController(coupons *service.CouponService, cart *service.CartService, deliveryFee float64) *CouponController {
	return &CouponController{Coupons: coupons, Cart: cart, DeliveryFee: deliveryFee}
}

// POST /api/coupon/validate — validates against the caller's current cart
// subtotal and returns the would-be total. Never burns a use.
func (ctl *CouponController) Validate(c *gin.Context) {
	var req dto.CouponValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}

	subtotal, err := ctl.Cart.Subtotal(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	result, err := ctl.Coupons.Validate(c.Request.Context(), req.Code, subtotal)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	if result.Success {
		result.Total = service.Round2(subtotal-result.DiscountAmount) + ctl.DeliveryFee
	}
	c.JSON(http.StatusOK, result)
}

// POST /api/coupon/create — admin
func (ctl *CouponController) Create(c *gin.Context) {
	var req dto.CouponCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}

	coupon := &model.Coupon{
		Code:            req.Code,
		DiscountPercent: req.DiscountPercent,
		MinPurchase:     req.MinPurchase,
		UsageLimit:      req.UsageLimit,
		Active:          true,
	}
	if req.ExpiresAt != "" {
		expires, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "expiresAt must be RFC3339"})
			return
		}
		coupon.ExpiresAt = &expires
	}

	err := ctl.Coupons.Create(c.Request.Context(), coupon)
	if errors.Is(err, service.ErrCouponExists) {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Coupon code already exists"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "coupon": coupon})
}

// GET /api/coupon/list — admin
func (ctl *CouponController) List(c *gin.Context) {
	coupons, err := ctl.Coupons.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "coupons": coupons})
}

// POST /api/coupon/toggle — admin
func (ctl *CouponController) Toggle(c *gin.Context) {
	var req dto.CouponToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}

	err := ctl.Coupons.SetActive(c.Request.Context(), req.Code, req.Active)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Coupon not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
