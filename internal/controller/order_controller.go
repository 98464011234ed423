package controller

import (
	"errors"
	"net/http"
	"time"

	"storefront-service/internal/dto"
	"storefront-service/internal/model"
	"storefront-service/internal/service"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Service *service.OrderService
}

func NewOrderController(s *service.OrderService) *OrderController {
	return &OrderController{Service: s}
}

// POST /api/order/place
func (ctl *OrderController) Place(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}

	order, err := ctl.Service.PlaceOrder(c.Request.Context(), c.GetString("userID"), c.GetString("userName"), req)
	var couponErr *service.CouponRejectedError
	switch {
	case errors.Is(err, service.ErrEmptyCart):
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Cart is empty"})
		return
	case errors.As(err, &couponErr):
		c.JSON(http.StatusOK, gin.H{"success": false, "message": couponErr.Message})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// POST /api/order/userorders
func (ctl *OrderController) UserOrders(c *gin.Context) {
	orders, err := ctl.Service.UserOrders(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

// GET /api/order/track/:orderId
func (ctl *OrderController) Track(c *gin.Context) {
	order, err := ctl.Service.Track(c.Request.Context(), c.Param("orderId"), c.GetString("userID"), c.GetBool("isAdmin"))
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Order not found"})
		return
	case errors.Is(err, service.ErrOrderForbidden):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "You cannot view another user's order"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// GET /api/order/list — admin; optional ?status= filter accepts codes and
// legacy labels
func (ctl *OrderController) List(c *gin.Context) {
	orders, err := ctl.Service.AllOrders(c.Request.Context(), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

// POST /api/order/status — admin
func (ctl *OrderController) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}

	logistics := model.Logistics{
		Courier:        req.Courier,
		TrackingNumber: req.TrackingNumber,
		Warehouse:      req.Warehouse,
	}
	if req.ExpectedDelivery != "" {
		eta, err := time.Parse(time.RFC3339, req.ExpectedDelivery)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "expectedDelivery must be RFC3339"})
			return
		}
		logistics.ExpectedDelivery = &eta
	}

	actor := service.Actor{Type: "admin", Name: c.GetString("userName")}
	err := ctl.Service.UpdateStatus(c.Request.Context(), req.OrderID, req.Status, req.Note, logistics, actor)
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	case errors.Is(err, service.ErrOrderFinal):
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Order is in a final state"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Status updated"})
}

// POST /api/order/note — admin; records a note without touching status
func (ctl *OrderController) AddNote(c *gin.Context) {
	var req dto.OrderNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}

	actor := service.Actor{Type: "admin", Name: c.GetString("userName")}
	err := ctl.Service.AddNote(c.Request.Context(), req.OrderID, req.Note, actor)
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Note recorded"})
}

// POST /api/order/paid — admin; used for settling cash-on-delivery orders
func (ctl *OrderController) MarkPaid(c *gin.Context) {
	var req dto.MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}

	err := ctl.Service.MarkPaid(c.Request.Context(), req.OrderID)
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	actor := service.Actor{Type: "admin", Name: c.GetString("userName")}
	if req.Note != "" {
		_ = ctl.Service.AddNote(c.Request.Context(), req.OrderID, req.Note, actor)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment recorded"})
}
