package controller

import (
	"errors"
	"net/http"

	"storefront-service/internal/dto"
	"storefront-service/internal/service"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	Service *service.ReviewService
}

func NewReviewController(s *service.ReviewService) *ReviewController {
	return &ReviewController{Service: s}
}

// POST /api/review/add
func (ctl *ReviewController) Add(c *gin.Context) {
	var req dto.ReviewAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}

	err := ctl.Service.Add(c.Request.Context(), c.GetString("userID"), c.GetString("userName"), req.ProductID, req.Rating, req.Comment)
	switch {
	case errors.Is(err, service.ErrBadRating):
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Rating must be between 1 and 5"})
		return
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Product not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Review saved"})
}

// GET /api/review/list/:productId
func (ctl *ReviewController) List(c *gin.Context) {
	reviews, average, err := ctl.Service.ListForProduct(c.Request.Context(), c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reviews": reviews, "averageRating": average})
}
