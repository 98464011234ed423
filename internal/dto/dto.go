// dto.go
package dto

import "storefront-service/internal/model"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type ProfileUpdateRequest struct {
	Name             string         `json:"name"`
	Phone            string         `json:"phone"`
	Address          *model.Address `json:"address"`
	SecondaryAddress *model.Address `json:"secondaryAddress"`
}

type WishlistRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Remove    bool   `json:"remove"`
}

type CartAddRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Size      string `json:"size" binding:"required"`
}

type CartUpdateRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type CartRemoveRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Size      string `json:"size" binding:"required"`
}

type CouponValidateRequest struct {
	Code string `json:"code" binding:"required"`
}

type CouponCreateRequest struct {
	Code            string  `json:"code" binding:"required"`
	DiscountPercent float64 `json:"discountPercent" binding:"required,gte=1,lte=100"`
	MinPurchase     float64 `json:"minPurchase"`
	ExpiresAt       string  `json:"expiresAt"` // RFC3339, optional
	UsageLimit      int     `json:"usageLimit"`
}

type CouponToggleRequest struct {
	Code   string `json:"code" binding:"required"`
	Active bool   `json:"active"`
}

type PlaceOrderRequest struct {
	Address       model.Address `json:"address" binding:"required"`
	PaymentMethod string        `json:"paymentMethod" binding:"required"`
	CouponCode    string        `json:"couponCode"`
}

type UpdateStatusRequest struct {
	OrderID          string `json:"orderId" binding:"required"`
	Status           string `json:"status" binding:"required"`
	Note             string `json:"note"`
	Courier          string `json:"courier"`
	TrackingNumber   string `json:"trackingNumber"`
	ExpectedDelivery string `json:"expectedDelivery"` // RFC3339, optional
	Warehouse        string `json:"warehouse"`
}

type OrderNoteRequest struct {
	OrderID string `json:"orderId" binding:"required"`
	Note    string `json:"note" binding:"required"`
}

type MarkPaidRequest struct {
	OrderID string `json:"orderId" binding:"required"`
	Note    string `json:"note"`
}

type ProductAddRequest struct {
	Name          string             `json:"name" binding:"required"`
	Description   string             `json:"description"`
	Price         float64            `json:"price" binding:"required,gt=0"`
	Category      string             `json:"category" binding:"required"`
	SubCategory   string             `json:"subCategory"`
	Images        []string           `json:"images"`
	Sizes         []string           `json:"sizes"`
	SizePricing   map[string]float64 `json:"sizePricing"`
	Discount      float64            `json:"discount"`
	StockQuantity int                `json:"stockQuantity"`
	SizeStock     map[string]int     `json:"sizeStock"`
	Bestseller    bool               `json:"bestseller"`
}

type ProductRemoveRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

type ProductStockRequest struct {
	ProductID     string         `json:"productId" binding:"required"`
	InStock       *bool          `json:"inStock"`
	StockQuantity *int           `json:"stockQuantity"`
	SizeStock     map[string]int `json:"sizeStock"`
}

type PricingSetRequest struct {
	ProductID string            `json:"productId" binding:"required"`
	BasePrice float64           `json:"basePrice" binding:"required,gt=0"`
	Sizes     []model.SizePrice `json:"sizes"`
}

type ReviewAddRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Rating    int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment   string `json:"comment"`
}

// CartView is the priced rendering of a cart returned to clients.
type CartView struct {
	Items    []CartLine `json:"items"`
	Subtotal float64    `json:"subtotal"`
}

type CartLine struct {
	ProductID       string  `json:"productId"`
	Name            string  `json:"name"`
	Size            string  `json:"size"`
	Quantity        int     `json:"quantity"`
	UnitPrice       float64 `json:"unitPrice"` // discount already applied
	DiscountPercent float64 `json:"discountPercent,omitempty"`
	LineTotal       float64 `json:"lineTotal"`
}

type CouponResult struct {
	Success         bool    `json:"success"`
	Message         string  `json:"message,omitempty"`
	DiscountPercent float64 `json:"discountPercent,omitempty"`
	DiscountAmount  float64 `json:"discountAmount,omitempty"`
	Total           float64 `json:"total,omitempty"`
}
